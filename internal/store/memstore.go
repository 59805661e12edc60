package store

import (
	"context"
	"sync"
)

// Source supplies loader records. MemSource serves tests and JSON input,
// SQLiteSource serves persisted databases.
type Source interface {
	Records(ctx context.Context) (*Records, error)
	Close() error
}

// MemSource is an in-memory Source.
type MemSource struct {
	mu   sync.RWMutex
	recs Records
}

// NewMemSource creates a source holding a deep copy of recs.
func NewMemSource(recs *Records) *MemSource {
	s := &MemSource{}
	if recs != nil {
		s.recs = cloneRecords(recs)
	}
	return s
}

// Records returns a deep copy of the held records.
func (s *MemSource) Records(ctx context.Context) (*Records, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := cloneRecords(&s.recs)
	return &out, nil
}

// Save replaces the held records.
func (s *MemSource) Save(ctx context.Context, recs *Records) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if recs == nil {
		return ErrNilRecords
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recs = cloneRecords(recs)
	return nil
}

// Close is a no-op for MemSource.
func (s *MemSource) Close() error {
	return nil
}

// Deep copy to avoid mutation through shared slices
func cloneRecords(r *Records) Records {
	out := Records{
		Metabolites: make([]MetaboliteRecord, len(r.Metabolites)),
		Reactions:   make([]ReactionRecord, len(r.Reactions)),
		Pathways:    make([]PathwayRecord, len(r.Pathways)),
		Proteins:    make([]ProteinRecord, len(r.Proteins)),
		Genes:       make([]GeneRecord, len(r.Genes)),
	}
	for i, m := range r.Metabolites {
		out.Metabolites[i] = MetaboliteRecord{EntityRecord: cloneEntity(m.EntityRecord)}
	}
	for i, rx := range r.Reactions {
		out.Reactions[i] = ReactionRecord{
			EntityRecord:     cloneEntity(rx.EntityRecord),
			PrimaryInputs:    cloneStrings(rx.PrimaryInputs),
			PrimaryOutputs:   cloneStrings(rx.PrimaryOutputs),
			SecondaryInputs:  cloneStrings(rx.SecondaryInputs),
			SecondaryOutputs: cloneStrings(rx.SecondaryOutputs),
			Catalysts:        cloneStrings(rx.Catalysts),
			Direction:        rx.Direction,
			Pathways:         cloneStrings(rx.Pathways),
		}
	}
	for i, p := range r.Pathways {
		out.Pathways[i] = PathwayRecord{EntityRecord: cloneEntity(p.EntityRecord), Reactions: cloneStrings(p.Reactions)}
	}
	for i, p := range r.Proteins {
		out.Proteins[i] = ProteinRecord{
			EntityRecord: cloneEntity(p.EntityRecord),
			Genes:        cloneStrings(p.Genes),
			Compartments: cloneStrings(p.Compartments),
		}
	}
	for i, g := range r.Genes {
		out.Genes[i] = GeneRecord{EntityRecord: cloneEntity(g.EntityRecord)}
	}
	return out
}

func cloneEntity(e EntityRecord) EntityRecord {
	e.Synonyms = cloneStrings(e.Synonyms)
	if e.Links != nil {
		e.Links = append([]ExternalLink(nil), e.Links...)
	}
	return e
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
