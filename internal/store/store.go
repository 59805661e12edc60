package store

// Store is the read-only entity database produced by Build. All accessors
// are safe for concurrent use because nothing mutates a Store after Build.
type Store struct {
	snapshotID string
	table      *ordinals

	entities    map[string]Entity
	metabolites map[string]*Metabolite
	reactions   map[string]*Reaction
	pathways    map[string]*Pathway
	proteins    map[string]*Protein
	genes       map[string]*Gene

	metaboliteOrder []*Metabolite
	reactionOrder   []*Reaction
	pathwayOrder    []*Pathway
	proteinOrder    []*Protein
	geneOrder       []*Gene

	rejected []Rejection
}

// SnapshotID identifies this build. Results derived from a store carry it so
// later stages can detect a mismatched snapshot.
func (s *Store) SnapshotID() string { return s.snapshotID }

// Entity returns any entity by id.
func (s *Store) Entity(id string) (Entity, bool) {
	e, ok := s.entities[id]
	return e, ok
}

func (s *Store) Metabolite(id string) (*Metabolite, bool) {
	m, ok := s.metabolites[id]
	return m, ok
}

func (s *Store) Reaction(id string) (*Reaction, bool) {
	r, ok := s.reactions[id]
	return r, ok
}

func (s *Store) Pathway(id string) (*Pathway, bool) {
	p, ok := s.pathways[id]
	return p, ok
}

func (s *Store) Protein(id string) (*Protein, bool) {
	p, ok := s.proteins[id]
	return p, ok
}

func (s *Store) Gene(id string) (*Gene, bool) {
	g, ok := s.genes[id]
	return g, ok
}

// =============================================================================
// Ordered listings (load order)
// =============================================================================

func (s *Store) Metabolites() []*Metabolite { return append([]*Metabolite(nil), s.metaboliteOrder...) }
func (s *Store) Reactions() []*Reaction     { return append([]*Reaction(nil), s.reactionOrder...) }
func (s *Store) Pathways() []*Pathway       { return append([]*Pathway(nil), s.pathwayOrder...) }
func (s *Store) Proteins() []*Protein       { return append([]*Protein(nil), s.proteinOrder...) }
func (s *Store) Genes() []*Gene             { return append([]*Gene(nil), s.geneOrder...) }

// Entities returns every entity in load order of kinds then records.
func (s *Store) Entities() []Entity {
	out := make([]Entity, 0, len(s.entities))
	for _, g := range s.geneOrder {
		out = append(out, g)
	}
	for _, p := range s.proteinOrder {
		out = append(out, p)
	}
	for _, m := range s.metaboliteOrder {
		out = append(out, m)
	}
	for _, p := range s.pathwayOrder {
		out = append(out, p)
	}
	for _, r := range s.reactionOrder {
		out = append(out, r)
	}
	return out
}

// Rejected lists records excluded during Build.
func (s *Store) Rejected() []Rejection {
	return append([]Rejection(nil), s.rejected...)
}

// Stats returns entity counts.
func (s *Store) Stats() Stats {
	return Stats{
		Metabolites: len(s.metaboliteOrder),
		Reactions:   len(s.reactionOrder),
		Pathways:    len(s.pathwayOrder),
		Proteins:    len(s.proteinOrder),
		Genes:       len(s.geneOrder),
		Rejected:    len(s.rejected),
	}
}

// =============================================================================
// Set resolution
// =============================================================================

// ReactionsIn resolves a set of ids to reactions in load order.
func (s *Store) ReactionsIn(set IDSet) []*Reaction {
	var out []*Reaction
	set.Each(func(id string) bool {
		if r, ok := s.reactions[id]; ok {
			out = append(out, r)
		}
		return true
	})
	return out
}

// PathwaysIn resolves a set of ids to pathways in load order.
func (s *Store) PathwaysIn(set IDSet) []*Pathway {
	var out []*Pathway
	set.Each(func(id string) bool {
		if p, ok := s.pathways[id]; ok {
			out = append(out, p)
		}
		return true
	})
	return out
}
