package store

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNilRecords is returned by Build when no payload is supplied.
var ErrNilRecords = errors.New("store: nil records")

// Build constructs a read-only Store from loader records in two phases.
//
// Phase one registers entities in dependency order (genes, proteins,
// metabolites, pathways, reactions) and resolves forward sequences such as
// reaction inputs and protein genes. Phase two is a single linking pass that
// fills every back-reference set.
//
// Bad records are never fatal: duplicate ids, empty ids and reactions with
// no primary inputs or outputs are excluded and reported by Rejected.
func Build(recs *Records, logger *zap.Logger) (*Store, error) {
	if recs == nil {
		return nil, ErrNilRecords
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	b := &builder{st: newStore(), log: logger.Named("store")}
	b.registerGenes(recs.Genes)
	b.registerProteins(recs.Proteins)
	b.registerMetabolites(recs.Metabolites)
	b.registerPathways(recs.Pathways)
	b.registerReactions(recs.Reactions)
	b.link(recs)

	st := b.st
	b.log.Info("store built",
		zap.String("snapshot", st.snapshotID),
		zap.Int("metabolites", len(st.metaboliteOrder)),
		zap.Int("reactions", len(st.reactionOrder)),
		zap.Int("pathways", len(st.pathwayOrder)),
		zap.Int("proteins", len(st.proteinOrder)),
		zap.Int("genes", len(st.geneOrder)),
		zap.Int("rejected", len(st.rejected)),
		zap.Int("dangling_refs", b.dangling),
	)
	return st, nil
}

type builder struct {
	st       *Store
	log      *zap.Logger
	dangling int

	// admitted holds the entity each record produced, nil where the record
	// was rejected, indexed like the input slices.
	admittedPathways  []*Pathway
	admittedReactions []*Reaction
}

func newStore() *Store {
	return &Store{
		snapshotID:  uuid.NewString(),
		table:       newOrdinals(),
		entities:    make(map[string]Entity),
		metabolites: make(map[string]*Metabolite),
		reactions:   make(map[string]*Reaction),
		pathways:    make(map[string]*Pathway),
		proteins:    make(map[string]*Protein),
		genes:       make(map[string]*Gene),
	}
}

// =============================================================================
// Phase one: entities
// =============================================================================

func (b *builder) reject(id string, kind Kind, reason string) {
	b.st.rejected = append(b.st.rejected, Rejection{ID: id, Kind: kind, Reason: reason})
	b.log.Warn("record rejected", zap.String("id", id), zap.String("kind", string(kind)), zap.String("reason", reason))
}

// admit checks id uniqueness across all kinds and builds the shared base.
func (b *builder) admit(rec EntityRecord, kind Kind) (Base, bool) {
	id := strings.TrimSpace(rec.ID)
	if id == "" {
		b.reject(rec.ID, kind, "empty id")
		return Base{}, false
	}
	if prev, exists := b.st.entities[id]; exists {
		b.reject(id, kind, "duplicate id (already loaded as "+string(prev.Kind())+")")
		return Base{}, false
	}
	b.st.table.assign(id)
	return Base{
		ID:       id,
		Name:     rec.Name,
		synonyms: uniqueStrings(rec.Synonyms),
		links:    uniqueLinks(rec.Links),
	}, true
}

func (b *builder) registerGenes(recs []GeneRecord) {
	for _, rec := range recs {
		base, ok := b.admit(rec.EntityRecord, KindGene)
		if !ok {
			continue
		}
		g := &Gene{Base: base, pathways: b.set(), reactions: b.set()}
		b.st.genes[g.ID] = g
		b.st.geneOrder = append(b.st.geneOrder, g)
		b.st.entities[g.ID] = g
	}
}

func (b *builder) registerProteins(recs []ProteinRecord) {
	for _, rec := range recs {
		base, ok := b.admit(rec.EntityRecord, KindProtein)
		if !ok {
			continue
		}
		p := &Protein{
			Base:         base,
			Compartments: uniqueStrings(rec.Compartments),
			pathways:     b.set(),
			reactions:    b.set(),
		}
		seen := make(map[string]bool)
		for _, id := range rec.Genes {
			g, ok := b.st.genes[id]
			if !ok {
				b.dangling++
				continue
			}
			if !seen[id] {
				seen[id] = true
				p.Genes = append(p.Genes, g)
			}
		}
		b.st.proteins[p.ID] = p
		b.st.proteinOrder = append(b.st.proteinOrder, p)
		b.st.entities[p.ID] = p
	}
}

func (b *builder) registerMetabolites(recs []MetaboliteRecord) {
	for _, rec := range recs {
		base, ok := b.admit(rec.EntityRecord, KindMetabolite)
		if !ok {
			continue
		}
		m := &Metabolite{Base: base, pathways: b.set(), reactions: b.set()}
		b.st.metabolites[m.ID] = m
		b.st.metaboliteOrder = append(b.st.metaboliteOrder, m)
		b.st.entities[m.ID] = m
	}
}

func (b *builder) registerPathways(recs []PathwayRecord) {
	b.admittedPathways = make([]*Pathway, len(recs))
	for i, rec := range recs {
		base, ok := b.admit(rec.EntityRecord, KindPathway)
		if !ok {
			continue
		}
		p := &Pathway{
			Base:        base,
			reactions:   b.set(),
			metabolites: b.set(),
			proteins:    b.set(),
			genes:       b.set(),
		}
		b.st.pathways[p.ID] = p
		b.st.pathwayOrder = append(b.st.pathwayOrder, p)
		b.st.entities[p.ID] = p
		b.admittedPathways[i] = p
	}
}

func (b *builder) registerReactions(recs []ReactionRecord) {
	b.admittedReactions = make([]*Reaction, len(recs))
	for i, rec := range recs {
		inputs := b.metaboliteSeq(rec.PrimaryInputs)
		outputs := b.metaboliteSeq(rec.PrimaryOutputs)
		// Shape is checked before admit so a rejected reaction takes no ordinal.
		if len(inputs) == 0 || len(outputs) == 0 {
			reason := "no primary inputs"
			if len(inputs) > 0 {
				reason = "no primary outputs"
			}
			b.reject(rec.ID, KindReaction, reason)
			continue
		}
		base, ok := b.admit(rec.EntityRecord, KindReaction)
		if !ok {
			continue
		}
		r := &Reaction{
			Base:             base,
			PrimaryInputs:    inputs,
			PrimaryOutputs:   outputs,
			SecondaryInputs:  b.metaboliteSeq(rec.SecondaryInputs),
			SecondaryOutputs: b.metaboliteSeq(rec.SecondaryOutputs),
			Direction:        ParseDirection(rec.Direction),
			pathways:         b.set(),
		}
		seen := make(map[string]bool)
		for _, id := range rec.Catalysts {
			p, ok := b.st.proteins[id]
			if !ok {
				b.dangling++
				continue
			}
			if !seen[id] {
				seen[id] = true
				r.Catalysts = append(r.Catalysts, p)
			}
		}
		b.st.reactions[r.ID] = r
		b.st.reactionOrder = append(b.st.reactionOrder, r)
		b.st.entities[r.ID] = r
		b.admittedReactions[i] = r
	}
}

func (b *builder) metaboliteSeq(ids []string) []*Metabolite {
	var out []*Metabolite
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		m, ok := b.st.metabolites[id]
		if !ok {
			b.dangling++
			continue
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, m)
	}
	return out
}

func (b *builder) set() IDSet {
	return newIDSet(b.st.table)
}

// =============================================================================
// Phase two: back-references
// =============================================================================

// link fills back-references from admitted records only; a rejected
// duplicate never contributes relations to the entity kept under its id.
func (b *builder) link(recs *Records) {
	for _, r := range b.st.reactionOrder {
		b.linkParticipants(r)
	}

	for i, rec := range recs.Reactions {
		r := b.admittedReactions[i]
		if r == nil {
			continue
		}
		for _, pid := range rec.Pathways {
			p, ok := b.st.pathways[pid]
			if !ok {
				b.dangling++
				continue
			}
			b.attach(p, r)
		}
	}
	for i, rec := range recs.Pathways {
		p := b.admittedPathways[i]
		if p == nil {
			continue
		}
		for _, rid := range rec.Reactions {
			r, ok := b.st.reactions[rid]
			if !ok {
				b.dangling++
				continue
			}
			b.attach(p, r)
		}
	}
}

func (b *builder) linkParticipants(r *Reaction) {
	ord := b.ord(r.ID)
	for _, m := range participants(r) {
		m.reactions.add(ord)
	}
	for _, p := range r.Catalysts {
		p.reactions.add(ord)
		for _, g := range p.Genes {
			g.reactions.add(ord)
		}
	}
}

// attach records that reaction r belongs to pathway p and propagates the
// membership to every participant.
func (b *builder) attach(p *Pathway, r *Reaction) {
	pOrd := b.ord(p.ID)
	r.pathways.add(pOrd)
	p.reactions.add(b.ord(r.ID))
	for _, m := range participants(r) {
		p.metabolites.add(b.ord(m.ID))
		m.pathways.add(pOrd)
	}
	for _, prot := range r.Catalysts {
		p.proteins.add(b.ord(prot.ID))
		prot.pathways.add(pOrd)
		for _, g := range prot.Genes {
			p.genes.add(b.ord(g.ID))
			g.pathways.add(pOrd)
		}
	}
}

func (b *builder) ord(id string) uint32 {
	ord, _ := b.st.table.lookup(id)
	return ord
}

// participants lists primary then secondary metabolites of a reaction.
func participants(r *Reaction) []*Metabolite {
	out := make([]*Metabolite, 0, len(r.PrimaryInputs)+len(r.PrimaryOutputs)+len(r.SecondaryInputs)+len(r.SecondaryOutputs))
	out = append(out, r.PrimaryInputs...)
	out = append(out, r.PrimaryOutputs...)
	out = append(out, r.SecondaryInputs...)
	out = append(out, r.SecondaryOutputs...)
	return out
}

func uniqueStrings(in []string) []string {
	var out []string
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func uniqueLinks(in []ExternalLink) []ExternalLink {
	var out []ExternalLink
	seen := make(map[ExternalLink]bool, len(in))
	for _, l := range in {
		if l.DB == "" || l.ID == "" || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}
