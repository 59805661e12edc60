// Package store holds the relational biological data model: metabolites,
// reactions, pathways, proteins and genes with their back-references.
//
// A Store is built once from loader Records (see Build) and is read-only
// afterwards. Reloading means building a new Store.
package store

import "strings"

// Kind identifies the kind of an entity.
type Kind string

const (
	KindMetabolite Kind = "metabolite"
	KindReaction   Kind = "reaction"
	KindPathway    Kind = "pathway"
	KindProtein    Kind = "protein"
	KindGene       Kind = "gene"
)

// Direction of a reaction.
type Direction string

const (
	DirectionForward Direction = "forward"
	DirectionBack    Direction = "back"
	DirectionBoth    Direction = "both"
)

// ParseDirection maps loader spellings onto a Direction. Unknown values
// default to forward.
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "back", "backward", "reverse", "<-", "<=":
		return DirectionBack
	case "both", "reversible", "bidirectional", "<->", "<=>":
		return DirectionBoth
	default:
		return DirectionForward
	}
}

// ExternalLink is a cross-reference into another database.
type ExternalLink struct {
	DB string `json:"db"`
	ID string `json:"id"`
}

// Entity is implemented by every stored record.
type Entity interface {
	EntityID() string
	DisplayName() string
	Kind() Kind
	Synonyms() []string
	Links() []ExternalLink
}

// Base carries the fields shared by all entity kinds.
type Base struct {
	ID       string
	Name     string
	synonyms []string
	links    []ExternalLink
}

func (b *Base) EntityID() string { return b.ID }

// DisplayName returns the name, falling back to the id.
func (b *Base) DisplayName() string {
	if b.Name == "" {
		return b.ID
	}
	return b.Name
}

func (b *Base) Synonyms() []string {
	out := make([]string, len(b.synonyms))
	copy(out, b.synonyms)
	return out
}

func (b *Base) Links() []ExternalLink {
	out := make([]ExternalLink, len(b.links))
	copy(out, b.links)
	return out
}

// Metabolite is a small molecule participating in reactions.
type Metabolite struct {
	Base
	pathways  IDSet
	reactions IDSet
}

func (m *Metabolite) Kind() Kind       { return KindMetabolite }
func (m *Metabolite) Pathways() IDSet  { return m.pathways }
func (m *Metabolite) Reactions() IDSet { return m.reactions }

// Reaction converts primary inputs into primary outputs. Sequences are in
// loader order with duplicates removed.
type Reaction struct {
	Base
	PrimaryInputs    []*Metabolite
	PrimaryOutputs   []*Metabolite
	SecondaryInputs  []*Metabolite
	SecondaryOutputs []*Metabolite
	Catalysts        []*Protein
	Direction        Direction
	pathways         IDSet
}

func (r *Reaction) Kind() Kind      { return KindReaction }
func (r *Reaction) Pathways() IDSet { return r.pathways }

// Compartments returns the union of the catalysts' compartments in order of
// first appearance.
func (r *Reaction) Compartments() []string {
	var out []string
	seen := make(map[string]bool)
	for _, p := range r.Catalysts {
		for _, c := range p.Compartments {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}

// Pathway groups reactions. All sets are derived from attached reactions.
type Pathway struct {
	Base
	reactions   IDSet
	metabolites IDSet
	proteins    IDSet
	genes       IDSet
}

func (p *Pathway) Kind() Kind         { return KindPathway }
func (p *Pathway) Reactions() IDSet   { return p.reactions }
func (p *Pathway) Metabolites() IDSet { return p.metabolites }
func (p *Pathway) Proteins() IDSet    { return p.proteins }
func (p *Pathway) Genes() IDSet       { return p.genes }

// Protein catalyses reactions.
type Protein struct {
	Base
	Genes        []*Gene
	Compartments []string
	pathways     IDSet
	reactions    IDSet
}

func (p *Protein) Kind() Kind       { return KindProtein }
func (p *Protein) Pathways() IDSet  { return p.pathways }
func (p *Protein) Reactions() IDSet { return p.reactions }

// Gene encodes proteins.
type Gene struct {
	Base
	pathways  IDSet
	reactions IDSet
}

func (g *Gene) Kind() Kind       { return KindGene }
func (g *Gene) Pathways() IDSet  { return g.pathways }
func (g *Gene) Reactions() IDSet { return g.reactions }

// Rejection records a loader record that was excluded from the store.
type Rejection struct {
	ID     string `json:"id"`
	Kind   Kind   `json:"kind"`
	Reason string `json:"reason"`
}

// Stats summarises a built store.
type Stats struct {
	Metabolites int `json:"metabolites"`
	Reactions   int `json:"reactions"`
	Pathways    int `json:"pathways"`
	Proteins    int `json:"proteins"`
	Genes       int `json:"genes"`
	Rejected    int `json:"rejected"`
}
