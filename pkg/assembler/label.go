package assembler

import (
	"sort"
	"strings"

	"github.com/kittclouds/metaboviz/internal/store"
)

// EdgeLabel is the text drawn on a reaction's main edge. It is derived from
// the reaction and the display options and never changes afterwards.
type EdgeLabel struct {
	ReactionID       string
	Name             string
	Catalysts        []string
	SecondaryInputs  []string
	SecondaryOutputs []string
}

// NewEdgeLabel computes the label of r under opts.
func NewEdgeLabel(r *store.Reaction, opts Options) EdgeLabel {
	l := EdgeLabel{ReactionID: r.ID, Name: r.DisplayName()}
	if opts.ShowEnzymes {
		for _, p := range r.Catalysts {
			l.Catalysts = append(l.Catalysts, p.DisplayName())
		}
	}
	if opts.ShowSecondary {
		l.SecondaryInputs = displayNames(r.SecondaryInputs)
		l.SecondaryOutputs = displayNames(r.SecondaryOutputs)
	}
	return l
}

// String renders "name [catalysts] (secondary in -> secondary out)".
func (l EdgeLabel) String() string {
	var sb strings.Builder
	sb.WriteString(l.Name)
	if len(l.Catalysts) > 0 {
		sb.WriteString(" [")
		sb.WriteString(strings.Join(l.Catalysts, ", "))
		sb.WriteString("]")
	}
	if len(l.SecondaryInputs) > 0 || len(l.SecondaryOutputs) > 0 {
		sb.WriteString(" (")
		sb.WriteString(strings.Join(l.SecondaryInputs, " + "))
		sb.WriteString(" -> ")
		sb.WriteString(strings.Join(l.SecondaryOutputs, " + "))
		sb.WriteString(")")
	}
	return sb.String()
}

func displayNames(ms []*store.Metabolite) []string {
	var out []string
	for _, m := range ms {
		out = append(out, m.DisplayName())
	}
	return out
}

// PruneKey identifies reactions that would be drawn identically: same sorted
// primary inputs and outputs and same direction, plus catalysts and
// secondary metabolites when those are displayed.
func PruneKey(r *store.Reaction, opts Options) string {
	parts := []string{
		"in=" + sortedIDs(metaboliteIDs(r.PrimaryInputs)),
		"out=" + sortedIDs(metaboliteIDs(r.PrimaryOutputs)),
		"dir=" + string(r.Direction),
	}
	if opts.ShowEnzymes {
		ids := make([]string, len(r.Catalysts))
		for i, p := range r.Catalysts {
			ids[i] = p.ID
		}
		parts = append(parts, "cat="+sortedIDs(ids))
	}
	if opts.ShowSecondary {
		parts = append(parts,
			"sin="+sortedIDs(metaboliteIDs(r.SecondaryInputs)),
			"sout="+sortedIDs(metaboliteIDs(r.SecondaryOutputs)),
		)
	}
	return strings.Join(parts, "|")
}

func metaboliteIDs(ms []*store.Metabolite) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.ID
	}
	return out
}

func sortedIDs(ids []string) string {
	sort.Strings(ids)
	return strings.Join(ids, ",")
}
