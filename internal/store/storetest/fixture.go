// Package storetest provides entity fixtures shared by package tests.
package storetest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kittclouds/metaboviz/internal/store"
)

func ent(id, name string, synonyms ...string) store.EntityRecord {
	return store.EntityRecord{ID: id, Name: name, Synonyms: synonyms}
}

// Glycolysis returns a small two-pathway database:
//
//	glycolysis: r1 glc->g6p, r2 g6p->f6p, r3 f6p->{dhap,g3p}
//	ppp:        r4 g6p->6pg, r6 {6pg,nadp}->ru5p
//
// plus one reaction with no inputs (r5) and one duplicate id ("HK" as a
// pathway), both of which Build rejects.
func Glycolysis() *store.Records {
	return &store.Records{
		Genes: []store.GeneRecord{
			{EntityRecord: ent("hk1", "HK1")},
			{EntityRecord: ent("gpi", "GPI")},
			{EntityRecord: ent("aldoa", "ALDOA")},
			{EntityRecord: ent("g6pd", "G6PD")},
		},
		Proteins: []store.ProteinRecord{
			{EntityRecord: ent("HK", "Hexokinase"), Genes: []string{"hk1"}, Compartments: []string{"cytosol"}},
			{EntityRecord: ent("PGI", "Phosphoglucose isomerase"), Genes: []string{"gpi"}, Compartments: []string{"cytosol"}},
			{EntityRecord: ent("ALDO", "Aldolase"), Genes: []string{"aldoa"}, Compartments: []string{"cytosol", "nucleus"}},
			{EntityRecord: ent("G6PDH", "G6P dehydrogenase"), Genes: []string{"g6pd"}},
		},
		Metabolites: []store.MetaboliteRecord{
			{EntityRecord: store.EntityRecord{ID: "glc", Name: "Glucose", Synonyms: []string{"D-Glucose", "Dextrose"},
				Links: []store.ExternalLink{{DB: "KEGG", ID: "C00031"}, {DB: "CHEBI", ID: "4167"}}}},
			{EntityRecord: store.EntityRecord{ID: "g6p", Name: "Glucose 6-phosphate", Synonyms: []string{"G6P"},
				Links: []store.ExternalLink{{DB: "KEGG", ID: "C00092"}}}},
			{EntityRecord: ent("f6p", "Fructose 6-phosphate", "F6P")},
			{EntityRecord: ent("dhap", "Dihydroxyacetone phosphate", "DHAP")},
			{EntityRecord: ent("g3p", "Glyceraldehyde 3-phosphate", "GAP")},
			{EntityRecord: ent("6pg", "6-Phosphogluconolactone")},
			{EntityRecord: ent("ru5p", "Ribulose 5-phosphate")},
			{EntityRecord: ent("nadp", "NADP+")},
			{EntityRecord: ent("atp", "ATP")},
			{EntityRecord: ent("adp", "ADP")},
		},
		Pathways: []store.PathwayRecord{
			{EntityRecord: ent("glycolysis", "Glycolysis")},
			{EntityRecord: ent("ppp", "Pentose phosphate pathway"), Reactions: []string{"r4", "r6"}},
			{EntityRecord: ent("HK", "duplicate of a protein id")},
		},
		Reactions: []store.ReactionRecord{
			{EntityRecord: ent("r1", "hexokinase reaction"), PrimaryInputs: []string{"glc"}, PrimaryOutputs: []string{"g6p"},
				SecondaryInputs: []string{"atp"}, SecondaryOutputs: []string{"adp"}, Catalysts: []string{"HK"},
				Direction: "forward", Pathways: []string{"glycolysis"}},
			{EntityRecord: ent("r2", "isomerase reaction"), PrimaryInputs: []string{"g6p"}, PrimaryOutputs: []string{"f6p"},
				Catalysts: []string{"PGI"}, Direction: "both", Pathways: []string{"glycolysis"}},
			{EntityRecord: ent("r3", "aldolase reaction"), PrimaryInputs: []string{"f6p"}, PrimaryOutputs: []string{"dhap", "g3p"},
				Catalysts: []string{"ALDO"}, Direction: "both", Pathways: []string{"glycolysis"}},
			{EntityRecord: ent("r4", "G6PDH reaction"), PrimaryInputs: []string{"g6p"}, PrimaryOutputs: []string{"6pg"},
				Catalysts: []string{"G6PDH"}},
			{EntityRecord: ent("r5", "broken reaction"), PrimaryOutputs: []string{"g6p"}, Pathways: []string{"glycolysis"}},
			{EntityRecord: ent("r6", "ribulose reaction"), PrimaryInputs: []string{"6pg", "nadp"}, PrimaryOutputs: []string{"ru5p"}},
		},
	}
}

// MustBuild builds a store or fails the test.
func MustBuild(t testing.TB, recs *store.Records) *store.Store {
	t.Helper()
	st, err := store.Build(recs, nil)
	require.NoError(t, err)
	return st
}

// Reaction returns a reaction record for quick graph-shape fixtures.
func Reaction(id string, inputs, outputs []string, pathways ...string) store.ReactionRecord {
	return store.ReactionRecord{
		EntityRecord:   store.EntityRecord{ID: id, Name: id},
		PrimaryInputs:  inputs,
		PrimaryOutputs: outputs,
		Pathways:       pathways,
	}
}

// Metabolites returns bare metabolite records for the given ids.
func Metabolites(ids ...string) []store.MetaboliteRecord {
	out := make([]store.MetaboliteRecord, len(ids))
	for i, id := range ids {
		out[i] = store.MetaboliteRecord{EntityRecord: store.EntityRecord{ID: id, Name: id}}
	}
	return out
}

// Pathways returns bare pathway records for the given ids.
func Pathways(ids ...string) []store.PathwayRecord {
	out := make([]store.PathwayRecord, len(ids))
	for i, id := range ids {
		out[i] = store.PathwayRecord{EntityRecord: store.EntityRecord{ID: id, Name: id}}
	}
	return out
}
