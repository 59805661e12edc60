package synonym_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kittclouds/metaboviz/internal/store"
	"github.com/kittclouds/metaboviz/internal/store/storetest"
	"github.com/kittclouds/metaboviz/pkg/synonym"
)

func buildIndex(t *testing.T) (*store.Store, *synonym.Index) {
	t.Helper()
	st := storetest.MustBuild(t, storetest.Glycolysis())
	return st, synonym.Build(st, nil)
}

func TestResolveIsCaseInsensitive(t *testing.T) {
	_, ix := buildIndex(t)

	for _, name := range []string{"glc", "Glucose", "d-glucose", "DEXTROSE", "  Dextrose "} {
		e, ok := ix.Resolve(name)
		require.True(t, ok, name)
		assert.Equal(t, "glc", e.EntityID(), name)
	}

	_, ok := ix.Resolve("fructose")
	assert.False(t, ok)
	_, ok = ix.Resolve("")
	assert.False(t, ok)
}

func TestResolveAllKinds(t *testing.T) {
	_, ix := buildIndex(t)

	tests := map[string]store.Kind{
		"hexokinase":                store.KindProtein,
		"HK1":                       store.KindGene,
		"pentose phosphate pathway": store.KindPathway,
		"aldolase reaction":         store.KindReaction,
		"G6P":                       store.KindMetabolite,
	}
	for name, kind := range tests {
		e, ok := ix.Resolve(name)
		require.True(t, ok, name)
		assert.Equal(t, kind, e.Kind(), name)
	}
	assert.Zero(t, ix.Collisions())
}

func TestResolveExternal(t *testing.T) {
	_, ix := buildIndex(t)

	e, ok := ix.ResolveExternal("KEGG", "C00092")
	require.True(t, ok)
	assert.Equal(t, "g6p", e.EntityID())

	e, ok = ix.ResolveExternal("CHEBI", "4167")
	require.True(t, ok)
	assert.Equal(t, "glc", e.EntityID())

	_, ok = ix.ResolveExternal("KEGG", "C99999")
	assert.False(t, ok)
}

func TestResolveAny(t *testing.T) {
	_, ix := buildIndex(t)

	e, ok := ix.ResolveAny("KEGG:C00031")
	require.True(t, ok)
	assert.Equal(t, "glc", e.EntityID())

	e, ok = ix.ResolveAny("Fructose 6-phosphate")
	require.True(t, ok)
	assert.Equal(t, "f6p", e.EntityID())

	_, ok = ix.ResolveAny("KEGG:unknown")
	assert.False(t, ok)
}

func TestRegisterExtraSynonyms(t *testing.T) {
	st, ix := buildIndex(t)
	glc, _ := st.Metabolite("glc")

	ix.Register(glc, "Blood sugar")
	e, ok := ix.Resolve("blood SUGAR")
	require.True(t, ok)
	assert.Equal(t, "glc", e.EntityID())

	assert.Equal(t, []string{"Blood sugar", "D-Glucose", "Dextrose", "Glucose", "glc"}, ix.Names("glc"))
	assert.Nil(t, ix.Names("missing"))
}

func TestCollisionsLastWriteWins(t *testing.T) {
	recs := &store.Records{
		Metabolites: []store.MetaboliteRecord{
			{EntityRecord: store.EntityRecord{ID: "a", Name: "Pyruvate", Synonyms: []string{"pyr"}}},
			{EntityRecord: store.EntityRecord{ID: "pyr", Name: "Pyruvic acid"}},
		},
	}
	st := storetest.MustBuild(t, recs)

	core, logs := observer.New(zap.DebugLevel)
	ix := synonym.Build(st, zap.New(core))

	e, ok := ix.Resolve("PYR")
	require.True(t, ok)
	assert.Equal(t, "pyr", e.EntityID())
	assert.Equal(t, 1, ix.Collisions())
	assert.Equal(t, 1, logs.FilterMessage("synonym collision").Len())

	// The loser keeps its other names.
	e, ok = ix.Resolve("pyruvate")
	require.True(t, ok)
	assert.Equal(t, "a", e.EntityID())
}
