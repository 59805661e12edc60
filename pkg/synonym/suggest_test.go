package synonym_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/metaboviz/pkg/synonym"
)

func TestSuggestRanksBySimilarity(t *testing.T) {
	_, ix := buildIndex(t)
	sg := ix.Suggester()

	got := sg.Suggest("Glucoze", 5)
	require.NotEmpty(t, got)
	assert.Equal(t, "glc", got[0].Entity.EntityID())
	assert.Equal(t, "glucose", got[0].Name)
	assert.InDelta(t, 8.0/14.0, got[0].Similarity, 1e-9)

	seen := make(map[string]bool)
	for i, s := range got {
		assert.False(t, seen[s.Entity.EntityID()], "one suggestion per entity")
		seen[s.Entity.EntityID()] = true
		assert.GreaterOrEqual(t, s.Similarity, synonym.MinSimilarity)
		if i > 0 {
			assert.LessOrEqual(t, s.Similarity, got[i-1].Similarity)
		}
	}
}

func TestSuggestLimitAndMisses(t *testing.T) {
	_, ix := buildIndex(t)
	sg := ix.Suggester()

	assert.Len(t, sg.Suggest("phosphate", 1), 1)
	assert.Empty(t, sg.Suggest("zzzzqqqq", 5))
	assert.Nil(t, sg.Suggest("", 5))
	assert.Nil(t, sg.Suggest("glucose", 0))
}

func TestSuggestShortNames(t *testing.T) {
	_, ix := buildIndex(t)
	got := ix.Suggester().Suggest("atp", 3)
	require.NotEmpty(t, got)
	assert.Equal(t, "atp", got[0].Entity.EntityID())
	assert.Equal(t, 1.0, got[0].Similarity)
}
