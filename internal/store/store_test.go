package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/metaboviz/internal/store"
	"github.com/kittclouds/metaboviz/internal/store/storetest"
)

// =============================================================================
// Source Factory for Testing Both Implementations
// =============================================================================

// sourceFactory creates an empty source that can be saved into.
// We test both MemSource and SQLiteSource with the same test suite.
type sourceFactory func(t *testing.T) (savingSource, error)

type savingSource interface {
	store.Source
	Save(ctx context.Context, recs *store.Records) error
}

func memSourceFactory(t *testing.T) (savingSource, error) {
	return store.NewMemSource(nil), nil
}

func sqliteSourceFactory(t *testing.T) (savingSource, error) {
	return store.NewSQLiteSource(filepath.Join(t.TempDir(), "metaboviz.db"))
}

// runTestsForAllSources runs a test function against every source implementation.
func runTestsForAllSources(t *testing.T, testName string, testFn func(t *testing.T, src savingSource)) {
	factories := map[string]sourceFactory{
		"MemSource":    memSourceFactory,
		"SQLiteSource": sqliteSourceFactory,
	}

	for name, factory := range factories {
		t.Run(name+"/"+testName, func(t *testing.T) {
			src, err := factory(t)
			require.NoError(t, err, "Failed to create source")
			defer src.Close()
			testFn(t, src)
		})
	}
}

// =============================================================================
// Source Tests
// =============================================================================

func TestSourceEmpty(t *testing.T) {
	runTestsForAllSources(t, "Empty", func(t *testing.T, src savingSource) {
		recs, err := src.Records(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, recs.Len())
	})
}

func TestSourceRoundTrip(t *testing.T) {
	runTestsForAllSources(t, "RoundTrip", func(t *testing.T, src savingSource) {
		ctx := context.Background()
		want := storetest.Glycolysis()
		require.NoError(t, src.Save(ctx, want))

		got, err := src.Records(ctx)
		require.NoError(t, err)
		require.Equal(t, want.Len(), got.Len())

		assert.Equal(t, want.Reactions[2].PrimaryOutputs, got.Reactions[2].PrimaryOutputs)
		assert.Equal(t, want.Reactions[0].Direction, got.Reactions[0].Direction)
		assert.Equal(t, want.Metabolites[0].Links, got.Metabolites[0].Links)
		assert.Equal(t, want.Metabolites[0].Synonyms, got.Metabolites[0].Synonyms)
		assert.Equal(t, want.Proteins[2].Compartments, got.Proteins[2].Compartments)
		assert.Equal(t, want.Pathways[1].Reactions, got.Pathways[1].Reactions)

		// Both stores built from the round trip must agree.
		a := storetest.MustBuild(t, want)
		b := storetest.MustBuild(t, got)
		assert.Equal(t, a.Stats(), b.Stats())
		assert.Equal(t, ids(a.Pathways()), ids(b.Pathways()))
	})
}

func TestSourceSaveReplaces(t *testing.T) {
	runTestsForAllSources(t, "SaveReplaces", func(t *testing.T, src savingSource) {
		ctx := context.Background()
		require.NoError(t, src.Save(ctx, storetest.Glycolysis()))
		require.NoError(t, src.Save(ctx, &store.Records{Metabolites: storetest.Metabolites("x")}))

		got, err := src.Records(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, got.Len())
		assert.Equal(t, "x", got.Metabolites[0].ID)
	})
}

func TestSourceSaveNil(t *testing.T) {
	runTestsForAllSources(t, "SaveNil", func(t *testing.T, src savingSource) {
		ctx := context.Background()
		require.NoError(t, src.Save(ctx, storetest.Glycolysis()))
		assert.ErrorIs(t, src.Save(ctx, nil), store.ErrNilRecords)

		got, err := src.Records(ctx)
		require.NoError(t, err)
		assert.Equal(t, storetest.Glycolysis().Len(), got.Len())
	})
}

func TestSourceReturnsCopies(t *testing.T) {
	runTestsForAllSources(t, "Copies", func(t *testing.T, src savingSource) {
		ctx := context.Background()
		require.NoError(t, src.Save(ctx, storetest.Glycolysis()))

		first, err := src.Records(ctx)
		require.NoError(t, err)
		first.Reactions[0].PrimaryInputs[0] = "mutated"

		second, err := src.Records(ctx)
		require.NoError(t, err)
		assert.Equal(t, "glc", second.Reactions[0].PrimaryInputs[0])
	})
}

func ids[T store.Entity](in []T) []string {
	out := make([]string, len(in))
	for i, e := range in {
		out[i] = e.EntityID()
	}
	return out
}
