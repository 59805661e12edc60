package synonym

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/kittclouds/metaboviz/internal/store"
)

// gramSize is the q of the q-gram index.
const gramSize = 3

// MinSimilarity is the lowest Dice coefficient Suggest reports.
const MinSimilarity = 0.3

// Suggestion is an approximate match for a name that did not resolve.
type Suggestion struct {
	Name       string // registered name, lowercased
	Entity     store.Entity
	Similarity float64 // Dice coefficient of the two gram sets
}

// Suggester answers "did you mean" queries over a snapshot of the index.
type Suggester struct {
	patterns []string
	owners   []store.Entity
	grams    []int                      // distinct gram count per pattern
	postings map[string]*roaring.Bitmap // gram -> pattern indexes
}

// Suggester builds a q-gram index over every registered name. Like
// Scanner, it does not see names registered afterwards.
func (ix *Index) Suggester() *Suggester {
	patterns := make([]string, 0, len(ix.reverse))
	for key := range ix.reverse {
		patterns = append(patterns, key)
	}
	sort.Strings(patterns)

	s := &Suggester{
		patterns: patterns,
		owners:   make([]store.Entity, len(patterns)),
		grams:    make([]int, len(patterns)),
		postings: make(map[string]*roaring.Bitmap),
	}
	for i, p := range patterns {
		s.owners[i] = ix.reverse[p]
		grams := extractGrams(p)
		s.grams[i] = len(grams)
		for _, g := range grams {
			bm, ok := s.postings[g]
			if !ok {
				bm = roaring.New()
				s.postings[g] = bm
			}
			bm.Add(uint32(i))
		}
	}
	return s
}

// Suggest returns up to limit entities whose names resemble query, best
// first. Each entity appears once, under its most similar name.
func (s *Suggester) Suggest(query string, limit int) []Suggestion {
	grams := extractGrams(normalize(query))
	if len(grams) == 0 || limit <= 0 {
		return nil
	}

	shared := make(map[uint32]int)
	for _, g := range grams {
		bm, ok := s.postings[g]
		if !ok {
			continue
		}
		it := bm.Iterator()
		for it.HasNext() {
			shared[it.Next()]++
		}
	}

	best := make(map[string]Suggestion)
	for i, n := range shared {
		sim := 2 * float64(n) / float64(len(grams)+s.grams[i])
		if sim < MinSimilarity {
			continue
		}
		owner := s.owners[i]
		cur, seen := best[owner.EntityID()]
		if !seen || sim > cur.Similarity || (sim == cur.Similarity && s.patterns[i] < cur.Name) {
			best[owner.EntityID()] = Suggestion{Name: s.patterns[i], Entity: owner, Similarity: sim}
		}
	}

	out := make([]Suggestion, 0, len(best))
	for _, sg := range best {
		out = append(out, sg)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Similarity != out[j].Similarity {
			return out[i].Similarity > out[j].Similarity
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// extractGrams returns the distinct q-grams of a name padded with a
// boundary marker on each side, so names shorter than q still index.
func extractGrams(name string) []string {
	if name == "" {
		return nil
	}
	padded := "\x00" + name + "\x00"
	if len(padded) < gramSize {
		return []string{padded}
	}
	seen := make(map[string]bool, len(padded))
	grams := make([]string, 0, len(padded)-gramSize+1)
	for i := 0; i <= len(padded)-gramSize; i++ {
		g := padded[i : i+gramSize]
		if !seen[g] {
			seen[g] = true
			grams = append(grams, g)
		}
	}
	return grams
}
