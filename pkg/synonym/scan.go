package synonym

import (
	"sort"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"

	"github.com/kittclouds/metaboviz/internal/store"
)

// Mention is an entity name found in free text.
type Mention struct {
	Start  int    // Byte offset start
	End    int    // Byte offset end
	Text   string // Original text slice
	Entity store.Entity
}

// Scanner finds registered names in text with a single Aho-Corasick pass.
// It is a snapshot: names registered after Scanner was called are not seen.
type Scanner struct {
	ac       ahocorasick.AhoCorasick
	patterns []string
	owners   []store.Entity
}

// Scanner compiles every registered name into an automaton. Patterns are
// added in sorted order so identical indexes yield identical scanners.
func (ix *Index) Scanner() *Scanner {
	patterns := make([]string, 0, len(ix.reverse))
	for key := range ix.reverse {
		patterns = append(patterns, key)
	}
	sort.Strings(patterns)

	owners := make([]store.Entity, len(patterns))
	for i, p := range patterns {
		owners[i] = ix.reverse[p]
	}

	s := &Scanner{patterns: patterns, owners: owners}
	if len(patterns) == 0 {
		return s
	}
	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: true,
		MatchOnlyWholeWords:  true,
		MatchKind:            ahocorasick.LeftMostLongestMatch,
	})
	s.ac = builder.Build(patterns)
	return s
}

// Scan returns non-overlapping whole-word mentions, leftmost-longest first.
func (s *Scanner) Scan(text string) []Mention {
	if len(s.patterns) == 0 || text == "" {
		return nil
	}
	matches := s.ac.FindAll(text)
	out := make([]Mention, 0, len(matches))
	for _, m := range matches {
		out = append(out, Mention{
			Start:  m.Start(),
			End:    m.End(),
			Text:   text[m.Start():m.End()],
			Entity: s.owners[m.Pattern()],
		})
	}
	return out
}
