package analysis

// Entry is the score of one entity.
type Entry struct {
	MeanControl   float64 `json:"meanControl"`
	MeanTest      float64 `json:"meanTest"`
	StddevControl float64 `json:"stddevControl"`
	StddevTest    float64 `json:"stddevTest"`
	Delta         float64 `json:"delta"`
	Score         float64 `json:"score"`
	Color         int     `json:"color"`
}

// Result is the immutable output of one scoring pass.
type Result struct {
	// SnapshotID is the store snapshot the entity ids belong to.
	SnapshotID string
	// Minima is the smallest positive group mean of the pass, Maxima the
	// largest group mean.
	Minima float64
	Maxima float64
	// Unresolved counts dataset rows whose key matched no entity.
	Unresolved int

	entries map[string]Entry
	ids     []string
}

// Get returns the entry for an entity id.
func (r *Result) Get(id string) (Entry, bool) {
	if r == nil {
		return Entry{}, false
	}
	e, ok := r.entries[id]
	return e, ok
}

// IDs returns scored entity ids, sorted.
func (r *Result) IDs() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.ids...)
}

// Len returns the number of scored entities.
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.ids)
}
