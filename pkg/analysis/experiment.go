// Package analysis computes differential-expression scores: replicate
// measurements for a control and a test group become a per-entity change
// score and a discrete colour bin.
package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrInvalidExperiment is returned when an experiment cannot be scored.
var ErrInvalidExperiment = errors.New("analysis: invalid experiment")

// Dataset holds replicate measurements keyed by entity key then class label.
// Keys are whatever the data file used: store ids, names or "db:id".
type Dataset struct {
	rows  map[string]map[string][]float64
	order []string
}

// NewDataset creates an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{rows: make(map[string]map[string][]float64)}
}

// Add appends replicate values for key under class. Non-finite values are
// dropped.
func (d *Dataset) Add(key, class string, values ...float64) {
	row, ok := d.rows[key]
	if !ok {
		row = make(map[string][]float64)
		d.rows[key] = row
		d.order = append(d.order, key)
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		row[class] = append(row[class], v)
	}
}

// Keys returns entity keys in insertion order.
func (d *Dataset) Keys() []string {
	return append([]string(nil), d.order...)
}

// Len returns the number of entity keys.
func (d *Dataset) Len() int { return len(d.order) }

// Values returns the replicates recorded for key under class.
func (d *Dataset) Values(key, class string) []float64 {
	return d.rows[key][class]
}

// Classes returns every class label present, sorted.
func (d *Dataset) Classes() []string {
	seen := make(map[string]bool)
	for _, row := range d.rows {
		for class := range row {
			seen[class] = true
		}
	}
	out := make([]string, 0, len(seen))
	for class := range seen {
		out = append(out, class)
	}
	sort.Strings(out)
	return out
}

// Experiment names the class labels forming each group. A group is the
// union of the replicates of all its labels.
type Experiment struct {
	Control []string `json:"control" mapstructure:"control"`
	Test    []string `json:"test" mapstructure:"test"`
}

// Validate requires non-empty, disjoint groups.
func (e Experiment) Validate() error {
	if len(e.Control) == 0 {
		return fmt.Errorf("%w: no control classes", ErrInvalidExperiment)
	}
	if len(e.Test) == 0 {
		return fmt.Errorf("%w: no test classes", ErrInvalidExperiment)
	}
	control := make(map[string]bool, len(e.Control))
	for _, c := range e.Control {
		control[c] = true
	}
	for _, c := range e.Test {
		if control[c] {
			return fmt.Errorf("%w: class %q is in both groups", ErrInvalidExperiment, c)
		}
	}
	return nil
}

// Samples are the replicate values of one entity split into groups.
type Samples struct {
	Control []float64
	Test    []float64
}

// Groups collects the samples of key for this experiment.
func (e Experiment) Groups(d *Dataset, key string) Samples {
	var s Samples
	for _, c := range e.Control {
		s.Control = append(s.Control, d.Values(key, c)...)
	}
	for _, c := range e.Test {
		s.Test = append(s.Test, d.Values(key, c)...)
	}
	return s
}
