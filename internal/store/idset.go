package store

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// ordinals assigns every loaded entity a dense uint32 in load order.
// Sets store ordinals, so iteration order is load order.
type ordinals struct {
	ids   []string
	index map[string]uint32
}

func newOrdinals() *ordinals {
	return &ordinals{index: make(map[string]uint32)}
}

// assign returns the ordinal for id, allocating one if needed.
func (o *ordinals) assign(id string) uint32 {
	if ord, ok := o.index[id]; ok {
		return ord
	}
	ord := uint32(len(o.ids))
	o.ids = append(o.ids, id)
	o.index[id] = ord
	return ord
}

func (o *ordinals) lookup(id string) (uint32, bool) {
	ord, ok := o.index[id]
	return ord, ok
}

// IDSet is a read-only set of entity ids backed by a roaring bitmap.
// The zero value is an empty set.
type IDSet struct {
	bits  *roaring.Bitmap
	table *ordinals
}

func newIDSet(table *ordinals) IDSet {
	return IDSet{bits: roaring.New(), table: table}
}

func (s *IDSet) add(ord uint32) {
	s.bits.Add(ord)
}

// Len returns the number of ids in the set.
func (s IDSet) Len() int {
	if s.bits == nil {
		return 0
	}
	return int(s.bits.GetCardinality())
}

// Contains reports whether id is a member.
func (s IDSet) Contains(id string) bool {
	if s.bits == nil {
		return false
	}
	ord, ok := s.table.lookup(id)
	return ok && s.bits.Contains(ord)
}

// Intersects reports whether the two sets share any member.
func (s IDSet) Intersects(other IDSet) bool {
	if s.bits == nil || other.bits == nil {
		return false
	}
	return s.bits.Intersects(other.bits)
}

// IDs returns the members in load order.
func (s IDSet) IDs() []string {
	if s.bits == nil {
		return nil
	}
	out := make([]string, 0, s.bits.GetCardinality())
	it := s.bits.Iterator()
	for it.HasNext() {
		out = append(out, s.table.ids[it.Next()])
	}
	return out
}

// Each calls fn for every member in load order until fn returns false.
func (s IDSet) Each(fn func(id string) bool) {
	if s.bits == nil {
		return
	}
	it := s.bits.Iterator()
	for it.HasNext() {
		if !fn(s.table.ids[it.Next()]) {
			return
		}
	}
}
