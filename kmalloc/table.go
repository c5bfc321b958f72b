package kmalloc

import "slices"

// Group is one bucket of a Table together with its entries in insertion
// order.
type Group[T any] struct {
	Size    int
	Entries []T
}

// Table groups entries by kmalloc cache. Its keys are fixed when the table
// is created and never change afterwards.
type Table[T any] struct {
	groups []Group[T]
}

// NewTable creates a table holding every bucket in b.
func NewTable[T any](b Buckets) *Table[T] {
	t := &Table[T]{groups: make([]Group[T], 0, b.Len())}
	for _, s := range b.sizes {
		t.groups = append(t.groups, Group[T]{Size: s})
	}
	return t
}

// NewSingleTable creates a table holding only the requested bucket. The
// size is taken as given, even if it is not a known cache size.
func NewSingleTable[T any](size int) *Table[T] {
	return &Table[T]{groups: []Group[T]{{Size: size}}}
}

// Add appends e to the group for bucket. It returns false, leaving the
// table unchanged, when bucket is not a key of the table.
func (t *Table[T]) Add(bucket int, e T) bool {
	for i := range t.groups {
		if t.groups[i].Size == bucket {
			t.groups[i].Entries = append(t.groups[i].Entries, e)
			return true
		}
	}
	return false
}

// Keys returns the bucket sizes held by the table in table order.
func (t *Table[T]) Keys() []int {
	keys := make([]int, len(t.groups))
	for i, g := range t.groups {
		keys[i] = g.Size
	}
	return keys
}

// Groups returns the groups of the table in table order. The returned
// slice must not be modified.
func (t *Table[T]) Groups() []Group[T] {
	return t.groups
}

// Get returns the entries for bucket.
func (t *Table[T]) Get(bucket int) ([]T, bool) {
	i := slices.IndexFunc(t.groups, func(g Group[T]) bool { return g.Size == bucket })
	if i < 0 {
		return nil, false
	}
	return t.groups[i].Entries, true
}

// Count returns the total number of entries across all groups.
func (t *Table[T]) Count() int {
	n := 0
	for _, g := range t.groups {
		n += len(g.Entries)
	}
	return n
}
