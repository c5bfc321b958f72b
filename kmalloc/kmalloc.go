// Package kmalloc models the generic kmalloc caches of the Linux slab
// allocator and classifies object sizes into them.
package kmalloc

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ErrNoMatchingBucket is returned by Classify when no configured bucket is
// strictly larger than the requested size.
var ErrNoMatchingBucket = errors.New("no matching kmalloc cache")

// DefaultSizes are the kmalloc cache sizes tracked when nothing else is
// configured.
var DefaultSizes = []int{96, 128, 192, 256, 512, 1024, 2048, 4096, 8192}

// Buckets is an immutable, strictly ascending list of cache sizes.
type Buckets struct {
	sizes []int
}

// NewBuckets validates sizes and returns them as a Buckets value.
// Sizes must be non-empty, positive and strictly ascending.
func NewBuckets(sizes []int) (Buckets, error) {
	if len(sizes) == 0 {
		return Buckets{}, fmt.Errorf("bucket list cannot be empty")
	}
	for i, s := range sizes {
		if s <= 0 {
			return Buckets{}, fmt.Errorf("invalid bucket size %d: must be positive", s)
		}
		if i > 0 && s <= sizes[i-1] {
			return Buckets{}, fmt.Errorf("bucket sizes must be strictly ascending: %d follows %d", s, sizes[i-1])
		}
	}
	return Buckets{sizes: slices.Clone(sizes)}, nil
}

// Default returns the standard kmalloc cache list.
func Default() Buckets {
	return Buckets{sizes: slices.Clone(DefaultSizes)}
}

// Sizes returns a copy of the bucket sizes in ascending order.
func (b Buckets) Sizes() []int {
	return slices.Clone(b.sizes)
}

// Len returns the number of buckets.
func (b Buckets) Len() int {
	return len(b.sizes)
}

// Max returns the largest bucket size, or 0 for an empty list.
func (b Buckets) Max() int {
	if len(b.sizes) == 0 {
		return 0
	}
	return b.sizes[len(b.sizes)-1]
}

// Contains reports whether size is one of the buckets.
func (b Buckets) Contains(size int) bool {
	_, found := slices.BinarySearch(b.sizes, size)
	return found
}

// Classify returns the smallest bucket strictly greater than size.
//
// A size equal to a bucket boundary rounds up to the next bucket. Sizes at
// or above the largest bucket yield ErrNoMatchingBucket.
func (b Buckets) Classify(size int) (int, error) {
	for _, s := range b.sizes {
		if s > size {
			return s, nil
		}
	}
	return 0, fmt.Errorf("size %d: %w", size, ErrNoMatchingBucket)
}

// String returns the sizes separated by spaces.
func (b Buckets) String() string {
	parts := make([]string, len(b.sizes))
	for i, s := range b.sizes {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, " ")
}
