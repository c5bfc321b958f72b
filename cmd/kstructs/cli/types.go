package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// BucketSize is a kmalloc cache size given on the command line. Decimal
// and 0x-prefixed hex are accepted.
type BucketSize struct {
	Value int
}

// ParseBucketSize parses a size from s.
func ParseBucketSize(s string) (BucketSize, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return BucketSize{}, fmt.Errorf("size cannot be empty")
	}

	var (
		val int64
		err error
	)
	if rest, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok {
		val, err = strconv.ParseInt(rest, 16, 0)
	} else {
		val, err = strconv.ParseInt(s, 10, 0)
	}
	if err != nil {
		return BucketSize{}, fmt.Errorf("invalid size %q: %w", s, err)
	}

	return BucketSize{Value: int(val)}, nil
}
