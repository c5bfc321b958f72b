package pahole

import "strings"

// Record is one structure block from a layout dump.
//
// Name and Size default to "" and 0 when the block does not contain a
// matching line. Lines holds the block verbatim, up to and including the
// closing "};" line.
type Record struct {
	Name  string
	Size  int
	Lines []string
}

// Text returns the block as it appeared in the dump.
func (r Record) Text() string {
	return strings.Join(r.Lines, "\n")
}
