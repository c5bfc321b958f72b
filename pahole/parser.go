package pahole

import (
	"bufio"
	"bytes"
	"io"
	"iter"
	"math"
	"regexp"
	"strconv"
)

// Delimiter is the line that closes a structure block.
const Delimiter = "};"

var (
	sizePattern = regexp.MustCompile(`size:\W*(\d+)`)
	namePattern = regexp.MustCompile(`^struct\W*(\w*)`)
)

// Parser reads a layout dump one line at a time and yields a Record each
// time a block delimiter is seen. Lines after the last delimiter are
// discarded. A Parser cannot be rewound.
type Parser struct {
	scanner *bufio.Scanner
	lines   []string
	record  Record
	err     error
}

// NewParser returns a Parser reading from r. Lines of any length are
// accepted; the scanner buffer grows as needed.
func NewParser(r io.Reader) *Parser {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), math.MaxInt)
	s.Split(splitLines)
	return &Parser{scanner: s}
}

// Next advances to the next complete block. It returns false at the end of
// input or on a read error.
func (p *Parser) Next() bool {
	for p.scanner.Scan() {
		line := p.scanner.Text()
		p.lines = append(p.lines, line)
		if line != Delimiter {
			continue
		}
		p.record = parseBlock(p.lines)
		p.lines = nil
		return true
	}
	p.err = p.scanner.Err()
	p.lines = nil
	return false
}

// Record returns the block found by the most recent call to Next.
func (p *Parser) Record() Record {
	return p.record
}

// Err returns the first read error, if any.
func (p *Parser) Err() error {
	return p.err
}

// All returns an iterator over the remaining records. Check Err after the
// loop.
func (p *Parser) All() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for p.Next() {
			if !yield(p.Record()) {
				return
			}
		}
	}
}

// Parse reads every complete block from r.
func Parse(r io.Reader) ([]Record, error) {
	p := NewParser(r)
	var records []Record
	for rec := range p.All() {
		records = append(records, rec)
	}
	return records, p.Err()
}

// parseBlock extracts the name and size of a block. Every line is checked
// and later matches replace earlier ones.
func parseBlock(lines []string) Record {
	rec := Record{Lines: lines}
	for _, line := range lines {
		if m := sizePattern.FindStringSubmatch(line); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				rec.Size = n
			}
		}
		if m := namePattern.FindStringSubmatch(line); m != nil {
			rec.Name = m[1]
		}
	}
	return rec
}

// splitLines splits on '\n' only, keeping any '\r' so that a "};\r" line
// is not taken for a delimiter.
func splitLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
