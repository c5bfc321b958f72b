// Package collector runs the layout extractor against a kernel image and
// sorts the resulting structures into kmalloc caches.
package collector

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/frobware/go-kstructs/kmalloc"
	"github.com/frobware/go-kstructs/logging"
	"github.com/frobware/go-kstructs/pahole"
)

// ErrInputNotFound is returned when the kernel image does not exist.
var ErrInputNotFound = errors.New("input binary not found")

// Table is a bucket table of parsed structures.
type Table = kmalloc.Table[pahole.Record]

// Request describes one collection run.
type Request struct {
	// Binary is the path of the kernel image.
	Binary string
	// Bucket restricts the run to one cache size. Zero means all buckets.
	Bucket int
}

// Summary counts what happened to the parsed records.
type Summary struct {
	Parsed   int
	Grouped  int
	NoBucket int
	Filtered int
}

// LogValue implements slog.LogValuer.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("parsed", s.Parsed),
		slog.Int("grouped", s.Grouped),
		slog.Int("no_bucket", s.NoBucket),
		slog.Int("filtered", s.Filtered),
	)
}

// Result is the outcome of a successful run.
type Result struct {
	Table   *Table
	Summary Summary
}

// Collector owns one extractor and one bucket list.
type Collector struct {
	extractor pahole.Extractor
	buckets   kmalloc.Buckets
	logger    *slog.Logger
}

// Option configures a Collector.
type Option func(*Collector)

// WithBuckets overrides the default kmalloc cache list.
func WithBuckets(b kmalloc.Buckets) Option {
	return func(c *Collector) {
		c.buckets = b
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Collector) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New returns a Collector using extractor.
func New(extractor pahole.Extractor, opts ...Option) *Collector {
	c := &Collector{
		extractor: extractor,
		buckets:   kmalloc.Default(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "collector")
	return c
}

// Buckets returns the bucket list in use.
func (c *Collector) Buckets() kmalloc.Buckets {
	return c.buckets
}

// Check verifies that the extractor can run and that binary exists.
func (c *Collector) Check(ctx context.Context, binary string) error {
	c.logger.Info("checking requirements", "binary", binary)

	if err := c.extractor.Probe(ctx); err != nil {
		return err
	}
	if _, err := os.Stat(binary); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrInputNotFound, binary)
		}
		return fmt.Errorf("failed to stat %s: %w", binary, err)
	}
	return nil
}

// NewTable returns an empty table for the request: a single key when a
// bucket was requested, otherwise every configured bucket.
func (c *Collector) NewTable(bucket int) *Table {
	if bucket != 0 {
		return kmalloc.NewSingleTable[pahole.Record](bucket)
	}
	return kmalloc.NewTable[pahole.Record](c.buckets)
}

// Collect checks preconditions, runs the extractor once and groups every
// parsed structure by cache. Nothing is returned unless the whole run
// succeeds.
func (c *Collector) Collect(ctx context.Context, req Request) (*Result, error) {
	if err := c.Check(ctx, req.Binary); err != nil {
		return nil, err
	}

	if req.Bucket != 0 && !c.buckets.Contains(req.Bucket) {
		c.logger.Warn("requested size is not a kmalloc cache; no structure will match",
			"size", req.Bucket, "buckets", c.buckets.String())
	}

	c.logger.Info("collecting kernel structs", "binary", req.Binary)

	out, err := c.extractor.Dump(ctx, req.Binary)
	if err != nil {
		return nil, err
	}

	table := c.NewTable(req.Bucket)
	var sum Summary

	p := pahole.NewParser(bytes.NewReader(out))
	for rec := range p.All() {
		sum.Parsed++

		bucket, err := c.buckets.Classify(rec.Size)
		if err != nil {
			sum.NoBucket++
			c.logger.Log(ctx, logging.LevelTrace.ToSlog(), "no cache for struct", "name", rec.Name, "size", rec.Size)
			continue
		}

		if !table.Add(bucket, rec) {
			sum.Filtered++
			continue
		}
		sum.Grouped++
	}
	if err := p.Err(); err != nil {
		return nil, fmt.Errorf("failed to read extractor output: %w", err)
	}

	c.logger.Info("collected kernel structs", "summary", sum)

	return &Result{Table: table, Summary: sum}, nil
}
