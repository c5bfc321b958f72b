// Package report renders kmalloc cache groupings of kernel structures.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
	"k8s.io/client-go/util/jsonpath"

	"github.com/frobware/go-kstructs/kmalloc"
	"github.com/frobware/go-kstructs/pahole"
)

// Table is the input to every renderer.
type Table = kmalloc.Table[pahole.Record]

// Document is the structured form of a report.
type Document struct {
	Caches []Cache `json:"caches" yaml:"caches"`
}

// Cache is one kmalloc cache and the structures placed in it.
type Cache struct {
	Size    int      `json:"size" yaml:"size"`
	Structs []Struct `json:"structs" yaml:"structs"`
}

// Struct is one structure as reported by the layout extractor.
type Struct struct {
	Name   string `json:"name" yaml:"name"`
	Size   int    `json:"size" yaml:"size"`
	Layout string `json:"layout" yaml:"layout"`
}

// NewDocument converts t into its structured form.
func NewDocument(t *Table) Document {
	doc := Document{Caches: make([]Cache, 0, len(t.Keys()))}
	for _, g := range t.Groups() {
		c := Cache{Size: g.Size, Structs: make([]Struct, 0, len(g.Entries))}
		for _, rec := range g.Entries {
			c.Structs = append(c.Structs, Struct{Name: rec.Name, Size: rec.Size, Layout: rec.Text()})
		}
		doc.Caches = append(doc.Caches, c)
	}
	return doc
}

// Render encodes t in the requested format.
func Render(t *Table, f Format) ([]byte, error) {
	switch f.Kind {
	case KindText, "":
		return renderText(t), nil
	case KindJSON:
		out, err := json.MarshalIndent(NewDocument(t), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal report: %w", err)
		}
		return append(out, '\n'), nil
	case KindYAML:
		out, err := yaml.Marshal(NewDocument(t))
		if err != nil {
			return nil, fmt.Errorf("failed to marshal report: %w", err)
		}
		return out, nil
	case KindJSONPath:
		return renderJSONPath(t, f.Expr)
	}
	return nil, fmt.Errorf("unsupported format %q", f.Kind)
}

// Write renders t and writes it to w in one call.
func Write(w io.Writer, t *Table, f Format) error {
	out, err := Render(t, f)
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// renderText emits a header per cache followed by each structure's
// layout block, every item followed by a blank line.
func renderText(t *Table) []byte {
	var b bytes.Buffer
	for _, g := range t.Groups() {
		fmt.Fprintf(&b, "Kernel structs allocated in kmalloc cache %d:\n\n", g.Size)
		for _, rec := range g.Entries {
			b.WriteString(rec.Text())
			b.WriteString("\n\n")
		}
	}
	return b.Bytes()
}

func renderJSONPath(t *Table, expr string) ([]byte, error) {
	jp := jsonpath.New("report")
	if err := jp.Parse(expr); err != nil {
		return nil, fmt.Errorf("invalid jsonpath expression %q: %w", expr, err)
	}

	raw, err := json.Marshal(NewDocument(t))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}

	var buf bytes.Buffer
	if err := jp.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("jsonpath execution failed: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
