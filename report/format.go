package report

import (
	"fmt"
	"strings"
)

// Kind is an output encoding.
type Kind string

const (
	KindText     Kind = "text"
	KindJSON     Kind = "json"
	KindYAML     Kind = "yaml"
	KindJSONPath Kind = "jsonpath"
)

const jsonPathPrefix = "jsonpath="

// Format is a parsed --format value.
type Format struct {
	Kind Kind
	// Expr is the template for KindJSONPath.
	Expr string
}

// ParseFormat parses "text", "json", "yaml" or "jsonpath=EXPR".
func ParseFormat(s string) (Format, error) {
	s = strings.TrimSpace(s)
	switch Kind(s) {
	case "", KindText:
		return Format{Kind: KindText}, nil
	case KindJSON:
		return Format{Kind: KindJSON}, nil
	case KindYAML:
		return Format{Kind: KindYAML}, nil
	}

	if expr, ok := strings.CutPrefix(s, jsonPathPrefix); ok {
		if expr == "" {
			return Format{}, fmt.Errorf("jsonpath format requires an expression")
		}
		return Format{Kind: KindJSONPath, Expr: expr}, nil
	}

	return Format{}, fmt.Errorf("unknown format %q: expected text, json, yaml or jsonpath=EXPR", s)
}

func (f Format) String() string {
	if f.Kind == KindJSONPath {
		return jsonPathPrefix + f.Expr
	}
	return string(f.Kind)
}
