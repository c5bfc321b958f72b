package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvVar holds a log spec read from the environment.
const EnvVar = "KSTRUCTS_LOG"

// Format is the log output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat parses "text" or "json". Empty means text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	}
	return FormatText, fmt.Errorf("unknown log format: %q", s)
}

// Options configures New. The first non-empty spec among CLISpec, EnvSpec
// and ConfigSpec is used, followed by DefaultSpec.
type Options struct {
	CLISpec     string
	EnvSpec     string
	ConfigSpec  string
	DefaultSpec string
	Format      Format
	// Output defaults to os.Stderr so that stdout stays free for reports.
	Output io.Writer
}

// New returns a logger filtered by the selected spec.
func New(opts Options) (*slog.Logger, error) {
	specStr := opts.DefaultSpec
	for _, s := range []string{opts.CLISpec, opts.EnvSpec, opts.ConfigSpec} {
		if s != "" {
			specStr = s
			break
		}
	}

	spec, err := ParseSpec(specStr)
	if err != nil {
		return nil, fmt.Errorf("invalid log spec: %w", err)
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: LevelTrace.ToSlog()}
	var inner slog.Handler
	if opts.Format == FormatJSON {
		inner = slog.NewJSONHandler(out, handlerOpts)
	} else {
		inner = slog.NewTextHandler(out, handlerOpts)
	}

	return slog.New(NewFilteringHandler(inner, spec)), nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
