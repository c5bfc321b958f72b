// Package pahole runs the pahole structure layout dumper and parses its
// output into per-structure records.
package pahole

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"slices"
)

const (
	// DefaultTool is the extractor looked up on PATH when none is configured.
	DefaultTool = "pahole"
	// DefaultVersionArg is the no-op argument used to probe the extractor.
	DefaultVersionArg = "--version"
)

// Extractor produces the textual layout dump for a binary.
type Extractor interface {
	// Probe checks that the extractor can be run at all.
	Probe(ctx context.Context) error
	// Dump runs the extractor against binary and returns its complete
	// standard output.
	Dump(ctx context.Context, binary string) ([]byte, error)
}

// Command is an Extractor backed by an external executable.
type Command struct {
	tool       string
	args       []string
	versionArg string
	logger     *slog.Logger
}

var _ Extractor = (*Command)(nil)

// Option configures a Command.
type Option func(*Command)

// WithTool sets the executable name or path.
func WithTool(tool string) Option {
	return func(c *Command) {
		if tool != "" {
			c.tool = tool
		}
	}
}

// WithArgs sets extra arguments passed before the binary path.
func WithArgs(args ...string) Option {
	return func(c *Command) {
		c.args = slices.Clone(args)
	}
}

// WithVersionArg sets the argument used by Probe.
func WithVersionArg(arg string) Option {
	return func(c *Command) {
		if arg != "" {
			c.versionArg = arg
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Command) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New returns a Command that runs pahole unless configured otherwise.
func New(opts ...Option) *Command {
	c := &Command{
		tool:       DefaultTool,
		versionArg: DefaultVersionArg,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "pahole")
	return c
}

// Tool returns the configured executable.
func (c *Command) Tool() string {
	return c.tool
}

// Probe runs "<tool> --version" and fails with ErrToolUnavailable if the
// tool is missing or exits non-zero.
func (c *Command) Probe(ctx context.Context) error {
	path, err := exec.LookPath(c.tool)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrToolUnavailable, c.tool, err)
	}

	out, err := exec.CommandContext(ctx, path, c.versionArg).Output()
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrToolUnavailable, c.tool, c.versionArg, err)
	}

	c.logger.Debug("extractor available", "path", path, "version", string(bytes.TrimSpace(out)))
	return nil
}

// Dump runs "<tool> [args...] <binary>" and waits for it to exit. The whole
// standard output is buffered in memory.
func (c *Command) Dump(ctx context.Context, binary string) ([]byte, error) {
	args := append(slices.Clone(c.args), binary)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.tool, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	c.logger.Debug("running extractor", "tool", c.tool, "args", args)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &ExecError{
				Tool:     c.tool,
				Args:     args,
				ExitCode: exitErr.ExitCode(),
				Stderr:   stderr.String(),
			}
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrToolUnavailable, c.tool, err)
	}

	c.logger.Debug("extractor finished", "bytes", stdout.Len())
	return stdout.Bytes(), nil
}
