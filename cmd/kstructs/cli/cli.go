// Package cli provides the Kong-based command-line interface for kstructs.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"

	"github.com/alecthomas/kong"

	"github.com/frobware/go-kstructs/config"
	"github.com/frobware/go-kstructs/kmalloc"
	"github.com/frobware/go-kstructs/logging"
)

// Version is set at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

// CLI is the root command structure for kstructs.
type CLI struct {
	Config string `name:"config" help:"Config file path." default:"${default_config_path}"`
	Log    string `name:"log" help:"Log spec (e.g., 'info,collector=debug'). Overrides $KSTRUCTS_LOG."`

	Collect  CollectCmd  `cmd:"" default:"withargs" help:"Group kernel structs by kmalloc cache (default)."`
	Buckets  BucketsCmd  `cmd:"" help:"List the kmalloc cache sizes in use."`
	Classify ClassifyCmd `cmd:"" help:"Print the kmalloc cache for one or more sizes."`
	Version  VersionCmd  `cmd:"" help:"Print the kstructs version."`

	// Out receives command output. Nil means os.Stdout.
	Out io.Writer `kong:"-"`
}

// KongOptions returns the Kong configuration options for the CLI.
func KongOptions() []kong.Option {
	return []kong.Option{
		kong.Name("kstructs"),
		kong.Description("Classify kernel structs by kmalloc cache using pahole."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.TypeMapper(reflect.TypeOf(BucketSize{}), bucketSizeMapper()),
		kong.Vars{
			"default_config_path": config.DefaultConfigPath,
			"buckets":             kmalloc.Default().String(),
		},
	}
}

// LoadConfig loads the configuration from the --config path.
func (c *CLI) LoadConfig() (config.Config, error) {
	return config.Load(c.Config)
}

// Logger creates a logger writing to stderr. The spec is taken from --log,
// then $KSTRUCTS_LOG, then the config file. Commands default to warn so
// that only problems are shown.
func (c *CLI) Logger(cfg config.Config) (*slog.Logger, error) {
	format, err := logging.ParseFormat(cfg.Logging.Format)
	if err != nil {
		return nil, err
	}

	return logging.New(logging.Options{
		CLISpec:     c.Log,
		EnvSpec:     os.Getenv(logging.EnvVar),
		ConfigSpec:  cfg.Logging.ToSpec(),
		DefaultSpec: "warn",
		Format:      format,
		Output:      os.Stderr,
	})
}

// Setup loads the configuration and builds the logger.
func (c *CLI) Setup() (config.Config, *slog.Logger, error) {
	cfg, err := c.LoadConfig()
	if err != nil {
		return cfg, nil, err
	}
	logger, err := c.Logger(cfg)
	if err != nil {
		return cfg, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, logger, nil
}

func (c *CLI) out() io.Writer {
	if c.Out != nil {
		return c.Out
	}
	return os.Stdout
}

// WriteOut writes b to the output. A short write is an error.
func (c *CLI) WriteOut(b []byte) error {
	n, err := c.out().Write(b)
	if err != nil {
		return err
	}
	if n != len(b) {
		return io.ErrShortWrite
	}
	return nil
}

// PrintOut writes s followed by a newline.
func (c *CLI) PrintOut(s string) error {
	return c.WriteOut([]byte(s + "\n"))
}

// PrintOutf formats according to a format specifier and writes the result.
func (c *CLI) PrintOutf(format string, args ...any) error {
	return c.WriteOut(fmt.Appendf(nil, format, args...))
}
