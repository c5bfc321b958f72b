package cli

import (
	"context"
	"fmt"

	"github.com/frobware/go-kstructs/collector"
	"github.com/frobware/go-kstructs/pahole"
	"github.com/frobware/go-kstructs/report"
)

// CollectCmd runs pahole on a kernel image and reports its structs grouped
// by kmalloc cache.
type CollectCmd struct {
	ELF    string     `arg:"" name:"elf" help:"Linux kernel ELF file."`
	Size   BucketSize `short:"s" name:"size" help:"Only report this kmalloc cache. Available sizes: ${buckets}."`
	Output string     `short:"o" name:"output" help:"Write the report to this file instead of stdout."`
	Format string     `short:"f" name:"format" help:"Report format: text, json, yaml, jsonpath=EXPR." default:"text"`
}

// Run executes the collect command.
func (c *CollectCmd) Run(cli *CLI) error {
	format, err := report.ParseFormat(c.Format)
	if err != nil {
		return err
	}

	cfg, logger, err := cli.Setup()
	if err != nil {
		return err
	}

	buckets, err := cfg.Buckets()
	if err != nil {
		return err
	}

	extractor := pahole.New(
		pahole.WithTool(cfg.Extractor.Path),
		pahole.WithArgs(cfg.Extractor.Args...),
		pahole.WithVersionArg(cfg.Extractor.VersionArg),
		pahole.WithLogger(logger),
	)
	col := collector.New(extractor,
		collector.WithBuckets(buckets),
		collector.WithLogger(logger),
	)

	ctx := context.Background()
	res, err := col.Collect(ctx, collector.Request{Binary: c.ELF, Bucket: c.Size.Value})
	if err != nil {
		return err
	}

	logger.With("component", "report").Info("dumping kernel structs", "format", format.String(), "output", c.Output)

	out, err := report.Render(res.Table, format)
	if err != nil {
		return err
	}

	if c.Output != "" {
		if err := report.WriteFile(c.Output, out); err != nil {
			return fmt.Errorf("failed to write %s: %w", c.Output, err)
		}
		return nil
	}

	return cli.WriteOut(out)
}
