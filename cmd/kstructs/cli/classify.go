package cli

import (
	"errors"

	"github.com/frobware/go-kstructs/kmalloc"
)

// ClassifyCmd prints the kmalloc cache each size falls into.
type ClassifyCmd struct {
	Sizes []string `arg:"" name:"size" help:"Object sizes in bytes (decimal or 0x hex)."`
}

// Run executes the classify command.
func (c *ClassifyCmd) Run(cli *CLI) error {
	cfg, err := cli.LoadConfig()
	if err != nil {
		return err
	}
	buckets, err := cfg.Buckets()
	if err != nil {
		return err
	}

	for _, arg := range c.Sizes {
		s, err := ParseBucketSize(arg)
		if err != nil {
			return err
		}
		bucket, err := buckets.Classify(s.Value)
		switch {
		case errors.Is(err, kmalloc.ErrNoMatchingBucket):
			err = cli.PrintOutf("%d\tnone\n", s.Value)
		case err != nil:
			return err
		default:
			err = cli.PrintOutf("%d\t%d\n", s.Value, bucket)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
