package cli

// BucketsCmd lists the configured kmalloc cache sizes.
type BucketsCmd struct{}

// Run executes the buckets command.
func (c *BucketsCmd) Run(cli *CLI) error {
	cfg, err := cli.LoadConfig()
	if err != nil {
		return err
	}
	buckets, err := cfg.Buckets()
	if err != nil {
		return err
	}

	for _, size := range buckets.Sizes() {
		if err := cli.PrintOutf("%d\n", size); err != nil {
			return err
		}
	}
	return nil
}
