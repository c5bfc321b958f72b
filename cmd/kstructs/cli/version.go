package cli

// VersionCmd prints the version.
type VersionCmd struct{}

// Run executes the version command.
func (c *VersionCmd) Run(cli *CLI) error {
	return cli.PrintOutf("kstructs %s\n", Version)
}
