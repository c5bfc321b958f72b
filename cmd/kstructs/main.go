// kstructs groups the structures of a Linux kernel image by the kmalloc
// cache they would be allocated from.
package main

import (
	"github.com/alecthomas/kong"

	"github.com/frobware/go-kstructs/cmd/kstructs/cli"
)

func main() {
	var c cli.CLI
	ctx := kong.Parse(&c, cli.KongOptions()...)
	ctx.FatalIfErrorf(ctx.Run(&c))
}
