// Command tuplecat converts and queries enclosed tuples. See package
// internal/cli for the flags.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/rawbytedev/enclosed/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
