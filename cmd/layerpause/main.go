// Command layerpause inserts a printer pause before a chosen layer of a
// sliced g-code print.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/roach88/layerpause/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cli.NewRootCommand().ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "layerpause: %v\n", err)
	}
	stop()
	os.Exit(cli.GetExitCode(err))
}
