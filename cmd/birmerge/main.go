// Command birmerge converts a base64 BIR exchange envelope into JSON and merges
// its segments into a target template.
// Usage: birmerge [input-file]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"birmerge/internal/domain"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "birmerge:", err)
		os.Exit(domain.ExitCode(err))
	}
}
