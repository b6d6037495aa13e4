// Command unified2-cleanup removes aged unified2 files from a sensor log root.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"unified2-cleanup/internal/cli"
)

// version is set via ldflags at build time.
var version = "1.0.0"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return cli.Execute(ctx, version)
}
