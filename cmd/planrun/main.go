package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dyluth/planrun/cmd/planrun/commands"
	"github.com/dyluth/planrun/internal/printer"
)

// Version information - set during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	// Ctrl-C abandons the call in flight; nothing is written for a partial run.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Errors from printer.Error are already on stderr; anything else is printed here
	if err := commands.Execute(ctx); err != nil {
		printer.Fatal(err)
		stop()
		os.Exit(1)
	}
}
