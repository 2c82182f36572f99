// Command solsca is the CLI shell (C14) for the smart contract static
// security analyzer: it wires the Analysis Service to a filesystem path
// and an output format, printing a severity summary once the report is
// written.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		color.Red("Error: %v", err)
		fmt.Fprintln(os.Stderr)
		os.Exit(1)
	}
}
