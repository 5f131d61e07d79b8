// Command usau-rankings rates ultimate teams from game results.
//
// Usage:
//
//	usau-rankings rank games.json --division womens --top 25
//	usau-rankings custom rows.csv --format json
//	usau-rankings generate --teams 32 --rounds 10 --output season.json
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/tmarshall07/usau-rankings-algorithm/pkg/logger"
)

func main() {
	// Load .env from the working directory if present
	_ = godotenv.Load(".env")

	if err := logger.Init(); err != nil {
		// Use os.Stderr since the logger is not available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := newRootCmd(os.Stdout).ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
