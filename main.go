package main

import (
	"log/slog"
	"os"

	"github.com/wildsight/wildsight-go/cmd"
	"github.com/wildsight/wildsight-go/internal/conf"
	"github.com/wildsight/wildsight-go/internal/logging"
)

func main() {
	logging.Init()

	settings, err := conf.Load()
	if err != nil {
		logging.Fatal("Error loading settings", "error", err)
	}

	if settings.Debug {
		logging.SetLevel(slog.LevelDebug)
	}

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.Execute(); err != nil {
		logging.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
