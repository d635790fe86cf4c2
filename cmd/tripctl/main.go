package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/tripgest/internal/config"
	"github.com/dgallion1/tripgest/internal/logutil"
)

var version = "dev"

// globals are the persistent flags shared by every subcommand.
type globals struct {
	json        bool
	quiet       bool
	destination string
	days        int
}

func main() {
	g := &globals{}
	rootCmd := &cobra.Command{
		Use:           "tripctl",
		Short:         "tripctl - turn free-text travel itineraries into structured activities",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVar(&g.json, "json", false, "Write JSON instead of a table")
	rootCmd.PersistentFlags().BoolVarP(&g.quiet, "quiet", "q", false, "Suppress log output")
	rootCmd.PersistentFlags().StringVarP(&g.destination, "destination", "d", "", "Trip destination, used as the fallback location")
	rootCmd.PersistentFlags().IntVarP(&g.days, "days", "n", 3, "Trip length in days (caps the activity count at days*4)")

	rootCmd.AddCommand(parseCmd(g))
	rootCmd.AddCommand(importCmd(g))
	rootCmd.AddCommand(generateCmd(g))
	rootCmd.AddCommand(exportCmd(g))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the shared configuration and builds a stderr logger.
// Commands that never call a model or the store skip it.
func (g *globals) loadConfig() (config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, err
	}
	if g.quiet {
		return cfg, logutil.Discard(), nil
	}
	return cfg, logutil.New(os.Stderr, logutil.Options{
		Level:     cfg.LogLevel,
		Format:    "text",
		AddSource: cfg.LogAddSource,
	}), nil
}

func (g *globals) clampDays(max int) int {
	days := g.days
	if days < 1 {
		days = 1
	}
	if max > 0 && days > max {
		days = max
	}
	return days
}
