package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	configFile string
	verbose    bool
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:           "lexicon",
		Short:         "Look up English words in the Free Dictionary API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := rootCommand.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default is ./config.yaml or $HOME/.config/lexicon/config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logs")

	rootCommand.AddCommand(newLookupCommand())
	rootCommand.AddCommand(newInteractiveCommand())
	rootCommand.AddCommand(newServeCommand())
	return rootCommand
}

func setupLogger(level string, debugMode bool) {
	logLevel := parseLevel(level)
	if debugMode {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
