package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"cikmap_backend/internal/platform/config"
)

var (
	// Global flags
	verbose bool
	timeout time.Duration

	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cikmap",
	Short: "Resolve stock ticker symbols to SEC CIK numbers",
	Long: `cikmap maps ticker symbols to the SEC Central Index Key (CIK)
using the company and mutual fund ticker listings published by the SEC.

Configuration is read from .env and environment variables (see README).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Operation timeout")

	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(tokenCmd)
}

// closeLogged closes c and logs a failure instead of dropping it.
func closeLogged(logger *slog.Logger, c io.Closer, name string) {
	if err := c.Close(); err != nil {
		logger.Error("Failed to close "+name, "error", err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
