package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"cikmap_backend/internal/app/di"
	"cikmap_backend/internal/feature/cikmap/usecase"
	"cikmap_backend/internal/platform/config"
	"cikmap_backend/internal/platform/provider"
)

var lookupPolicy string

// lookupCmd resolves symbols through the registered sec/CikMap fetcher
var lookupCmd = &cobra.Command{
	Use:   "lookup SYMBOL [SYMBOL...]",
	Short: "Print the CIK record of each symbol",
	Long: `Resolve each symbol and print one JSON record per line.

Unknown symbols print {"cik":null} under the default policy, or
{"Error":"Symbol not found."} with --policy error.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		policy := cfg.App.NotFoundPolicy
		if lookupPolicy != "" {
			policy = lookupPolicy
		}

		var err error
		rdb := di.NewRedis(ctx, cfg.Redis)
		if rdb != nil {
			defer closeLogged(slog.Default(), rdb, "Redis client")
		}
		var db *gorm.DB
		if cfg.App.TickerSource == config.TickerSourceDB {
			if db, err = di.NewDB(cfg.DB); err != nil {
				return err
			}
		}
		dir, err := di.NewTickerDirectory(cfg, rdb, db)
		if err != nil {
			return err
		}
		cm, err := di.NewCikMap(dir, policy)
		if err != nil {
			return err
		}

		fetch, err := cm.Registry.Lookup(usecase.ProviderName, usecase.ModelName)
		if err != nil {
			return err
		}
		return runLookup(ctx, cmd.OutOrStdout(), fetch, args)
	},
}

func init() {
	lookupCmd.Flags().StringVar(&lookupPolicy, "policy", "", "Not-found policy: null or error (default from config)")
}

// runLookup resolves symbols in order and stops at the first failure.
func runLookup(ctx context.Context, w io.Writer, fetch provider.FetchFunc, symbols []string) error {
	enc := json.NewEncoder(w)
	for _, s := range symbols {
		res, err := fetch(ctx, map[string]any{"symbol": s}, nil)
		if err != nil {
			return fmt.Errorf("lookup %s: %w", s, err)
		}
		if err := enc.Encode(res); err != nil {
			return err
		}
	}
	return nil
}
