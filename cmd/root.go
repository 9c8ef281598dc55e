package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inostartas/grant-cli/internal/config"
	"github.com/inostartas/grant-cli/internal/defaults"
	"github.com/inostartas/grant-cli/internal/schema"
	"github.com/inostartas/grant-cli/internal/store"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "grant-cli",
	Short: "R&D grant application field extraction pipeline",
	Long:  "Turns a free-text business idea into a validated field map for Lithuanian MTEP grant application documents: LLM extraction, completeness analysis, default/AI/manual reconciliation, semantic validation.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// initStore opens and migrates the session database.
func initStore(ctx context.Context) (store.Store, error) {
	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}

// loadRegistry returns the configured schema: the YAML override when set,
// otherwise the built-in MTEP schema.
func loadRegistry() (*schema.Registry, error) {
	if cfg.Schema.File != "" {
		return schema.LoadFile(cfg.Schema.File)
	}
	return schema.Default(), nil
}

// newDefaultsGenerator builds the placeholder generator, seeded from config
// when a deterministic seed is set.
func newDefaultsGenerator() *defaults.Generator {
	seed := cfg.Defaults.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return defaults.New(rand.New(rand.NewSource(seed)))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
