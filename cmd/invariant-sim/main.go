package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/krazyTry/invariant-go/internal/config"
	"github.com/krazyTry/invariant-go/invariant"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "invariant-sim",
		Short:        "Offline simulator for Invariant concentrated liquidity pools",
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file path")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("snapshot", "", "pool snapshot JSON path")
	flags.Int("max-crosses", 16, "initialized ticks a swap may cross")
	flags.Int("max-virtual-crosses", 10, "empty search windows a swap may cross")
	flags.String("slippage", "0", "slippage on 10^12, 10^10 is 1%")
	flags.String("min-precision", "10000000000", "position search precision on 10^12")
	flags.Int("workers", 4, "ladder worker pool size")

	root.AddCommand(
		newSwapCmd(),
		newLadderCmd(),
		newPositionCmd(),
		newTicksCmd(),
		newClaimCmd(),
	)
	return root
}

// env is what every subcommand needs: the configured client and the loaded snapshot.
type env struct {
	client   *invariant.Invariant
	snapshot *invariant.Snapshot
	logger   *zap.Logger
}

func setup(cmd *cobra.Command) (*env, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	if cfg.Snapshot == "" {
		return nil, fmt.Errorf("snapshot path is required")
	}
	snapshot, err := invariant.LoadSnapshotFile(cfg.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	client := invariant.NewInvariant(
		invariant.WithLogger(logger),
		invariant.WithMaxCrosses(cfg.MaxCrosses),
		invariant.WithMaxVirtualCrosses(cfg.MaxVirtualCrosses),
		invariant.WithSlippage(cfg.Slippage),
		invariant.WithMinPrecision(cfg.MinPrecision),
		invariant.WithWorkers(cfg.Workers),
	)

	logger.Debug("snapshot loaded",
		zap.String("path", cfg.Snapshot),
		zap.Stringer("pool", snapshot.Address),
		zap.Int("ticks", len(snapshot.Ticks)),
	)
	return &env{client: client, snapshot: snapshot, logger: logger}, nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
