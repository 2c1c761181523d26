package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pgdesk/internal/backend"
	"pgdesk/internal/cli"
	"pgdesk/internal/config"
	"pgdesk/internal/log"
)

// app carries what every subcommand needs once the root command has run its
// setup.
type app struct {
	cfg     *config.Config
	logger  *log.Logger
	backend *backend.BackendResult

	seed   string
	months int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "pgdesk",
		Short:         "Operator console for PG housing",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" {
				return nil
			}
			return a.setup(cmd.Context(), cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.backend.Close()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.seed, "seed", "", "seed file to load (overrides SEED_FILE)")
	rootCmd.PersistentFlags().IntVar(&a.months, "months", 0, "trailing window in months (overrides TRAILING_MONTHS)")

	rootCmd.AddCommand(
		serveCmd(a),
		reportCmd(a),
		exportCmd(a),
		sweepCmd(a),
	)
	return rootCmd
}

func (a *app) setup(ctx context.Context, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cli.LoadEnvFile()

	cfg := config.Load()
	if a.seed != "" {
		cfg.SeedFile = a.seed
	}
	if a.months != 0 {
		cfg.TrailingMonths = a.months
	}

	logger := cli.SetupLoggerTo(cfg, log.ComponentApp, cmd.ErrOrStderr())
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err.Error())
		return err
	}

	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return err
	}
	res, err := backend.NewFactory(logger, nil).CreateBackend(ctx, bcfg)
	if err != nil {
		logger.Error("Failed to initialize backend", log.FieldError, err.Error())
		return err
	}

	a.cfg, a.logger, a.backend = cfg, logger, res
	return nil
}
