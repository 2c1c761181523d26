package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"pgdesk/internal/cache"
	"pgdesk/internal/cli"
	apphttp "pgdesk/internal/http"
	"pgdesk/internal/log"
)

const shutdownTimeout = 30 * time.Second

func serveCmd(a *app) *cobra.Command {
	var trustedProxies []string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API and run the overdue sweeper",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cli.SignalContext(cmd.Context(), a.logger)
			defer cancel()

			srv := apphttp.NewServer(":"+a.cfg.Port, a.backend.Console,
				apphttp.WithLogger(a.logger),
				apphttp.WithCache(a.cfg.CacheSize, a.cfg.CacheTTL),
				apphttp.WithCurrency(a.cfg.CurrencySymbol),
				apphttp.WithTrustedProxies(trustedProxies...),
			)

			g, gctx := errgroup.WithContext(ctx)

			g.Go(func() error {
				a.logger.Info("Starting pgdesk server",
					"port", a.cfg.Port,
					"export_backend", a.cfg.ExportBackend,
					"events", a.backend.Events != nil)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				return cli.Shutdown(a.logger, shutdownTimeout, srv.Shutdown)
			})
			g.Go(func() error {
				return a.backend.Console.RunOverdueSweeper(gctx, a.cfg.OverdueSweepInterval)
			})
			g.Go(func() error {
				return cache.NewJanitor(a.logger, srv.ViewCache()).Run(gctx, a.cfg.CacheTTL)
			})

			if err := g.Wait(); err != nil {
				a.logger.Error("Server stopped with error", log.FieldError, err.Error())
				return err
			}
			a.logger.Info("Server stopped gracefully")
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&trustedProxies, "trusted-proxy", nil, "CIDR whose X-Forwarded-For is honored (repeatable)")
	return cmd
}
