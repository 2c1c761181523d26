package main

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"pgdesk/internal/amqp"
	"pgdesk/internal/backend"
	"pgdesk/internal/cli"
	"pgdesk/internal/log"
	"pgdesk/internal/worker"
)

func main() {
	cfg, logger, err := cli.LoadAndValidateConfig(log.ComponentWorker)
	if err != nil {
		os.Exit(1)
	}
	logger.Info("Starting pgdesk-worker")

	if !cfg.EventsEnabled() {
		logger.Error("AMQP_URL is required to consume entity events")
		os.Exit(1)
	}

	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err.Error())
		os.Exit(1)
	}

	ctx, cancel := cli.SignalContext(context.Background(), logger)
	defer cancel()

	sink, err := backend.NewFactory(logger, nil).CreateSink(ctx, bcfg)
	if err != nil {
		logger.Error("Failed to initialize export sink", log.FieldError, err.Error())
		os.Exit(1)
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err.Error())
		os.Exit(1)
	}

	mirror := worker.NewActivityMirror(sink)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := client.ConsumeEvents(gctx, mirror.HandleEvent)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	runErr := g.Wait()

	_ = cli.Shutdown(logger, 10*time.Second, func(context.Context) error {
		return client.Close()
	})

	mirrored, skipped := mirror.Stats()
	logger.Info("Worker stopped", "mirrored", mirrored, "skipped", skipped)

	if runErr != nil {
		logger.Error("Event consumption failed", log.FieldError, runErr.Error())
		os.Exit(1)
	}
}
