package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"

	"github.com/block/taskworker"
	"github.com/block/taskworker/externaltask"
	_ "github.com/block/taskworker/internal/automaxprocs" // Set GOMAXPROCS to match Linux container CPU quota.
	"github.com/block/taskworker/internal/log"
	"github.com/block/taskworker/internal/observability"
	"github.com/block/taskworker/internal/subscriptionconfig"
	"github.com/block/taskworker/worker"
)

var cli struct {
	Version             kong.VersionFlag     `help:"Show version."`
	LogConfig           log.Config           `embed:"" prefix:"log-" group:"Logging:"`
	ObservabilityConfig observability.Config `embed:"" prefix:"o11y-" group:"Observability:"`
	EngineConfig        externaltask.Config  `embed:"" prefix:"engine-" group:"Engine:"`
	Subscriptions       string               `help:"Topic subscription overrides (TOML, YAML or JSON5)." type:"existingfile" env:"TASK_WORKER_SUBSCRIPTIONS" placeholder:"FILE"`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Description(`Task Worker - subscribes handlers to external task topics`),
		kong.Configuration(kongtoml.Loader, "task-worker.toml", "~/.task-worker.toml"),
		kong.UsageOnError(),
		kong.Vars{"version": taskworker.FormattedVersion()},
	)

	logger, closeLog, err := log.Open(os.Stderr, cli.LogConfig)
	kctx.FatalIfErrorf(err)
	defer closeLog() //nolint:errcheck
	ctx, cancel := signal.NotifyContext(log.ContextWithLogger(context.Background(), logger), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	shutdown, err := observability.Init(ctx, "task-worker", taskworker.Version, cli.ObservabilityConfig)
	kctx.FatalIfErrorf(err, "failed to initialize observability")

	err = run(ctx, cli.EngineConfig, cli.Subscriptions, worker.NewRegistry(handlers()...))
	shutdownCtx, shutdownCancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer shutdownCancel()
	logger.Errorf(shutdown(shutdownCtx), "failed to flush observability data")
	kctx.FatalIfErrorf(err)
}

// run opens every subscription and keeps them open until ctx is cancelled.
func run(ctx context.Context, config externaltask.Config, overridesPath string, handlers worker.HandlerSource) error {
	logger := log.FromContext(ctx)

	client, err := externaltask.New(config)
	if err != nil {
		return err
	}
	overrides, err := subscriptionconfig.Load(overridesPath)
	if err != nil {
		return err
	}
	logger.Debugf("Worker %s using %s with %d subscription overrides", client.WorkerID(), client.Endpoint(), len(overrides))

	subscriptions, err := worker.NewResolver(client, overrides).OpenAll(ctx, handlers)
	defer func() {
		for _, subscription := range subscriptions {
			logger.Errorf(subscription.Close(), "failed to close subscription to %q", subscription.TopicName())
		}
	}()
	if err != nil {
		return err
	}

	<-ctx.Done()
	logger.Debugf("Shutting down, closing %d subscriptions", len(subscriptions))
	return nil
}
