package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"finboard/internal/amqp"
	"finboard/internal/cli"
	applog "finboard/internal/log"
	"finboard/internal/worker"
)

type watchCmd struct {
	queue string
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "follow ledger change events from AMQP" }
func (*watchCmd) Usage() string {
	return `finboard watch [-queue <name>]

  Logs every ledger event published by a running server and reports
  missed revisions. Requires $AMQP_URL.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.queue, "queue", "", "durable queue name (default: temporary queue)")
}

func (c *watchCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := cli.LoadEnvFile(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if cfg.AMQPURL == "" {
		fmt.Fprintln(os.Stderr, "Error: AMQP_URL is not set")
		return subcommands.ExitUsageError
	}
	logger := cli.SetupLogger(cfg)

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
		return subcommands.ExitFailure
	}
	defer client.Close()

	ctx, stop := cli.SignalContext(ctx, logger)
	defer stop()

	w := worker.NewEventWorker(logger)
	err = client.Consume(ctx, c.queue, w.HandleEvent)
	st := w.Stats()
	logger.Info("Stopped watching ledger events",
		"received", st.Received,
		"last_revision", st.LastRevision,
		"gaps", st.Gaps)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Consume failed", applog.FieldError, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
