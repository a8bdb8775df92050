package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hamed0406/pgprobe/internal/config"
	"github.com/hamed0406/pgprobe/internal/httpapi"
	"github.com/hamed0406/pgprobe/internal/logging"
	"github.com/hamed0406/pgprobe/internal/notify"
	"github.com/hamed0406/pgprobe/internal/probe"
	"github.com/hamed0406/pgprobe/internal/repo"
	"github.com/hamed0406/pgprobe/internal/repo/postgres"
	"github.com/hamed0406/pgprobe/internal/report"
)

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	connector, err := postgres.NewConnector(cfg.ConnString(), cfg.Table)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	// SIGINT and SIGTERM both begin draining; the in-flight iteration
	// finishes before the loop stops.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initial-connection gate: if the very first connection fails the run
	// never started, which is a distinct failure from mid-run downtime.
	if err := setup(ctx, connector); err != nil {
		logger.Error("probe_setup_failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "failed to establish initial connection: %v\n", err)
		return 2
	}
	fmt.Printf("Table %q is ready.\nUsing probe label %q and logging to %q.\n",
		cfg.Table, cfg.Label, cfg.LogFile)

	if cfg.SetupOnly {
		return 0
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("probe_bad_timezone", zap.String("tz", cfg.Timezone), zap.Error(err))
		loc = time.Local
	}

	sink, err := report.OpenCSVLog(cfg.LogFile)
	if err != nil {
		logger.Error("probe_log_open_failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer sink.Close()

	var notifier probe.Notifier
	if slack := notify.NewSlack(cfg.SlackURL); slack != nil {
		notifier = notify.Multi{slack}
	}

	runner := probe.NewRunner(
		logger,
		probe.NewManager(connector),
		&probe.Executor{Label: cfg.Label},
		sink,
		notifier,
		probe.RunnerConfig{
			Interval:    cfg.Interval,
			MaxAttempts: cfg.MaxAttempts,
			Location:    loc,
		},
	)

	if cfg.Addr != "" {
		api := httpapi.NewServer(logger, runner)
		go func() {
			logger.Info("api_listen", zap.String("addr", cfg.Addr))
			if err := http.ListenAndServe(cfg.Addr, api.Router()); err != nil {
				logger.Warn("api_serve_error", zap.Error(err))
			}
		}()
	}

	report.WriteSummary(os.Stdout, runner.Run(ctx))
	return 0
}

// setup bootstraps and empties the target table over a throwaway connection
// so the run starts against a fresh table.
func setup(ctx context.Context, connector repo.Connector) error {
	conn, err := connector.Connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	if err := conn.EnsureTable(ctx); err != nil {
		return err
	}
	return conn.Truncate(ctx)
}
