// Command tally replays a CSV log of client transactions (deposits,
// withdrawals, disputes, resolves, chargebacks) and prints the final
// per-client account summary.
//
// Usage:
//
//	tally transactions.csv
//	tally -config tally.yaml
//	tally -setup (interactive configuration wizard)
//
// The summary is written to stdout as CSV by default; logs go to stderr so
// the output stays pipeable.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tallyhq/tally/config"
	"github.com/tallyhq/tally/internal/csvio"
	"github.com/tallyhq/tally/internal/ledger"
	"github.com/tallyhq/tally/internal/replay"
	"github.com/tallyhq/tally/internal/report"
	"github.com/tallyhq/tally/internal/setup"
)

func main() {
	cfg, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.Setup {
		if err := setup.Run(); err != nil {
			log.Fatal(err)
		}
		return
	}

	logger, err := buildLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("replay failed", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	f, err := os.Open(cfg.InputPath)
	if err != nil {
		return errors.Wrap(err, "open transactions file")
	}
	defer f.Close()

	var opts []csvio.Option
	if cfg.StrictAmounts {
		opts = append(opts, csvio.StrictAmounts())
	}

	led := ledger.New()
	if err := replay.New(led, logger).Run(context.Background(), csvio.NewReader(f, opts...)); err != nil {
		return err
	}

	out, closeOut, err := openOutput(cfg.OutputPath)
	if err != nil {
		return err
	}
	defer closeOut()

	rows := led.Summary()
	if cfg.Format == config.FormatTable {
		_, err := fmt.Fprintln(out, report.Render(rows))
		return errors.Wrap(err, "write summary table")
	}
	return csvio.WriteSummary(out, rows)
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "create output file")
	}
	return f, f.Close, nil
}

func buildLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", level)
	}

	logCfg := zap.NewProductionConfig()
	logCfg.Level = zap.NewAtomicLevelAt(lvl)
	return logCfg.Build()
}
