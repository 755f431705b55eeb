// Package replay drives the single-pass run: it pulls transactions from a
// source in input order and feeds them to the ledger one at a time.
package replay

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tallyhq/tally/internal/domain"
	"github.com/tallyhq/tally/internal/ledger"
)

// Source yields validated transactions in input order and io.EOF at the
// end of the stream.
type Source interface {
	Next() (domain.Transaction, error)
}

// Replayer applies a transaction stream to a ledger. Ledger rejections are
// routine over an adversarial stream: they are logged and the run
// continues. Source errors mean the input itself is unusable and abort
// the run.
type Replayer struct {
	ledger *ledger.Ledger
	logger *zap.Logger
}

// New creates a replayer over the given ledger.
func New(l *ledger.Ledger, logger *zap.Logger) *Replayer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Replayer{ledger: l, logger: logger}
}

// Run consumes the source until io.EOF, applying every transaction.
func (r *Replayer) Run(ctx context.Context, src Source) error {
	applied, rejected := 0, 0

	for {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "replay interrupted")
		}

		t, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return errors.Wrap(err, "read transaction")
		}

		if err := r.ledger.Apply(t); err != nil {
			rejected++
			r.logger.Warn("transaction rejected",
				zap.Uint16("client", uint16(t.Client)),
				zap.Uint32("tx", uint32(t.Tx)),
				zap.String("kind", t.Kind.String()),
				zap.Error(err))
			continue
		}
		applied++
	}

	r.logger.Info("replay finished",
		zap.Int("applied", applied),
		zap.Int("rejected", rejected))
	return nil
}
