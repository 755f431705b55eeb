package csvio

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/tallyhq/tally/internal/ledger"
)

// WriteSummary renders the account summary as CSV: a header followed by
// one row per client. Monetary fields print their exact fixed-point value
// with trailing zeros trimmed.
func WriteSummary(w io.Writer, rows []ledger.AccountSummary) error {
	out := csv.NewWriter(w)

	if err := out.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return errors.Wrap(err, "write summary header")
	}
	for _, row := range rows {
		record := []string{
			strconv.FormatUint(uint64(row.Client), 10),
			row.Available.String(),
			row.Held.String(),
			row.Total.String(),
			strconv.FormatBool(row.Locked),
		}
		if err := out.Write(record); err != nil {
			return errors.Wrapf(err, "write summary row for client %d", row.Client)
		}
	}

	out.Flush()
	return errors.Wrap(out.Error(), "flush summary")
}
