// Package csvio adapts the ledger's transaction and summary types to the
// delimited-text formats used on the wire: a CSV transaction log on the way
// in and a CSV account report on the way out.
package csvio

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/tallyhq/tally/internal/domain"
)

var headerFields = []string{"type", "client", "tx", "amount"}

// Option configures a Reader.
type Option func(*Reader)

// StrictAmounts makes the reader fail on dispute/resolve/chargeback rows
// that carry a non-empty amount instead of silently ignoring the value.
func StrictAmounts() Option {
	return func(r *Reader) { r.strictAmounts = true }
}

// Reader streams validated transactions out of a CSV transaction log.
// The first record must be the "type,client,tx,amount" header and every
// data row must have all four fields, even when the amount is blank.
type Reader struct {
	csv           *csv.Reader
	headerRead    bool
	strictAmounts bool
	line          int
}

// NewReader wraps r in a transaction log reader.
func NewReader(r io.Reader, opts ...Option) *Reader {
	c := csv.NewReader(r)
	c.TrimLeadingSpace = true

	reader := &Reader{csv: c}
	for _, opt := range opts {
		opt(reader)
	}
	return reader
}

// Next returns the next transaction in input order, or io.EOF when the log
// is exhausted. Any malformed row aborts the stream.
func (r *Reader) Next() (domain.Transaction, error) {
	if !r.headerRead {
		if err := r.readHeader(); err != nil {
			return domain.Transaction{}, err
		}
	}

	record, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Transaction{}, io.EOF
		}
		return domain.Transaction{}, errors.Wrap(err, "read transaction row")
	}
	r.line++

	for i := range record {
		record[i] = strings.TrimSpace(record[i])
	}

	client, err := strconv.ParseUint(record[1], 10, 16)
	if err != nil {
		return domain.Transaction{}, errors.Wrapf(err, "row %d: invalid client id %q", r.line, record[1])
	}
	tx, err := strconv.ParseUint(record[2], 10, 32)
	if err != nil {
		return domain.Transaction{}, errors.Wrapf(err, "row %d: invalid transaction id %q", r.line, record[2])
	}

	t, err := domain.NewTransaction(record[0], domain.ClientID(client), domain.TxID(tx), record[3])
	if err != nil {
		return domain.Transaction{}, errors.Wrapf(err, "row %d", r.line)
	}

	if r.strictAmounts && !t.Kind.RequiresAmount() && record[3] != "" {
		return domain.Transaction{}, errors.Errorf("row %d: %s must not carry an amount, got %q", r.line, t.Kind, record[3])
	}

	return t, nil
}

func (r *Reader) readHeader() error {
	record, err := r.csv.Read()
	if err != nil {
		return errors.Wrap(err, "read header row")
	}
	if len(record) != len(headerFields) {
		return errors.Errorf("header has %d fields, want %d", len(record), len(headerFields))
	}
	for i, want := range headerFields {
		if strings.TrimSpace(record[i]) != want {
			return errors.Errorf("unexpected header field %q, want %q", record[i], want)
		}
	}
	// The header locks encoding/csv onto four fields per record, so a
	// dispute row that drops its trailing comma fails as malformed.
	r.headerRead = true
	return nil
}
