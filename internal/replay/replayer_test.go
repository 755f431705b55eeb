package replay

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tallyhq/tally/internal/csvio"
	"github.com/tallyhq/tally/internal/domain"
	"github.com/tallyhq/tally/internal/ledger"
)

// replayToCSV runs a full pass over the given transaction log and returns
// the summary CSV, mirroring the production wiring.
func replayToCSV(t *testing.T, input string) (string, error) {
	t.Helper()

	led := ledger.New()
	src := csvio.NewReader(strings.NewReader(input))
	if err := New(led, zap.NewNop()).Run(context.Background(), src); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	require.NoError(t, csvio.WriteSummary(&buf, led.Summary()))
	return buf.String(), nil
}

func TestReplayDepositsAndWithdrawals(t *testing.T) {
	input := "type,client,tx,amount\n" +
		"deposit,1,1,1.0\n" +
		"deposit,2,2,2.0\n" +
		"deposit,1,3,2.0\n" +
		"withdrawal,1,4,1.5\n" +
		"withdrawal,2,5,3.0\n" // rejected, insufficient funds

	out, err := replayToCSV(t, input)
	require.NoError(t, err)
	assert.Equal(t, "client,available,held,total,locked\n"+
		"1,1.5,0,1.5,false\n"+
		"2,2,0,2,false\n", out)
}

func TestReplayChargebackFreezesAccount(t *testing.T) {
	input := "type,client,tx,amount\n" +
		"deposit,1,122,5.0\n" +
		"deposit,1,123,11.0\n" +
		"dispute,1,123,\n" +
		"chargeback,1,123,\n" +
		"deposit,1,124,35.0\n" +
		"withdrawal,1,125,.1111\n"

	out, err := replayToCSV(t, input)
	require.NoError(t, err)
	assert.Equal(t, "client,available,held,total,locked\n"+
		"1,5,0,5,true\n", out)
}

func TestReplayDisputeAndResolve(t *testing.T) {
	input := "type,client,tx,amount\n" +
		"deposit,1,122,5.0\n" +
		"dispute,1,122,\n" +
		"resolve,1,122,\n" +
		"withdrawal,1,123,.1234\n"

	out, err := replayToCSV(t, input)
	require.NoError(t, err)
	assert.Equal(t, "client,available,held,total,locked\n"+
		"1,4.8766,0,4.8766,false\n", out)
}

// Rejected transactions are advisory: the run keeps going and later valid
// transactions still apply.
func TestReplayContinuesAfterRejections(t *testing.T) {
	input := "type,client,tx,amount\n" +
		"dispute,1,99,\n" + // unknown tx, rejected
		"deposit,1,1,1.0\n" +
		"resolve,1,1,\n" + // not disputed, rejected
		"deposit,1,1,9.0\n" + // duplicate, rejected
		"deposit,1,2,2.0\n"

	out, err := replayToCSV(t, input)
	require.NoError(t, err)
	assert.Equal(t, "client,available,held,total,locked\n"+
		"1,3,0,3,false\n", out)
}

func TestReplayAbortsOnMalformedRow(t *testing.T) {
	input := "type,client,tx,amount\n" +
		"deposit,1,1,1.0\n" +
		"transfer,1,2,1.0\n"

	_, err := replayToCSV(t, input)
	assert.Error(t, err)
}

type stubSource struct {
	transactions []domain.Transaction
	pos          int
}

func (s *stubSource) Next() (domain.Transaction, error) {
	if s.pos >= len(s.transactions) {
		return domain.Transaction{}, io.EOF
	}
	t := s.transactions[s.pos]
	s.pos++
	return t, nil
}

func TestReplayStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	led := ledger.New()
	src := &stubSource{transactions: []domain.Transaction{
		{Client: 1, Tx: 1, Kind: domain.KindDeposit, Amount: 10_000},
	}}

	err := New(led, zap.NewNop()).Run(ctx, src)
	require.Error(t, err)
	assert.Empty(t, led.Summary())
}

func TestReplayEmptyLog(t *testing.T) {
	out, err := replayToCSV(t, "type,client,tx,amount\n")
	require.NoError(t, err)
	assert.Equal(t, "client,available,held,total,locked\n", out)
}
