// Package ledger is the account state machine at the heart of tally.
// It maps client ids to accounts, applies validated transactions one at a
// time and produces the final per-client summary.
package ledger

import (
	"sort"

	"github.com/tallyhq/tally/internal/domain"
)

// Ledger owns every account keyed by client id. Accounts are created
// lazily on the first transaction that references them and never removed.
type Ledger struct {
	accounts map[domain.ClientID]*Account
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{accounts: make(map[domain.ClientID]*Account)}
}

// Apply routes the transaction to its client's account and applies it.
// Either the whole effect commits or, on rejection, nothing does.
func (l *Ledger) Apply(t domain.Transaction) error {
	account, ok := l.accounts[t.Client]
	if !ok {
		account = newAccount(t.Client)
		l.accounts[t.Client] = account
	}
	return account.apply(t)
}

// AccountSummary is one output row of the final report.
type AccountSummary struct {
	Client    domain.ClientID
	Available domain.Money
	Held      domain.Money
	Total     domain.Money
	Locked    bool
}

// Summary returns one row per known account, sorted by ascending client id
// so output does not depend on map iteration order.
func (l *Ledger) Summary() []AccountSummary {
	rows := make([]AccountSummary, 0, len(l.accounts))
	for _, account := range l.accounts {
		rows = append(rows, account.summary())
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Client < rows[j].Client
	})
	return rows
}
