package ledger

import (
	"github.com/pkg/errors"

	"github.com/tallyhq/tally/internal/domain"
)

// Rejection reasons. They are advisory: a rejected transaction leaves the
// account untouched and the replay moves on to the next one.
var (
	ErrAccountLocked        = errors.New("account is locked")
	ErrDuplicateTransaction = errors.New("duplicate transaction")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrAlreadyDisputed      = errors.New("transaction already under dispute")
	ErrNotDisputed          = errors.New("transaction not under dispute")
)

// depositRecord is what an account remembers about a deposit in case it is
// later disputed, resolved or charged back.
type depositRecord struct {
	amount       domain.Money
	underDispute bool
}

// Account holds the state of a single client.
//
// Invariant: while the account is unlocked, held equals the sum of amounts
// of all deposits currently under dispute. After a chargeback locks the
// account, held is no longer tied to the dispute records; the account
// rejects everything from then on, so the relation is not needed.
type Account struct {
	client    domain.ClientID
	available domain.Money
	held      domain.Money
	locked    bool
	deposits  map[domain.TxID]*depositRecord
}

func newAccount(client domain.ClientID) *Account {
	return &Account{
		client:   client,
		deposits: make(map[domain.TxID]*depositRecord),
	}
}

// lookup finds the referenced deposit and checks its dispute flag against
// what the caller expects.
func (a *Account) lookup(tx domain.TxID, wantDisputed bool) (*depositRecord, error) {
	rec, ok := a.deposits[tx]
	if !ok {
		return nil, errors.Wrapf(ErrTransactionNotFound, "tx %d", tx)
	}
	if wantDisputed && !rec.underDispute {
		return nil, errors.Wrapf(ErrNotDisputed, "tx %d", tx)
	}
	if !wantDisputed && rec.underDispute {
		return nil, errors.Wrapf(ErrAlreadyDisputed, "tx %d", tx)
	}
	return rec, nil
}

// apply mutates the account per the transaction, or returns a rejection
// without touching any state. Deposits and withdrawals share the TxID
// namespace for the duplicate check; a reused TxID is dropped even if the
// amount differs.
func (a *Account) apply(t domain.Transaction) error {
	if a.locked {
		return errors.Wrapf(ErrAccountLocked, "client %d", a.client)
	}

	switch t.Kind {
	case domain.KindDeposit:
		if _, exists := a.deposits[t.Tx]; exists {
			return errors.Wrapf(ErrDuplicateTransaction, "tx %d", t.Tx)
		}
		a.available += t.Amount
		a.deposits[t.Tx] = &depositRecord{amount: t.Amount}
		return nil

	case domain.KindWithdrawal:
		if _, exists := a.deposits[t.Tx]; exists {
			return errors.Wrapf(ErrDuplicateTransaction, "tx %d", t.Tx)
		}
		if t.Amount > a.available {
			return errors.Wrapf(ErrInsufficientFunds, "withdrawal tx %d", t.Tx)
		}
		// Withdrawals are never disputable, so no record is kept.
		a.available -= t.Amount
		return nil

	case domain.KindDispute:
		rec, err := a.lookup(t.Tx, false)
		if err != nil {
			return err
		}
		if rec.amount > a.available {
			return errors.Wrapf(ErrInsufficientFunds, "dispute of tx %d", t.Tx)
		}
		rec.underDispute = true
		a.available -= rec.amount
		a.held += rec.amount
		return nil

	case domain.KindResolve:
		rec, err := a.lookup(t.Tx, true)
		if err != nil {
			return err
		}
		rec.underDispute = false
		a.held -= rec.amount
		a.available += rec.amount
		return nil

	case domain.KindChargeback:
		rec, err := a.lookup(t.Tx, true)
		if err != nil {
			return err
		}
		// The record stays marked as disputed; the lock makes it moot.
		a.held -= rec.amount
		a.locked = true
		return nil

	default:
		return errors.Errorf("unhandled transaction kind: %d", t.Kind)
	}
}

func (a *Account) summary() AccountSummary {
	return AccountSummary{
		Client:    a.client,
		Available: a.available,
		Held:      a.held,
		Total:     a.available + a.held,
		Locked:    a.locked,
	}
}
