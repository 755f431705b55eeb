package domain

import "github.com/pkg/errors"

// ClientID identifies a client account.
type ClientID uint16

// TxID identifies a deposit or withdrawal. Disputes, resolves and
// chargebacks reference the deposit they target by its TxID.
type TxID uint32

// Kind is the closed set of transaction kinds.
type Kind int

const (
	KindDeposit Kind = iota + 1
	KindWithdrawal
	KindDispute
	KindResolve
	KindChargeback
)

func (k Kind) String() string {
	switch k {
	case KindDeposit:
		return "deposit"
	case KindWithdrawal:
		return "withdrawal"
	case KindDispute:
		return "dispute"
	case KindResolve:
		return "resolve"
	case KindChargeback:
		return "chargeback"
	default:
		return "unknown"
	}
}

// RequiresAmount reports whether rows of this kind must carry an amount.
func (k Kind) RequiresAmount() bool {
	return k == KindDeposit || k == KindWithdrawal
}

var (
	ErrUnknownType   = errors.New("unknown transaction type")
	ErrMissingAmount = errors.New("missing amount")
)

// Transaction is a validated client transaction. Amount is meaningful only
// for deposits and withdrawals.
type Transaction struct {
	Client ClientID
	Tx     TxID
	Kind   Kind
	Amount Money
}

// NewTransaction validates a raw input row into a Transaction. The type
// match is case-sensitive. Deposits and withdrawals require a non-empty
// amount; for the reference kinds a present amount is ignored rather than
// rejected.
func NewTransaction(rawType string, client ClientID, tx TxID, rawAmount string) (Transaction, error) {
	t := Transaction{Client: client, Tx: tx}

	switch rawType {
	case "deposit":
		t.Kind = KindDeposit
	case "withdrawal":
		t.Kind = KindWithdrawal
	case "dispute":
		t.Kind = KindDispute
	case "resolve":
		t.Kind = KindResolve
	case "chargeback":
		t.Kind = KindChargeback
	default:
		return Transaction{}, errors.Wrapf(ErrUnknownType, "type %q", rawType)
	}

	if t.Kind.RequiresAmount() {
		if rawAmount == "" {
			return Transaction{}, errors.Wrapf(ErrMissingAmount, "%s tx %d", t.Kind, tx)
		}
		amount, err := ParseMoney(rawAmount)
		if err != nil {
			return Transaction{}, errors.Wrapf(err, "%s tx %d", t.Kind, tx)
		}
		t.Amount = amount
	}

	return t, nil
}
