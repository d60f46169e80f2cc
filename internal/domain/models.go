package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionType is the closed set of operations the ledger understands.
type TransactionType string

const (
	// TypeDeposit credits a client's available balance.
	TypeDeposit TransactionType = "deposit"
	// TypeWithdraw debits a client's available balance.
	TypeWithdraw TransactionType = "withdraw"
	// TypeDispute freezes a prior deposit's amount pending resolution.
	TypeDispute TransactionType = "dispute"
	// TypeResolve reverses a dispute, releasing the frozen amount.
	TypeResolve TransactionType = "resolve"
	// TypeChargeback finalizes a dispute, removing the funds and locking the account.
	TypeChargeback TransactionType = "chargeback"
)

// ParseTransactionType converts an external type tag into a TransactionType.
// Tags are matched case-insensitively. Unknown tags return
// ErrUnknownTransactionType so malformed input is rejected before it
// reaches the ledger.
func ParseTransactionType(tag string) (TransactionType, error) {
	switch TransactionType(strings.ToLower(strings.TrimSpace(tag))) {
	case TypeDeposit:
		return TypeDeposit, nil
	case TypeWithdraw:
		return TypeWithdraw, nil
	case TypeDispute:
		return TypeDispute, nil
	case TypeResolve:
		return TypeResolve, nil
	case TypeChargeback:
		return TypeChargeback, nil
	default:
		return "", fmt.Errorf("%q: %w", tag, ErrUnknownTransactionType)
	}
}

// Transaction is one record from the input stream. Amount is present for
// deposits and withdrawals only; dispute, resolve and chargeback reference
// a prior transaction by ID and carry no amount of their own.
type Transaction struct {
	Type     TransactionType  `json:"type"`
	Client   uint16           `json:"client"`
	ID       uint32           `json:"tx"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	Disputed bool             `json:"-"`
}

// Account holds one client's balances. Total is derived: it always equals
// Available + Held. Locked is set by a chargeback and never reset.
type Account struct {
	Client    uint16          `json:"client"`
	Available decimal.Decimal `json:"available"`
	Held      decimal.Decimal `json:"held"`
	Total     decimal.Decimal `json:"total"`
	Locked    bool            `json:"locked"`
}
