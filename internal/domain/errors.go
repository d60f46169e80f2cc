package domain

import "errors"

// Rejection reasons returned by the ledger. All are local to the record
// that triggered them; none aborts processing of later records.
var (
	ErrAmountRequired         = errors.New("amount required")
	ErrDuplicateTransaction   = errors.New("duplicate transaction")
	ErrAccountNotFound        = errors.New("account not found")
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrOnlyDepositsDisputable = errors.New("only a deposit can be disputed")
	ErrNotDisputed            = errors.New("transaction is not disputed")
	ErrUnknownTransactionType = errors.New("unknown transaction type")
)
