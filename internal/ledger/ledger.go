// Package ledger implements the single-pass transaction replay engine.
// It consumes client transaction records one at a time and derives
// per-client account balances, enforcing the cross-referencing rules for
// disputes and keeping total == available + held after every operation.
package ledger

import (
	"sort"

	"github.com/rainbow1016/bank-payments-system/internal/domain"
)

// Ledger owns the account and transaction maps. All mutation goes through
// Apply; Accounts returns copies only. The engine is synchronous and takes
// no locks: a concurrent shell must serialize its calls.
type Ledger struct {
	accounts     map[uint16]*domain.Account
	transactions map[uint32]*domain.Transaction
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{
		accounts:     make(map[uint16]*domain.Account),
		transactions: make(map[uint32]*domain.Transaction),
	}
}

// Apply processes one transaction record against current state. A returned
// error is a rejection of that record only: state is untouched and later
// records may still be applied.
func (l *Ledger) Apply(tx domain.Transaction) error {
	switch tx.Type {
	case domain.TypeDeposit:
		return l.deposit(tx)
	case domain.TypeWithdraw:
		return l.withdraw(tx)
	case domain.TypeDispute:
		return l.dispute(tx)
	case domain.TypeResolve:
		return l.resolve(tx)
	case domain.TypeChargeback:
		return l.chargeback(tx)
	default:
		return domain.ErrUnknownTransactionType
	}
}

func (l *Ledger) deposit(tx domain.Transaction) error {
	if tx.Amount == nil {
		return domain.ErrAmountRequired
	}
	if _, ok := l.transactions[tx.ID]; ok {
		return domain.ErrDuplicateTransaction
	}
	l.record(tx)

	acc, ok := l.accounts[tx.Client]
	if !ok {
		acc = &domain.Account{Client: tx.Client}
		l.accounts[tx.Client] = acc
	}
	acc.Available = acc.Available.Add(*tx.Amount)
	acc.Total = acc.Available.Add(acc.Held)
	return nil
}

func (l *Ledger) withdraw(tx domain.Transaction) error {
	if tx.Amount == nil {
		return domain.ErrAmountRequired
	}
	if _, ok := l.transactions[tx.ID]; ok {
		return domain.ErrDuplicateTransaction
	}
	l.record(tx)

	// A withdrawal against an unknown client opens the account with a
	// negative balance; there is no funds-sufficiency check anywhere.
	acc, ok := l.accounts[tx.Client]
	if !ok {
		acc = &domain.Account{Client: tx.Client}
		l.accounts[tx.Client] = acc
	}
	acc.Available = acc.Available.Sub(*tx.Amount)
	acc.Total = acc.Available.Add(acc.Held)
	return nil
}

func (l *Ledger) dispute(tx domain.Transaction) error {
	acc, ok := l.accounts[tx.Client]
	if !ok {
		return domain.ErrAccountNotFound
	}
	disputed, ok := l.transactions[tx.ID]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	if disputed.Type != domain.TypeDeposit {
		return domain.ErrOnlyDepositsDisputable
	}
	if disputed.Amount == nil {
		return domain.ErrAmountRequired
	}

	// Both balance fields shift together; total is unchanged by a dispute.
	acc.Available = acc.Available.Sub(*disputed.Amount)
	acc.Held = acc.Held.Add(*disputed.Amount)
	disputed.Disputed = true
	return nil
}

func (l *Ledger) resolve(tx domain.Transaction) error {
	acc, ok := l.accounts[tx.Client]
	if !ok {
		return domain.ErrAccountNotFound
	}
	disputed, ok := l.transactions[tx.ID]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	if !disputed.Disputed {
		return domain.ErrNotDisputed
	}
	if disputed.Amount == nil {
		return domain.ErrAmountRequired
	}

	acc.Available = acc.Available.Add(*disputed.Amount)
	acc.Held = acc.Held.Sub(*disputed.Amount)
	disputed.Disputed = false
	return nil
}

func (l *Ledger) chargeback(tx domain.Transaction) error {
	acc, ok := l.accounts[tx.Client]
	if !ok {
		return domain.ErrAccountNotFound
	}
	disputed, ok := l.transactions[tx.ID]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	if !disputed.Disputed {
		return domain.ErrNotDisputed
	}
	if disputed.Amount == nil {
		return domain.ErrAmountRequired
	}

	acc.Held = acc.Held.Sub(*disputed.Amount)
	acc.Total = acc.Available.Add(acc.Held)
	acc.Locked = true
	// The disputed flag stays set; only a resolve clears it. A charged-back
	// transaction is arguably terminal and should be excluded from further
	// dispute transitions, but that is a domain-rule question and the
	// literal behavior is kept.
	return nil
}

// record stores an owned copy of the transaction in history. History is
// append-only and lives for the run.
func (l *Ledger) record(tx domain.Transaction) {
	stored := tx
	if tx.Amount != nil {
		amount := tx.Amount.Copy()
		stored.Amount = &amount
	}
	l.transactions[tx.ID] = &stored
}

// Account returns a copy of one client's account, or false if the client
// has never been seen.
func (l *Ledger) Account(client uint16) (domain.Account, bool) {
	acc, ok := l.accounts[client]
	if !ok {
		return domain.Account{}, false
	}
	return *acc, true
}

// Accounts returns a snapshot of every account, sorted by client id. The
// returned values are copies; mutating them does not touch ledger state.
func (l *Ledger) Accounts() []domain.Account {
	out := make([]domain.Account, 0, len(l.accounts))
	for _, acc := range l.accounts {
		out = append(out, *acc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Client < out[j].Client })
	return out
}

// Transaction returns a copy of a stored transaction, primarily for
// inspection by shells and tests.
func (l *Ledger) Transaction(id uint32) (domain.Transaction, bool) {
	tx, ok := l.transactions[id]
	if !ok {
		return domain.Transaction{}, false
	}
	stored := *tx
	if tx.Amount != nil {
		amount := tx.Amount.Copy()
		stored.Amount = &amount
	}
	return stored, true
}
