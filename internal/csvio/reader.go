// Package csvio is the CSV edge of the engine: it streams transaction
// records in and renders account snapshots out. The engine itself never
// sees CSV; both sides speak domain types.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rainbow1016/bank-payments-system/internal/domain"
)

// Reader streams transactions from a CSV source one record at a time.
// The stream is single-pass and non-restartable; the whole input is never
// materialized.
type Reader struct {
	csv        *csv.Reader
	headerRead bool
}

// NewReader wraps r. Expected header: type,client,tx,amount. Fields are
// trimmed, the type tag is case-insensitive, and amount may be empty for
// dispute, resolve and chargeback rows.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return &Reader{csv: cr}
}

// Next returns the next transaction record. It returns io.EOF when the
// stream is exhausted. A malformed row returns an error for that row only;
// the caller may keep reading.
func (r *Reader) Next() (domain.Transaction, error) {
	if !r.headerRead {
		if _, err := r.csv.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				return domain.Transaction{}, io.EOF
			}
			return domain.Transaction{}, fmt.Errorf("read header: %w", err)
		}
		r.headerRead = true
	}

	row, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Transaction{}, io.EOF
		}
		return domain.Transaction{}, fmt.Errorf("read row: %w", err)
	}
	return parseRow(row)
}

func parseRow(row []string) (domain.Transaction, error) {
	if len(row) < 3 {
		return domain.Transaction{}, fmt.Errorf("row has %d fields, want at least 3", len(row))
	}

	txType, err := domain.ParseTransactionType(row[0])
	if err != nil {
		return domain.Transaction{}, err
	}

	client, err := strconv.ParseUint(strings.TrimSpace(row[1]), 10, 16)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("parse client id %q: %w", row[1], err)
	}

	id, err := strconv.ParseUint(strings.TrimSpace(row[2]), 10, 32)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("parse tx id %q: %w", row[2], err)
	}

	tx := domain.Transaction{
		Type:   txType,
		Client: uint16(client),
		ID:     uint32(id),
	}

	if len(row) > 3 {
		if raw := strings.TrimSpace(row[3]); raw != "" {
			amount, err := decimal.NewFromString(raw)
			if err != nil {
				return domain.Transaction{}, fmt.Errorf("parse amount %q: %w", row[3], err)
			}
			tx.Amount = &amount
		}
	}
	return tx, nil
}
