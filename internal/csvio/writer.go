package csvio

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/rainbow1016/bank-payments-system/internal/domain"
)

// snapshotPlaces is the minimum number of decimal places in rendered
// balances. Values carrying more precision are printed in full.
const snapshotPlaces = 4

// WriteSnapshot renders the final account snapshot as CSV with the header
// client,available,held,total,locked. Rows keep the order given; callers
// that need determinism pass a sorted slice (the ledger snapshot already
// is).
func WriteSnapshot(w io.Writer, accounts []domain.Account) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return err
	}
	for _, acc := range accounts {
		row := []string{
			strconv.FormatUint(uint64(acc.Client), 10),
			formatAmount(acc.Available),
			formatAmount(acc.Held),
			formatAmount(acc.Total),
			strconv.FormatBool(acc.Locked),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// formatAmount prints to four places, widening when the stored value is
// finer than that so precision is never silently dropped.
func formatAmount(d decimal.Decimal) string {
	if d.Exponent() < -snapshotPlaces {
		return d.String()
	}
	return d.StringFixed(snapshotPlaces)
}
