package store

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rainbow1016/bank-payments-system/internal/domain"
)

func TestSnapshotRows(t *testing.T) {
	runAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	accounts := []domain.Account{
		{
			Client:    1,
			Available: decimal.RequireFromString("1.2345"),
			Held:      decimal.Zero,
			Total:     decimal.RequireFromString("1.2345"),
		},
		{
			Client:    2,
			Available: decimal.RequireFromString("-3"),
			Held:      decimal.RequireFromString("0.5"),
			Total:     decimal.RequireFromString("-2.5"),
			Locked:    true,
		},
	}

	rows := snapshotRows(runAt, accounts)
	require.Len(t, rows, 2)

	assert.Equal(t, []interface{}{runAt, int32(1), "1.2345", "0", "1.2345", false}, rows[0])
	assert.Equal(t, []interface{}{runAt, int32(2), "-3", "0.5", "-2.5", true}, rows[1])
}
