package main

import (
	"bytes"
	"errors"
	"io"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rainbow1016/bank-payments-system/internal/csvio"
	"github.com/rainbow1016/bank-payments-system/internal/domain"
)

func TestGenerateParsesCleanly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, generate(&buf, rand.New(rand.NewSource(1)), 20, 500))

	r := csvio.NewReader(&buf)
	rows := 0
	for {
		_, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err, "row %d", rows)
		rows++
	}
	assert.Equal(t, 500, rows)
}

func TestGenerateReferencesReferToEarlierDeposits(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, generate(&buf, rand.New(rand.NewSource(7)), 10, 1000))

	r := csvio.NewReader(&buf)
	depositsSeen := map[uint32]uint16{}
	references := 0
	for {
		tx, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)

		switch tx.Type {
		case domain.TypeDeposit:
			require.NotNil(t, tx.Amount)
			if _, ok := depositsSeen[tx.ID]; !ok {
				depositsSeen[tx.ID] = tx.Client
			}
		case domain.TypeWithdraw:
			require.NotNil(t, tx.Amount)
		case domain.TypeDispute, domain.TypeResolve, domain.TypeChargeback:
			references++
			assert.Nil(t, tx.Amount)
			client, ok := depositsSeen[tx.ID]
			require.True(t, ok, "%s references tx %d before any deposit used it", tx.Type, tx.ID)
			assert.Equal(t, client, tx.Client, "%s of tx %d uses a different client", tx.Type, tx.ID)
		}
	}
	assert.Positive(t, references, "workload should contain dispute activity")
}

func TestGenerateIsReproducible(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, generate(&a, rand.New(rand.NewSource(42)), 5, 200))
	require.NoError(t, generate(&b, rand.New(rand.NewSource(42)), 5, 200))
	assert.Equal(t, a.String(), b.String())
}
