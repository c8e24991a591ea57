package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velmarq/walletd/internal/common"
)

func TestBalance_DisplayConversion(t *testing.T) {
	tests := []struct {
		name      string
		baseUnits uint64
		display   float64
	}{
		{"two tokens", 2_000_000_000, 2.0},
		{"half a token", 500_000_000, 0.5},
		{"zero", 0, 0},
		{"one base unit", 1, 0.000000001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeLedger{balance: tt.baseUnits}
			s := NewBalanceService(client, testLogger())

			got, err := s.Balance(context.Background(), testRecipient(t))
			require.NoError(t, err)
			assert.Equal(t, tt.baseUnits, got.BaseUnits)
			assert.Equal(t, tt.display, got.Display)
		})
	}
}

func TestBalance_MalformedAddress(t *testing.T) {
	client := &fakeLedger{balance: 1}
	s := NewBalanceService(client, testLogger())

	_, err := s.Balance(context.Background(), "not-a-valid-address")
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, balanceCalls, _ := client.calls()
	assert.Zero(t, balanceCalls, "ledger must not be queried for malformed addresses")
}

func TestBalance_LedgerFailure(t *testing.T) {
	client := &fakeLedger{balanceErr: common.ErrLedger}
	s := NewBalanceService(client, testLogger())

	_, err := s.Balance(context.Background(), testRecipient(t))
	assert.ErrorIs(t, err, common.ErrLedger)
}

func TestBalance_AddressEchoedBack(t *testing.T) {
	client := &fakeLedger{balance: 42}
	s := NewBalanceService(client, testLogger())

	address := testRecipient(t)
	got, err := s.Balance(context.Background(), address)
	require.NoError(t, err)
	assert.Equal(t, address, got.Address)
}
