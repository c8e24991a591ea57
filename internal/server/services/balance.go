package services

import (
	"context"
	"fmt"

	"github.com/velmarq/walletd/internal/common"
	"github.com/velmarq/walletd/internal/logging"
	"github.com/velmarq/walletd/internal/server/ledger"
)

// Balance is a point-in-time balance of a ledger address, in both base
// units and display units.
type Balance struct {
	Address   string
	BaseUnits uint64
	Display   float64
}

// BalanceService is a thin read-through to the ledger client; it keeps no
// state and never caches.
type BalanceService struct {
	ledger ledger.Client
	logger logging.Logger
}

// NewBalanceService constructs a BalanceService.
func NewBalanceService(client ledger.Client, logger logging.Logger) *BalanceService {
	return &BalanceService{
		ledger: client,
		logger: logger.With("module", "balance_service"),
	}
}

// Balance validates the address and queries the ledger for its base-unit
// balance. The display value is the base-unit value divided by 10^9.
func (s *BalanceService) Balance(ctx context.Context, address string) (*Balance, error) {
	if err := ledger.ValidateAddress(address); err != nil {
		return nil, fmt.Errorf("%w: malformed address", common.ErrorValidation)
	}

	baseUnits, err := s.ledger.Balance(ctx, address)
	if err != nil {
		return nil, err
	}

	return &Balance{
		Address:   address,
		BaseUnits: baseUnits,
		Display:   float64(baseUnits) / ledger.BaseUnitsPerToken,
	}, nil
}
