package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/velmarq/walletd/internal/common"
	"github.com/velmarq/walletd/internal/logging"
	"github.com/velmarq/walletd/internal/server/keypair"
	"github.com/velmarq/walletd/internal/server/ledger"
	"github.com/velmarq/walletd/internal/server/repositories/repomanager"
)

// TxnService turns an authenticated transfer intent into a signed,
// submitted ledger transaction. It is the only component allowed to decode
// a custodial secret, and only transiently, per call.
type TxnService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	custodian   *keypair.Custodian
	ledger      ledger.Client
	logger      logging.Logger

	// mu guards accountLocks; entries are never removed, so the map is
	// bounded by the number of accounts that ever signed.
	mu           sync.Mutex
	accountLocks map[string]*sync.Mutex
}

// NewTxnService constructs a TxnService.
func NewTxnService(db *sql.DB, m repomanager.RepositoryManager, custodian *keypair.Custodian, client ledger.Client, logger logging.Logger) *TxnService {
	return &TxnService{
		db:           db,
		repomanager:  m,
		custodian:    custodian,
		ledger:       client,
		logger:       logger.With("module", "txn_service"),
		accountLocks: make(map[string]*sync.Mutex),
	}
}

// Sign builds, signs, and submits a transfer of amount base units from the
// account's custodial key to the recipient, returning the network-assigned
// signature.
//
// Input validation happens before any I/O. At most one signing operation
// runs per account at a time, so two concurrent calls cannot both fetch a
// blockhash and race each other into the ledger.
func (s *TxnService) Sign(ctx context.Context, accountID, recipient string, amount int64) (string, error) {
	if err := ledger.ValidateAddress(recipient); err != nil {
		return "", fmt.Errorf("%w: malformed recipient address", common.ErrorValidation)
	}
	if amount <= 0 {
		return "", fmt.Errorf("%w: amount must be a positive number of base units", common.ErrorValidation)
	}

	unlock := s.lockAccount(accountID)
	defer unlock()

	repo := s.repomanager.Accounts(s.db)
	account, err := repo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("error loading account: %w", err)
	}
	if account.EncodedSecret == "" {
		return "", common.ErrMissingSecret
	}

	signer, err := s.custodian.Decode(account.EncodedSecret)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(signer)

	blockhash, err := s.ledger.LatestBlockhash(ctx)
	if err != nil {
		return "", err
	}

	signed, err := ledger.BuildTransfer(signer, recipient, uint64(amount), blockhash)
	if err != nil {
		return "", err
	}

	signature, err := s.ledger.SubmitTransaction(ctx, signed)
	if err != nil {
		return "", err
	}

	s.logger.Info(ctx, "transfer submitted",
		"account_id", accountID, "recipient", recipient, "amount", amount, "signature", signature)
	return signature, nil
}

// lockAccount acquires the per-account signing lock and returns its
// release function.
func (s *TxnService) lockAccount(accountID string) func() {
	s.mu.Lock()
	lock, ok := s.accountLocks[accountID]
	if !ok {
		lock = &sync.Mutex{}
		s.accountLocks[accountID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
