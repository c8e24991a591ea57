package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/velmarq/walletd/internal/common"
	"github.com/velmarq/walletd/internal/dbx"
	"github.com/velmarq/walletd/internal/logging"
	"github.com/velmarq/walletd/internal/server/models"
	"github.com/velmarq/walletd/internal/server/repositories/accounts"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

// fakeAccountsRepo is an in-memory account store that counts calls, so
// tests can assert which collaborators were (not) touched.
type fakeAccountsRepo struct {
	mu       sync.Mutex
	byID     map[string]*models.Account
	byEmail  map[string]*models.Account
	nextID   int
	createErr error
	findErr   error

	createCalls      int
	findByEmailCalls int
	findByIDCalls    int
}

func newFakeAccountsRepo() *fakeAccountsRepo {
	return &fakeAccountsRepo{
		byID:    make(map[string]*models.Account),
		byEmail: make(map[string]*models.Account),
	}
}

func (f *fakeAccountsRepo) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byEmail[account.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	f.nextID++
	account.ID = fmt.Sprintf("acc-%d", f.nextID)
	f.byID[account.ID] = account
	f.byEmail[account.Email] = account
	return account, nil
}

func (f *fakeAccountsRepo) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findByEmailCalls++
	if f.findErr != nil {
		return nil, f.findErr
	}
	account, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return account, nil
}

func (f *fakeAccountsRepo) FindByID(ctx context.Context, id string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findByIDCalls++
	if f.findErr != nil {
		return nil, f.findErr
	}
	account, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return account, nil
}

// snapshot returns a copy of the stored accounts for before/after
// comparisons.
func (f *fakeAccountsRepo) snapshot() map[string]models.Account {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]models.Account, len(f.byID))
	for id, account := range f.byID {
		out[id] = *account
	}
	return out
}

type fakeRepoManager struct {
	accounts *fakeAccountsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeRepoManager) Accounts(db dbx.DBTX) accounts.Repository { return m.accounts }

// fakeLedger counts every call so tests can assert the fail-fast paths
// never reach the network.
type fakeLedger struct {
	mu sync.Mutex

	blockhash    string
	blockhashErr error
	balance      uint64
	balanceErr   error
	submitSig    string
	submitErr    error

	blockhashCalls int
	balanceCalls   int
	submitCalls    int
	lastSubmitted  []byte
}

func (f *fakeLedger) LatestBlockhash(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blockhashCalls++
	if f.blockhashErr != nil {
		return "", f.blockhashErr
	}
	return f.blockhash, nil
}

func (f *fakeLedger) Balance(ctx context.Context, address string) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.balanceCalls++
	if f.balanceErr != nil {
		return 0, f.balanceErr
	}
	return f.balance, nil
}

func (f *fakeLedger) SubmitTransaction(ctx context.Context, signedTxn []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitCalls++
	if f.submitErr != nil {
		return "", f.submitErr
	}
	f.lastSubmitted = append([]byte(nil), signedTxn...)
	return f.submitSig, nil
}

func (f *fakeLedger) calls() (blockhash, balance, submit int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.blockhashCalls, f.balanceCalls, f.submitCalls
}
