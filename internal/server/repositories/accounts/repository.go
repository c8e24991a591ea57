// Package accounts implements the account store: a durable keyed collection
// of account records with no business logic of its own.
package accounts

import (
	"context"

	"github.com/velmarq/walletd/internal/server/models"
)

// Repository is the narrow persistence contract for accounts. Accounts are
// immutable once created, so no update or delete operations exist.
type Repository interface {
	// Create persists a new account and returns it with ID and CreatedAt
	// populated. Returns common.ErrorAlreadyExists if the email is taken.
	Create(ctx context.Context, account *models.Account) (*models.Account, error)

	// FindByEmail returns common.ErrorNotFound when no account matches.
	FindByEmail(ctx context.Context, email string) (*models.Account, error)

	// FindByID returns common.ErrorNotFound when no account matches.
	FindByID(ctx context.Context, id string) (*models.Account, error)
}
