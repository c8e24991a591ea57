// Package services contains the server-side business logic: authentication,
// transaction authorization, and balance queries.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/velmarq/walletd/internal/common"
	"github.com/velmarq/walletd/internal/logging"
	"github.com/velmarq/walletd/internal/server/auth"
	"github.com/velmarq/walletd/internal/server/config"
	"github.com/velmarq/walletd/internal/server/keypair"
	"github.com/velmarq/walletd/internal/server/models"
	"github.com/velmarq/walletd/internal/server/password"
	"github.com/velmarq/walletd/internal/server/repositories/repomanager"
)

// dummyCredentialHash is verified against when no account matches the
// email, so unknown-email and wrong-credential take comparable time.
const dummyCredentialHash = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// AuthService handles account registration, credential verification, and
// session token issuance/verification.
type AuthService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	custodian     *keypair.Custodian
	jwtSecret     []byte
	tokenValidity time.Duration
	logger        logging.Logger
}

// NewAuthService constructs an AuthService using repositories, the keypair
// custodian, and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, custodian *keypair.Custodian, cfg *config.Config, logger logging.Logger) *AuthService {
	return &AuthService{
		db:            db,
		repomanager:   m,
		custodian:     custodian,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
		logger:        logger.With("module", "auth_service"),
	}
}

// Signup registers a new account: it generates a custodial keypair, hashes
// the credential, persists the account, and returns the new public key.
// Duplicate emails yield common.ErrorAlreadyExists. The credential is never
// returned or logged.
func (s *AuthService) Signup(ctx context.Context, email, credential string) (string, error) {
	repo := s.repomanager.Accounts(s.db)

	// Pre-check for a clean conflict without burning a keypair; the unique
	// index on email still closes the race under concurrent signups.
	if _, err := repo.FindByEmail(ctx, email); err == nil {
		return "", common.ErrorAlreadyExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return "", fmt.Errorf("error checking email: %w", err)
	}

	publicKey, encodedSecret, err := s.custodian.Generate()
	if err != nil {
		return "", fmt.Errorf("error generating keypair: %w", err)
	}

	credentialHash, err := password.Hash(credential)
	if err != nil {
		return "", fmt.Errorf("error hashing credential: %w", err)
	}

	account := &models.Account{
		Email:          email,
		CredentialHash: credentialHash,
		PublicKey:      publicKey,
		EncodedSecret:  encodedSecret,
	}

	created, err := repo.Create(ctx, account)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return "", common.ErrorAlreadyExists
		}
		return "", fmt.Errorf("error creating account: %w", err)
	}

	s.logger.Info(ctx, "account created", "account_id", created.ID, "public_key", publicKey)
	return publicKey, nil
}

// Signin verifies the credential and, on success, issues a session token
// embedding {accountId, email, publicKey}. An unknown email and a wrong
// credential both yield common.ErrorUnauthorized.
func (s *AuthService) Signin(ctx context.Context, email, credential string) (token string, publicKey string, err error) {
	repo := s.repomanager.Accounts(s.db)

	account, err := repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// burn a comparison so absent accounts are not cheaper
			_, _ = password.Verify(dummyCredentialHash, credential)
			return "", "", common.ErrorUnauthorized
		}
		return "", "", common.ErrorInternal
	}

	ok, err := password.Verify(account.CredentialHash, credential)
	if err != nil {
		s.logger.Error(ctx, "stored credential hash unreadable", "account_id", account.ID, "error", err.Error())
		return "", "", common.ErrorInternal
	}
	if !ok {
		return "", "", common.ErrorUnauthorized
	}

	token, err = auth.GenerateToken(account.ID, account.Email, account.PublicKey, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return "", "", common.ErrorInternal
	}

	return token, account.PublicKey, nil
}

// Verify validates a session token's signature and expiry and returns its
// claims. It performs no I/O and gates every protected operation.
func (s *AuthService) Verify(tokenString string) (*auth.Claims, error) {
	return auth.ParseClaims(tokenString, s.jwtSecret)
}
