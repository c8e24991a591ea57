// Package ledger talks to the external ledger network through its narrow
// JSON-RPC contract: fetch the latest blockhash, query a balance, submit a
// signed transaction. Nothing here retries or caches.
package ledger

import (
	"context"

	"github.com/mr-tron/base58"

	"github.com/velmarq/walletd/internal/common"
)

// AddressSize is the raw byte length of a ledger address.
const AddressSize = 32

// BaseUnitsPerToken converts between base units and display units.
const BaseUnitsPerToken = 1_000_000_000

// Client is the contract every service depends on; tests substitute fakes.
type Client interface {
	// LatestBlockhash returns the current reference anchor a transaction
	// must cite to be considered current.
	LatestBlockhash(ctx context.Context) (string, error)

	// Balance returns the base-unit balance of the address.
	Balance(ctx context.Context, address string) (uint64, error)

	// SubmitTransaction sends a fully signed wire transaction and returns
	// the network-assigned signature.
	SubmitTransaction(ctx context.Context, signedTxn []byte) (string, error)
}

// ValidateAddress checks that address is well-formed: base58 text decoding
// to exactly 32 bytes. Returns common.ErrorValidation otherwise.
func ValidateAddress(address string) error {
	raw, err := base58.Decode(address)
	if err != nil || len(raw) != AddressSize {
		return common.ErrorValidation
	}
	return nil
}
