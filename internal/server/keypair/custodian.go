// Package keypair generates and decodes the custodial signing keypairs held
// on behalf of accounts. The ledger uses ed25519; addresses are the base58
// form of the 32-byte public key, and the stored secret is the base58 form
// of the full 64-byte private key, optionally sealed at rest.
package keypair

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/subtle"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/velmarq/walletd/internal/common"
	"github.com/velmarq/walletd/internal/server/securebox"
)

// Custodian produces fresh keypairs and reconstructs signers from stored
// material. With a non-nil box, the encoded secret is sealed before it ever
// reaches storage and opened transiently on decode.
type Custodian struct {
	box *securebox.Box
}

// New constructs a Custodian. box may be nil, in which case secrets are
// stored in their bare base58 encoding.
func New(box *securebox.Box) *Custodian {
	return &Custodian{box: box}
}

// Generate creates an independent, unpredictable keypair and returns the
// ledger address plus the storage encoding of the secret.
func (c *Custodian) Generate() (publicKey string, encodedSecret string, err error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return "", "", fmt.Errorf("keypair generation failed: %w", err)
	}
	defer common.WipeByteArray(priv)

	publicKey = base58.Encode(pub)
	encoded := base58.Encode(priv)

	if c.box == nil {
		return publicKey, encoded, nil
	}

	sealed, err := c.box.Seal([]byte(encoded))
	if err != nil {
		return "", "", fmt.Errorf("sealing secret failed: %w", err)
	}
	return publicKey, sealed, nil
}

// Decode reconstructs a usable signing key from the stored encoding. Any
// malformed input maps to common.ErrCorruptKey. The caller must wipe the
// returned key once the signing operation completes.
func (c *Custodian) Decode(encodedSecret string) (ed25519.PrivateKey, error) {
	encoded := encodedSecret

	if c.box != nil {
		opened, err := c.box.Open(encodedSecret)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrCorruptKey, err)
		}
		encoded = string(opened)
	}

	raw, err := base58.Decode(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCorruptKey, err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w: unexpected key length %d", common.ErrCorruptKey, len(raw))
	}

	priv := ed25519.PrivateKey(raw)

	// The stored blob carries the public half in its last 32 bytes; a
	// mismatch with the re-derived half means the record was damaged.
	derived := priv.Public().(ed25519.PublicKey)
	if subtle.ConstantTimeCompare(derived, raw[32:]) != 1 {
		common.WipeByteArray(priv)
		return nil, fmt.Errorf("%w: public half mismatch", common.ErrCorruptKey)
	}

	return priv, nil
}

// Address returns the ledger address for a decoded signing key.
func Address(priv ed25519.PrivateKey) string {
	return base58.Encode(priv.Public().(ed25519.PublicKey))
}
