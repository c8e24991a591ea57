// Package securebox seals custodial secret material before it reaches the
// account store, so a database row alone is not enough to sign. The envelope
// is XChaCha20-Poly1305 under an argon2id-derived key.
package securebox

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	envelopeVersion = 1
	saltSize        = 16

	kdfTime     = 2
	kdfMemoryKB = 64 * 1024
	kdfThreads  = 1
	kdfKeyLen   = 32
)

var (
	ErrAuthFailed = errors.New("securebox authentication failed")
	ErrInvalid    = errors.New("securebox envelope is invalid")
)

type envelope struct {
	Version     uint32 `json:"version"`
	KDF         string `json:"kdf"`
	KDFTime     uint32 `json:"kdf_time"`
	KDFMemoryKB uint32 `json:"kdf_memory_kb"`
	KDFThreads  uint8  `json:"kdf_threads"`
	Salt        []byte `json:"salt"`
	Nonce       []byte `json:"nonce"`
	Ciphertext  []byte `json:"ciphertext"`
}

// Box seals and opens envelopes under a single master passphrase.
type Box struct {
	passphrase string
}

func New(passphrase string) *Box {
	return &Box{passphrase: passphrase}
}

// Seal encrypts plaintext and returns a base64 string safe for a text
// column. Each call uses a fresh salt and nonce.
func (b *Box) Seal(plaintext []byte) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := b.deriveKey(salt)
	defer zeroBytes(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	ciphertext := aead.Seal(nil, nonce, plaintext, nil)

	env := &envelope{
		Version:     envelopeVersion,
		KDF:         "argon2id",
		KDFTime:     kdfTime,
		KDFMemoryKB: kdfMemoryKB,
		KDFThreads:  kdfThreads,
		Salt:        salt,
		Nonce:       nonce,
		Ciphertext:  ciphertext,
	}

	raw, err := json.Marshal(env)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// Open decrypts a sealed envelope. A wrong passphrase or tampered
// ciphertext yields ErrAuthFailed; structural damage yields ErrInvalid.
func (b *Box) Open(sealed string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return nil, ErrInvalid
	}

	env := &envelope{}
	if err := json.Unmarshal(raw, env); err != nil {
		return nil, ErrInvalid
	}
	if env.Version != envelopeVersion || env.KDF != "argon2id" {
		return nil, ErrInvalid
	}
	if len(env.Salt) != saltSize || len(env.Nonce) != chacha20poly1305.NonceSizeX {
		return nil, ErrInvalid
	}

	key := argon2.IDKey([]byte(b.passphrase), env.Salt, env.KDFTime, env.KDFMemoryKB, env.KDFThreads, kdfKeyLen)
	defer zeroBytes(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Open(nil, env.Nonce, env.Ciphertext, nil)
	if err != nil {
		return nil, ErrAuthFailed
	}
	return plaintext, nil
}

func (b *Box) deriveKey(salt []byte) []byte {
	return argon2.IDKey([]byte(b.passphrase), salt, kdfTime, kdfMemoryKB, kdfThreads, kdfKeyLen)
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
