// Package password hashes signin credentials with argon2id. Credentials are
// never stored or compared in plain text; verification is constant-time.
package password

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/velmarq/walletd/internal/common"
)

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

// Hash derives an argon2id hash from the credential with a fresh random
// salt and returns it in PHC string form:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
func Hash(credential string) (string, error) {
	salt, err := common.GenerateRandByteArray(saltLen)
	if err != nil {
		return "", err
	}

	key := argon2.IDKey([]byte(credential), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))

	return encoded, nil
}

// Verify reports whether the credential matches the stored PHC string. The
// comparison is constant-time. A malformed stored hash yields an error.
func Verify(encoded, credential string) (bool, error) {
	salt, storedKey, params, err := decode(encoded)
	if err != nil {
		return false, err
	}

	key := argon2.IDKey([]byte(credential), salt, params.time, params.memory, params.threads, uint32(len(storedKey)))

	return subtle.ConstantTimeCompare(storedKey, key) == 1, nil
}

type argonParams struct {
	memory  uint32
	time    uint32
	threads uint8
}

func decode(encoded string) ([]byte, []byte, *argonParams, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, nil, fmt.Errorf("malformed credential hash")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, nil, fmt.Errorf("malformed credential hash: %w", err)
	}
	if version != argon2.Version {
		return nil, nil, nil, fmt.Errorf("unsupported argon2 version %d", version)
	}

	params := &argonParams{}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.memory, &params.time, &params.threads); err != nil {
		return nil, nil, nil, fmt.Errorf("malformed credential hash: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("malformed credential hash: %w", err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("malformed credential hash: %w", err)
	}

	return salt, key, params, nil
}
