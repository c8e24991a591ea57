package ledger

import (
	"crypto/ed25519"
	"encoding/binary"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/velmarq/walletd/internal/common"
)

// The system program owns plain value transfers; its id is the all-zero key.
var systemProgramID = make([]byte, AddressSize)

// transferInstructionIndex selects the Transfer instruction within the
// system program's instruction enum.
const transferInstructionIndex uint32 = 2

// BuildTransfer constructs and signs a legacy wire transaction moving
// lamports base units from the signer to the recipient. The signer is also
// the fee payer, and recentBlockhash anchors the transaction to current
// network state.
func BuildTransfer(signer ed25519.PrivateKey, to string, lamports uint64, recentBlockhash string) ([]byte, error) {
	from := signer.Public().(ed25519.PublicKey)

	toKey, err := base58.Decode(to)
	if err != nil || len(toKey) != AddressSize {
		return nil, common.ErrorValidation
	}

	blockhash, err := base58.Decode(recentBlockhash)
	if err != nil || len(blockhash) != AddressSize {
		return nil, fmt.Errorf("%w: malformed blockhash %q", common.ErrLedger, recentBlockhash)
	}

	message := buildTransferMessage(from, toKey, lamports, blockhash)
	signature := ed25519.Sign(signer, message)

	// wire form: compact array of signatures, then the signed message
	txn := make([]byte, 0, 1+ed25519.SignatureSize+len(message))
	txn = appendCompactU16(txn, 1)
	txn = append(txn, signature...)
	txn = append(txn, message...)
	return txn, nil
}

// buildTransferMessage serializes a legacy message with a single transfer
// instruction. Account layout: [signer, recipient, system program], with
// the recipient collapsed onto the signer for self-transfers.
func buildTransferMessage(from, to []byte, lamports uint64, blockhash []byte) []byte {
	accounts := [][]byte{from}
	toIndex := byte(0)
	if string(to) != string(from) {
		accounts = append(accounts, to)
		toIndex = 1
	}
	programIndex := byte(len(accounts))
	accounts = append(accounts, systemProgramID)

	// header: one required signature, no read-only signed accounts, one
	// read-only unsigned account (the program)
	msg := []byte{1, 0, 1}

	msg = appendCompactU16(msg, len(accounts))
	for _, account := range accounts {
		msg = append(msg, account...)
	}

	msg = append(msg, blockhash...)

	// instruction data: u32 LE enum index, u64 LE lamports
	data := make([]byte, 12)
	binary.LittleEndian.PutUint32(data[0:4], transferInstructionIndex)
	binary.LittleEndian.PutUint64(data[4:12], lamports)

	msg = appendCompactU16(msg, 1) // one instruction
	msg = append(msg, programIndex)
	msg = appendCompactU16(msg, 2) // two instruction accounts
	msg = append(msg, 0, toIndex)
	msg = appendCompactU16(msg, len(data))
	msg = append(msg, data...)

	return msg
}

// appendCompactU16 appends n in the ledger's compact-u16 form: 7 bits per
// byte, the high bit marking continuation.
func appendCompactU16(b []byte, n int) []byte {
	v := uint16(n)
	for {
		if v < 0x80 {
			return append(b, byte(v))
		}
		b = append(b, byte(v&0x7f)|0x80)
		v >>= 7
	}
}
