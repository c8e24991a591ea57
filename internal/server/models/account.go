// Package models contains the persistence-level data structures of the
// wallet server.
package models

import "time"

// Account is the unit of custody: a registered identity together with the
// keypair the service holds on its behalf.
//
// Accounts are created exactly once at signup and never mutated afterwards.
// CredentialHash is an argon2id PHC string; EncodedSecret is the custodial
// private key in its storage encoding (never the raw key).
type Account struct {
	ID             string
	Email          string
	CredentialHash string
	PublicKey      string
	EncodedSecret  string
	CreatedAt      time.Time
}
