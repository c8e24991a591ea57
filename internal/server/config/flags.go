package config

import (
	"flag"
	"os"
	"time"

	"github.com/velmarq/walletd/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      session token validity, minutes
//	-l string   ledger JSON-RPC URL
//	-o int      ledger RPC timeout, seconds
//	-k string   secret-store master passphrase
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. Duration
// flags are accepted as integers and converted to time.Duration values.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-l", "-o", "-k"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token_validity_duration (in minutes)")

	fs.StringVar(&config.LedgerRPCURL, "l", config.LedgerRPCURL, "ledger JSON-RPC URL")

	rpcTimeout := fs.Int("o", int(config.LedgerRPCTimeout.Seconds()), "ledger_rpc_timeout (in seconds)")

	fs.StringVar(&config.SecretStoreKey, "k", config.SecretStoreKey, "secret-store master passphrase")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
	config.LedgerRPCTimeout = time.Duration(*rpcTimeout) * time.Second
}
