// Package solcfg holds network-scoped constants and the environment-backed
// configuration for cmd/solcli.
package solcfg

// Well-known program ids, addressed by their canonical base58 form.
const (
	SystemProgramID          = "11111111111111111111111111111111"
	TokenProgramID           = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	AssociatedTokenProgramID = "ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL"
	BPFLoaderProgramID       = "BPFLoader1111111111111111111111111111111111"
)

// Derivation path fixed segments: m/44'/SOLCoinType'/N'/0'.
const (
	BIP44Purpose = 44
	SOLCoinType  = 501
)

// Transaction limits.
const (
	SOLMaxInstructions = 20
)

// Logging.
const (
	LogDir        = "./logs"
	LogFilePrefix = "solcli-"
)
