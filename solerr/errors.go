// Package solerr holds the sentinel error kinds the core library reports.
// A failure of one of these kinds is returned wrapped with context via
// fmt.Errorf("...: %w", solerr.ErrX); other failures, such as a secret key
// of the wrong length or a count too large to encode, carry no sentinel.
package solerr

import "errors"

var (
	// ErrInvalidAddress covers bytes not length 32, bad base58, or an
	// integer out of the 32-byte range.
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidSeeds covers a PDA seed longer than 32 bytes, too many
	// seeds, or a digest that lands on the ed25519 curve.
	ErrInvalidSeeds = errors.New("invalid PDA seeds")

	// ErrNoBumpFound is returned when find_program_address exhausts every
	// bump seed from 255 down to 0 without finding an off-curve digest.
	ErrNoBumpFound = errors.New("no bump seed found")

	// ErrMalformedMessage covers any wire-format violation while parsing a
	// message or transaction.
	ErrMalformedMessage = errors.New("malformed message")

	// ErrUnknownSigner is returned when a signature is attached to, or a
	// secret key supplied for, an address that is not in the signer prefix.
	ErrUnknownSigner = errors.New("unknown signer")

	// ErrMissingSignature is returned by VerifySignatures when a signature
	// slot is empty and missing signatures were not explicitly allowed.
	ErrMissingSignature = errors.New("missing signature")

	// ErrInvalidSignature is returned by VerifySignatures when an attached
	// signature fails ed25519 verification against the message bytes.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrInvalidMnemonic covers a BIP-39 mnemonic that fails its checksum
	// or does not have a standard word count.
	ErrInvalidMnemonic = errors.New("invalid mnemonic")

	// ErrInvalidConfig covers a cmd/solcli configuration value that fails
	// validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)
