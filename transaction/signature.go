package transaction

import (
	"fmt"

	"github.com/ledgerkit/solcore/internal/base58"
)

// SignatureSize is the byte length of a raw ed25519 signature.
const SignatureSize = 64

// Signature is a raw 64-byte ed25519 signature. The zero value represents
// an absent signature, matching the all-zero bytes a null slot is given on
// the wire.
type Signature [SignatureSize]byte

// IsEmpty reports whether the signature is the all-zero placeholder used
// for an unsigned slot.
func (s Signature) IsEmpty() bool {
	return s == Signature{}
}

// Bytes returns the raw 64-byte representation.
func (s Signature) Bytes() []byte {
	out := make([]byte, SignatureSize)
	copy(out, s[:])
	return out
}

// Base58 returns the base58 form, or the empty string for an empty slot.
func (s Signature) Base58() string {
	if s.IsEmpty() {
		return ""
	}
	return base58.Encode(s[:])
}

// String implements fmt.Stringer.
func (s Signature) String() string {
	return s.Base58()
}

// SignatureFromBytes copies 64 bytes into a Signature.
func SignatureFromBytes(b []byte) (Signature, error) {
	if len(b) != SignatureSize {
		return Signature{}, fmt.Errorf("transaction: expected %d signature bytes, got %d", SignatureSize, len(b))
	}
	var s Signature
	copy(s[:], b)
	return s, nil
}
