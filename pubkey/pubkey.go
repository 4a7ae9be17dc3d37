// Package pubkey implements the 32-byte address value type used throughout
// solcore: construction from bytes, base58, or an integer; equality; base58
// and JSON views; and program-derived-address (PDA) derivation.
package pubkey

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ledgerkit/solcore/internal/base58"
	"github.com/ledgerkit/solcore/internal/curve25519"
	"github.com/ledgerkit/solcore/solerr"
)

// Size is the byte length of a PubKey.
const Size = 32

// pdaMarker is the domain separator appended before hashing PDA seeds.
const pdaMarker = "ProgramDerivedAddress"

// maxSeedLength is the maximum length of a single PDA seed.
const maxSeedLength = 32

// maxSeeds mirrors the network's own limit on the number of PDA seeds
// (including the bump seed appended by FindProgramAddress, which therefore
// accepts at most maxSeeds-1 seeds of its own).
const maxSeeds = 16

// PubKey is an immutable 32-byte address: either a raw ed25519 point or a
// program-derived digest that is guaranteed off-curve.
type PubKey [Size]byte

// FromBytes copies a 32-element byte sequence into a PubKey.
func FromBytes(b []byte) (PubKey, error) {
	if len(b) != Size {
		return PubKey{}, fmt.Errorf("pubkey: expected %d bytes, got %d: %w", Size, len(b), solerr.ErrInvalidAddress)
	}
	var pk PubKey
	copy(pk[:], b)
	return pk, nil
}

// FromBase58 decodes a base58 string to a PubKey; it fails unless the
// decoded bytes are exactly 32 long.
func FromBase58(s string) (PubKey, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return PubKey{}, fmt.Errorf("pubkey: decode base58 %q: %w: %v", s, solerr.ErrInvalidAddress, err)
	}
	if len(b) != Size {
		return PubKey{}, fmt.Errorf("pubkey: base58 %q decodes to %d bytes, want %d: %w", s, len(b), Size, solerr.ErrInvalidAddress)
	}
	var pk PubKey
	copy(pk[:], b)
	return pk, nil
}

// maxUint256Plus1 is 2^256, the exclusive upper bound for FromUint's input.
var maxUint256Plus1 = new(big.Int).Lsh(big.NewInt(1), 256)

// FromUint builds a PubKey from a non-negative integer strictly less than
// 2^256, taking its big-endian 32-byte representation, left-padded with
// zeros.
func FromUint(n *big.Int) (PubKey, error) {
	if n.Sign() < 0 || n.Cmp(maxUint256Plus1) >= 0 {
		return PubKey{}, fmt.Errorf("pubkey: integer out of range [0, 2^256): %w", solerr.ErrInvalidAddress)
	}
	var pk PubKey
	b := n.Bytes()
	copy(pk[Size-len(b):], b)
	return pk, nil
}

// Bytes returns the 32-byte representation of the key.
func (pk PubKey) Bytes() []byte {
	out := make([]byte, Size)
	copy(out, pk[:])
	return out
}

// Base58 returns the canonical base58 string form.
func (pk PubKey) Base58() string {
	return base58.Encode(pk[:])
}

// String implements fmt.Stringer as the base58 form.
func (pk PubKey) String() string {
	return pk.Base58()
}

// Hex returns the lowercase hex form of the key (a derived view outside the
// canonical base58 encoding).
func (pk PubKey) Hex() string {
	return hex.EncodeToString(pk[:])
}

// MarshalJSON renders a PubKey embedded in a larger value as its base58
// string.
func (pk PubKey) MarshalJSON() ([]byte, error) {
	return fmt.Appendf(nil, "%q", pk.Base58()), nil
}

// UnmarshalJSON parses a base58-quoted PubKey.
func (pk *PubKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := unquoteJSONString(data, &s); err != nil {
		return fmt.Errorf("pubkey: unmarshal JSON: %w: %v", solerr.ErrInvalidAddress, err)
	}
	parsed, err := FromBase58(s)
	if err != nil {
		return err
	}
	*pk = parsed
	return nil
}

// Equals reports byte-wise equality.
func (pk PubKey) Equals(other PubKey) bool {
	return pk == other
}

// IsZero reports whether the key is all-zero bytes.
func (pk PubKey) IsZero() bool {
	return pk == PubKey{}
}

// IsOnCurve reports whether pk decompresses to a valid ed25519 curve point.
func (pk PubKey) IsOnCurve() bool {
	return curve25519.IsOnCurve(pk[:])
}

// IsOnCurveBase58 is the static form for base58 input (byte input goes
// through PubKey.IsOnCurve); it decodes s and defers to the curve test.
func IsOnCurveBase58(s string) (bool, error) {
	pk, err := FromBase58(s)
	if err != nil {
		return false, err
	}
	return pk.IsOnCurve(), nil
}

// CreateProgramAddress derives a program-derived address from seeds and a
// program id: concatenate the seeds, the program id bytes, and the PDA
// domain marker, SHA-256 the result, and reject if the digest lands on the
// ed25519 curve (it would then collide with a real key).
func CreateProgramAddress(seeds [][]byte, programID PubKey) (PubKey, error) {
	if len(seeds) > maxSeeds {
		return PubKey{}, fmt.Errorf("pubkey: too many seeds (%d, max %d): %w", len(seeds), maxSeeds, solerr.ErrInvalidSeeds)
	}
	h := sha256.New()
	for i, seed := range seeds {
		if len(seed) > maxSeedLength {
			return PubKey{}, fmt.Errorf("pubkey: seed %d exceeds %d bytes: %w", i, maxSeedLength, solerr.ErrInvalidSeeds)
		}
		h.Write(seed)
	}
	h.Write(programID[:])
	h.Write([]byte(pdaMarker))
	digest := h.Sum(nil)

	var pk PubKey
	copy(pk[:], digest)

	if pk.IsOnCurve() {
		return PubKey{}, fmt.Errorf("pubkey: derived address lies on the curve: %w", solerr.ErrInvalidSeeds)
	}

	return pk, nil
}

// FindProgramAddress searches bump seeds from 255 down to 0, returning the
// first off-curve PDA produced by appending the bump byte to seeds.
func FindProgramAddress(seeds [][]byte, programID PubKey) (PubKey, byte, error) {
	if len(seeds) >= maxSeeds {
		return PubKey{}, 0, fmt.Errorf("pubkey: too many seeds (%d, max %d): %w", len(seeds), maxSeeds-1, solerr.ErrInvalidSeeds)
	}
	for i, seed := range seeds {
		if len(seed) > maxSeedLength {
			return PubKey{}, 0, fmt.Errorf("pubkey: seed %d exceeds %d bytes: %w", i, maxSeedLength, solerr.ErrInvalidSeeds)
		}
	}

	candidateSeeds := make([][]byte, len(seeds)+1)
	copy(candidateSeeds, seeds)

	for bump := 255; bump >= 0; bump-- {
		candidateSeeds[len(seeds)] = []byte{byte(bump)}
		addr, err := CreateProgramAddress(candidateSeeds, programID)
		if err == nil {
			slog.Debug("found program derived address",
				"programID", programID.Base58(),
				"bump", bump,
				"address", addr.Base58(),
			)
			return addr, byte(bump), nil
		}
	}

	return PubKey{}, 0, fmt.Errorf("pubkey: exhausted all bump seeds for program %s: %w", programID.Base58(), solerr.ErrNoBumpFound)
}

func unquoteJSONString(data []byte, out *string) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("not a JSON string: %s", data)
	}
	*out = string(data[1 : len(data)-1])
	return nil
}
