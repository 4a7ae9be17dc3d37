// Package ed25519x wraps crypto/ed25519 with the exact primitive operations
// the core needs: keypair reconstruction from a 64-byte expanded secret,
// detached sign/verify, and the curve25519 on-curve test PDA derivation
// depends on.
package ed25519x

import (
	"crypto/ed25519"
	"fmt"

	"github.com/ledgerkit/solcore/internal/curve25519"
)

// Keypair holds the 32-byte public key and 64-byte expanded secret key
// (32-byte seed || 32-byte public key).
type Keypair struct {
	Public ed25519.PublicKey
	Secret ed25519.PrivateKey
}

// KeypairFromSecret reconstructs a Keypair from its 64-byte expanded secret.
func KeypairFromSecret(secret []byte) (Keypair, error) {
	if len(secret) != ed25519.PrivateKeySize {
		return Keypair{}, fmt.Errorf("ed25519x: secret key must be %d bytes, got %d", ed25519.PrivateKeySize, len(secret))
	}
	sk := ed25519.PrivateKey(append([]byte(nil), secret...))
	pub := sk.Public().(ed25519.PublicKey)
	return Keypair{Public: pub, Secret: sk}, nil
}

// SignDetached produces a 64-byte detached ed25519 signature over message.
func SignDetached(message []byte, secret []byte) ([]byte, error) {
	if len(secret) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("ed25519x: secret key must be %d bytes, got %d", ed25519.PrivateKeySize, len(secret))
	}
	sig := ed25519.Sign(ed25519.PrivateKey(secret), message)
	return sig, nil
}

// VerifyDetached reports whether sig is a valid ed25519 signature over
// message under public.
func VerifyDetached(message, sig, public []byte) bool {
	if len(sig) != ed25519.SignatureSize || len(public) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(public), message, sig)
}

// IsOnCurve reports whether the 32-byte compressed point decompresses to a
// valid Edwards25519 curve point.
func IsOnCurve(public []byte) bool {
	return curve25519.IsOnCurve(public)
}
