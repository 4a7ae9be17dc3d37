// Package keypair builds ed25519 signing keys: from raw bytes, freshly
// generated, or derived from a BIP-39 mnemonic via SLIP-10 hardened
// derivation along the standard m/44'/501'/N'/0' path.
package keypair

import (
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tyler-smith/go-bip39"

	"github.com/ledgerkit/solcore/internal/ed25519x"
	"github.com/ledgerkit/solcore/pubkey"
	"github.com/ledgerkit/solcore/solerr"
)

const (
	slip10Curve    = "ed25519 seed"
	hardenedOffset = uint32(0x80000000)

	// solDerivationPurpose, solDerivationCoin and solDerivationChange are
	// the fixed path segments around the account index: m/44'/501'/<index>'/0'.
	solDerivationPurpose = 44
	solDerivationCoin    = 501
	solDerivationChange  = 0
)

// Keypair is an ed25519 signing key with its derived public address.
type Keypair struct {
	Public pubkey.PubKey
	Secret ed25519.PrivateKey
}

// Generate creates a fresh random keypair.
func Generate() (Keypair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return Keypair{}, fmt.Errorf("keypair: generate: %w", err)
	}
	pk, err := pubkey.FromBytes(pub)
	if err != nil {
		return Keypair{}, fmt.Errorf("keypair: generate: %w", err)
	}
	return Keypair{Public: pk, Secret: priv}, nil
}

// FromSecret rebuilds a Keypair from a raw 64-byte ed25519 secret key
// (seed || public key, as produced by ed25519.GenerateKey).
func FromSecret(secret []byte) (Keypair, error) {
	kp, err := ed25519x.KeypairFromSecret(secret)
	if err != nil {
		return Keypair{}, fmt.Errorf("keypair: from secret: %w", err)
	}
	pk, err := pubkey.FromBytes(kp.Public)
	if err != nil {
		return Keypair{}, fmt.Errorf("keypair: from secret: %w", err)
	}
	return Keypair{Public: pk, Secret: kp.Secret}, nil
}

// Sign produces a detached ed25519 signature over message.
func (kp Keypair) Sign(message []byte) ([]byte, error) {
	return ed25519x.SignDetached(message, kp.Secret)
}

// slip10Key holds a SLIP-10 ed25519 key (raw seed + chain code).
type slip10Key struct {
	key       []byte
	chainCode []byte
}

// slip10MasterKeyFromSeed derives the SLIP-10 master key from a BIP-39 seed:
// HMAC-SHA512(key="ed25519 seed", data=seed).
func slip10MasterKeyFromSeed(seed []byte) slip10Key {
	mac := hmac.New(sha512.New, []byte(slip10Curve))
	mac.Write(seed)
	i := mac.Sum(nil)
	return slip10Key{key: i[:32], chainCode: i[32:]}
}

// slip10DeriveChild performs SLIP-10 hardened child derivation, the only
// kind ed25519 SLIP-10 supports: data = 0x00 || parent key || index (BE).
func slip10DeriveChild(parent slip10Key, index uint32) slip10Key {
	data := make([]byte, 0, 37)
	data = append(data, 0x00)
	data = append(data, parent.key...)
	var idxBytes [4]byte
	binary.BigEndian.PutUint32(idxBytes[:], index)
	data = append(data, idxBytes[:]...)

	mac := hmac.New(sha512.New, parent.chainCode)
	mac.Write(data)
	i := mac.Sum(nil)
	return slip10Key{key: i[:32], chainCode: i[32:]}
}

// DeriveFromSeed derives the ed25519 keypair at m/44'/501'/accountIndex'/0'
// from a BIP-39 seed, following the SLIP-10 hardened-only derivation rule.
func DeriveFromSeed(seed []byte, accountIndex uint32) (Keypair, error) {
	segments := []uint32{
		solDerivationPurpose + hardenedOffset,
		solDerivationCoin + hardenedOffset,
		accountIndex + hardenedOffset,
		solDerivationChange + hardenedOffset,
	}

	current := slip10MasterKeyFromSeed(seed)
	for _, seg := range segments {
		current = slip10DeriveChild(current, seg)
	}

	priv := ed25519.NewKeyFromSeed(current.key)
	pub := priv.Public().(ed25519.PublicKey)
	pk, err := pubkey.FromBytes(pub)
	if err != nil {
		return Keypair{}, fmt.Errorf("keypair: derive from seed: %w", err)
	}

	slog.Debug("derived keypair from seed",
		"accountIndex", accountIndex,
		"address", pk.Base58(),
	)

	return Keypair{Public: pk, Secret: priv}, nil
}

// GenerateMnemonic creates a new BIP-39 mnemonic with the given entropy
// size in bits (128 -> 12 words, 256 -> 24 words).
func GenerateMnemonic(entropyBits int) (string, error) {
	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return "", fmt.Errorf("keypair: generate mnemonic: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("keypair: generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// ValidateMnemonic checks a BIP-39 mnemonic's checksum and word count.
func ValidateMnemonic(mnemonic string) error {
	if !bip39.IsMnemonicValid(mnemonic) {
		return fmt.Errorf("keypair: validate mnemonic: %w", solerr.ErrInvalidMnemonic)
	}
	words := strings.Fields(mnemonic)
	switch len(words) {
	case 12, 15, 18, 21, 24:
		return nil
	default:
		return fmt.Errorf("keypair: mnemonic has %d words, want 12/15/18/21/24: %w", len(words), solerr.ErrInvalidMnemonic)
	}
}

// MnemonicToSeed converts a BIP-39 mnemonic and optional passphrase to a
// 64-byte seed.
func MnemonicToSeed(mnemonic, passphrase string) ([]byte, error) {
	if err := ValidateMnemonic(mnemonic); err != nil {
		return nil, err
	}
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, passphrase)
	if err != nil {
		return nil, fmt.Errorf("keypair: mnemonic to seed: %w", err)
	}
	return seed, nil
}
