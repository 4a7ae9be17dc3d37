// Package base58 implements the base-58 text encoding used for Solana-style
// addresses and signatures: big-endian base change over a 58-character
// alphabet, with each leading zero byte mapped to a leading '1' character.
package base58

import (
	"fmt"
	"math/big"
)

// Alphabet is the base-58 alphabet used throughout the wire format and API.
const Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

var (
	radix     = big.NewInt(58)
	decodeMap [256]int8
)

func init() {
	for i := range decodeMap {
		decodeMap[i] = -1
	}
	for i, c := range Alphabet {
		decodeMap[c] = int8(i)
	}
}

// Encode converts raw bytes to their base-58 string representation.
// Each leading zero byte in b becomes a leading '1' in the output.
func Encode(b []byte) string {
	leadingZeros := 0
	for leadingZeros < len(b) && b[leadingZeros] == 0 {
		leadingZeros++
	}

	n := new(big.Int).SetBytes(b)

	var digits []byte
	zero := big.NewInt(0)
	mod := new(big.Int)
	for n.Cmp(zero) > 0 {
		n.DivMod(n, radix, mod)
		digits = append(digits, Alphabet[mod.Int64()])
	}

	out := make([]byte, 0, leadingZeros+len(digits))
	for i := 0; i < leadingZeros; i++ {
		out = append(out, Alphabet[0])
	}
	for i := len(digits) - 1; i >= 0; i-- {
		out = append(out, digits[i])
	}

	return string(out)
}

// Decode converts a base-58 string back into raw bytes. A leading '1'
// character maps back to a leading zero byte. Decoding rejects any
// character outside the base-58 alphabet.
func Decode(s string) ([]byte, error) {
	leadingOnes := 0
	for leadingOnes < len(s) && s[leadingOnes] == Alphabet[0] {
		leadingOnes++
	}

	n := new(big.Int)
	mul := new(big.Int)
	for i := leadingOnes; i < len(s); i++ {
		v := decodeMap[s[i]]
		if v < 0 {
			return nil, fmt.Errorf("base58: invalid character %q at position %d", s[i], i)
		}
		n.Mul(n, radix)
		n.Add(n, mul.SetInt64(int64(v)))
	}

	body := n.Bytes()
	out := make([]byte, leadingOnes+len(body))
	copy(out[leadingOnes:], body)

	return out, nil
}
