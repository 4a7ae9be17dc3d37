// Package curve25519 implements the single primitive the core needs from
// the Edwards25519 curve: deciding whether a compressed 32-byte point
// decodes to a valid curve point, per RFC 8032 §5.1.3. Program-derived
// addresses are valid only when this test fails (off-curve).
package curve25519

import "math/big"

var (
	fieldPrime = func() *big.Int {
		p := new(big.Int).Lsh(big.NewInt(1), 255)
		p.Sub(p, big.NewInt(19))
		return p
	}()
	curveD = func() *big.Int {
		// d = -121665 * inverse(121666) mod p
		num := big.NewInt(-121665)
		den := big.NewInt(121666)
		denInv := new(big.Int).ModInverse(den, fieldPrime)
		d := new(big.Int).Mul(num, denInv)
		d.Mod(d, fieldPrime)
		return d
	}()
	one = big.NewInt(1)
)

// IsOnCurve reports whether b, interpreted as a compressed Edwards25519
// point, decompresses to a valid curve point. b must be exactly 32 bytes.
func IsOnCurve(b []byte) bool {
	if len(b) != 32 {
		return false
	}

	yBytes := make([]byte, 32)
	copy(yBytes, b)
	xSign := yBytes[31] >> 7
	yBytes[31] &= 0x7f

	y := leBytesToBigInt(yBytes)
	if y.Cmp(fieldPrime) >= 0 {
		return false
	}

	// Edwards curve equation: -x^2 + y^2 = 1 + d*x^2*y^2
	// => x^2 = (y^2 - 1) / (d*y^2 + 1) mod p
	y2 := new(big.Int).Mul(y, y)
	y2.Mod(y2, fieldPrime)

	u := new(big.Int).Sub(y2, one)
	u.Mod(u, fieldPrime)
	if u.Sign() < 0 {
		u.Add(u, fieldPrime)
	}

	v := new(big.Int).Mul(curveD, y2)
	v.Mod(v, fieldPrime)
	v.Add(v, one)
	v.Mod(v, fieldPrime)

	vInv := new(big.Int).ModInverse(v, fieldPrime)
	if vInv == nil {
		return false
	}

	x2 := new(big.Int).Mul(u, vInv)
	x2.Mod(x2, fieldPrime)

	if x2.Sign() == 0 {
		return xSign == 0
	}

	// x^2 is a quadratic residue mod p iff (x^2)^((p-1)/2) == 1 (Euler's criterion).
	exp := new(big.Int).Sub(fieldPrime, one)
	exp.Rsh(exp, 1)

	check := new(big.Int).Exp(x2, exp, fieldPrime)
	return check.Cmp(one) == 0
}

func leBytesToBigInt(b []byte) *big.Int {
	reversed := make([]byte, len(b))
	for i, v := range b {
		reversed[len(b)-1-i] = v
	}
	return new(big.Int).SetBytes(reversed)
}
