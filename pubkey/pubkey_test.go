package pubkey

import (
	"bytes"
	"math/big"
	"testing"
)

func TestFromBytesRoundTrip(t *testing.T) {
	var b [32]byte
	for i := range b {
		b[i] = byte(i)
	}
	pk, err := FromBytes(b[:])
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if !bytes.Equal(pk.Bytes(), b[:]) {
		t.Errorf("Bytes() = %x, want %x", pk.Bytes(), b[:])
	}
	pk2, err := FromBase58(pk.Base58())
	if err != nil {
		t.Fatalf("FromBase58: %v", err)
	}
	if !pk.Equals(pk2) {
		t.Errorf("round-trip through base58 changed value: %s != %s", pk, pk2)
	}
}

func TestFromBytesWrongLength(t *testing.T) {
	if _, err := FromBytes(make([]byte, 33)); err == nil {
		t.Error("expected error for 33-byte input")
	}
	if _, err := FromBytes(make([]byte, 31)); err == nil {
		t.Error("expected error for 31-byte input")
	}
}

func TestFromBase58WrongDecodedLength(t *testing.T) {
	// A long, valid base58 string that does not decode to 32 bytes.
	tooLong := "1111111111111111111111111111111111111111111111111111111111111111"
	if _, err := FromBase58(tooLong); err == nil {
		t.Error("expected error for over-long base58 string")
	}
}

func TestFromUint(t *testing.T) {
	pk, err := FromUint(big.NewInt(3))
	if err != nil {
		t.Fatalf("FromUint: %v", err)
	}
	want := make([]byte, 32)
	want[31] = 3
	if !bytes.Equal(pk.Bytes(), want) {
		t.Errorf("FromUint(3).Bytes() = %x, want %x", pk.Bytes(), want)
	}
}

func TestFromUintOutOfRange(t *testing.T) {
	tooLarge := new(big.Int).Lsh(big.NewInt(1), 256)
	if _, err := FromUint(tooLarge); err == nil {
		t.Error("expected error for 2^256")
	}
	if _, err := FromUint(big.NewInt(-1)); err == nil {
		t.Error("expected error for negative integer")
	}
}

func TestAllZeroAddress(t *testing.T) {
	pk, err := FromBytes(make([]byte, 32))
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	want := "11111111111111111111111111111111"
	if pk.Base58() != want {
		t.Errorf("Base58() = %q, want %q", pk.Base58(), want)
	}
}

func TestFromBase58KnownVector(t *testing.T) {
	pk, err := FromBase58("CiDwVBFgWV9E5MvXWoLgnEgn2hK7rJikbvfWavzAQz3")
	if err != nil {
		t.Fatalf("FromBase58: %v", err)
	}
	b := pk.Bytes()
	if b[0] != 3 {
		t.Errorf("b[0] = %d, want 3", b[0])
	}
	for i := 1; i < 32; i++ {
		if b[i] != 0 {
			t.Errorf("b[%d] = %d, want 0", i, b[i])
		}
	}
}

func TestCreateProgramAddressKnownVectors(t *testing.T) {
	program, err := FromBase58("BPFLoader1111111111111111111111111111111111")
	if err != nil {
		t.Fatalf("FromBase58(program): %v", err)
	}

	tests := []struct {
		name  string
		seeds [][]byte
		want  string
	}{
		{"empty+0x01", [][]byte{[]byte(""), {0x01}}, "3gF2KMe9KiC6FNVBmfg9i267aMPvK37FewCip4eGBFcT"},
		{"sun-symbol", [][]byte{[]byte("☉")}, "7ytmC1nT1xY4RfxCV2ZgyA7UakC93do5ZdyhdF3EtPj7"},
		{"talking-squirrels", [][]byte{[]byte("Talking"), []byte("Squirrels")}, "HwRVBufQ4haG5XSgpspwKtNd3PC9GM9m1196uJW36vds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := CreateProgramAddress(tt.seeds, program)
			if err != nil {
				t.Fatalf("CreateProgramAddress: %v", err)
			}
			if addr.Base58() != tt.want {
				t.Errorf("CreateProgramAddress() = %s, want %s", addr, tt.want)
			}
			if addr.IsOnCurve() {
				t.Errorf("derived address %s must not be on curve", addr)
			}
		})
	}
}

func TestCreateProgramAddressWithPubkeySeedAndU64(t *testing.T) {
	seedPK, err := FromBase58("H4snTKK9adiU15gP22ErfZYtro3aqR9BTMXiH3AwiUTQ")
	if err != nil {
		t.Fatalf("FromBase58(seedPK): %v", err)
	}
	program, err := FromBase58("4ckmDgGdxQoPDLUkDT3vHgSAkzA3QRdNq5ywwY4sUSJn")
	if err != nil {
		t.Fatalf("FromBase58(program): %v", err)
	}

	u64LE := make([]byte, 8)
	u64LE[0] = 2 // u64 value 2, little-endian

	addr, err := CreateProgramAddress([][]byte{seedPK.Bytes(), u64LE}, program)
	if err != nil {
		t.Fatalf("CreateProgramAddress: %v", err)
	}

	want := "12rqwuEgBYiGhBrDJStCiqEtzQpTTiZbh7teNVLuYcFA"
	if addr.Base58() != want {
		t.Errorf("CreateProgramAddress() = %s, want %s", addr, want)
	}
	if addr.IsOnCurve() {
		t.Errorf("derived address %s must not be on curve", addr)
	}
}

func TestCreateProgramAddressSeedTooLong(t *testing.T) {
	program, _ := FromBase58("BPFLoader1111111111111111111111111111111111")
	_, err := CreateProgramAddress([][]byte{make([]byte, 33)}, program)
	if err == nil {
		t.Error("expected error for 33-byte seed")
	}
}

func TestFindProgramAddress(t *testing.T) {
	program, err := FromBase58("BPFLoader1111111111111111111111111111111111")
	if err != nil {
		t.Fatalf("FromBase58(program): %v", err)
	}

	addr, bump, err := FindProgramAddress([][]byte{[]byte("")}, program)
	if err != nil {
		t.Fatalf("FindProgramAddress: %v", err)
	}

	confirm, err := CreateProgramAddress([][]byte{[]byte(""), {bump}}, program)
	if err != nil {
		t.Fatalf("CreateProgramAddress(confirm): %v", err)
	}
	if !confirm.Equals(addr) {
		t.Errorf("CreateProgramAddress with found bump %d = %s, want %s", bump, confirm, addr)
	}
	if addr.IsOnCurve() {
		t.Errorf("found PDA %s must not be on curve", addr)
	}
}

func TestEqualsAndIsZero(t *testing.T) {
	zero, _ := FromBytes(make([]byte, 32))
	if !zero.IsZero() {
		t.Error("expected IsZero() true for all-zero key")
	}
	nonZero, _ := FromUint(big.NewInt(1))
	if nonZero.IsZero() {
		t.Error("expected IsZero() false for non-zero key")
	}
	if zero.Equals(nonZero) {
		t.Error("expected different keys not to be equal")
	}
}

func TestMarshalJSON(t *testing.T) {
	pk, _ := FromUint(big.NewInt(3))
	b, err := pk.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	want := `"` + pk.Base58() + `"`
	if string(b) != want {
		t.Errorf("MarshalJSON() = %s, want %s", b, want)
	}

	var roundTrip PubKey
	if err := roundTrip.UnmarshalJSON(b); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if !roundTrip.Equals(pk) {
		t.Errorf("UnmarshalJSON round-trip mismatch")
	}
}
