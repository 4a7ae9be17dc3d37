package transaction

import (
	"bytes"
	"testing"

	"github.com/ledgerkit/solcore/pubkey"
)

func testAddresses(t *testing.T, n int) []pubkey.PubKey {
	t.Helper()
	addrs := make([]pubkey.PubKey, n)
	for i := range addrs {
		var b [32]byte
		b[0] = byte(i + 1)
		pk, err := pubkey.FromBytes(b[:])
		if err != nil {
			t.Fatalf("FromBytes: %v", err)
		}
		addrs[i] = pk
	}
	return addrs
}

func TestMessageSerializeParseRoundTrip(t *testing.T) {
	addrs := testAddresses(t, 3)
	msg := Message{
		Header: MessageHeader{
			NumRequiredSignatures:      1,
			NumReadonlySignedAccounts:  0,
			NumReadonlyUnsignedAccount: 1,
		},
		Addresses: addrs,
		Blockhash: [32]byte{9, 9, 9},
		Instructions: []CompiledInstruction{
			{ProgramIdx: 2, AccountIdxs: []uint8{0, 1}, Data: []byte{0xde, 0xad, 0xbe, 0xef}},
		},
	}

	b, err := msg.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	parsed, err := ParseMessage(b)
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}

	if parsed.Header != msg.Header {
		t.Errorf("header = %+v, want %+v", parsed.Header, msg.Header)
	}
	if len(parsed.Addresses) != len(msg.Addresses) {
		t.Fatalf("address count = %d, want %d", len(parsed.Addresses), len(msg.Addresses))
	}
	for i := range msg.Addresses {
		if !parsed.Addresses[i].Equals(msg.Addresses[i]) {
			t.Errorf("address %d = %s, want %s", i, parsed.Addresses[i], msg.Addresses[i])
		}
	}
	if parsed.Blockhash != msg.Blockhash {
		t.Errorf("blockhash = %x, want %x", parsed.Blockhash, msg.Blockhash)
	}
	if len(parsed.Instructions) != 1 {
		t.Fatalf("instruction count = %d, want 1", len(parsed.Instructions))
	}
	ix := parsed.Instructions[0]
	if ix.ProgramIdx != 2 || !bytes.Equal(ix.AccountIdxs, []uint8{0, 1}) || !bytes.Equal(ix.Data, []byte{0xde, 0xad, 0xbe, 0xef}) {
		t.Errorf("instruction = %+v, want ProgramIdx=2 AccountIdxs=[0 1] Data=deadbeef", ix)
	}

	reSerialized, err := parsed.Serialize()
	if err != nil {
		t.Fatalf("Serialize (re-encode): %v", err)
	}
	if !bytes.Equal(b, reSerialized) {
		t.Errorf("re-serialized bytes differ from original")
	}
}

func TestParseMessageRejectsTrailingBytes(t *testing.T) {
	addrs := testAddresses(t, 1)
	msg := Message{
		Header:    MessageHeader{NumRequiredSignatures: 1},
		Addresses: addrs,
		Blockhash: [32]byte{},
	}
	b, err := msg.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	b = append(b, 0xff)
	if _, err := ParseMessage(b); err == nil {
		t.Error("expected error for trailing byte")
	}
}

func TestParseMessageRejectsOutOfRangeIndex(t *testing.T) {
	addrs := testAddresses(t, 1)
	msg := Message{
		Header:       MessageHeader{NumRequiredSignatures: 1},
		Addresses:    addrs,
		Blockhash:    [32]byte{},
		Instructions: []CompiledInstruction{{ProgramIdx: 5, AccountIdxs: nil, Data: nil}},
	}
	b, err := msg.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if _, err := ParseMessage(b); err == nil {
		t.Error("expected error for out-of-range program index")
	}
}

func TestParseMessageRejectsVersionedFlag(t *testing.T) {
	addrs := testAddresses(t, 1)
	msg := Message{
		Header:    MessageHeader{NumRequiredSignatures: 1},
		Addresses: addrs,
	}
	b, err := msg.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	b[0] |= 0x80
	if _, err := ParseMessage(b); err == nil {
		t.Error("expected error for versioned message flag")
	}
}

func TestParseMessageTooShort(t *testing.T) {
	if _, err := ParseMessage([]byte{1, 2}); err == nil {
		t.Error("expected error for header-only input")
	}
}
