// Package transaction implements the compact binary message/transaction
// wire format, account-ordering compilation, and ed25519 signing engine
// for a Solana-style blockchain.
package transaction

import (
	"bytes"
	"fmt"

	"github.com/ledgerkit/solcore/internal/bincode"
	"github.com/ledgerkit/solcore/pubkey"
	"github.com/ledgerkit/solcore/solerr"
)

// MessageHeader is the 3-byte header describing the signer/writable split
// of the address list that follows it.
type MessageHeader struct {
	NumRequiredSignatures      uint8
	NumReadonlySignedAccounts  uint8
	NumReadonlyUnsignedAccount uint8
}

// CompiledInstruction references accounts by index into a Message's
// address list.
type CompiledInstruction struct {
	ProgramIdx  uint8
	AccountIdxs []uint8
	Data        []byte
}

// Message is the signed portion of a transaction: header, ordered address
// list, recent blockhash, and compiled instructions.
type Message struct {
	Header       MessageHeader
	Addresses    []pubkey.PubKey
	Blockhash    [32]byte
	Instructions []CompiledInstruction
}

// Serialize encodes the message in the pre-v0 legacy wire format: a 3-byte
// header, a compact-u16-prefixed address list, the 32-byte blockhash, and a
// compact-u16-prefixed instruction list.
func (m Message) Serialize() ([]byte, error) {
	buf := new(bytes.Buffer)

	buf.WriteByte(m.Header.NumRequiredSignatures)
	buf.WriteByte(m.Header.NumReadonlySignedAccounts)
	buf.WriteByte(m.Header.NumReadonlyUnsignedAccount)

	if err := bincode.EncodeCompactU16(buf, len(m.Addresses)); err != nil {
		return nil, fmt.Errorf("transaction: encode address count: %w", err)
	}
	for _, addr := range m.Addresses {
		buf.Write(addr.Bytes())
	}

	buf.Write(m.Blockhash[:])

	if err := bincode.EncodeCompactU16(buf, len(m.Instructions)); err != nil {
		return nil, fmt.Errorf("transaction: encode instruction count: %w", err)
	}
	for i, ix := range m.Instructions {
		buf.WriteByte(ix.ProgramIdx)

		if err := bincode.EncodeCompactU16(buf, len(ix.AccountIdxs)); err != nil {
			return nil, fmt.Errorf("transaction: encode instruction %d account count: %w", i, err)
		}
		buf.Write(ix.AccountIdxs)

		if err := bincode.EncodeCompactU16(buf, len(ix.Data)); err != nil {
			return nil, fmt.Errorf("transaction: encode instruction %d data length: %w", i, err)
		}
		buf.Write(ix.Data)
	}

	return buf.Bytes(), nil
}

// ParseMessage decodes a Message from its wire format. Parsing validates
// every length and index against the bytes consumed so far and fails with
// solerr.ErrMalformedMessage if any trailing bytes remain.
func ParseMessage(b []byte) (Message, error) {
	if len(b) < 3 {
		return Message{}, fmt.Errorf("transaction: message shorter than header: %w", solerr.ErrMalformedMessage)
	}

	header := MessageHeader{
		NumRequiredSignatures:      b[0],
		NumReadonlySignedAccounts:  b[1],
		NumReadonlyUnsignedAccount: b[2],
	}
	// Top bit of the first header byte is reserved to flag a versioned
	// (address-lookup-table) message, which this core does not support.
	if header.NumRequiredSignatures&0x80 != 0 {
		return Message{}, fmt.Errorf("transaction: versioned messages are not supported: %w", solerr.ErrMalformedMessage)
	}
	pos := 3

	addrCount, n, err := bincode.DecodeCompactU16(b[pos:])
	if err != nil {
		return Message{}, fmt.Errorf("transaction: decode address count: %w: %v", solerr.ErrMalformedMessage, err)
	}
	pos += n

	if pos+addrCount*pubkey.Size > len(b) {
		return Message{}, fmt.Errorf("transaction: address list truncated: %w", solerr.ErrMalformedMessage)
	}
	addresses := make([]pubkey.PubKey, addrCount)
	for i := 0; i < addrCount; i++ {
		addr, err := pubkey.FromBytes(b[pos : pos+pubkey.Size])
		if err != nil {
			return Message{}, fmt.Errorf("transaction: decode address %d: %w", i, solerr.ErrMalformedMessage)
		}
		addresses[i] = addr
		pos += pubkey.Size
	}

	if pos+32 > len(b) {
		return Message{}, fmt.Errorf("transaction: blockhash truncated: %w", solerr.ErrMalformedMessage)
	}
	var blockhash [32]byte
	copy(blockhash[:], b[pos:pos+32])
	pos += 32

	ixCount, n, err := bincode.DecodeCompactU16(b[pos:])
	if err != nil {
		return Message{}, fmt.Errorf("transaction: decode instruction count: %w: %v", solerr.ErrMalformedMessage, err)
	}
	pos += n

	instructions := make([]CompiledInstruction, ixCount)
	for i := 0; i < ixCount; i++ {
		if pos+1 > len(b) {
			return Message{}, fmt.Errorf("transaction: instruction %d program index truncated: %w", i, solerr.ErrMalformedMessage)
		}
		programIdx := b[pos]
		pos++
		if int(programIdx) >= addrCount {
			return Message{}, fmt.Errorf("transaction: instruction %d program index %d out of range: %w", i, programIdx, solerr.ErrMalformedMessage)
		}

		accCount, n, err := bincode.DecodeCompactU16(b[pos:])
		if err != nil {
			return Message{}, fmt.Errorf("transaction: instruction %d decode account count: %w: %v", i, solerr.ErrMalformedMessage, err)
		}
		pos += n
		if pos+accCount > len(b) {
			return Message{}, fmt.Errorf("transaction: instruction %d account indices truncated: %w", i, solerr.ErrMalformedMessage)
		}
		accountIdxs := make([]uint8, accCount)
		for j := 0; j < accCount; j++ {
			idx := b[pos+j]
			if int(idx) >= addrCount {
				return Message{}, fmt.Errorf("transaction: instruction %d account index %d out of range: %w", i, idx, solerr.ErrMalformedMessage)
			}
			accountIdxs[j] = idx
		}
		pos += accCount

		dataLen, n, err := bincode.DecodeCompactU16(b[pos:])
		if err != nil {
			return Message{}, fmt.Errorf("transaction: instruction %d decode data length: %w: %v", i, solerr.ErrMalformedMessage, err)
		}
		pos += n
		if pos+dataLen > len(b) {
			return Message{}, fmt.Errorf("transaction: instruction %d data truncated: %w", i, solerr.ErrMalformedMessage)
		}
		data := make([]byte, dataLen)
		copy(data, b[pos:pos+dataLen])
		pos += dataLen

		instructions[i] = CompiledInstruction{
			ProgramIdx:  programIdx,
			AccountIdxs: accountIdxs,
			Data:        data,
		}
	}

	if pos != len(b) {
		return Message{}, fmt.Errorf("transaction: %d trailing bytes after message: %w", len(b)-pos, solerr.ErrMalformedMessage)
	}

	return Message{
		Header:       header,
		Addresses:    addresses,
		Blockhash:    blockhash,
		Instructions: instructions,
	}, nil
}
