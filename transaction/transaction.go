package transaction

import (
	"bytes"
	"fmt"

	"github.com/ledgerkit/solcore/internal/bincode"
	"github.com/ledgerkit/solcore/internal/ed25519x"
	"github.com/ledgerkit/solcore/pubkey"
	"github.com/ledgerkit/solcore/solerr"
)

// AccountMeta describes one account reference inside a factory-shape
// Instruction: the address plus the signer/writable privileges the
// instruction asks for it. Privileges are the minimum required; the
// builder folds mentions of the same account across instructions with OR.
type AccountMeta struct {
	PubKey   pubkey.PubKey
	Signer   bool
	Writable bool
}

// Instruction is the uncompiled, builder-facing shape of a single
// instruction: a program id, its account list, and raw instruction data.
type Instruction struct {
	Program  pubkey.PubKey
	Accounts []AccountMeta
	Data     []byte
}

// AccountRef is one entry of a transaction's compiled, ordered account
// list, carrying the privileges it was finally assigned.
type AccountRef struct {
	Address  pubkey.PubKey
	Signer   bool
	Writable bool
}

// SignatureSlot pairs a signer address with its signature, in the fixed
// order the message's signer prefix assigns.
type SignatureSlot struct {
	Address   pubkey.PubKey
	Signature Signature
}

// Transaction is a compiled message plus its signature slots. MessageBytes
// is the single source of truth for what gets signed and sent over the
// wire; Accounts and Instructions are convenience views reconstructed for
// inspection and for rebuilding (UpdateFeePayer).
type Transaction struct {
	Signatures   []SignatureSlot
	Accounts     []AccountRef
	Instructions []Instruction
	Blockhash    [32]byte
	MessageBytes []byte
}

// Signature returns the transaction's first (fee-payer) signature, or the
// empty Signature if the transaction has no signers.
func (tx Transaction) Signature() Signature {
	if len(tx.Signatures) == 0 {
		return Signature{}
	}
	return tx.Signatures[0].Signature
}

// Parse decodes a full transaction: a compact-u16 signature count, that
// many 64-byte signature slots, and the remaining bytes as a Message.
func Parse(b []byte) (Transaction, error) {
	sigCount, n, err := bincode.DecodeCompactU16(b)
	if err != nil {
		return Transaction{}, fmt.Errorf("transaction: decode signature count: %w: %v", solerr.ErrMalformedMessage, err)
	}
	pos := n

	if pos+sigCount*SignatureSize > len(b) {
		return Transaction{}, fmt.Errorf("transaction: signature list truncated: %w", solerr.ErrMalformedMessage)
	}
	sigs := make([]Signature, sigCount)
	for i := 0; i < sigCount; i++ {
		copy(sigs[i][:], b[pos:pos+SignatureSize])
		pos += SignatureSize
	}

	messageBytes := b[pos:]
	msg, err := ParseMessage(messageBytes)
	if err != nil {
		return Transaction{}, err
	}

	if int(msg.Header.NumRequiredSignatures) != sigCount {
		return Transaction{}, fmt.Errorf("transaction: %d signature slots but header requires %d: %w",
			sigCount, msg.Header.NumRequiredSignatures, solerr.ErrMalformedMessage)
	}

	accounts := deriveAccountRefs(msg)

	sigSlots := make([]SignatureSlot, sigCount)
	for i := 0; i < sigCount; i++ {
		sigSlots[i] = SignatureSlot{Address: msg.Addresses[i], Signature: sigs[i]}
	}

	instructions := make([]Instruction, len(msg.Instructions))
	for i, ci := range msg.Instructions {
		accts := make([]AccountMeta, len(ci.AccountIdxs))
		for j, idx := range ci.AccountIdxs {
			ref := accounts[idx]
			accts[j] = AccountMeta{PubKey: ref.Address, Signer: ref.Signer, Writable: ref.Writable}
		}
		data := make([]byte, len(ci.Data))
		copy(data, ci.Data)
		instructions[i] = Instruction{
			Program:  msg.Addresses[ci.ProgramIdx],
			Accounts: accts,
			Data:     data,
		}
	}

	return Transaction{
		Signatures:   sigSlots,
		Accounts:     accounts,
		Instructions: instructions,
		Blockhash:    msg.Blockhash,
		MessageBytes: messageBytes,
	}, nil
}

// deriveAccountRefs reconstructs each account's final signer/writable
// privilege from its position relative to the message header's three
// partition counts.
func deriveAccountRefs(msg Message) []AccountRef {
	refs := make([]AccountRef, len(msg.Addresses))
	numSigned := int(msg.Header.NumRequiredSignatures)
	numReadonlySigned := int(msg.Header.NumReadonlySignedAccounts)
	numReadonlyUnsigned := int(msg.Header.NumReadonlyUnsignedAccount)
	numUnsigned := len(msg.Addresses) - numSigned

	for i, addr := range msg.Addresses {
		var signer, writable bool
		if i < numSigned {
			signer = true
			writable = i < numSigned-numReadonlySigned
		} else {
			signer = false
			j := i - numSigned
			writable = j < numUnsigned-numReadonlyUnsigned
		}
		refs[i] = AccountRef{Address: addr, Signer: signer, Writable: writable}
	}
	return refs
}

// ToBuffer serializes the full transaction: compact-u16 signature count,
// each 64-byte slot (zero-filled when empty), followed by the cached
// message bytes.
func (tx Transaction) ToBuffer() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := bincode.EncodeCompactU16(buf, len(tx.Signatures)); err != nil {
		return nil, fmt.Errorf("transaction: encode signature count: %w", err)
	}
	for _, slot := range tx.Signatures {
		buf.Write(slot.Signature.Bytes())
	}
	buf.Write(tx.MessageBytes)
	return buf.Bytes(), nil
}

// AddSignature returns a copy of tx with sig attached to address's slot. It
// fails with solerr.ErrUnknownSigner if address is not a required signer
// of the message.
func (tx Transaction) AddSignature(address pubkey.PubKey, sig [SignatureSize]byte) (Transaction, error) {
	out := tx
	out.Signatures = make([]SignatureSlot, len(tx.Signatures))
	copy(out.Signatures, tx.Signatures)

	for i, slot := range out.Signatures {
		if slot.Address.Equals(address) {
			out.Signatures[i].Signature = Signature(sig)
			return out, nil
		}
	}
	return Transaction{}, fmt.Errorf("transaction: %s is not a required signer: %w", address, solerr.ErrUnknownSigner)
}

// VerifyOptions controls VerifySignatures' tolerance of empty slots.
type VerifyOptions struct {
	// AllowMissing permits empty signature slots instead of failing on the
	// first one encountered.
	AllowMissing bool
}

// VerifySignatures checks every (non-empty, or all if AllowMissing is
// false) signature slot against the message bytes.
func (tx Transaction) VerifySignatures(opts VerifyOptions) error {
	for _, slot := range tx.Signatures {
		if slot.Signature.IsEmpty() {
			if opts.AllowMissing {
				continue
			}
			return fmt.Errorf("transaction: signer %s has no signature: %w", slot.Address, solerr.ErrMissingSignature)
		}
		if !ed25519x.VerifyDetached(tx.MessageBytes, slot.Signature.Bytes(), slot.Address.Bytes()) {
			return fmt.Errorf("transaction: signature by %s does not verify: %w", slot.Address, solerr.ErrInvalidSignature)
		}
	}
	return nil
}
