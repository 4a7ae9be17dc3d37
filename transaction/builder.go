package transaction

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/ledgerkit/solcore/internal/ed25519x"
	"github.com/ledgerkit/solcore/pubkey"
	"github.com/ledgerkit/solcore/solerr"
)

// accountFlags tracks the signer/writable privileges folded across every
// mention of one account.
type accountFlags struct {
	signer   bool
	writable bool
}

// accountRank places accounts into the wire's five-way partition. Rank 1 is
// intentionally unused, reserved as a gap between the fee payer (rank 0)
// and the ordinary writable-signer group (rank 2), so that a future
// privilege class can be inserted ahead of writable signers without
// renumbering everything below it.
func accountRank(addr pubkey.PubKey, feePayer *pubkey.PubKey, flags accountFlags) int {
	if feePayer != nil && addr.Equals(*feePayer) {
		return 0
	}
	switch {
	case flags.signer && flags.writable:
		return 2
	case flags.signer && !flags.writable:
		return 3
	case !flags.signer && flags.writable:
		return 4
	default:
		return 5
	}
}

// BuildOptions configures Build.
type BuildOptions struct {
	Instructions []Instruction
	Blockhash    [32]byte
	// FeePayer, if set, is forced to the front of the account list as a
	// writable signer regardless of how instructions reference it.
	FeePayer *pubkey.PubKey
	// Signers are raw 64-byte ed25519 secret keys used to fill in every
	// signature slot whose address they match.
	Signers [][]byte
	// SuppressInvalidSigner, when true, silently skips a signer secret that
	// does not match any required-signer slot instead of failing.
	SuppressInvalidSigner bool
}

// Build compiles instructions into an ordered account list and message,
// then signs it with every matching signer in Signers.
//
// Accounts are folded across every instruction (each instruction's program
// id included, as a non-signer non-writable account unless a later mention
// upgrades it), sorted by accountRank with ties broken by ascending base58
// address, and split into the header's three counts.
func Build(opts BuildOptions) (Transaction, error) {
	order := make([]pubkey.PubKey, 0)
	flags := make(map[pubkey.PubKey]accountFlags)

	touch := func(addr pubkey.PubKey, signer, writable bool) {
		f, ok := flags[addr]
		if !ok {
			order = append(order, addr)
		}
		flags[addr] = accountFlags{
			signer:   f.signer || signer,
			writable: f.writable || writable,
		}
	}

	for _, ix := range opts.Instructions {
		touch(ix.Program, false, false)
		for _, acc := range ix.Accounts {
			touch(acc.PubKey, acc.Signer, acc.Writable)
		}
	}

	if opts.FeePayer != nil {
		if _, ok := flags[*opts.FeePayer]; !ok {
			order = append(order, *opts.FeePayer)
		}
		flags[*opts.FeePayer] = accountFlags{signer: true, writable: true}
	}

	sort.SliceStable(order, func(i, j int) bool {
		ri := accountRank(order[i], opts.FeePayer, flags[order[i]])
		rj := accountRank(order[j], opts.FeePayer, flags[order[j]])
		if ri != rj {
			return ri < rj
		}
		return order[i].Base58() < order[j].Base58()
	})

	index := make(map[pubkey.PubKey]uint8, len(order))
	for i, addr := range order {
		index[addr] = uint8(i)
	}

	var numRequiredSignatures, numReadonlySigned, numReadonlyUnsigned uint8
	for _, addr := range order {
		f := flags[addr]
		if f.signer {
			numRequiredSignatures++
			if !f.writable {
				numReadonlySigned++
			}
		} else if !f.writable {
			numReadonlyUnsigned++
		}
	}

	compiled := make([]CompiledInstruction, len(opts.Instructions))
	for i, ix := range opts.Instructions {
		accIdxs := make([]uint8, len(ix.Accounts))
		for j, acc := range ix.Accounts {
			accIdxs[j] = index[acc.PubKey]
		}
		data := make([]byte, len(ix.Data))
		copy(data, ix.Data)
		compiled[i] = CompiledInstruction{
			ProgramIdx:  index[ix.Program],
			AccountIdxs: accIdxs,
			Data:        data,
		}
	}

	msg := Message{
		Header: MessageHeader{
			NumRequiredSignatures:      numRequiredSignatures,
			NumReadonlySignedAccounts:  numReadonlySigned,
			NumReadonlyUnsignedAccount: numReadonlyUnsigned,
		},
		Addresses:    order,
		Blockhash:    opts.Blockhash,
		Instructions: compiled,
	}

	msgBytes, err := msg.Serialize()
	if err != nil {
		return Transaction{}, fmt.Errorf("transaction: serialize compiled message: %w", err)
	}

	sigSlots := make([]SignatureSlot, numRequiredSignatures)
	for i := 0; i < int(numRequiredSignatures); i++ {
		sigSlots[i] = SignatureSlot{Address: order[i]}
	}

	tx := Transaction{
		Signatures:   sigSlots,
		Accounts:     deriveAccountRefs(msg),
		Instructions: opts.Instructions,
		Blockhash:    opts.Blockhash,
		MessageBytes: msgBytes,
	}

	for _, secret := range opts.Signers {
		kp, err := ed25519x.KeypairFromSecret(secret)
		if err != nil {
			return Transaction{}, fmt.Errorf("transaction: build signer: %w", err)
		}
		signerAddr, err := pubkey.FromBytes(kp.Public)
		if err != nil {
			return Transaction{}, fmt.Errorf("transaction: build signer public key: %w", err)
		}

		found := false
		for _, slot := range tx.Signatures {
			if slot.Address.Equals(signerAddr) {
				found = true
				break
			}
		}
		if !found {
			if opts.SuppressInvalidSigner {
				continue
			}
			return Transaction{}, fmt.Errorf("transaction: signer %s is not in the account list: %w", signerAddr, solerr.ErrUnknownSigner)
		}

		sigBytes, err := ed25519x.SignDetached(tx.MessageBytes, secret)
		if err != nil {
			return Transaction{}, fmt.Errorf("transaction: sign message: %w", err)
		}
		sig, err := SignatureFromBytes(sigBytes)
		if err != nil {
			return Transaction{}, fmt.Errorf("transaction: build signer: %w", err)
		}
		tx, err = tx.AddSignature(signerAddr, sig)
		if err != nil {
			return Transaction{}, err
		}
	}

	slog.Debug("built transaction",
		"numAccounts", len(order),
		"numRequiredSignatures", numRequiredSignatures,
		"numInstructions", len(compiled),
	)

	return tx, nil
}
