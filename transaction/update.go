package transaction

import (
	"fmt"

	"github.com/ledgerkit/solcore/pubkey"
)

// UpdateBlockhash returns a copy of tx with a new recent blockhash spliced
// into its cached message bytes. Existing signatures are carried over
// unchanged even though they no longer verify against the new message;
// callers must re-sign (or call VerifySignatures) before use.
func UpdateBlockhash(tx Transaction, newBlockhash [32]byte) (Transaction, error) {
	msg, err := ParseMessage(tx.MessageBytes)
	if err != nil {
		return Transaction{}, fmt.Errorf("transaction: update blockhash: %w", err)
	}
	msg.Blockhash = newBlockhash

	msgBytes, err := msg.Serialize()
	if err != nil {
		return Transaction{}, fmt.Errorf("transaction: update blockhash: serialize: %w", err)
	}

	out := tx
	out.Signatures = make([]SignatureSlot, len(tx.Signatures))
	copy(out.Signatures, tx.Signatures)
	out.Blockhash = newBlockhash
	out.MessageBytes = msgBytes
	return out, nil
}

// UpdateFeePayer recompiles tx with a new fee payer, which can reorder the
// account list and shift the signer partition. It rebuilds the message via
// Build and reattaches any signatures whose address still occupies a
// signer slot in the recompiled transaction; signatures that no longer
// apply are dropped.
func UpdateFeePayer(tx Transaction, newFeePayer pubkey.PubKey) (Transaction, error) {
	rebuilt, err := Build(BuildOptions{
		Instructions:          tx.Instructions,
		Blockhash:             tx.Blockhash,
		FeePayer:              &newFeePayer,
		SuppressInvalidSigner: true,
	})
	if err != nil {
		return Transaction{}, fmt.Errorf("transaction: update fee payer: %w", err)
	}

	for _, slot := range tx.Signatures {
		if slot.Signature.IsEmpty() {
			continue
		}
		for _, target := range rebuilt.Signatures {
			if target.Address.Equals(slot.Address) {
				rebuilt, err = rebuilt.AddSignature(slot.Address, [SignatureSize]byte(slot.Signature))
				if err != nil {
					return Transaction{}, fmt.Errorf("transaction: update fee payer: reattach signature: %w", err)
				}
				break
			}
		}
	}

	return rebuilt, nil
}
