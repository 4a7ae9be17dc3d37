// Command solcli is a local demonstration of solcore's transaction
// pipeline: derive a keypair from a mnemonic, build and sign a transfer
// instruction against a zero blockhash, serialize it, parse it back, and
// verify the result. It never talks to a network.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ledgerkit/solcore/keypair"
	"github.com/ledgerkit/solcore/pubkey"
	"github.com/ledgerkit/solcore/solcfg"
	"github.com/ledgerkit/solcore/sollog"
	"github.com/ledgerkit/solcore/transaction"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "solcli:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := solcfg.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := sollog.Setup(cfg.LogLevel); err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}

	mnemonic, err := readMnemonicFile(cfg.MnemonicFile)
	if err != nil {
		return fmt.Errorf("read mnemonic: %w", err)
	}

	seed, err := keypair.MnemonicToSeed(mnemonic, "")
	if err != nil {
		return fmt.Errorf("derive seed: %w", err)
	}

	kp, err := keypair.DeriveFromSeed(seed, cfg.AccountIndex)
	if err != nil {
		return fmt.Errorf("derive keypair: %w", err)
	}
	slog.Info("derived keypair", "accountIndex", cfg.AccountIndex, "address", kp.Public.Base58())

	recipient, err := keypair.Generate()
	if err != nil {
		return fmt.Errorf("generate recipient: %w", err)
	}

	systemProgram, err := pubkey.FromBase58(solcfg.SystemProgramID)
	if err != nil {
		return fmt.Errorf("parse system program id: %w", err)
	}

	transferInstruction := transaction.Instruction{
		Program: systemProgram,
		Accounts: []transaction.AccountMeta{
			{PubKey: kp.Public, Signer: true, Writable: true},
			{PubKey: recipient.Public, Signer: false, Writable: true},
		},
		Data: transferData(1_000_000),
	}

	var zeroBlockhash [32]byte

	tx, err := transaction.Build(transaction.BuildOptions{
		Instructions: []transaction.Instruction{transferInstruction},
		Blockhash:    zeroBlockhash,
		FeePayer:     &kp.Public,
		Signers:      [][]byte{kp.Secret},
	})
	if err != nil {
		return fmt.Errorf("build transaction: %w", err)
	}
	fmt.Printf("built transaction: fee payer %s, signature %s\n", kp.Public, tx.Signature())

	wire, err := tx.ToBuffer()
	if err != nil {
		return fmt.Errorf("serialize transaction: %w", err)
	}
	fmt.Printf("serialized to %d bytes\n", len(wire))

	parsed, err := transaction.Parse(wire)
	if err != nil {
		return fmt.Errorf("parse transaction: %w", err)
	}

	if err := parsed.VerifySignatures(transaction.VerifyOptions{}); err != nil {
		return fmt.Errorf("verify transaction: %w", err)
	}
	fmt.Println("signature verified after round trip")

	return nil
}

func readMnemonicFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read mnemonic file %q: %w", path, err)
	}
	mnemonic := strings.TrimSpace(string(data))
	return mnemonic, nil
}

// transferData encodes a System Program transfer instruction's payload:
// a 4-byte little-endian instruction index (2 = Transfer) followed by an
// 8-byte little-endian lamport amount.
func transferData(lamports uint64) []byte {
	data := make([]byte, 12)
	data[0] = 2
	for i := 0; i < 8; i++ {
		data[4+i] = byte(lamports >> (8 * i))
	}
	return data
}
