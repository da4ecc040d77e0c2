// rotate_password re-encrypts the device wallet file under a new password.
// The wallet is decrypted with the old password, written to a temporary .cwt
// with a fresh salt and nonce, and swapped into place atomically.
// Usage: WALLET_FILE_PATH=/path/wallet.cwt go run ./cmd/rotate_password
package main

import (
	"fmt"
	"os"

	"github.com/srwa-platform/adaptive-wallet/internal/crypto"

	"golang.org/x/term"
)

func main() {
	filePath := os.Getenv("WALLET_FILE_PATH")
	if filePath == "" {
		fmt.Fprintln(os.Stderr, "WALLET_FILE_PATH not set")
		os.Exit(1)
	}

	oldPassword, err := readPassword("Current wallet password: ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer clear(oldPassword)

	cwtFile, walletData, err := crypto.DecryptWallet(filePath, oldPassword)
	if err != nil {
		fmt.Fprintln(os.Stderr, "decrypt failed:", err)
		os.Exit(1)
	}

	newPassword, err := readPassword("New wallet password: ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer clear(newPassword)

	confirm, err := readPassword("Repeat new wallet password: ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer clear(confirm)

	if string(newPassword) != string(confirm) {
		fmt.Fprintln(os.Stderr, "passwords do not match")
		os.Exit(1)
	}

	tmpPath := filePath + ".rotating.cwt"
	if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	err = crypto.EncryptWallet(tmpPath, cwtFile.Network, cwtFile.Address, cwtFile.QR, walletData, newPassword)
	if err != nil {
		fmt.Fprintln(os.Stderr, "re-encrypt failed:", err)
		os.Exit(1)
	}

	if err := os.Rename(tmpPath, filePath); err != nil {
		fmt.Fprintln(os.Stderr, "failed to replace wallet file:", err)
		os.Exit(1)
	}

	fmt.Println("wallet password rotated for", cwtFile.Address)
}

func readPassword(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, fmt.Errorf("stdin is not a terminal")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("password cannot be empty")
	}
	return raw, nil
}
