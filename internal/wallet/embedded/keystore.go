// Package embedded implements the self-custodied device wallet provider: a
// locally generated Stellar keypair whose secret seed is encrypted at rest
// in a .cwt file. Secret material never leaves the device except through an
// explicit, caller-flagged export.
package embedded

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/srwa-platform/adaptive-wallet/internal/crypto"
	"github.com/srwa-platform/adaptive-wallet/internal/model"
	"github.com/srwa-platform/adaptive-wallet/internal/wallet"

	"github.com/skip2/go-qrcode"
	"github.com/stellar/go/keypair"
)

const walletNetworkLabel = "stellar"

// backupSuffix is appended to the wallet file on clear, so an accidental
// disconnect does not silently destroy the only copy of the key.
const backupSuffix = ".cleared"

// backupPayload is the JSON encoded into the backup QR code.
type backupPayload struct {
	Type    string `json:"type"`
	Secret  string `json:"secret"`
	Created int64  `json:"created"`
	Version string `json:"version"`
}

// HasWallet reports whether key material exists at path.
func HasWallet(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Size() > 0
}

// generateWallet creates a new random keypair, encrypts it to path and
// returns the public address.
// password must be []byte for security (caller should zero it after use)
func generateWallet(path string, password []byte) (string, error) {
	kp, err := keypair.Random()
	if err != nil {
		return "", fmt.Errorf("failed to generate keypair: %w", err)
	}

	address := kp.Address()

	qrCode, err := addressQRCode(address)
	if err != nil {
		return "", fmt.Errorf("failed to generate QR code: %w", err)
	}

	walletData := &model.WalletData{
		SecretSeed: kp.Seed(),
		CreatedAt:  time.Now().Format(time.RFC3339),
	}

	if err := crypto.EncryptWallet(path, walletNetworkLabel, address, qrCode, walletData, password); err != nil {
		return "", fmt.Errorf("failed to encrypt wallet: %w", err)
	}

	return address, nil
}

// importWallet validates a secret seed and replaces any existing wallet at
// path with it. The previous wallet, if any, is moved to the backup file.
func importWallet(path string, secret string, password []byte) (string, error) {
	kp, err := keypair.ParseFull(secret)
	if err != nil {
		return "", fmt.Errorf("invalid secret seed: %w", err)
	}

	if HasWallet(path) {
		if err := clearWallet(path); err != nil {
			return "", err
		}
	}

	address := kp.Address()
	qrCode, err := addressQRCode(address)
	if err != nil {
		return "", fmt.Errorf("failed to generate QR code: %w", err)
	}

	walletData := &model.WalletData{
		SecretSeed: secret,
		CreatedAt:  time.Now().Format(time.RFC3339),
	}

	if err := crypto.EncryptWallet(path, walletNetworkLabel, address, qrCode, walletData, password); err != nil {
		return "", fmt.Errorf("failed to encrypt wallet: %w", err)
	}

	return address, nil
}

// clearWallet moves the wallet file aside to the backup path. The backup
// stays encrypted; a previous backup is overwritten.
func clearWallet(path string) error {
	if !HasWallet(path) {
		return nil
	}
	backup := path + backupSuffix
	if err := os.Remove(backup); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to replace wallet backup: %w", err)
	}
	if err := os.Rename(path, backup); err != nil {
		return fmt.Errorf("failed to clear wallet: %w", err)
	}
	return nil
}

// exportSeed decrypts the wallet and returns its raw secret seed. The
// caller is responsible for flagging the value as sensitive.
func exportSeed(path string, password []byte) (string, error) {
	_, data, err := crypto.DecryptWallet(path, password)
	if err != nil {
		return "", err
	}
	return data.SecretSeed, nil
}

// backupQR builds a QR code PNG (base64) wrapping the secret seed in a
// restore payload.
func backupQR(path string, password []byte) (string, error) {
	seed, err := exportSeed(path, password)
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(backupPayload{
		Type:    "stellar-device-wallet",
		Secret:  seed,
		Created: time.Now().UnixMilli(),
		Version: "1.0",
	})
	if err != nil {
		return "", fmt.Errorf("failed to build backup payload: %w", err)
	}

	return pngQRCode(string(payload))
}

// addressQRCode generates a QR code of the address in base64
func addressQRCode(address string) (string, error) {
	return pngQRCode(address)
}

func pngQRCode(content string) (string, error) {
	qr, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}

// walletAddress is the no-password fast path for the public address.
func walletAddress(path string) (string, error) {
	addr, err := crypto.ReadWalletAddress(path)
	if err != nil {
		return "", err
	}
	if !wallet.ValidAddress(addr) {
		return "", fmt.Errorf("wallet file holds an invalid address")
	}
	return addr, nil
}
