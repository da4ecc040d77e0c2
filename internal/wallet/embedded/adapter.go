package embedded

import (
	"context"
	"fmt"
	"sync"

	"github.com/srwa-platform/adaptive-wallet/internal/crypto"
	"github.com/srwa-platform/adaptive-wallet/internal/wallet"

	"github.com/stellar/go/keypair"
	"github.com/stellar/go/txnbuild"
	"go.uber.org/zap"
)

// Adapter implements wallet.Adapter for the device wallet. There is nothing
// to install and no user-facing permission prompt: the first connect
// generates (or loads) the keypair and returns it as the account.
type Adapter struct {
	mu       sync.Mutex
	filePath string
	password func() ([]byte, error)
	netInfo  wallet.NetworkInfo
	funder   Funder
	log      *zap.Logger
}

var _ wallet.Adapter = (*Adapter)(nil)

// NewAdapter creates the embedded adapter. password supplies a fresh copy of
// the encryption password; the adapter zeroes every copy after use. funder
// may be nil to disable account activation (mainnet, tests).
func NewAdapter(filePath string, password func() ([]byte, error), netInfo wallet.NetworkInfo, funder Funder, log *zap.Logger) *Adapter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{
		filePath: filePath,
		password: password,
		netInfo:  netInfo,
		funder:   funder,
		log:      log.Named("embedded"),
	}
}

func (a *Adapter) Type() wallet.Type { return wallet.TypeEmbedded }
func (a *Adapter) Name() string      { return wallet.SupportedWallets[wallet.TypeEmbedded].Name }

// IsInstalled is always true: the embedded wallet has no external dependency.
func (a *Adapter) IsInstalled(ctx context.Context) bool { return true }

// HasWallet reports whether key material exists on this device.
func (a *Adapter) HasWallet() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return HasWallet(a.filePath)
}

// Connect loads the existing wallet or generates a new one. Generation is
// first-connect-creates: no separate create step exists. New testnet
// accounts are funded best effort; a funding failure does not fail connect.
func (a *Adapter) Connect(ctx context.Context) wallet.ConnectionResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	if HasWallet(a.filePath) {
		address, err := walletAddress(a.filePath)
		if err != nil {
			return wallet.ConnectionResult{Err: wallet.WrapError(wallet.ErrUnknown, "failed to read device wallet", err)}
		}
		a.log.Debug("using existing device wallet", zap.String("address", wallet.FormatAddress(address)))
		return wallet.ConnectionResult{Success: true, Account: &wallet.Account{Address: address, Network: a.netInfo}}
	}

	pw, err := a.password()
	if err != nil {
		return wallet.ConnectionResult{Err: wallet.WrapError(wallet.ErrUnknown, "wallet password unavailable", err)}
	}
	defer clear(pw)

	address, err := generateWallet(a.filePath, pw)
	if err != nil {
		return wallet.ConnectionResult{Err: wallet.WrapError(wallet.ErrUnknown, "failed to generate device wallet", err)}
	}
	a.log.Info("new device wallet generated", zap.String("address", wallet.FormatAddress(address)))

	a.fundNewAccount(ctx, address)

	return wallet.ConnectionResult{Success: true, Account: &wallet.Account{Address: address, Network: a.netInfo}}
}

func (a *Adapter) fundNewAccount(ctx context.Context, address string) {
	if a.funder == nil || a.netInfo.Type != wallet.NetworkTestnet {
		return
	}
	if err := a.funder.Fund(ctx, address); err != nil {
		a.log.Warn("auto-funding failed, account must be funded manually", zap.Error(err))
		return
	}
	if !a.funder.WaitForActivation(ctx, address) {
		a.log.Warn("account funded but activation not yet visible")
		return
	}
	a.log.Info("account funded and activated", zap.String("address", wallet.FormatAddress(address)))
}

// Disconnect clears the locally held keypair material. Irreversible from the
// caller's point of view; the encrypted backup file is the only safety net.
func (a *Adapter) Disconnect(ctx context.Context) error {
	return a.Clear()
}

// Clear moves the wallet file to its backup path.
func (a *Adapter) Clear() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := clearWallet(a.filePath); err != nil {
		return err
	}
	a.log.Info("device wallet cleared")
	return nil
}

func (a *Adapter) IsConnected(ctx context.Context) bool { return a.HasWallet() }
func (a *Adapter) IsAllowed(ctx context.Context) bool   { return a.HasWallet() }

// GetAccount re-reads the address from the wallet file; nil when no wallet
// exists on this device.
func (a *Adapter) GetAccount(ctx context.Context) *wallet.Account {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !HasWallet(a.filePath) {
		return nil
	}
	address, err := walletAddress(a.filePath)
	if err != nil {
		a.log.Debug("failed to read wallet address", zap.Error(err))
		return nil
	}
	return &wallet.Account{Address: address, Network: a.netInfo}
}

// GetNetwork returns the statically configured network: the device wallet
// always runs on the network the daemon was started for.
func (a *Adapter) GetNetwork(ctx context.Context) (wallet.NetworkInfo, error) {
	return a.netInfo, nil
}

// SignTransaction signs a base64 XDR envelope locally with the device key.
// Fee-bump envelopes are supported.
func (a *Adapter) SignTransaction(ctx context.Context, xdr string, opts *wallet.SignOptions) wallet.TransactionResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !HasWallet(a.filePath) {
		return wallet.TransactionResult{Err: wallet.NewError(wallet.ErrNoWalletConnected, "no device wallet on this device")}
	}

	pw, err := a.password()
	if err != nil {
		return wallet.TransactionResult{Err: wallet.WrapError(wallet.ErrUnknown, "wallet password unavailable", err)}
	}
	defer clear(pw)

	_, data, err := crypto.DecryptWallet(a.filePath, pw)
	if err != nil {
		return wallet.TransactionResult{Err: wallet.WrapError(wallet.ErrUnknown, "failed to decrypt device wallet", err)}
	}

	kp, err := keypair.ParseFull(data.SecretSeed)
	if err != nil {
		return wallet.TransactionResult{Err: wallet.WrapError(wallet.ErrUnknown, "corrupted device wallet key", err)}
	}

	passphrase := a.netInfo.NetworkPassphrase
	if opts != nil && opts.NetworkPassphrase != "" {
		passphrase = opts.NetworkPassphrase
	}

	signed, err := signEnvelope(xdr, passphrase, kp)
	if err != nil {
		return wallet.TransactionResult{Err: wallet.WrapError(wallet.ErrUnknown, "failed to sign transaction", err)}
	}

	a.log.Debug("transaction signed", zap.String("signer", wallet.FormatAddress(kp.Address())))
	return wallet.TransactionResult{Success: true, SignedTransaction: signed}
}

func signEnvelope(xdr, passphrase string, kp *keypair.Full) (string, error) {
	generic, err := txnbuild.TransactionFromXDR(xdr)
	if err != nil {
		return "", fmt.Errorf("failed to parse transaction XDR: %w", err)
	}

	if tx, ok := generic.Transaction(); ok {
		signedTx, err := tx.Sign(passphrase, kp)
		if err != nil {
			return "", err
		}
		return signedTx.Base64()
	}

	if fb, ok := generic.FeeBump(); ok {
		signedFb, err := fb.Sign(passphrase, kp)
		if err != nil {
			return "", err
		}
		return signedFb.Base64()
	}

	return "", fmt.Errorf("unsupported transaction envelope")
}

// GetBalance is a stub: balance retrieval goes through the balance service.
func (a *Adapter) GetBalance(ctx context.Context, address string) (string, error) {
	return "0", nil
}

// Export decrypts and returns the raw secret seed. Callers must flag the
// value as sensitive before showing it to anyone.
func (a *Adapter) Export() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	pw, err := a.password()
	if err != nil {
		return "", err
	}
	defer clear(pw)

	return exportSeed(a.filePath, pw)
}

// Import validates a secret seed and replaces any existing wallet with it.
// Returns ok=false with a message instead of an error so callers can show
// inline validation feedback.
func (a *Adapter) Import(secret string) (address string, ok bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !wallet.ValidSecretSeed(secret) {
		return "", false
	}

	pw, err := a.password()
	if err != nil {
		a.log.Warn("wallet password unavailable for import", zap.Error(err))
		return "", false
	}
	defer clear(pw)

	address, err = importWallet(a.filePath, secret, pw)
	if err != nil {
		a.log.Warn("wallet import failed", zap.Error(err))
		return "", false
	}
	a.log.Info("device wallet imported", zap.String("address", wallet.FormatAddress(address)))
	return address, true
}

// BackupQR returns a base64 PNG QR code of the wallet's restore payload.
// The payload embeds the secret seed: treat the image as sensitive.
func (a *Adapter) BackupQR() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	pw, err := a.password()
	if err != nil {
		return "", err
	}
	defer clear(pw)

	return backupQR(a.filePath, pw)
}
