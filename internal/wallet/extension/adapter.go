package extension

import (
	"context"
	"errors"

	"github.com/srwa-platform/adaptive-wallet/internal/wallet"

	"go.uber.org/zap"
)

// Adapter implements wallet.Adapter over an extension Bridge.
type Adapter struct {
	bridge Bridge
	log    *zap.Logger
}

var _ wallet.Adapter = (*Adapter)(nil)

// NewAdapter creates the extension adapter.
func NewAdapter(bridge Bridge, log *zap.Logger) *Adapter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{bridge: bridge, log: log.Named("extension")}
}

func (a *Adapter) Type() wallet.Type { return wallet.TypeExtension }
func (a *Adapter) Name() string      { return wallet.SupportedWallets[wallet.TypeExtension].Name }

// IsInstalled never fails: any detection error counts as not installed.
func (a *Adapter) IsInstalled(ctx context.Context) bool {
	installed, err := a.bridge.Detect(ctx)
	if err != nil {
		a.log.Debug("extension not detected", zap.Error(err))
		return false
	}
	return installed
}

// Connect performs the extension handshake: install check, permission check
// with an explicit access request when not yet authorized, then account and
// network retrieval.
func (a *Adapter) Connect(ctx context.Context) wallet.ConnectionResult {
	if !a.IsInstalled(ctx) {
		return wallet.ConnectionResult{Err: wallet.NewError(wallet.ErrWalletNotInstalled, "")}
	}

	// Already connected and authorized: just re-derive the account.
	if a.IsConnected(ctx) {
		if account := a.GetAccount(ctx); account != nil {
			a.log.Debug("already connected", zap.String("address", wallet.FormatAddress(account.Address)))
			return wallet.ConnectionResult{Success: true, Account: account}
		}
	}

	if !a.IsAllowed(ctx) {
		return a.requestAccess(ctx)
	}

	account := a.GetAccount(ctx)
	if account == nil {
		// Authorization may have been revoked since the last check.
		return a.requestAccess(ctx)
	}

	a.log.Debug("connected", zap.String("address", wallet.FormatAddress(account.Address)))
	return wallet.ConnectionResult{Success: true, Account: account}
}

func (a *Adapter) requestAccess(ctx context.Context) wallet.ConnectionResult {
	a.log.Debug("requesting extension access")

	if err := a.bridge.RequestAccess(ctx); err != nil {
		if errors.Is(err, ErrUserDeclined) {
			return wallet.ConnectionResult{Err: wallet.WrapError(wallet.ErrConnectionRejected, "", err)}
		}
		return wallet.ConnectionResult{Err: wallet.Normalize(err)}
	}

	if !a.IsAllowed(ctx) {
		return wallet.ConnectionResult{Err: wallet.NewError(wallet.ErrConnectionRejected, "access was not granted")}
	}

	account := a.GetAccount(ctx)
	if account == nil {
		return wallet.ConnectionResult{Err: wallet.NewError(wallet.ErrUnknown, "failed to get account after access granted")}
	}

	return wallet.ConnectionResult{Success: true, Account: account}
}

// Disconnect is a local-state-only reset: the extension has no programmatic
// revoke, the user must disconnect from the extension itself.
func (a *Adapter) Disconnect(ctx context.Context) error {
	a.log.Debug("disconnect is local only; revoke access from the extension")
	return nil
}

func (a *Adapter) IsConnected(ctx context.Context) bool {
	connected, err := a.bridge.IsConnected(ctx)
	if err != nil {
		a.log.Debug("connection probe failed", zap.Error(err))
		return false
	}
	return connected && a.IsAllowed(ctx)
}

func (a *Adapter) IsAllowed(ctx context.Context) bool {
	allowed, err := a.bridge.IsAllowed(ctx)
	if err != nil {
		a.log.Debug("permission probe failed", zap.Error(err))
		return false
	}
	return allowed
}

// GetAccount re-derives the account by querying the extension fresh.
// Returns nil if the extension cannot currently supply one.
func (a *Adapter) GetAccount(ctx context.Context) *wallet.Account {
	if !a.IsAllowed(ctx) {
		return nil
	}

	address, err := a.bridge.GetAddress(ctx)
	if err != nil || address == "" {
		a.log.Debug("failed to get address", zap.Error(err))
		return nil
	}

	network, err := a.GetNetwork(ctx)
	if err != nil {
		a.log.Debug("failed to get network", zap.Error(err))
		return nil
	}

	return &wallet.Account{Address: address, Network: network}
}

// GetNetwork maps the extension-reported passphrase to a known network and
// fails closed on anything unrecognized.
func (a *Adapter) GetNetwork(ctx context.Context) (wallet.NetworkInfo, error) {
	passphrase, err := a.bridge.GetNetworkPassphrase(ctx)
	if err != nil {
		return wallet.NetworkInfo{}, wallet.Normalize(err)
	}
	return wallet.NetworkFromPassphrase(passphrase)
}

// SignTransaction delegates to the extension and distinguishes user
// rejection from genuine faults.
func (a *Adapter) SignTransaction(ctx context.Context, xdr string, opts *wallet.SignOptions) wallet.TransactionResult {
	var passphrase, accountToSign string
	if opts != nil {
		passphrase = opts.NetworkPassphrase
		accountToSign = opts.AccountToSign
	}

	signed, err := a.bridge.SignTransaction(ctx, xdr, passphrase, accountToSign)
	if err != nil {
		if errors.Is(err, ErrUserDeclined) {
			return wallet.TransactionResult{Err: wallet.WrapError(wallet.ErrTransactionRejected, "", err)}
		}
		return wallet.TransactionResult{Err: wallet.Normalize(err)}
	}

	a.log.Debug("transaction signed")
	return wallet.TransactionResult{Success: true, SignedTransaction: signed}
}

// GetBalance is a stub: balance is a ledger fact and is retrieved by the
// balance service, not through the extension.
func (a *Adapter) GetBalance(ctx context.Context, address string) (string, error) {
	return "0", nil
}
