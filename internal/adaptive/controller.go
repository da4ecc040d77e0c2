// Package adaptive routes wallet operations to the provider that fits the
// current device: the extension signer on desktop, the embedded device
// wallet on mobile, and whichever the user last used on tablet.
package adaptive

import (
	"context"
	"fmt"
	"sync"

	"github.com/srwa-platform/adaptive-wallet/internal/balance"
	"github.com/srwa-platform/adaptive-wallet/internal/connection"
	"github.com/srwa-platform/adaptive-wallet/internal/device"
	"github.com/srwa-platform/adaptive-wallet/internal/model"
	"github.com/srwa-platform/adaptive-wallet/internal/network"
	"github.com/srwa-platform/adaptive-wallet/internal/wallet"

	"go.uber.org/zap"
)

// Mode is the wallet interaction mode derived from the device class or set
// explicitly by the user.
type Mode string

const (
	ModeDesktop Mode = "desktop"
	ModeMobile  Mode = "mobile"
)

// EmbeddedWallet is the extra capability set of the embedded provider on top
// of the common adapter surface.
type EmbeddedWallet interface {
	wallet.Adapter

	HasWallet() bool
	Export() (string, error)
	Import(secret string) (address string, ok bool)
	BackupQR() (string, error)
	Clear() error
}

// State is the controller's normalized snapshot for API consumption.
type State struct {
	IsConnected    bool
	IsConnecting   bool
	Address        string
	WalletMode     Mode
	WalletProvider wallet.Type
	Network        *wallet.NetworkInfo
	Balance        string
	Err            *wallet.Error
}

// Controller ties device detection, the connection state machine and the
// two wallet providers together behind one interface.
type Controller struct {
	detector  *device.Detector
	manager   *connection.Manager
	extension wallet.Adapter
	embedded  EmbeddedWallet
	balances  *balance.Service
	networks  *network.Service
	log       *zap.Logger

	mu      sync.Mutex
	mode    Mode
	balance string
}

// NewController wires the controller and subscribes it to device changes.
// The initial mode follows the detector's current classification.
func NewController(
	detector *device.Detector,
	manager *connection.Manager,
	extension wallet.Adapter,
	embedded EmbeddedWallet,
	balances *balance.Service,
	networks *network.Service,
	log *zap.Logger,
) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Controller{
		detector:  detector,
		manager:   manager,
		extension: extension,
		embedded:  embedded,
		balances:  balances,
		networks:  networks,
		log:       log.Named("adaptive"),
		balance:   "0",
	}
	c.mode = c.modeFor(detector.Current())
	detector.Subscribe(c.onDeviceChange)
	return c
}

// Mode returns the active wallet mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// modeFor derives the default mode for a device class. Tablets keep an
// existing embedded wallet if one is present, otherwise they also default
// to the embedded flow since extension signers are rare there.
func (c *Controller) modeFor(d device.Classification) Mode {
	switch {
	case d.IsMobile:
		return ModeMobile
	case d.IsTablet:
		return ModeMobile
	default:
		return ModeDesktop
	}
}

// onDeviceChange follows device reclassification while no session is up.
// An active session keeps its mode: a window resize must never swap the
// signer out from under a connected wallet.
func (c *Controller) onDeviceChange(d device.Classification) {
	if c.manager.Status() == wallet.StatusConnected || c.manager.Status() == wallet.StatusConnecting {
		return
	}
	next := c.modeFor(d)

	c.mu.Lock()
	changed := next != c.mode
	c.mode = next
	c.mu.Unlock()

	if changed {
		c.log.Info("wallet mode follows device", zap.String("mode", string(next)))
	}
}

// providerFor maps a mode to its wallet adapter.
func (c *Controller) providerFor(mode Mode) wallet.Adapter {
	if mode == ModeMobile {
		return c.embedded
	}
	return c.extension
}

// adapterByType resolves a wallet type to its adapter, nil when unknown.
func (c *Controller) adapterByType(t wallet.Type) wallet.Adapter {
	switch t {
	case wallet.TypeExtension:
		return c.extension
	case wallet.TypeEmbedded:
		return c.embedded
	}
	return nil
}

// Connect opens a session with the provider for the active mode, or with an
// explicitly requested wallet type.
func (c *Controller) Connect(ctx context.Context, requested wallet.Type) wallet.ConnectionResult {
	var adapter wallet.Adapter
	if requested != "" {
		adapter = c.adapterByType(requested)
		if adapter == nil {
			return wallet.ConnectionResult{Err: wallet.NewError(wallet.ErrUnknown, fmt.Sprintf("unknown wallet type %q", requested))}
		}
	} else {
		adapter = c.providerFor(c.Mode())
	}

	res := c.manager.Connect(ctx, adapter)
	if res.Success {
		c.refreshBalance(ctx)
	}
	return res
}

// Disconnect closes the session. The embedded wallet's key material is
// cleared by its own Disconnect; the extension keeps its authorization.
func (c *Controller) Disconnect(ctx context.Context) {
	c.manager.Disconnect(ctx)
	c.mu.Lock()
	c.balance = "0"
	c.mu.Unlock()
}

// Retry re-runs a failed connect.
func (c *Controller) Retry(ctx context.Context) wallet.ConnectionResult {
	res := c.manager.Retry(ctx)
	if res.Success {
		c.refreshBalance(ctx)
	}
	return res
}

// RestoreSession silently resumes the stored session, if any.
func (c *Controller) RestoreSession(ctx context.Context) bool {
	ok := c.manager.RestoreSession(ctx, c.adapterByType)
	if !ok {
		return false
	}
	if adapter := c.manager.Adapter(); adapter != nil {
		c.mu.Lock()
		if adapter.Type() == wallet.TypeEmbedded {
			c.mode = ModeMobile
		} else {
			c.mode = ModeDesktop
		}
		c.mu.Unlock()
	}
	c.refreshBalance(ctx)
	return true
}

// SignTransaction signs through whichever provider owns the active session.
func (c *Controller) SignTransaction(ctx context.Context, xdr string, opts *wallet.SignOptions) wallet.TransactionResult {
	if c.manager.Status() != wallet.StatusConnected {
		return wallet.TransactionResult{Err: wallet.NewError(wallet.ErrNoWalletConnected, "no wallet connected")}
	}
	adapter := c.manager.Adapter()
	if adapter == nil {
		return wallet.TransactionResult{Err: wallet.NewError(wallet.ErrNoWalletConnected, "no wallet connected")}
	}
	return adapter.SignTransaction(ctx, xdr, opts)
}

// SwitchToMobileMode moves to the embedded flow. An open extension session
// is closed first; embedded key material is never touched by a switch.
func (c *Controller) SwitchToMobileMode(ctx context.Context) {
	c.switchMode(ctx, ModeMobile)
}

// SwitchToDesktopMode moves to the extension flow. The embedded wallet file
// stays on disk so switching back later reconnects to the same account.
func (c *Controller) SwitchToDesktopMode(ctx context.Context) {
	c.switchMode(ctx, ModeDesktop)
}

func (c *Controller) switchMode(ctx context.Context, next Mode) {
	c.mu.Lock()
	if c.mode == next {
		c.mu.Unlock()
		return
	}
	c.mode = next
	c.mu.Unlock()

	if c.manager.Status() != wallet.StatusDisconnected {
		// Close the old provider's session without destroying embedded keys:
		// the manager calls the provider's Disconnect, which for the embedded
		// wallet clears the file to its backup. Avoid that by detaching the
		// session through a targeted teardown instead when leaving mobile.
		c.detachSession(ctx)
	}
	c.log.Info("wallet mode switched", zap.String("mode", string(next)))
}

// detachSession ends the session while preserving embedded key material.
func (c *Controller) detachSession(ctx context.Context) {
	adapter := c.manager.Adapter()
	if adapter != nil && adapter.Type() == wallet.TypeEmbedded {
		// Tear down manager state only; skip the provider disconnect that
		// would clear the wallet file.
		c.manager.DetachSession(ctx)
	} else {
		c.manager.Disconnect(ctx)
	}
	c.mu.Lock()
	c.balance = "0"
	c.mu.Unlock()
}

// RefreshBalance re-reads the balance of the connected account.
func (c *Controller) RefreshBalance(ctx context.Context) (string, error) {
	account := c.manager.Account()
	if account == nil {
		return "", wallet.NewError(wallet.ErrNoWalletConnected, "no wallet connected")
	}
	b, err := c.balances.GetBalance(ctx, account.Address, account.Network)
	if err != nil {
		return "", err
	}
	c.mu.Lock()
	c.balance = b
	c.mu.Unlock()
	return b, nil
}

func (c *Controller) refreshBalance(ctx context.Context) {
	if _, err := c.RefreshBalance(ctx); err != nil {
		c.log.Debug("balance refresh failed", zap.Error(err))
	}
}

// SupportedWallets lists the known wallet providers with their live
// installed flag.
func (c *Controller) SupportedWallets(ctx context.Context) []wallet.Info {
	out := make([]wallet.Info, 0, len(wallet.SupportedWallets))
	for _, t := range []wallet.Type{wallet.TypeExtension, wallet.TypeEmbedded} {
		info := wallet.SupportedWallets[t]
		info.IsInstalled = c.adapterByType(t).IsInstalled(ctx)
		out = append(out, info)
	}
	return out
}

// AllBalances lists every balance line of the connected account.
func (c *Controller) AllBalances(ctx context.Context) ([]model.AssetBalance, error) {
	account := c.manager.Account()
	if account == nil {
		return nil, wallet.NewError(wallet.ErrNoWalletConnected, "no wallet connected")
	}
	return c.balances.AllBalances(ctx, account.Address, account.Network)
}

// Export returns the embedded wallet's secret seed. Extension keys are not
// exportable.
func (c *Controller) Export() (string, error) {
	if !c.embedded.HasWallet() {
		return "", wallet.NewError(wallet.ErrNoWalletConnected, "no device wallet to export")
	}
	return c.embedded.Export()
}

// Import replaces the embedded wallet with an imported secret seed.
func (c *Controller) Import(secret string) (string, bool) {
	return c.embedded.Import(secret)
}

// BackupQR returns the embedded wallet's restore QR code.
func (c *Controller) BackupQR() (string, error) {
	if !c.embedded.HasWallet() {
		return "", wallet.NewError(wallet.ErrNoWalletConnected, "no device wallet to back up")
	}
	return c.embedded.BackupQR()
}

// State returns a normalized snapshot of the whole subsystem.
func (c *Controller) State() State {
	conn := c.manager.State()

	c.mu.Lock()
	mode := c.mode
	bal := c.balance
	c.mu.Unlock()

	st := State{
		IsConnected:  conn.Status == wallet.StatusConnected,
		IsConnecting: conn.Status == wallet.StatusConnecting,
		WalletMode:   mode,
		Balance:      bal,
		Err:          conn.Err,
	}
	if adapter := c.manager.Adapter(); adapter != nil {
		st.WalletProvider = adapter.Type()
	} else {
		st.WalletProvider = c.providerFor(mode).Type()
	}
	if conn.Account != nil {
		st.Address = conn.Account.Address
		n := conn.Account.Network
		st.Network = &n
	}
	return st
}
