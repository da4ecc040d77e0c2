package adaptive

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/srwa-platform/adaptive-wallet/internal/balance"
	"github.com/srwa-platform/adaptive-wallet/internal/connection"
	"github.com/srwa-platform/adaptive-wallet/internal/device"
	"github.com/srwa-platform/adaptive-wallet/internal/network"
	"github.com/srwa-platform/adaptive-wallet/internal/storage"
	"github.com/srwa-platform/adaptive-wallet/internal/wallet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	extensionAddress = "GDQP2KPQGKIHYJGXNUIYOMHARUARCA7DJT5FO2FFOOKY3B2WSQHG4W37"
	embeddedAddress  = "GCEZWKCA5VLDNRLN3RPRJMRZOX3Z6G5CHCGSNFHEYVXM3XOJMDS674JZ"

	iphoneUA  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)"
	desktopUA = "Mozilla/5.0 (X11; Linux x86_64)"
)

// fakeProvider is a scriptable adapter used for both provider slots.
type fakeProvider struct {
	mu sync.Mutex

	typ     wallet.Type
	account *wallet.Account

	hasWallet    bool
	connectCalls int
	disconnects  int
	signCalls    int
}

func newFakeProvider(t *testing.T, typ wallet.Type, address string) *fakeProvider {
	t.Helper()
	n, err := wallet.Network(wallet.NetworkTestnet)
	require.NoError(t, err)
	return &fakeProvider{
		typ:     typ,
		account: &wallet.Account{Address: address, Network: n},
	}
}

func (f *fakeProvider) Type() wallet.Type                      { return f.typ }
func (f *fakeProvider) Name() string                           { return string(f.typ) }
func (f *fakeProvider) IsInstalled(ctx context.Context) bool   { return true }
func (f *fakeProvider) IsConnected(ctx context.Context) bool   { return f.HasWallet() }
func (f *fakeProvider) IsAllowed(ctx context.Context) bool     { return f.HasWallet() }
func (f *fakeProvider) GetAccount(ctx context.Context) *wallet.Account {
	if !f.HasWallet() {
		return nil
	}
	return f.account
}

func (f *fakeProvider) GetNetwork(ctx context.Context) (wallet.NetworkInfo, error) {
	return f.account.Network, nil
}

func (f *fakeProvider) Connect(ctx context.Context) wallet.ConnectionResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connectCalls++
	f.hasWallet = true
	return wallet.ConnectionResult{Success: true, Account: f.account}
}

func (f *fakeProvider) Disconnect(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disconnects++
	f.hasWallet = false
	return nil
}

func (f *fakeProvider) SignTransaction(ctx context.Context, xdr string, opts *wallet.SignOptions) wallet.TransactionResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signCalls++
	return wallet.TransactionResult{Success: true, SignedTransaction: "signed:" + xdr}
}

func (f *fakeProvider) GetBalance(ctx context.Context, address string) (string, error) {
	return "0", nil
}

func (f *fakeProvider) HasWallet() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasWallet
}

func (f *fakeProvider) Export() (string, error)            { return "SSEED", nil }
func (f *fakeProvider) Import(secret string) (string, bool) { return f.account.Address, true }
func (f *fakeProvider) BackupQR() (string, error)          { return "cXI=", nil }
func (f *fakeProvider) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hasWallet = false
	return nil
}

type fixture struct {
	controller *Controller
	detector   *device.Detector
	manager    *connection.Manager
	extension  *fakeProvider
	embedded   *fakeProvider
	store      *storage.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	// Horizon stub: every account reads as not yet on the ledger.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"type":"https://stellar.org/horizon-errors/not_found","title":"Resource Missing","status":404}`))
	}))
	t.Cleanup(srv.Close)

	netInfo, err := wallet.Network(wallet.NetworkTestnet)
	require.NoError(t, err)
	netInfo.HorizonURL = srv.URL

	detector := device.NewDetector(nil)
	store := storage.NewService(t.TempDir(), 7*24*time.Hour, nil)
	manager := connection.NewManager(store, time.Minute, nil)
	extension := newFakeProvider(t, wallet.TypeExtension, extensionAddress)
	embedded := newFakeProvider(t, wallet.TypeEmbedded, embeddedAddress)
	extension.account.Network = netInfo
	embedded.account.Network = netInfo

	controller := NewController(detector, manager, extension, embedded,
		balance.NewService(nil), network.NewService(netInfo, nil), nil)

	return &fixture{
		controller: controller,
		detector:   detector,
		manager:    manager,
		extension:  extension,
		embedded:   embedded,
		store:      store,
	}
}

func TestModeFollowsDevice(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, ModeDesktop, f.controller.Mode())

	f.detector.Update(iphoneUA, 390)
	assert.Equal(t, ModeMobile, f.controller.Mode())

	f.detector.Update(desktopUA, 1920)
	assert.Equal(t, ModeDesktop, f.controller.Mode())
}

func TestTabletDefaultsToEmbedded(t *testing.T) {
	f := newFixture(t)

	f.detector.Update("Mozilla/5.0 (iPad; CPU OS 17_0)", 834)
	assert.Equal(t, ModeMobile, f.controller.Mode())
}

func TestConnectRoutesByMode(t *testing.T) {
	f := newFixture(t)

	// Desktop: extension signer.
	res := f.controller.Connect(context.Background(), "")
	require.True(t, res.Success)
	assert.Equal(t, 1, f.extension.connectCalls)
	assert.Equal(t, 0, f.embedded.connectCalls)
	assert.Equal(t, extensionAddress, res.Account.Address)

	f.controller.Disconnect(context.Background())

	// Mobile: embedded wallet.
	f.detector.Update(iphoneUA, 390)
	res = f.controller.Connect(context.Background(), "")
	require.True(t, res.Success)
	assert.Equal(t, 1, f.embedded.connectCalls)
	assert.Equal(t, embeddedAddress, res.Account.Address)

	f.controller.Disconnect(context.Background())
}

func TestConnectExplicitTypeOverridesMode(t *testing.T) {
	f := newFixture(t)

	res := f.controller.Connect(context.Background(), wallet.TypeEmbedded)
	require.True(t, res.Success)
	assert.Equal(t, 0, f.extension.connectCalls)
	assert.Equal(t, 1, f.embedded.connectCalls)

	f.controller.Disconnect(context.Background())
}

func TestConnectUnknownType(t *testing.T) {
	f := newFixture(t)

	res := f.controller.Connect(context.Background(), wallet.Type("metamask"))
	assert.False(t, res.Success)
	require.NotNil(t, res.Err)
}

func TestSignRequiresConnection(t *testing.T) {
	f := newFixture(t)

	res := f.controller.SignTransaction(context.Background(), "xdr", nil)
	assert.False(t, res.Success)
	require.NotNil(t, res.Err)
	assert.Equal(t, wallet.ErrNoWalletConnected, res.Err.Code)
}

func TestSignDispatchesToActiveProvider(t *testing.T) {
	f := newFixture(t)

	require.True(t, f.controller.Connect(context.Background(), wallet.TypeEmbedded).Success)
	res := f.controller.SignTransaction(context.Background(), "xdr", nil)
	require.True(t, res.Success)
	assert.Equal(t, "signed:xdr", res.SignedTransaction)
	assert.Equal(t, 1, f.embedded.signCalls)
	assert.Equal(t, 0, f.extension.signCalls)

	f.controller.Disconnect(context.Background())
}

func TestDeviceChangeIgnoredWhileConnected(t *testing.T) {
	f := newFixture(t)

	require.True(t, f.controller.Connect(context.Background(), "").Success)
	f.detector.Update(iphoneUA, 390)
	assert.Equal(t, ModeDesktop, f.controller.Mode(), "mode is pinned while a session is up")

	f.controller.Disconnect(context.Background())
}

func TestSwitchToDesktopPreservesEmbeddedWallet(t *testing.T) {
	f := newFixture(t)
	f.detector.Update(iphoneUA, 390)

	require.True(t, f.controller.Connect(context.Background(), "").Success)
	require.True(t, f.embedded.HasWallet())

	f.controller.SwitchToDesktopMode(context.Background())

	assert.Equal(t, ModeDesktop, f.controller.Mode())
	assert.Equal(t, wallet.StatusDisconnected, f.manager.Status())
	assert.True(t, f.embedded.HasWallet(), "switching modes never destroys key material")
	assert.Equal(t, 0, f.embedded.disconnects)
}

func TestSwitchToMobileClosesExtensionSession(t *testing.T) {
	f := newFixture(t)

	require.True(t, f.controller.Connect(context.Background(), "").Success)
	f.controller.SwitchToMobileMode(context.Background())

	assert.Equal(t, ModeMobile, f.controller.Mode())
	assert.Equal(t, wallet.StatusDisconnected, f.manager.Status())
	assert.Equal(t, 1, f.extension.disconnects)
}

func TestStateSnapshot(t *testing.T) {
	f := newFixture(t)

	st := f.controller.State()
	assert.False(t, st.IsConnected)
	assert.Equal(t, ModeDesktop, st.WalletMode)
	assert.Equal(t, wallet.TypeExtension, st.WalletProvider)
	assert.Equal(t, "0", st.Balance)

	require.True(t, f.controller.Connect(context.Background(), "").Success)
	st = f.controller.State()
	assert.True(t, st.IsConnected)
	assert.Equal(t, extensionAddress, st.Address)
	require.NotNil(t, st.Network)
	assert.Equal(t, wallet.NetworkTestnet, st.Network.Type)

	f.controller.Disconnect(context.Background())
	st = f.controller.State()
	assert.False(t, st.IsConnected)
	assert.Empty(t, st.Address)
	assert.Equal(t, "0", st.Balance)
}

func TestRestoreSessionThroughController(t *testing.T) {
	f := newFixture(t)
	f.embedded.hasWallet = true

	require.NoError(t, f.store.SaveConnection(storage.ConnectionRecord{
		WalletType:  wallet.TypeEmbedded,
		Address:     embeddedAddress,
		ConnectedAt: time.Now().UnixMilli(),
		Network:     "testnet",
	}))

	require.True(t, f.controller.RestoreSession(context.Background()))
	assert.Equal(t, wallet.StatusConnected, f.manager.Status())
	assert.Equal(t, ModeMobile, f.controller.Mode(), "restored embedded session pulls mode to mobile")
	assert.Equal(t, 0, f.embedded.connectCalls, "restore never prompts")

	f.controller.SwitchToDesktopMode(context.Background())
}

func TestSupportedWallets(t *testing.T) {
	f := newFixture(t)

	infos := f.controller.SupportedWallets(context.Background())
	require.Len(t, infos, 2)
	assert.Equal(t, "freighter", infos[0].ID)
	assert.Equal(t, wallet.TypeExtension, infos[0].Type)
	assert.True(t, infos[0].IsInstalled)
	assert.Equal(t, "embedded", infos[1].ID)
	assert.True(t, infos[1].IsInstalled)
}

func TestExportWithoutWallet(t *testing.T) {
	f := newFixture(t)

	_, err := f.controller.Export()
	require.Error(t, err)
	assert.Equal(t, wallet.ErrNoWalletConnected, wallet.CodeOf(err))
}
