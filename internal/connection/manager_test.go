package connection

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/srwa-platform/adaptive-wallet/internal/storage"
	"github.com/srwa-platform/adaptive-wallet/internal/wallet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAddress = "GDQP2KPQGKIHYJGXNUIYOMHARUARCA7DJT5FO2FFOOKY3B2WSQHG4W37"

type fakeAdapter struct {
	mu sync.Mutex

	typ       wallet.Type
	installed bool
	allowed   bool
	connected bool
	account   *wallet.Account

	connectErr   *wallet.Error
	connectCalls int
	disconnects  int

	// block, when non-nil, holds Connect until the channel is closed.
	block chan struct{}
}

func newFakeAdapter(t *testing.T) *fakeAdapter {
	t.Helper()
	n, err := wallet.Network(wallet.NetworkTestnet)
	require.NoError(t, err)
	return &fakeAdapter{
		typ:       wallet.TypeExtension,
		installed: true,
		account:   &wallet.Account{Address: testAddress, Network: n},
	}
}

func (f *fakeAdapter) Type() wallet.Type { return f.typ }
func (f *fakeAdapter) Name() string      { return "fake" }

func (f *fakeAdapter) IsInstalled(ctx context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.installed
}

func (f *fakeAdapter) Connect(ctx context.Context) wallet.ConnectionResult {
	f.mu.Lock()
	f.connectCalls++
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.connectErr != nil {
		return wallet.ConnectionResult{Err: f.connectErr}
	}
	f.connected = true
	f.allowed = true
	return wallet.ConnectionResult{Success: true, Account: f.account}
}

func (f *fakeAdapter) Disconnect(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disconnects++
	f.connected = false
	return nil
}

func (f *fakeAdapter) IsConnected(ctx context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

func (f *fakeAdapter) IsAllowed(ctx context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.allowed
}

func (f *fakeAdapter) GetAccount(ctx context.Context) *wallet.Account {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.allowed {
		return nil
	}
	return f.account
}

func (f *fakeAdapter) GetNetwork(ctx context.Context) (wallet.NetworkInfo, error) {
	return f.account.Network, nil
}

func (f *fakeAdapter) SignTransaction(ctx context.Context, xdr string, opts *wallet.SignOptions) wallet.TransactionResult {
	return wallet.TransactionResult{Success: true, SignedTransaction: xdr}
}

func (f *fakeAdapter) GetBalance(ctx context.Context, address string) (string, error) {
	return "0", nil
}

func (f *fakeAdapter) setConnected(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connected = v
}

func (f *fakeAdapter) setConnectErr(e *wallet.Error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connectErr = e
}

func (f *fakeAdapter) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connectCalls
}

func newTestManager(t *testing.T, interval time.Duration) (*Manager, *storage.Service) {
	t.Helper()
	store := storage.NewService(t.TempDir(), 7*24*time.Hour, nil)
	return NewManager(store, interval, nil), store
}

func TestConnectSuccess(t *testing.T) {
	m, store := newTestManager(t, time.Minute)
	a := newFakeAdapter(t)

	res := m.Connect(context.Background(), a)
	require.True(t, res.Success)
	assert.Equal(t, wallet.StatusConnected, m.Status())
	require.NotNil(t, m.Account())
	assert.Equal(t, testAddress, m.Account().Address)

	// Successful connects are remembered for the next start.
	rec := store.LoadConnection()
	require.NotNil(t, rec)
	assert.Equal(t, wallet.TypeExtension, rec.WalletType)
	assert.Equal(t, testAddress, rec.Address)

	m.Disconnect(context.Background())
}

func TestConnectFailure(t *testing.T) {
	m, store := newTestManager(t, time.Minute)
	a := newFakeAdapter(t)
	a.setConnectErr(wallet.NewError(wallet.ErrConnectionRejected, "user declined"))

	res := m.Connect(context.Background(), a)
	assert.False(t, res.Success)
	assert.Equal(t, wallet.StatusError, m.Status())
	assert.Nil(t, m.Account(), "no account outside the connected state")
	assert.Nil(t, store.LoadConnection())
}

func TestConnectWhileConnectedReturnsSession(t *testing.T) {
	m, _ := newTestManager(t, time.Minute)
	a := newFakeAdapter(t)

	require.True(t, m.Connect(context.Background(), a).Success)
	res := m.Connect(context.Background(), a)
	require.True(t, res.Success)
	assert.Equal(t, testAddress, res.Account.Address)
	assert.Equal(t, 1, a.calls(), "no second handshake")

	m.Disconnect(context.Background())
}

func TestSingleConnectInFlight(t *testing.T) {
	m, _ := newTestManager(t, time.Minute)
	a := newFakeAdapter(t)
	a.block = make(chan struct{})

	first := make(chan wallet.ConnectionResult, 1)
	go func() { first <- m.Connect(context.Background(), a) }()

	require.Eventually(t, func() bool {
		return m.Status() == wallet.StatusConnecting
	}, time.Second, 5*time.Millisecond)

	second := m.Connect(context.Background(), a)
	assert.False(t, second.Success)
	require.NotNil(t, second.Err)

	close(a.block)
	res := <-first
	assert.True(t, res.Success)
	assert.Equal(t, 1, a.calls())

	m.Disconnect(context.Background())
}

func TestDisconnectDuringConnectWins(t *testing.T) {
	m, store := newTestManager(t, time.Minute)
	a := newFakeAdapter(t)
	a.block = make(chan struct{})

	result := make(chan wallet.ConnectionResult, 1)
	go func() { result <- m.Connect(context.Background(), a) }()

	require.Eventually(t, func() bool {
		return m.Status() == wallet.StatusConnecting
	}, time.Second, 5*time.Millisecond)

	m.Disconnect(context.Background())
	assert.Equal(t, wallet.StatusDisconnected, m.Status())

	// The handshake finishes successfully afterwards; its result must be
	// dropped, not applied.
	close(a.block)
	res := <-result
	assert.False(t, res.Success)
	assert.Equal(t, wallet.StatusDisconnected, m.Status())
	assert.Nil(t, m.Account())
	assert.Nil(t, store.LoadConnection())
}

func TestDisconnectClearsEverything(t *testing.T) {
	m, store := newTestManager(t, time.Minute)
	a := newFakeAdapter(t)

	require.True(t, m.Connect(context.Background(), a).Success)
	m.Disconnect(context.Background())

	assert.Equal(t, wallet.StatusDisconnected, m.Status())
	assert.Nil(t, m.Account())
	assert.Nil(t, store.LoadConnection())
	assert.Equal(t, 1, a.disconnects)
}

func TestRetryAfterError(t *testing.T) {
	m, _ := newTestManager(t, time.Minute)
	a := newFakeAdapter(t)
	a.setConnectErr(wallet.NewError(wallet.ErrUnknown, "transient"))

	require.False(t, m.Connect(context.Background(), a).Success)
	require.Equal(t, wallet.StatusError, m.Status())

	a.setConnectErr(nil)
	res := m.Retry(context.Background())
	require.True(t, res.Success)
	assert.Equal(t, wallet.StatusConnected, m.Status())

	m.Disconnect(context.Background())
}

func TestRetryIsNoOpWhenConnected(t *testing.T) {
	m, _ := newTestManager(t, time.Minute)
	a := newFakeAdapter(t)

	require.True(t, m.Connect(context.Background(), a).Success)
	res := m.Retry(context.Background())
	assert.True(t, res.Success)
	assert.Equal(t, 1, a.calls())

	m.Disconnect(context.Background())
}

func TestSessionLossDetected(t *testing.T) {
	m, store := newTestManager(t, 10*time.Millisecond)
	a := newFakeAdapter(t)

	require.True(t, m.Connect(context.Background(), a).Success)

	a.setConnected(false)
	require.Eventually(t, func() bool {
		return m.Status() == wallet.StatusDisconnected
	}, time.Second, 5*time.Millisecond, "session loss should disconnect")

	assert.Nil(t, m.Account())
	assert.Nil(t, store.LoadConnection())
}

func TestRestoreSession(t *testing.T) {
	m, store := newTestManager(t, time.Minute)
	a := newFakeAdapter(t)
	a.allowed = true
	a.connected = true

	require.NoError(t, store.SaveConnection(storage.ConnectionRecord{
		WalletType:  wallet.TypeExtension,
		Address:     testAddress,
		ConnectedAt: time.Now().UnixMilli(),
		Network:     "testnet",
	}))

	ok := m.RestoreSession(context.Background(), func(wallet.Type) wallet.Adapter { return a })
	require.True(t, ok)
	assert.Equal(t, wallet.StatusConnected, m.Status())
	require.NotNil(t, m.Account())
	assert.Equal(t, testAddress, m.Account().Address)
	assert.Equal(t, 0, a.calls(), "restoration never runs the handshake")

	m.Disconnect(context.Background())
}

func TestRestoreSessionPurgesOnLostPermission(t *testing.T) {
	m, store := newTestManager(t, time.Minute)
	a := newFakeAdapter(t)
	a.allowed = false

	require.NoError(t, store.SaveConnection(storage.ConnectionRecord{
		WalletType:  wallet.TypeExtension,
		Address:     testAddress,
		ConnectedAt: time.Now().UnixMilli(),
		Network:     "testnet",
	}))

	ok := m.RestoreSession(context.Background(), func(wallet.Type) wallet.Adapter { return a })
	assert.False(t, ok)
	assert.Equal(t, wallet.StatusDisconnected, m.Status(), "failed restore ends disconnected, not errored")
	assert.Nil(t, store.LoadConnection(), "unusable record is purged")
}

func TestRestoreSessionRunsOnce(t *testing.T) {
	m, store := newTestManager(t, time.Minute)
	a := newFakeAdapter(t)
	a.allowed = true

	require.NoError(t, store.SaveConnection(storage.ConnectionRecord{
		WalletType:  wallet.TypeExtension,
		Address:     testAddress,
		ConnectedAt: time.Now().UnixMilli(),
		Network:     "testnet",
	}))

	lookup := func(wallet.Type) wallet.Adapter { return a }
	require.True(t, m.RestoreSession(context.Background(), lookup))
	m.Disconnect(context.Background())

	assert.False(t, m.RestoreSession(context.Background(), lookup))
}

func TestRestoreSessionWithoutRecord(t *testing.T) {
	m, _ := newTestManager(t, time.Minute)
	a := newFakeAdapter(t)

	ok := m.RestoreSession(context.Background(), func(wallet.Type) wallet.Adapter { return a })
	assert.False(t, ok)
	assert.Equal(t, wallet.StatusDisconnected, m.Status())
}

func TestListenersSeeTransitions(t *testing.T) {
	m, _ := newTestManager(t, time.Minute)
	a := newFakeAdapter(t)

	var mu sync.Mutex
	var seen []wallet.ConnectionStatus
	m.Subscribe(func(s State) {
		mu.Lock()
		seen = append(seen, s.Status)
		mu.Unlock()
	})

	require.True(t, m.Connect(context.Background(), a).Success)
	m.Disconnect(context.Background())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []wallet.ConnectionStatus{
		wallet.StatusConnecting,
		wallet.StatusConnected,
		wallet.StatusDisconnected,
	}, seen)
}
