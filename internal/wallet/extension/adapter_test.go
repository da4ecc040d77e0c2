package extension

import (
	"context"
	"errors"
	"testing"

	"github.com/srwa-platform/adaptive-wallet/internal/wallet"

	"github.com/stellar/go/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAddress = "GDQP2KPQGKIHYJGXNUIYOMHARUARCA7DJT5FO2FFOOKY3B2WSQHG4W37"

// fakeBridge scripts the extension boundary for tests.
type fakeBridge struct {
	installed  bool
	connected  bool
	allowed    bool
	address    string
	passphrase string

	declineAccess bool
	declineSign   bool
	signResult    string
	signErr       error

	accessRequests int
	allowOnRequest bool
}

func (f *fakeBridge) Detect(ctx context.Context) (bool, error)      { return f.installed, nil }
func (f *fakeBridge) IsConnected(ctx context.Context) (bool, error) { return f.connected, nil }
func (f *fakeBridge) IsAllowed(ctx context.Context) (bool, error)   { return f.allowed, nil }

func (f *fakeBridge) RequestAccess(ctx context.Context) error {
	f.accessRequests++
	if f.declineAccess {
		return ErrUserDeclined
	}
	if f.allowOnRequest {
		f.allowed = true
	}
	return nil
}

func (f *fakeBridge) GetAddress(ctx context.Context) (string, error) {
	if f.address == "" {
		return "", errors.New("no account")
	}
	return f.address, nil
}

func (f *fakeBridge) GetNetworkPassphrase(ctx context.Context) (string, error) {
	return f.passphrase, nil
}

func (f *fakeBridge) SignTransaction(ctx context.Context, xdr, passphrase, account string) (string, error) {
	if f.declineSign {
		return "", ErrUserDeclined
	}
	if f.signErr != nil {
		return "", f.signErr
	}
	return f.signResult, nil
}

func testnetBridge() *fakeBridge {
	return &fakeBridge{
		installed:  true,
		address:    testAddress,
		passphrase: network.TestNetworkPassphrase,
	}
}

func TestConnectNotInstalled(t *testing.T) {
	a := NewAdapter(&fakeBridge{installed: false}, nil)

	res := a.Connect(context.Background())
	assert.False(t, res.Success)
	require.NotNil(t, res.Err)
	assert.Equal(t, wallet.ErrWalletNotInstalled, res.Err.Code)
}

func TestConnectAlreadyAuthorized(t *testing.T) {
	b := testnetBridge()
	b.allowed = true
	a := NewAdapter(b, nil)

	res := a.Connect(context.Background())
	require.True(t, res.Success)
	require.NotNil(t, res.Account)
	assert.Equal(t, testAddress, res.Account.Address)
	assert.Equal(t, wallet.NetworkTestnet, res.Account.Network.Type)
	assert.Zero(t, b.accessRequests, "no prompt needed when already authorized")
}

func TestConnectRequestsAccess(t *testing.T) {
	b := testnetBridge()
	b.allowOnRequest = true
	a := NewAdapter(b, nil)

	res := a.Connect(context.Background())
	require.True(t, res.Success)
	assert.Equal(t, 1, b.accessRequests)
}

func TestConnectUserDeclined(t *testing.T) {
	b := testnetBridge()
	b.declineAccess = true
	a := NewAdapter(b, nil)

	res := a.Connect(context.Background())
	assert.False(t, res.Success)
	require.NotNil(t, res.Err)
	assert.Equal(t, wallet.ErrConnectionRejected, res.Err.Code)
	assert.True(t, res.Err.IsRejection())
}

func TestConnectAccessNotGranted(t *testing.T) {
	// RequestAccess succeeds but the permission never shows up.
	b := testnetBridge()
	a := NewAdapter(b, nil)

	res := a.Connect(context.Background())
	assert.False(t, res.Success)
	require.NotNil(t, res.Err)
	assert.Equal(t, wallet.ErrConnectionRejected, res.Err.Code)
}

func TestGetNetworkUnrecognizedPassphraseFailsClosed(t *testing.T) {
	b := testnetBridge()
	b.passphrase = "Standalone Network ; February 2017"
	a := NewAdapter(b, nil)

	_, err := a.GetNetwork(context.Background())
	require.Error(t, err)
	assert.Equal(t, wallet.ErrNetworkUnrecognized, wallet.CodeOf(err))
}

func TestGetAccountWithoutPermission(t *testing.T) {
	b := testnetBridge()
	b.allowed = false
	a := NewAdapter(b, nil)

	assert.Nil(t, a.GetAccount(context.Background()))
}

func TestSignTransaction(t *testing.T) {
	b := testnetBridge()
	b.allowed = true
	b.signResult = "signed-xdr"
	a := NewAdapter(b, nil)

	res := a.SignTransaction(context.Background(), "xdr", nil)
	require.True(t, res.Success)
	assert.Equal(t, "signed-xdr", res.SignedTransaction)
}

func TestSignTransactionRejectedIsDistinguished(t *testing.T) {
	b := testnetBridge()
	b.declineSign = true
	a := NewAdapter(b, nil)

	res := a.SignTransaction(context.Background(), "xdr", nil)
	assert.False(t, res.Success)
	require.NotNil(t, res.Err)
	assert.Equal(t, wallet.ErrTransactionRejected, res.Err.Code)
}

func TestSignTransactionGenericFailure(t *testing.T) {
	b := testnetBridge()
	b.signErr = errors.New("bridge exploded")
	a := NewAdapter(b, nil)

	res := a.SignTransaction(context.Background(), "xdr", nil)
	assert.False(t, res.Success)
	require.NotNil(t, res.Err)
	assert.Equal(t, wallet.ErrUnknown, res.Err.Code)
}

func TestIsConnectedRequiresPermission(t *testing.T) {
	b := testnetBridge()
	b.connected = true
	b.allowed = false
	a := NewAdapter(b, nil)

	assert.False(t, a.IsConnected(context.Background()))
}
