package wallet

import (
	"testing"

	"github.com/stellar/go/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworkLookup(t *testing.T) {
	n, err := Network(NetworkTestnet)
	require.NoError(t, err)
	assert.Equal(t, network.TestNetworkPassphrase, n.NetworkPassphrase)
	assert.Equal(t, "Testnet", n.Name)

	n, err = Network(NetworkMainnet)
	require.NoError(t, err)
	assert.Equal(t, network.PublicNetworkPassphrase, n.NetworkPassphrase)

	_, err = Network(NetworkType("futurenet"))
	require.Error(t, err)
	assert.Equal(t, ErrNetworkUnrecognized, CodeOf(err))
}

func TestDetectNetworkFromPassphrase(t *testing.T) {
	typ, ok := DetectNetworkFromPassphrase(network.TestNetworkPassphrase)
	require.True(t, ok)
	assert.Equal(t, NetworkTestnet, typ)

	typ, ok = DetectNetworkFromPassphrase(network.PublicNetworkPassphrase)
	require.True(t, ok)
	assert.Equal(t, NetworkMainnet, typ)

	_, ok = DetectNetworkFromPassphrase("Standalone Network ; February 2017")
	assert.False(t, ok, "unknown passphrases must not map to a known network")

	_, ok = DetectNetworkFromPassphrase("")
	assert.False(t, ok)
}

func TestNetworkFromPassphraseFailsClosed(t *testing.T) {
	_, err := NetworkFromPassphrase("some private chain")
	require.Error(t, err)
	assert.Equal(t, ErrNetworkUnrecognized, CodeOf(err))
}

func TestValidAddress(t *testing.T) {
	assert.True(t, ValidAddress("GDQP2KPQGKIHYJGXNUIYOMHARUARCA7DJT5FO2FFOOKY3B2WSQHG4W37"))
	assert.False(t, ValidAddress("SDQP2KPQGKIHYJGXNUIYOMHARUARCA7DJT5FO2FFOOKY3B2WSQHG4W37"))
	assert.False(t, ValidAddress(""))
	assert.False(t, ValidAddress("GABC"))
}

func TestFormatAddress(t *testing.T) {
	assert.Equal(t, "GDQP2...4W37", FormatAddress("GDQP2KPQGKIHYJGXNUIYOMHARUARCA7DJT5FO2FFOOKY3B2WSQHG4W37"))
	assert.Equal(t, "GABC", FormatAddress("GABC"))
}

func TestValidType(t *testing.T) {
	assert.True(t, ValidType(TypeExtension))
	assert.True(t, ValidType(TypeEmbedded))
	assert.False(t, ValidType(Type("metamask")))
}
