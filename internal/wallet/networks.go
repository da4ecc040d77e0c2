package wallet

import (
	"fmt"

	"github.com/stellar/go/network"
	"github.com/stellar/go/strkey"
)

const (
	defaultTestnetHorizonURL = "https://horizon-testnet.stellar.org"
	defaultMainnetHorizonURL = "https://horizon.stellar.org"
)

// networks is the static network table, keyed by NetworkType. It is built once
// (optionally with horizon URL overrides from config) and never mutated after.
var networks = map[NetworkType]NetworkInfo{
	NetworkTestnet: {
		Type:              NetworkTestnet,
		Name:              "Testnet",
		NetworkPassphrase: network.TestNetworkPassphrase,
		HorizonURL:        defaultTestnetHorizonURL,
	},
	NetworkMainnet: {
		Type:              NetworkMainnet,
		Name:              "Mainnet",
		NetworkPassphrase: network.PublicNetworkPassphrase,
		HorizonURL:        defaultMainnetHorizonURL,
	},
}

// ConfigureHorizonURLs overrides the horizon endpoints in the network table.
// Call once at startup, before any lookups. Empty values keep the defaults.
func ConfigureHorizonURLs(testnetURL, mainnetURL string) {
	if testnetURL != "" {
		n := networks[NetworkTestnet]
		n.HorizonURL = testnetURL
		networks[NetworkTestnet] = n
	}
	if mainnetURL != "" {
		n := networks[NetworkMainnet]
		n.HorizonURL = mainnetURL
		networks[NetworkMainnet] = n
	}
}

// Network returns the static configuration for t.
func Network(t NetworkType) (NetworkInfo, error) {
	n, ok := networks[t]
	if !ok {
		return NetworkInfo{}, NewError(ErrNetworkUnrecognized, fmt.Sprintf("unknown network type %q", t))
	}
	return n, nil
}

// AllNetworks returns a copy of the network table.
func AllNetworks() map[NetworkType]NetworkInfo {
	out := make(map[NetworkType]NetworkInfo, len(networks))
	for t, n := range networks {
		out[t] = n
	}
	return out
}

// DetectNetworkFromPassphrase maps a provider-reported passphrase to a known
// network type. The second return is false for unrecognized passphrases;
// callers must fail closed rather than defaulting to a known network.
func DetectNetworkFromPassphrase(passphrase string) (NetworkType, bool) {
	for t, n := range networks {
		if n.NetworkPassphrase == passphrase {
			return t, true
		}
	}
	return "", false
}

// NetworkFromPassphrase resolves a passphrase to its full NetworkInfo,
// returning a NETWORK_UNRECOGNIZED error for anything not in the table.
func NetworkFromPassphrase(passphrase string) (NetworkInfo, error) {
	t, ok := DetectNetworkFromPassphrase(passphrase)
	if !ok {
		return NetworkInfo{}, NewError(ErrNetworkUnrecognized, fmt.Sprintf("unsupported network passphrase %q", passphrase))
	}
	return networks[t], nil
}

// ValidAddress reports whether addr is a well-formed Stellar public key.
func ValidAddress(addr string) bool {
	return strkey.IsValidEd25519PublicKey(addr)
}

// ValidSecretSeed reports whether seed is a well-formed Stellar secret seed.
func ValidSecretSeed(seed string) bool {
	return strkey.IsValidEd25519SecretSeed(seed)
}

// FormatAddress shortens an address for logs and display: "GABCD...WXYZ".
func FormatAddress(addr string) string {
	if len(addr) <= 12 {
		return addr
	}
	return addr[:5] + "..." + addr[len(addr)-4:]
}
