package wallet

import "context"

// Type identifies a wallet provider implementation.
type Type string

const (
	// TypeExtension is the browser-extension signer (externally custodied).
	TypeExtension Type = "extension"
	// TypeEmbedded is the self-custodied in-browser generated keypair wallet.
	TypeEmbedded Type = "embedded"
)

// NetworkType identifies one of the statically known Stellar networks.
type NetworkType string

const (
	NetworkTestnet NetworkType = "testnet"
	NetworkMainnet NetworkType = "mainnet"
)

// ConnectionStatus is the connection state machine variable.
type ConnectionStatus string

const (
	StatusDisconnected ConnectionStatus = "disconnected"
	StatusConnecting   ConnectionStatus = "connecting"
	StatusConnected    ConnectionStatus = "connected"
	StatusError        ConnectionStatus = "error"
)

// NetworkInfo is static per-network configuration. Looked up, never mutated.
type NetworkInfo struct {
	Type              NetworkType `json:"type"`
	Name              string      `json:"name"`
	NetworkPassphrase string      `json:"networkPassphrase"`
	HorizonURL        string      `json:"horizonUrl"`
}

// Account is the active session account. Immutable until disconnect.
type Account struct {
	Address string      `json:"address"`
	Network NetworkInfo `json:"network"`
}

// ConnectionResult is the outcome of a provider handshake.
type ConnectionResult struct {
	Success bool
	Account *Account
	Err     *Error
}

// TransactionResult is the outcome of a signing request.
type TransactionResult struct {
	Success           bool
	SignedTransaction string
	Err               *Error
}

// SignOptions are optional overrides for a signing request.
type SignOptions struct {
	NetworkPassphrase string
	AccountToSign     string
}

// Adapter is the capability set implemented by each wallet provider.
//
// Detection and status probes never return errors: they report false on any
// failure. GetAccount returns nil when the provider cannot supply an account.
// GetNetwork fails closed on an unrecognized network passphrase.
type Adapter interface {
	Type() Type
	Name() string

	IsInstalled(ctx context.Context) bool

	Connect(ctx context.Context) ConnectionResult
	Disconnect(ctx context.Context) error
	IsConnected(ctx context.Context) bool
	IsAllowed(ctx context.Context) bool

	GetAccount(ctx context.Context) *Account
	GetNetwork(ctx context.Context) (NetworkInfo, error)

	SignTransaction(ctx context.Context, xdr string, opts *SignOptions) TransactionResult

	// GetBalance is a stub on most adapters: real balance retrieval goes
	// through the balance service, which queries the ledger directly.
	GetBalance(ctx context.Context, address string) (string, error)
}

// Info describes a supported wallet for UI consumption.
type Info struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        Type   `json:"type"`
	DownloadURL string `json:"downloadUrl,omitempty"`
	IsInstalled bool   `json:"isInstalled"`
}

// SupportedWallets is the static wallet metadata registry, keyed by Type.
// The IsInstalled flag is filled in at detection time.
var SupportedWallets = map[Type]Info{
	TypeExtension: {
		ID:          "freighter",
		Name:        "Freighter",
		Type:        TypeExtension,
		DownloadURL: "https://freighter.app/",
	},
	TypeEmbedded: {
		ID:          "embedded",
		Name:        "Device Wallet",
		Type:        TypeEmbedded,
	},
}

// ValidType reports whether t names a known wallet type.
func ValidType(t Type) bool {
	_, ok := SupportedWallets[t]
	return ok
}
