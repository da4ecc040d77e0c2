// Package extension implements the browser-extension wallet provider. The
// extension itself is an external collaborator reached through the Bridge
// boundary; this package owns the connect handshake and error normalization
// on top of it.
package extension

import "context"

// Bridge is the boundary contract to the browser-injected extension API.
// Every call is asynchronous and may fail; raw bridge errors never leave
// this package unnormalized.
type Bridge interface {
	// Detect reports whether the extension is present at all.
	Detect(ctx context.Context) (bool, error)
	// IsConnected reports whether the extension considers itself connected.
	IsConnected(ctx context.Context) (bool, error)
	// IsAllowed reports whether this app has been authorized by the user.
	IsAllowed(ctx context.Context) (bool, error)
	// RequestAccess prompts the user to authorize this app.
	RequestAccess(ctx context.Context) error
	// GetAddress returns the active account's public key.
	GetAddress(ctx context.Context) (string, error)
	// GetNetworkPassphrase returns the passphrase of the extension's network.
	GetNetworkPassphrase(ctx context.Context) (string, error)
	// SignTransaction asks the extension to sign a base64 XDR envelope and
	// returns the signed envelope.
	SignTransaction(ctx context.Context, xdr string, networkPassphrase, accountToSign string) (string, error)
}
