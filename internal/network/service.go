// Package network answers questions about Stellar networks: which one the
// daemon runs on, which one a wallet is on, and whether the two agree.
package network

import (
	"context"
	"fmt"

	"github.com/srwa-platform/adaptive-wallet/internal/wallet"

	"go.uber.org/zap"
)

const explorerBaseURL = "https://stellar.expert/explorer"

// Service exposes network identity and compatibility checks against the
// network the daemon was configured for.
type Service struct {
	configured wallet.NetworkInfo
	log        *zap.Logger
}

// NewService creates a network service pinned to the configured network.
func NewService(configured wallet.NetworkInfo, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{configured: configured, log: log.Named("network")}
}

// Configured returns the network the daemon runs on.
func (s *Service) Configured() wallet.NetworkInfo {
	return s.configured
}

// CurrentNetwork returns the network of the active wallet, falling back to
// the configured network when no wallet is connected. Fails closed when the
// wallet reports an unrecognized network.
func (s *Service) CurrentNetwork(ctx context.Context, adapter wallet.Adapter) (wallet.NetworkInfo, error) {
	if adapter == nil {
		return s.configured, nil
	}
	return adapter.GetNetwork(ctx)
}

// DetectNetwork maps a network passphrase to a known network, nil when the
// passphrase is not one of ours.
func (s *Service) DetectNetwork(passphrase string) *wallet.NetworkInfo {
	t, ok := wallet.DetectNetworkFromPassphrase(passphrase)
	if !ok {
		return nil
	}
	n, err := wallet.Network(t)
	if err != nil {
		return nil
	}
	return &n
}

// ValidateCompatibility rejects any wallet network other than the exact
// configured one. No cross-network operation is ever allowed through.
func (s *Service) ValidateCompatibility(n wallet.NetworkInfo) error {
	if n.Type != s.configured.Type {
		s.log.Warn("wallet network mismatch",
			zap.String("wallet", string(n.Type)),
			zap.String("configured", string(s.configured.Type)))
		return wallet.NewError(wallet.ErrNetworkUnrecognized,
			fmt.Sprintf("wallet is on %s but this service runs on %s", n.Type, s.configured.Type))
	}
	return nil
}

// ExplorerURL builds a stellar.expert link for a resource. resource is
// "account" or "tx".
func ExplorerURL(t wallet.NetworkType, resource, id string) (string, error) {
	var segment string
	switch t {
	case wallet.NetworkMainnet:
		segment = "public"
	case wallet.NetworkTestnet:
		segment = "testnet"
	default:
		return "", wallet.NewError(wallet.ErrNetworkUnrecognized, "unknown network: "+string(t))
	}

	switch resource {
	case "account", "tx":
	default:
		return "", fmt.Errorf("unsupported explorer resource %q", resource)
	}
	if id == "" {
		return "", fmt.Errorf("explorer resource id is required")
	}

	return fmt.Sprintf("%s/%s/%s/%s", explorerBaseURL, segment, resource, id), nil
}
