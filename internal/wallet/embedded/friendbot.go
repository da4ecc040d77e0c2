package embedded

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Funder activates a freshly generated account on the ledger. Only testnet
// has a faucet; a nil Funder disables funding entirely.
type Funder interface {
	Fund(ctx context.Context, address string) error
	WaitForActivation(ctx context.Context, address string) bool
}

// FriendbotClient funds testnet accounts via the Stellar Friendbot faucet
// and polls horizon until the account appears on the ledger.
type FriendbotClient struct {
	friendbotURL string
	horizonURL   string
	client       *http.Client

	activationTimeout time.Duration
	checkInterval     time.Duration
}

var _ Funder = (*FriendbotClient)(nil)

// NewFriendbotClient creates a friendbot client.
func NewFriendbotClient(friendbotURL, horizonURL string) *FriendbotClient {
	return &FriendbotClient{
		friendbotURL: friendbotURL,
		horizonURL:   horizonURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		activationTimeout: 10 * time.Second,
		checkInterval:     time.Second,
	}
}

// Fund asks friendbot to create and fund the account.
func (c *FriendbotClient) Fund(ctx context.Context, address string) error {
	u := fmt.Sprintf("%s?addr=%s", c.friendbotURL, url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to build friendbot request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("friendbot request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("friendbot funding failed: status %d", resp.StatusCode)
	}
	return nil
}

// WaitForActivation polls horizon until the funded account exists on the
// ledger or the timeout elapses. Returns false on timeout; the wallet still
// works, it just is not usable until funded.
func (c *FriendbotClient) WaitForActivation(ctx context.Context, address string) bool {
	deadline := time.Now().Add(c.activationTimeout)

	for time.Now().Before(deadline) {
		if c.accountExists(ctx, address) {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(c.checkInterval):
		}
	}
	return false
}

func (c *FriendbotClient) accountExists(ctx context.Context, address string) bool {
	u := fmt.Sprintf("%s/accounts/%s", c.horizonURL, url.PathEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}
