// Package balance retrieves account balances from horizon. Balances are
// decimal strings end to end; nothing here goes through a float.
package balance

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/srwa-platform/adaptive-wallet/internal/common"
	"github.com/srwa-platform/adaptive-wallet/internal/model"
	"github.com/srwa-platform/adaptive-wallet/internal/wallet"

	"github.com/stellar/go/clients/horizonclient"
	"go.uber.org/zap"
)

const nativeAssetCode = "XLM"

// displayDecimals is how many fractional digits formatted balances keep.
const displayDecimals = 2

// Service queries horizon for account balances. One client per horizon URL,
// created lazily and reused.
type Service struct {
	mu      sync.Mutex
	clients map[string]horizonclient.ClientInterface
	log     *zap.Logger
}

// NewService creates a balance service.
func NewService(log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		clients: make(map[string]horizonclient.ClientInterface),
		log:     log.Named("balance"),
	}
}

func (s *Service) client(horizonURL string) horizonclient.ClientInterface {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.clients[horizonURL]; ok {
		return c
	}
	c := &horizonclient.Client{
		HorizonURL: horizonURL,
		HTTP:       &http.Client{Timeout: 30 * time.Second},
	}
	s.clients[horizonURL] = c
	return c
}

// GetBalance returns the native XLM balance of address as a decimal string.
// An account that does not exist on the ledger yet has balance "0".
func (s *Service) GetBalance(ctx context.Context, address string, net wallet.NetworkInfo) (string, error) {
	if !wallet.ValidAddress(address) {
		return "", wallet.NewError(wallet.ErrUnknown, "invalid account address")
	}

	account, err := s.client(net.HorizonURL).AccountDetail(horizonclient.AccountRequest{AccountID: address})
	if err != nil {
		if horizonclient.IsNotFoundError(err) {
			s.log.Debug("account not found on ledger, balance is zero",
				zap.String("address", wallet.FormatAddress(address)),
				zap.String("network", string(net.Type)))
			return "0", nil
		}
		return "", wallet.WrapError(wallet.ErrUnknown, "failed to fetch account", err)
	}

	native, err := account.GetNativeBalance()
	if err != nil {
		return "", fmt.Errorf("failed to read native balance: %w", err)
	}
	return native, nil
}

// AllBalances returns every balance line of the account, native first. A
// missing account yields an empty slice.
func (s *Service) AllBalances(ctx context.Context, address string, net wallet.NetworkInfo) ([]model.AssetBalance, error) {
	if !wallet.ValidAddress(address) {
		return nil, wallet.NewError(wallet.ErrUnknown, "invalid account address")
	}

	account, err := s.client(net.HorizonURL).AccountDetail(horizonclient.AccountRequest{AccountID: address})
	if err != nil {
		if horizonclient.IsNotFoundError(err) {
			return []model.AssetBalance{}, nil
		}
		return nil, wallet.WrapError(wallet.ErrUnknown, "failed to fetch account", err)
	}

	balances := make([]model.AssetBalance, 0, len(account.Balances))
	for _, b := range account.Balances {
		entry := model.AssetBalance{
			AssetType: b.Type,
			AssetCode: b.Code,
			Balance:   b.Balance,
			Limit:     b.Limit,
		}
		if b.Type == "native" {
			entry.AssetCode = nativeAssetCode
		} else {
			entry.AssetIssuer = b.Issuer
		}
		balances = append(balances, entry)
	}
	return balances, nil
}

// FormattedBalance returns the balance truncated for display.
func (s *Service) FormattedBalance(ctx context.Context, address string, net wallet.NetworkInfo) (raw, formatted string, err error) {
	raw, err = s.GetBalance(ctx, address, net)
	if err != nil {
		return "", "", err
	}
	return raw, common.FormatBalance(raw, displayDecimals), nil
}

// Monitor polls the balance at interval and calls fn on every change. It
// returns a stop function; monitoring is opt-in and off by default. fn is
// called from the polling goroutine.
func (s *Service) Monitor(ctx context.Context, address string, net wallet.NetworkInfo, interval time.Duration, fn func(balance string)) (stop func()) {
	done := make(chan struct{})
	var once sync.Once

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		var last string
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case <-ticker.C:
				balance, err := s.GetBalance(ctx, address, net)
				if err != nil {
					s.log.Debug("balance poll failed", zap.Error(err))
					continue
				}
				if balance != last {
					last = balance
					fn(balance)
				}
			}
		}
	}()

	return func() { once.Do(func() { close(done) }) }
}
