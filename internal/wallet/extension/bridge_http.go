package extension

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrUserDeclined is returned by the bridge when the user rejects an access
// or signing prompt in the extension UI.
var ErrUserDeclined = errors.New("user declined the request")

// HTTPBridge talks to the extension's local companion endpoint over HTTP.
// The companion relays each call into the browser-injected API and returns
// either a value or an {error} shape.
type HTTPBridge struct {
	baseURL string
	client  *http.Client
}

// NewHTTPBridge creates a bridge client for the given companion base URL.
func NewHTTPBridge(baseURL string) *HTTPBridge {
	return &HTTPBridge{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type bridgeResponse struct {
	Result   json.RawMessage `json:"result,omitempty"`
	Error    string          `json:"error,omitempty"`
	Declined bool            `json:"declined,omitempty"`
}

func (b *HTTPBridge) call(ctx context.Context, method, path string, payload, out any) error {
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode bridge request: %w", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build bridge request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("bridge unreachable: %w", err)
	}
	defer resp.Body.Close()

	var br bridgeResponse
	if err := json.NewDecoder(resp.Body).Decode(&br); err != nil {
		return fmt.Errorf("failed to decode bridge response: %w", err)
	}
	if br.Declined {
		return ErrUserDeclined
	}
	if br.Error != "" {
		return errors.New(br.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bridge call failed: status %d", resp.StatusCode)
	}
	if out != nil && len(br.Result) > 0 {
		if err := json.Unmarshal(br.Result, out); err != nil {
			return fmt.Errorf("failed to decode bridge result: %w", err)
		}
	}
	return nil
}

func (b *HTTPBridge) Detect(ctx context.Context) (bool, error) {
	var installed bool
	if err := b.call(ctx, http.MethodGet, "/detect", nil, &installed); err != nil {
		return false, err
	}
	return installed, nil
}

func (b *HTTPBridge) IsConnected(ctx context.Context) (bool, error) {
	var connected bool
	if err := b.call(ctx, http.MethodGet, "/connected", nil, &connected); err != nil {
		return false, err
	}
	return connected, nil
}

func (b *HTTPBridge) IsAllowed(ctx context.Context) (bool, error) {
	var allowed bool
	if err := b.call(ctx, http.MethodGet, "/allowed", nil, &allowed); err != nil {
		return false, err
	}
	return allowed, nil
}

func (b *HTTPBridge) RequestAccess(ctx context.Context) error {
	return b.call(ctx, http.MethodPost, "/request-access", nil, nil)
}

func (b *HTTPBridge) GetAddress(ctx context.Context) (string, error) {
	var result struct {
		Address string `json:"address"`
	}
	if err := b.call(ctx, http.MethodGet, "/address", nil, &result); err != nil {
		return "", err
	}
	return result.Address, nil
}

func (b *HTTPBridge) GetNetworkPassphrase(ctx context.Context) (string, error) {
	var result struct {
		NetworkPassphrase string `json:"networkPassphrase"`
	}
	if err := b.call(ctx, http.MethodGet, "/network", nil, &result); err != nil {
		return "", err
	}
	return result.NetworkPassphrase, nil
}

func (b *HTTPBridge) SignTransaction(ctx context.Context, xdr string, networkPassphrase, accountToSign string) (string, error) {
	payload := map[string]string{
		"xdr":               xdr,
		"networkPassphrase": networkPassphrase,
		"accountToSign":     accountToSign,
	}
	var result struct {
		SignedTransaction string `json:"signedTransaction"`
	}
	if err := b.call(ctx, http.MethodPost, "/sign", payload, &result); err != nil {
		return "", err
	}
	return result.SignedTransaction, nil
}
