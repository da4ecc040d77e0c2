package model

// ConnectRequest represents request for POST /wallet/connect
type ConnectRequest struct {
	// WalletType forces a specific provider; empty lets the controller pick
	// by device mode. One of "extension", "embedded".
	WalletType string `json:"walletType,omitempty"`
}

// StatusResponse represents response for GET /wallet/status
type StatusResponse struct {
	IsConnected    bool   `json:"isConnected"`
	IsConnecting   bool   `json:"isConnecting"`
	Address        string `json:"address,omitempty"`
	WalletMode     string `json:"walletMode"`
	WalletProvider string `json:"walletProvider"`
	Network        string `json:"network,omitempty"`
	Balance        string `json:"balance,omitempty"`
	Error          string `json:"error,omitempty"`
	ErrorCode      string `json:"errorCode,omitempty"`
}

// SignRequest represents request for POST /wallet/sign
type SignRequest struct {
	XDR string `json:"xdr" binding:"required"`
}

// SignResponse represents response for POST /wallet/sign
type SignResponse struct {
	SignedXDR string `json:"signedXdr"`
}

// BalanceResponse represents response for GET /wallet/balance
type BalanceResponse struct {
	Address   string `json:"address"`
	Balance   string `json:"balance"`
	Formatted string `json:"formatted"`
	Network   string `json:"network"`
}

// AssetBalance is one ledger balance entry for GET /wallet/balances
type AssetBalance struct {
	AssetType   string `json:"asset_type"`
	AssetCode   string `json:"asset_code"`
	AssetIssuer string `json:"asset_issuer,omitempty"`
	Balance     string `json:"balance"`
	Limit       string `json:"limit,omitempty"`
}

// ExportResponse represents response for POST /wallet/export.
// The secret is raw key material: Sensitive is always true so callers warn
// the user never to share it.
type ExportResponse struct {
	Secret    string `json:"secret"`
	Sensitive bool   `json:"sensitive"`
	Warning   string `json:"warning"`
}

// ImportRequest represents request for POST /wallet/import
type ImportRequest struct {
	Secret string `json:"secret" binding:"required"`
}

// ImportResponse represents response for POST /wallet/import
type ImportResponse struct {
	Success bool   `json:"success"`
	Address string `json:"address,omitempty"`
	Error   string `json:"error,omitempty"`
}

// BackupQRResponse represents response for GET /wallet/backup-qr
type BackupQRResponse struct {
	QRPNG     string `json:"qrPng"` // base64-encoded PNG
	Sensitive bool   `json:"sensitive"`
}

// ModeRequest represents request for POST /wallet/mode
type ModeRequest struct {
	Mode string `json:"mode" binding:"required"` // "desktop" or "mobile"
}

// ViewportRequest represents request for POST /device/viewport
type ViewportRequest struct {
	Width int `json:"width" binding:"required"`
}

// ExplorerURLResponse represents response for GET /network/explorer-url
type ExplorerURLResponse struct {
	URL string `json:"url"`
}
