package model

// CWTFile represents the encrypted .cwt wallet file structure.
type CWTFile struct {
	Network    string `json:"network"`
	Address    string `json:"address"`
	QR         string `json:"QR"`
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"cipherText"`
}

// WalletData represents decrypted wallet data.
type WalletData struct {
	SecretSeed string `json:"secretSeed"` // Stellar secret seed (S...)
	CreatedAt  string `json:"createdAt"`
}
