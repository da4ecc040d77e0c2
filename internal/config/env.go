package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
// Note: the wallet password is prompted at runtime and held in memory - use
// GetWalletPasswordBytes().
type Config struct {
	Port                string `envconfig:"PORT" default:"8080"`
	StateDir            string `envconfig:"STATE_DIR" default:".walletd"`
	WalletFilePath      string `envconfig:"WALLET_FILE_PATH" required:"true"`
	StellarNetwork      string `envconfig:"STELLAR_NETWORK" default:"testnet"`
	HorizonTestnetURL   string `envconfig:"HORIZON_TESTNET_URL" default:""`
	HorizonMainnetURL   string `envconfig:"HORIZON_MAINNET_URL" default:""`
	FriendbotURL        string `envconfig:"FRIENDBOT_URL" default:"https://friendbot.stellar.org"`
	ExtensionBridgeURL  string `envconfig:"EXTENSION_BRIDGE_URL" default:"http://127.0.0.1:8480"`
	SessionCheckSeconds int    `envconfig:"SESSION_CHECK_SECONDS" default:"5"`
	RecordMaxAgeDays    int    `envconfig:"RECORD_MAX_AGE_DAYS" default:"7"`
	Debug               bool   `envconfig:"DEBUG" default:"false"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	cfg = &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetStateDir returns the durable state directory from configuration
func GetStateDir() string {
	return Get().StateDir
}

// GetWalletFilePath returns path to the embedded wallet .cwt file
func GetWalletFilePath() string {
	return Get().WalletFilePath
}

var passwordBytes []byte

// PromptForPassword prompts the user for the wallet password in the terminal.
// The password is read without echoing (hidden input) and stored in memory.
// Call this at startup before the server begins handling requests.
func PromptForPassword() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("stdin is not a terminal: run the app interactively to enter password")
	}
	fmt.Fprint(os.Stderr, "Enter wallet password: ")
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return errors.New("password cannot be empty")
	}

	passwordBytes = make([]byte, len(raw))
	copy(passwordBytes, raw)
	clear(raw)
	return nil
}

// GetWalletPasswordBytes returns the password stored in memory (from PromptForPassword).
// Returns an error if the password was not set.
// Caller must zero the returned slice after use for security.
func GetWalletPasswordBytes() ([]byte, error) {
	if len(passwordBytes) == 0 {
		return nil, errors.New("password not set: call PromptForPassword at startup")
	}
	out := make([]byte, len(passwordBytes))
	copy(out, passwordBytes)
	return out, nil
}

// SetWalletPassword stores a password directly, bypassing the prompt.
// Used by tooling that collects the password itself.
func SetWalletPassword(pw []byte) {
	passwordBytes = make([]byte, len(pw))
	copy(passwordBytes, pw)
}
