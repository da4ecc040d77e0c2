package wallet

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode classifies wallet failures. Raw provider errors are translated
// into these codes at the adapter boundary and never leak past it.
type ErrorCode string

const (
	ErrWalletNotInstalled  ErrorCode = "WALLET_NOT_INSTALLED"
	ErrConnectionRejected  ErrorCode = "CONNECTION_REJECTED"
	ErrTransactionRejected ErrorCode = "TRANSACTION_REJECTED"
	ErrNetworkUnrecognized ErrorCode = "NETWORK_UNRECOGNIZED"
	ErrNoWalletConnected   ErrorCode = "NO_WALLET_CONNECTED"
	ErrStorageUnavailable  ErrorCode = "STORAGE_UNAVAILABLE"
	ErrUnknown             ErrorCode = "UNKNOWN_ERROR"
)

var defaultMessages = map[ErrorCode]string{
	ErrWalletNotInstalled:  "wallet is not installed",
	ErrConnectionRejected:  "connection was rejected by the user",
	ErrTransactionRejected: "transaction was rejected by the user",
	ErrNetworkUnrecognized: "wallet is on an unrecognized network",
	ErrNoWalletConnected:   "no wallet connected",
	ErrStorageUnavailable:  "durable storage is not available",
	ErrUnknown:             "an unknown wallet error occurred",
}

// Error is the structured wallet error carried through the subsystem.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// IsRejection reports whether the error represents a user cancellation,
// which callers present differently from genuine faults.
func (e *Error) IsRejection() bool {
	return e.Code == ErrConnectionRejected || e.Code == ErrTransactionRejected
}

// NewError builds an Error with the default message for code when msg is empty.
func NewError(code ErrorCode, msg string) *Error {
	if msg == "" {
		msg = defaultMessages[code]
	}
	return &Error{Code: code, Message: msg}
}

// WrapError builds an Error around an underlying cause.
func WrapError(code ErrorCode, msg string, err error) *Error {
	e := NewError(code, msg)
	e.Err = err
	return e
}

// Normalize translates an arbitrary error into the wallet taxonomy. Already
// classified errors pass through unchanged; everything else is mapped by
// message heuristics, defaulting to UNKNOWN_ERROR.
func Normalize(err error) *Error {
	if err == nil {
		return nil
	}
	var we *Error
	if errors.As(err, &we) {
		return we
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "declined") || strings.Contains(msg, "rejected"):
		return WrapError(ErrConnectionRejected, err.Error(), err)
	case strings.Contains(msg, "not installed") || strings.Contains(msg, "not found"):
		return WrapError(ErrWalletNotInstalled, err.Error(), err)
	default:
		return WrapError(ErrUnknown, err.Error(), err)
	}
}

// CodeOf extracts the taxonomy code from err, or UNKNOWN_ERROR.
func CodeOf(err error) ErrorCode {
	var we *Error
	if errors.As(err, &we) {
		return we.Code
	}
	return ErrUnknown
}
