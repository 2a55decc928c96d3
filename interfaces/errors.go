package interfaces

import (
	"errors"
	"fmt"
)

var (
	// ErrWalletUnavailable is returned when no wallet is configured or the
	// configured signer cannot be reached.
	ErrWalletUnavailable = errors.New("wallet unavailable")

	// ErrUserRejected is returned when the wallet denies account access.
	ErrUserRejected = errors.New("user rejected account access")

	// ErrNoTransactOpts is returned when a transaction is attempted without a signer.
	ErrNoTransactOpts = errors.New("no authorized transactor available")

	// ErrNotConnected is returned by session actions issued before a wallet is connected.
	ErrNotConnected = errors.New("wallet not connected")

	// ErrValidation wraps local precondition failures. No remote call was made.
	ErrValidation = errors.New("validation failed")
)

// RemoteReadError is returned when a contract read fails.
type RemoteReadError struct {
	Method string
	Err    error
}

func (e *RemoteReadError) Error() string {
	return fmt.Sprintf("remote read %s failed: %v", e.Method, e.Err)
}

func (e *RemoteReadError) Unwrap() error {
	return e.Err
}

// RemoteWriteError is returned when a transaction could not be sent, was
// reverted, or could not be confirmed. Reason holds the contract revert
// message verbatim when one is available.
type RemoteWriteError struct {
	Op     Op
	Reason string
	Err    error
}

func (e *RemoteWriteError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("remote write %s failed: %v (reason: %s)", e.Op, e.Err, e.Reason)
	}
	return fmt.Sprintf("remote write %s failed: %v", e.Op, e.Err)
}

func (e *RemoteWriteError) Unwrap() error {
	return e.Err
}
