package interfaces

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// WalletSession is an authorized account together with the signer for its
// transactions.
type WalletSession struct {
	Account common.Address
	Auth    *bind.TransactOpts
}

// WalletConnector obtains access to an account.
type WalletConnector interface {
	// Connect returns the first authorized account. It fails with
	// ErrWalletUnavailable or ErrUserRejected.
	Connect(ctx context.Context) (*WalletSession, error)

	// Accounts lists the currently authorized accounts.
	Accounts(ctx context.Context) ([]common.Address, error)
}
