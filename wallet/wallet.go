// Package wallet provides the connectors that obtain an authorized account
// and a transaction signer for it.
//
// Three sources are supported: a raw hex private key, an encrypted keystore
// file, and an external Clef signer. Clef asks its operator to approve the
// account listing and every transaction, which makes it the closest match to
// an interactive browser wallet.
package wallet

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ruteri/audit-book-client/interfaces"
)

const (
	TypeNone     = ""
	TypeKey      = "key"
	TypeKeystore = "keystore"
	TypeClef     = "clef"
)

// Config selects and configures a wallet connector.
type Config struct {
	Type string

	// key
	PrivateKey string

	// keystore
	KeystoreFile string
	Passphrase   string

	// clef
	ClefEndpoint string

	ChainID *big.Int
}

// New creates the connector selected by cfg.Type. An empty type yields a
// connector that always reports ErrWalletUnavailable.
func New(cfg Config) (interfaces.WalletConnector, error) {
	switch cfg.Type {
	case TypeNone:
		return Unavailable{}, nil
	case TypeKey:
		return NewKeyConnector(cfg.PrivateKey, cfg.ChainID)
	case TypeKeystore:
		return NewKeystoreConnector(cfg.KeystoreFile, cfg.Passphrase, cfg.ChainID), nil
	case TypeClef:
		return NewClefConnector(cfg.ClefEndpoint), nil
	default:
		return nil, fmt.Errorf("unknown wallet type %q: use '%s', '%s' or '%s'", cfg.Type, TypeKey, TypeKeystore, TypeClef)
	}
}

// Unavailable is the connector used when no wallet is configured.
type Unavailable struct{}

func (Unavailable) Connect(ctx context.Context) (*interfaces.WalletSession, error) {
	return nil, interfaces.ErrWalletUnavailable
}

func (Unavailable) Accounts(ctx context.Context) ([]common.Address, error) {
	return nil, interfaces.ErrWalletUnavailable
}
