package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ruteri/audit-book-client/interfaces"
)

// KeystoreConnector unlocks an encrypted JSON key file (Web3 Secret Storage)
// on every Connect. A wrong passphrase counts as a rejection.
type KeystoreConnector struct {
	path       string
	passphrase string
	chainID    *big.Int
}

func NewKeystoreConnector(path, passphrase string, chainID *big.Int) *KeystoreConnector {
	return &KeystoreConnector{path: path, passphrase: passphrase, chainID: chainID}
}

func (c *KeystoreConnector) readFile() ([]byte, error) {
	if c.path == "" {
		return nil, fmt.Errorf("%w: keystore file is required for the keystore wallet", interfaces.ErrWalletUnavailable)
	}
	keyJSON, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", interfaces.ErrWalletUnavailable, err)
	}
	return keyJSON, nil
}

func (c *KeystoreConnector) Connect(ctx context.Context) (*interfaces.WalletSession, error) {
	keyJSON, err := c.readFile()
	if err != nil {
		return nil, err
	}

	key, err := keystore.DecryptKey(keyJSON, c.passphrase)
	if errors.Is(err, keystore.ErrDecrypt) {
		return nil, fmt.Errorf("%w: %w", interfaces.ErrUserRejected, err)
	} else if err != nil {
		return nil, fmt.Errorf("%w: %w", interfaces.ErrWalletUnavailable, err)
	}

	return NewKeyConnectorFromKey(key.PrivateKey, c.chainID).Connect(ctx)
}

// Accounts reads the address stored in the clear next to the encrypted key,
// without unlocking it.
func (c *KeystoreConnector) Accounts(ctx context.Context) ([]common.Address, error) {
	keyJSON, err := c.readFile()
	if err != nil {
		return nil, err
	}

	var header struct {
		Address string `json:"address"`
	}
	if err := json.Unmarshal(keyJSON, &header); err != nil {
		return nil, fmt.Errorf("%w: %w", interfaces.ErrWalletUnavailable, err)
	}
	if !common.IsHexAddress(header.Address) {
		return nil, fmt.Errorf("%w: keystore file has no address", interfaces.ErrWalletUnavailable)
	}
	return []common.Address{common.HexToAddress(header.Address)}, nil
}
