package wallet

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ruteri/audit-book-client/interfaces"
)

// KeyConnector signs with a private key held in memory.
type KeyConnector struct {
	key     *ecdsa.PrivateKey
	chainID *big.Int
}

// NewKeyConnector parses a hex encoded private key, with or without the 0x prefix.
func NewKeyConnector(hexKey string, chainID *big.Int) (*KeyConnector, error) {
	if hexKey == "" {
		return nil, fmt.Errorf("%w: private key is required for the key wallet", interfaces.ErrWalletUnavailable)
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return NewKeyConnectorFromKey(key, chainID), nil
}

func NewKeyConnectorFromKey(key *ecdsa.PrivateKey, chainID *big.Int) *KeyConnector {
	return &KeyConnector{key: key, chainID: chainID}
}

func (c *KeyConnector) Connect(ctx context.Context) (*interfaces.WalletSession, error) {
	if c.chainID == nil {
		return nil, errors.New("chain id is required to sign transactions")
	}
	auth, err := bind.NewKeyedTransactorWithChainID(c.key, c.chainID)
	if err != nil {
		return nil, err
	}
	return &interfaces.WalletSession{Account: auth.From, Auth: auth}, nil
}

func (c *KeyConnector) Accounts(ctx context.Context) ([]common.Address, error) {
	return []common.Address{crypto.PubkeyToAddress(c.key.PublicKey)}, nil
}
