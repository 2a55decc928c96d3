package wallet

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/external"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ruteri/audit-book-client/interfaces"
)

// ClefConnector delegates account access and signing to an external Clef
// signer. Clef prompts its operator to approve the account listing; a denied
// or empty listing is reported as ErrUserRejected.
//
// The signer of the last successful Connect stays open for its transactor
// and is closed by the next Connect or by Close.
type ClefConnector struct {
	endpoint string

	mu     sync.Mutex
	signer *external.ExternalSigner
}

func NewClefConnector(endpoint string) *ClefConnector {
	return &ClefConnector{endpoint: endpoint}
}

func (c *ClefConnector) dial() (*external.ExternalSigner, error) {
	if c.endpoint == "" {
		return nil, fmt.Errorf("%w: clef endpoint is required for the clef wallet", interfaces.ErrWalletUnavailable)
	}
	signer, err := external.NewExternalSigner(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", interfaces.ErrWalletUnavailable, err)
	}
	return signer, nil
}

func (c *ClefConnector) Connect(ctx context.Context) (*interfaces.WalletSession, error) {
	signer, err := c.dial()
	if err != nil {
		return nil, err
	}

	accounts := signer.Accounts()
	if len(accounts) == 0 {
		signer.Close()
		return nil, interfaces.ErrUserRejected
	}

	c.mu.Lock()
	if c.signer != nil {
		c.signer.Close()
	}
	c.signer = signer
	c.mu.Unlock()

	auth := bind.NewClefTransactor(signer, accounts[0])
	return &interfaces.WalletSession{Account: accounts[0].Address, Auth: auth}, nil
}

// Close releases the signer held since the last Connect.
func (c *ClefConnector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.signer == nil {
		return nil
	}
	err := c.signer.Close()
	c.signer = nil
	return err
}

func (c *ClefConnector) Accounts(ctx context.Context) ([]common.Address, error) {
	signer, err := c.dial()
	if err != nil {
		return nil, err
	}
	defer signer.Close()

	var res []common.Address
	for _, account := range signer.Accounts() {
		res = append(res, account.Address)
	}
	return res, nil
}
