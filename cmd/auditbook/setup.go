package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ruteri/audit-book-client/auditbook"
	"github.com/ruteri/audit-book-client/cmd/flags"
	"github.com/ruteri/audit-book-client/interfaces"
	"github.com/ruteri/audit-book-client/session"
	"github.com/ruteri/audit-book-client/wallet"
	"github.com/urfave/cli/v2"
)

var devChainID = big.NewInt(1337)

// setupSession builds a session against the contract on the configured chain.
func setupSession(cCtx *cli.Context, logger *slog.Logger) (*session.Session, common.Address, error) {
	contractAddr, err := flags.ContractAddr(cCtx)
	if err != nil {
		return nil, common.Address{}, err
	}

	rpcAddress := cCtx.String(flags.RpcAddrFlag.Name)
	logger.Info("Connecting to Ethereum RPC", "address", rpcAddress)
	ethClient, err := ethclient.Dial(rpcAddress)
	if err != nil {
		logger.Error("Failed to dial RPC", "err", err)
		return nil, common.Address{}, err
	}

	chainID, err := ethClient.ChainID(cCtx.Context)
	if err != nil {
		logger.Error("Failed to read chain id", "err", err)
		return nil, common.Address{}, err
	}

	connector, err := flags.SetupWallet(cCtx, logger, chainID)
	if err != nil {
		return nil, common.Address{}, err
	}

	factory := auditbook.NewAuditBookFactory(ethClient, ethClient, contractAddr)
	return session.New(logger, connector, factory), contractAddr, nil
}

// setupDevSession builds a session against an in-memory book owned by the
// configured wallet, or by a fresh key when none is configured.
func setupDevSession(cCtx *cli.Context, logger *slog.Logger) (*session.Session, error) {
	var connector interfaces.WalletConnector
	if cCtx.String(flags.WalletTypeFlag.Name) == wallet.TypeNone {
		key, err := crypto.GenerateKey()
		if err != nil {
			return nil, err
		}
		connector = wallet.NewKeyConnectorFromKey(key, devChainID)
	} else {
		var err error
		connector, err = flags.SetupWallet(cCtx, logger, devChainID)
		if err != nil {
			return nil, err
		}
	}

	accounts, err := connector.Accounts(context.Background())
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("%w: wallet has no accounts", interfaces.ErrWalletUnavailable)
	}

	logger.Warn("Using in-memory audit book", "owner", accounts[0])
	book := auditbook.NewMemoryAuditBook(accounts[0])
	return session.New(logger, connector, book), nil
}
