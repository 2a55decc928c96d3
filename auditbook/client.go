// Package auditbook provides the gateway to the on-chain AuditBook contract:
// one method per remote operation, decoding fixed-width strings on the way
// in and encoding them on the way out.
package auditbook

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"

	bindings "github.com/ruteri/audit-book-client/bindings/auditbook"
	"github.com/ruteri/audit-book-client/bytes32"
	"github.com/ruteri/audit-book-client/interfaces"
	"github.com/ruteri/audit-book-client/metrics"
)

// OnchainAuditBookClient implements interfaces.AuditBookGateway for an
// AuditBook contract deployed on an Ethereum-compatible chain.
type OnchainAuditBookClient struct {
	contract *bindings.AuditBook
	abi      *abi.ABI
	caller   bind.ContractCaller
	backend  bind.DeployBackend
	address  common.Address
	from     common.Address
	auth     *bind.TransactOpts
}

// NewOnchainAuditBookClient creates a client for the AuditBook contract at
// address. client is used for calls and for sending transactions, backend
// for waiting on receipts.
func NewOnchainAuditBookClient(client bind.ContractBackend, backend bind.DeployBackend, address common.Address) (*OnchainAuditBookClient, error) {
	return newOnchainAuditBookClient(client, client, backend, address)
}

func newOnchainAuditBookClient(caller bind.ContractCaller, transactor bind.ContractTransactor, backend bind.DeployBackend, address common.Address) (*OnchainAuditBookClient, error) {
	contractCaller, err := bindings.NewAuditBookCaller(address, caller)
	if err != nil {
		return nil, err
	}
	contractTransactor, err := bindings.NewAuditBookTransactor(address, transactor)
	if err != nil {
		return nil, err
	}
	parsed, err := bindings.AuditBookMetaData.GetAbi()
	if err != nil {
		return nil, err
	}

	return &OnchainAuditBookClient{
		contract: &bindings.AuditBook{
			AuditBookCaller:     *contractCaller,
			AuditBookTransactor: *contractTransactor,
		},
		abi:     parsed,
		caller:  caller,
		backend: backend,
		address: address,
	}, nil
}

// SetCaller sets the account reads are issued from. Per-caller reads such as
// registrations and submitted audits answer for this account.
func (c *OnchainAuditBookClient) SetCaller(from common.Address) {
	c.from = from
}

// SetTransactOpts sets the signer for state-changing calls. It also makes
// the signer's account the caller for reads.
func (c *OnchainAuditBookClient) SetTransactOpts(auth *bind.TransactOpts) {
	c.auth = auth
	if auth != nil {
		c.from = auth.From
	}
}

// Address returns the contract address the client is bound to.
func (c *OnchainAuditBookClient) Address() common.Address {
	return c.address
}

func (c *OnchainAuditBookClient) callOpts(ctx context.Context) *bind.CallOpts {
	return &bind.CallOpts{Context: ctx, From: c.from}
}

func readResult(method string, err error) error {
	metrics.RecordRead(method, err)
	if err != nil {
		return &interfaces.RemoteReadError{Method: method, Err: err}
	}
	return nil
}

// AdminName returns the decoded administrator name; empty when never set.
func (c *OnchainAuditBookClient) AdminName(ctx context.Context) (string, error) {
	name, err := c.contract.AdminName(c.callOpts(ctx))
	if err := readResult("adminName", err); err != nil {
		return "", err
	}
	return bytes32.Decode(name), nil
}

// Owner returns the address of the book administrator.
func (c *OnchainAuditBookClient) Owner(ctx context.Context) (common.Address, error) {
	owner, err := c.contract.Admin(c.callOpts(ctx))
	if err := readResult("admin", err); err != nil {
		return common.Address{}, err
	}
	return owner, nil
}

func (c *OnchainAuditBookClient) AuditCompanies(ctx context.Context) ([]interfaces.Company, error) {
	companies, err := c.contract.GetAuditCompanies(c.callOpts(ctx))
	if err := readResult("getAuditCompanies", err); err != nil {
		return nil, err
	}
	return toCompanies(companies), nil
}

func (c *OnchainAuditBookClient) AuditableCompanies(ctx context.Context) ([]interfaces.Company, error) {
	companies, err := c.contract.GetAuditableCompanies(c.callOpts(ctx))
	if err := readResult("getAuditableCompanies", err); err != nil {
		return nil, err
	}
	return toCompanies(companies), nil
}

func (c *OnchainAuditBookClient) ApprovedAuditableCompanies(ctx context.Context) ([]interfaces.Company, error) {
	companies, err := c.contract.GetApprovedAuditableCompanies(c.callOpts(ctx))
	if err := readResult("getApprovedAuditableCompanies", err); err != nil {
		return nil, err
	}
	return toCompanies(companies), nil
}

// AuditCompanyRegistration returns the caller's own audit-company record.
func (c *OnchainAuditBookClient) AuditCompanyRegistration(ctx context.Context) (interfaces.Company, error) {
	company, err := c.contract.GetAuditCompanyRegister(c.callOpts(ctx))
	if err := readResult("getAuditCompanyRegister", err); err != nil {
		return interfaces.Company{}, err
	}
	return toCompany(company), nil
}

// AuditableCompanyRegistration returns the caller's own auditable-company record.
func (c *OnchainAuditBookClient) AuditableCompanyRegistration(ctx context.Context) (interfaces.Company, error) {
	company, err := c.contract.GetAuditableCompanyRegister(c.callOpts(ctx))
	if err := readResult("getAuditableCompanyRegister", err); err != nil {
		return interfaces.Company{}, err
	}
	return toCompany(company), nil
}

func (c *OnchainAuditBookClient) IsRegisteredAsAuditCompany(ctx context.Context) (bool, error) {
	registered, err := c.contract.IsRegisteredAsAuditCompany(c.callOpts(ctx))
	if err := readResult("IsRegisteredAsAuditCompany", err); err != nil {
		return false, err
	}
	return registered, nil
}

func (c *OnchainAuditBookClient) IsRegisteredAsAuditableCompany(ctx context.Context) (bool, error) {
	registered, err := c.contract.IsRegisteredAsAuditableCompany(c.callOpts(ctx))
	if err := readResult("IsRegisteredAsAuditableCompany", err); err != nil {
		return false, err
	}
	return registered, nil
}

// SubmittedAudits returns the findings submitted against the caller's own
// auditable company.
func (c *OnchainAuditBookClient) SubmittedAudits(ctx context.Context) ([]interfaces.Audit, error) {
	audits, err := c.contract.GetAuditableCompanySubmittedAudits(c.callOpts(ctx))
	if err := readResult("getAuditableCompanySubmittedAudits", err); err != nil {
		return nil, err
	}

	res := make([]interfaces.Audit, 0, len(audits))
	for _, a := range audits {
		res = append(res, interfaces.Audit{
			ID:        a.Id,
			Finding:   bytes32.Decode(a.Finding),
			State:     interfaces.AuditState(a.State),
			Auditor:   a.Auditor,
			Auditable: a.Auditable,
		})
	}
	return res, nil
}

func (c *OnchainAuditBookClient) SetAdminName(ctx context.Context, name string) (*types.Receipt, error) {
	encoded, err := bytes32.Encode(name)
	if err != nil {
		return nil, err
	}
	return c.transact(ctx, interfaces.OpSetAdminName, "setAdminName", []interface{}{encoded}, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return c.contract.SetAdminName(opts, encoded)
	})
}

func (c *OnchainAuditBookClient) ApproveAuditCompany(ctx context.Context, account common.Address) (*types.Receipt, error) {
	return c.transact(ctx, interfaces.OpApproveAuditCompany, "ApproveAuditCompany", []interface{}{account}, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return c.contract.ApproveAuditCompany(opts, account)
	})
}

func (c *OnchainAuditBookClient) RejectAuditCompany(ctx context.Context, account common.Address, reason string) (*types.Receipt, error) {
	return c.transact(ctx, interfaces.OpRejectAuditCompany, "RejectAuditCompany", []interface{}{account, reason}, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return c.contract.RejectAuditCompany(opts, account, reason)
	})
}

func (c *OnchainAuditBookClient) ApproveAuditableCompany(ctx context.Context, account common.Address) (*types.Receipt, error) {
	return c.transact(ctx, interfaces.OpApproveAuditableCompany, "ApproveAuditableCompany", []interface{}{account}, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return c.contract.ApproveAuditableCompany(opts, account)
	})
}

func (c *OnchainAuditBookClient) RejectAuditableCompany(ctx context.Context, account common.Address, reason string) (*types.Receipt, error) {
	return c.transact(ctx, interfaces.OpRejectAuditableCompany, "RejectAuditableCompany", []interface{}{account, reason}, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return c.contract.RejectAuditableCompany(opts, account, reason)
	})
}

func (c *OnchainAuditBookClient) RequestAuditCompanyAdmission(ctx context.Context, name string) (*types.Receipt, error) {
	encoded, err := bytes32.Encode(name)
	if err != nil {
		return nil, err
	}
	return c.transact(ctx, interfaces.OpRequestAuditCompanyAdmission, "AuditCompanyRequestAdmision", []interface{}{encoded}, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return c.contract.AuditCompanyRequestAdmision(opts, encoded)
	})
}

func (c *OnchainAuditBookClient) RequestAuditableCompanyAdmission(ctx context.Context, name string) (*types.Receipt, error) {
	encoded, err := bytes32.Encode(name)
	if err != nil {
		return nil, err
	}
	return c.transact(ctx, interfaces.OpRequestAuditableCompanyAdmission, "AuditableCompanyRequestAdmision", []interface{}{encoded}, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return c.contract.AuditableCompanyRequestAdmision(opts, encoded)
	})
}

func (c *OnchainAuditBookClient) SubmitAudit(ctx context.Context, auditable common.Address, finding string) (*types.Receipt, error) {
	encoded, err := bytes32.Encode(finding)
	if err != nil {
		return nil, err
	}
	return c.transact(ctx, interfaces.OpSubmitAudit, "SubmitAudit", []interface{}{auditable, encoded}, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return c.contract.SubmitAudit(opts, auditable, encoded)
	})
}

func (c *OnchainAuditBookClient) ApproveSubmittedAudit(ctx context.Context, id *big.Int) (*types.Receipt, error) {
	return c.transact(ctx, interfaces.OpApproveSubmittedAudit, "AuditableCompanyApproveSubmittedAudit", []interface{}{id}, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return c.contract.AuditableCompanyApproveSubmittedAudit(opts, id)
	})
}

func (c *OnchainAuditBookClient) RejectSubmittedAudit(ctx context.Context, id *big.Int) (*types.Receipt, error) {
	return c.transact(ctx, interfaces.OpRejectSubmittedAudit, "AuditableCompanyRejectSubmittedAudit", []interface{}{id}, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return c.contract.AuditableCompanyRejectSubmittedAudit(opts, id)
	})
}

// transact sends a transaction, waits until it is mined and checks its
// status. method and args are only used to replay a failed call for its
// revert reason.
func (c *OnchainAuditBookClient) transact(ctx context.Context, op interfaces.Op, method string, args []interface{}, send func(*bind.TransactOpts) (*types.Transaction, error)) (*types.Receipt, error) {
	start := time.Now()
	receipt, err := c.sendAndWait(ctx, op, method, args, send)
	metrics.RecordWrite(op, err, time.Since(start))
	return receipt, err
}

func (c *OnchainAuditBookClient) sendAndWait(ctx context.Context, op interfaces.Op, method string, args []interface{}, send func(*bind.TransactOpts) (*types.Transaction, error)) (*types.Receipt, error) {
	if c.auth == nil {
		return nil, &interfaces.RemoteWriteError{Op: op, Err: interfaces.ErrNoTransactOpts}
	}

	opts := *c.auth
	opts.Context = ctx

	tx, err := send(&opts)
	if err != nil {
		return nil, &interfaces.RemoteWriteError{
			Op:     op,
			Reason: c.revertReason(ctx, err, method, args, nil),
			Err:    err,
		}
	}

	receipt, err := bind.WaitMined(ctx, c.backend, tx)
	if err != nil {
		return nil, &interfaces.RemoteWriteError{
			Op:  op,
			Err: fmt.Errorf("waiting for transaction %s: %w", tx.Hash().Hex(), err),
		}
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		// replay against the state the transaction executed on
		var parent *big.Int
		if receipt.BlockNumber != nil && receipt.BlockNumber.Sign() > 0 {
			parent = new(big.Int).Sub(receipt.BlockNumber, big.NewInt(1))
		}
		return receipt, &interfaces.RemoteWriteError{
			Op:     op,
			Reason: c.revertReason(ctx, nil, method, args, parent),
			Err:    fmt.Errorf("transaction %s reverted", tx.Hash().Hex()),
		}
	}

	return receipt, nil
}

// revertReason extracts the contract's revert message, either from the
// error returned while sending or by replaying the call.
func (c *OnchainAuditBookClient) revertReason(ctx context.Context, sendErr error, method string, args []interface{}, block *big.Int) string {
	if reason := ReasonFromError(sendErr); reason != "" {
		return reason
	}
	if c.caller == nil {
		return ""
	}

	input, err := c.abi.Pack(method, args...)
	if err != nil {
		return ""
	}
	_, err = c.caller.CallContract(ctx, ethereum.CallMsg{From: c.from, To: &c.address, Data: input}, block)
	return ReasonFromError(err)
}

// ReasonFromError returns the revert reason carried by a JSON-RPC error, or
// an empty string when err carries none.
func ReasonFromError(err error) string {
	if err == nil {
		return ""
	}

	var dataErr rpc.DataError
	if !errors.As(err, &dataErr) {
		return ""
	}

	if data, ok := dataErr.ErrorData().(string); ok {
		if raw, decodeErr := hexutil.Decode(data); decodeErr == nil {
			if reason, unpackErr := abi.UnpackRevert(raw); unpackErr == nil {
				return reason
			}
		}
	}
	return dataErr.Error()
}

func toCompany(c bindings.AuditBookCompany) interfaces.Company {
	return interfaces.Company{
		Name:    bytes32.Decode(c.Name),
		State:   interfaces.CompanyState(c.State),
		Account: c.Account,
	}
}

func toCompanies(companies []bindings.AuditBookCompany) []interfaces.Company {
	res := make([]interfaces.Company, 0, len(companies))
	for _, c := range companies {
		res = append(res, toCompany(c))
	}
	return res
}

// AuditBookFactory binds gateways to connected wallets.
type AuditBookFactory struct {
	client  bind.ContractBackend
	backend bind.DeployBackend
	address common.Address
}

// NewAuditBookFactory creates a factory for clients of the contract at address.
func NewAuditBookFactory(client bind.ContractBackend, backend bind.DeployBackend, address common.Address) *AuditBookFactory {
	return &AuditBookFactory{client: client, backend: backend, address: address}
}

// GatewayFor returns a gateway reading as, and signing for, the wallet's account.
func (f *AuditBookFactory) GatewayFor(wallet *interfaces.WalletSession) (interfaces.AuditBookGateway, error) {
	c, err := NewOnchainAuditBookClient(f.client, f.backend, f.address)
	if err != nil {
		return nil, err
	}
	c.SetCaller(wallet.Account)
	if wallet.Auth != nil {
		c.SetTransactOpts(wallet.Auth)
	}
	return c, nil
}
