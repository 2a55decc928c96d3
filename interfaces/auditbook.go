package interfaces

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// AuditBookReader exposes the contract's read-only calls. Per-caller reads
// (registrations, submitted audits) answer for the connected account.
type AuditBookReader interface {
	AdminName(ctx context.Context) (string, error)
	Owner(ctx context.Context) (common.Address, error)

	AuditCompanies(ctx context.Context) ([]Company, error)
	AuditableCompanies(ctx context.Context) ([]Company, error)
	ApprovedAuditableCompanies(ctx context.Context) ([]Company, error)

	AuditCompanyRegistration(ctx context.Context) (Company, error)
	AuditableCompanyRegistration(ctx context.Context) (Company, error)
	IsRegisteredAsAuditCompany(ctx context.Context) (bool, error)
	IsRegisteredAsAuditableCompany(ctx context.Context) (bool, error)

	SubmittedAudits(ctx context.Context) ([]Audit, error)
}

// AuditBookWriter exposes the contract's state-changing calls. Every method
// blocks until the transaction is mined and never retries.
type AuditBookWriter interface {
	SetAdminName(ctx context.Context, name string) (*types.Receipt, error)

	ApproveAuditCompany(ctx context.Context, account common.Address) (*types.Receipt, error)
	RejectAuditCompany(ctx context.Context, account common.Address, reason string) (*types.Receipt, error)
	ApproveAuditableCompany(ctx context.Context, account common.Address) (*types.Receipt, error)
	RejectAuditableCompany(ctx context.Context, account common.Address, reason string) (*types.Receipt, error)

	RequestAuditCompanyAdmission(ctx context.Context, name string) (*types.Receipt, error)
	RequestAuditableCompanyAdmission(ctx context.Context, name string) (*types.Receipt, error)

	SubmitAudit(ctx context.Context, auditable common.Address, finding string) (*types.Receipt, error)
	ApproveSubmittedAudit(ctx context.Context, id *big.Int) (*types.Receipt, error)
	RejectSubmittedAudit(ctx context.Context, id *big.Int) (*types.Receipt, error)
}

// AuditBookGateway is the full remote surface of the AuditBook contract.
type AuditBookGateway interface {
	AuditBookReader
	AuditBookWriter
}

// GatewayFactory binds a gateway to a connected wallet.
type GatewayFactory interface {
	GatewayFor(wallet *WalletSession) (AuditBookGateway, error)
}
