package auditbook

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ruteri/audit-book-client/interfaces"
	"github.com/stretchr/testify/mock"
)

// MockAuditBook mocks the AuditBookGateway interface
type MockAuditBook struct {
	mock.Mock
}

func receiptArg(args mock.Arguments) *types.Receipt {
	if r, ok := args.Get(0).(*types.Receipt); ok {
		return r
	}
	return nil
}

// AdminName mocks the AdminName method
func (m *MockAuditBook) AdminName(ctx context.Context) (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

// Owner mocks the Owner method
func (m *MockAuditBook) Owner(ctx context.Context) (common.Address, error) {
	args := m.Called()
	return args.Get(0).(common.Address), args.Error(1)
}

// AuditCompanies mocks the AuditCompanies method
func (m *MockAuditBook) AuditCompanies(ctx context.Context) ([]interfaces.Company, error) {
	args := m.Called()
	return args.Get(0).([]interfaces.Company), args.Error(1)
}

// AuditableCompanies mocks the AuditableCompanies method
func (m *MockAuditBook) AuditableCompanies(ctx context.Context) ([]interfaces.Company, error) {
	args := m.Called()
	return args.Get(0).([]interfaces.Company), args.Error(1)
}

// ApprovedAuditableCompanies mocks the ApprovedAuditableCompanies method
func (m *MockAuditBook) ApprovedAuditableCompanies(ctx context.Context) ([]interfaces.Company, error) {
	args := m.Called()
	return args.Get(0).([]interfaces.Company), args.Error(1)
}

// AuditCompanyRegistration mocks the AuditCompanyRegistration method
func (m *MockAuditBook) AuditCompanyRegistration(ctx context.Context) (interfaces.Company, error) {
	args := m.Called()
	return args.Get(0).(interfaces.Company), args.Error(1)
}

// AuditableCompanyRegistration mocks the AuditableCompanyRegistration method
func (m *MockAuditBook) AuditableCompanyRegistration(ctx context.Context) (interfaces.Company, error) {
	args := m.Called()
	return args.Get(0).(interfaces.Company), args.Error(1)
}

// IsRegisteredAsAuditCompany mocks the IsRegisteredAsAuditCompany method
func (m *MockAuditBook) IsRegisteredAsAuditCompany(ctx context.Context) (bool, error) {
	args := m.Called()
	return args.Bool(0), args.Error(1)
}

// IsRegisteredAsAuditableCompany mocks the IsRegisteredAsAuditableCompany method
func (m *MockAuditBook) IsRegisteredAsAuditableCompany(ctx context.Context) (bool, error) {
	args := m.Called()
	return args.Bool(0), args.Error(1)
}

// SubmittedAudits mocks the SubmittedAudits method
func (m *MockAuditBook) SubmittedAudits(ctx context.Context) ([]interfaces.Audit, error) {
	args := m.Called()
	return args.Get(0).([]interfaces.Audit), args.Error(1)
}

// SetAdminName mocks the SetAdminName method
func (m *MockAuditBook) SetAdminName(ctx context.Context, name string) (*types.Receipt, error) {
	args := m.Called(name)
	return receiptArg(args), args.Error(1)
}

// ApproveAuditCompany mocks the ApproveAuditCompany method
func (m *MockAuditBook) ApproveAuditCompany(ctx context.Context, account common.Address) (*types.Receipt, error) {
	args := m.Called(account)
	return receiptArg(args), args.Error(1)
}

// RejectAuditCompany mocks the RejectAuditCompany method
func (m *MockAuditBook) RejectAuditCompany(ctx context.Context, account common.Address, reason string) (*types.Receipt, error) {
	args := m.Called(account, reason)
	return receiptArg(args), args.Error(1)
}

// ApproveAuditableCompany mocks the ApproveAuditableCompany method
func (m *MockAuditBook) ApproveAuditableCompany(ctx context.Context, account common.Address) (*types.Receipt, error) {
	args := m.Called(account)
	return receiptArg(args), args.Error(1)
}

// RejectAuditableCompany mocks the RejectAuditableCompany method
func (m *MockAuditBook) RejectAuditableCompany(ctx context.Context, account common.Address, reason string) (*types.Receipt, error) {
	args := m.Called(account, reason)
	return receiptArg(args), args.Error(1)
}

// RequestAuditCompanyAdmission mocks the RequestAuditCompanyAdmission method
func (m *MockAuditBook) RequestAuditCompanyAdmission(ctx context.Context, name string) (*types.Receipt, error) {
	args := m.Called(name)
	return receiptArg(args), args.Error(1)
}

// RequestAuditableCompanyAdmission mocks the RequestAuditableCompanyAdmission method
func (m *MockAuditBook) RequestAuditableCompanyAdmission(ctx context.Context, name string) (*types.Receipt, error) {
	args := m.Called(name)
	return receiptArg(args), args.Error(1)
}

// SubmitAudit mocks the SubmitAudit method
func (m *MockAuditBook) SubmitAudit(ctx context.Context, auditable common.Address, finding string) (*types.Receipt, error) {
	args := m.Called(auditable, finding)
	return receiptArg(args), args.Error(1)
}

// ApproveSubmittedAudit mocks the ApproveSubmittedAudit method
func (m *MockAuditBook) ApproveSubmittedAudit(ctx context.Context, id *big.Int) (*types.Receipt, error) {
	args := m.Called(id)
	return receiptArg(args), args.Error(1)
}

// RejectSubmittedAudit mocks the RejectSubmittedAudit method
func (m *MockAuditBook) RejectSubmittedAudit(ctx context.Context, id *big.Int) (*types.Receipt, error) {
	args := m.Called(id)
	return receiptArg(args), args.Error(1)
}

// MockGatewayFactory mocks the GatewayFactory interface
type MockGatewayFactory struct {
	mock.Mock
}

// GatewayFor mocks the GatewayFor method
func (m *MockGatewayFactory) GatewayFor(wallet *interfaces.WalletSession) (interfaces.AuditBookGateway, error) {
	args := m.Called(wallet.Account)
	gw, _ := args.Get(0).(interfaces.AuditBookGateway)
	return gw, args.Error(1)
}
