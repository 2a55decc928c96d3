package auditbook

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ruteri/audit-book-client/bytes32"
	"github.com/ruteri/audit-book-client/interfaces"
)

// Revert messages produced by MemoryAuditBook.
const (
	RevertNotAdmin             = "Only the admin can perform this operation"
	RevertAlreadyRegistered    = "Company already registered"
	RevertNotRegistered        = "Company is not registered"
	RevertCannotApprove        = "Company can only be approved while pending or rejected"
	RevertCannotReject         = "Company can only be rejected while pending"
	RevertAuditorNotApproved   = "Audit company is not approved"
	RevertAuditableNotApproved = "Auditable company is not approved"
	RevertAuditNotFound        = "Audit not found"
	RevertNotAuditTarget       = "Only the audited company can resolve this audit"
	RevertAuditResolved        = "Audit is already resolved"
)

var errReverted = errors.New("execution reverted")

type memCompany struct {
	name    [32]byte
	state   interfaces.CompanyState
	account common.Address
}

type memAudit struct {
	id        *big.Int
	finding   [32]byte
	state     interfaces.AuditState
	auditor   common.Address
	auditable common.Address
}

// MemoryAuditBook is an in-memory stand-in for the AuditBook contract. It
// enforces the contract's access rules and state transitions so the client
// can be exercised without a chain. Every call is recorded.
type MemoryAuditBook struct {
	mutex      sync.RWMutex
	owner      common.Address
	adminName  [32]byte
	audit      []*memCompany
	auditable  []*memCompany
	audits     []*memAudit
	txCounter  int64
	calls      []string
	failWrites map[interfaces.Op]error
}

// NewMemoryAuditBook creates an empty book administered by owner.
func NewMemoryAuditBook(owner common.Address) *MemoryAuditBook {
	return &MemoryAuditBook{
		owner:      owner,
		failWrites: make(map[interfaces.Op]error),
	}
}

// ClientFor returns a gateway that reads as, and signs for, account.
func (m *MemoryAuditBook) ClientFor(account common.Address) *MemoryAuditBookClient {
	return &MemoryAuditBookClient{book: m, caller: account}
}

// GatewayFor implements interfaces.GatewayFactory.
func (m *MemoryAuditBook) GatewayFor(wallet *interfaces.WalletSession) (interfaces.AuditBookGateway, error) {
	return m.ClientFor(wallet.Account), nil
}

// Calls returns the contract methods invoked so far, in order.
func (m *MemoryAuditBook) Calls() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	calls := make([]string, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// ResetCalls clears the call log.
func (m *MemoryAuditBook) ResetCalls() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.calls = nil
}

// FailWrite makes every following write of op fail with err, as if the
// wallet refused to sign it.
func (m *MemoryAuditBook) FailWrite(op interfaces.Op, err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.failWrites[op] = err
}

func (m *MemoryAuditBook) receipt() *types.Receipt {
	m.txCounter++
	return &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		TxHash:      common.BigToHash(big.NewInt(m.txCounter)),
		BlockNumber: big.NewInt(m.txCounter),
	}
}

func findCompany(list []*memCompany, account common.Address) *memCompany {
	for _, c := range list {
		if c.account == account {
			return c
		}
	}
	return nil
}

func (c *memCompany) export() interfaces.Company {
	return interfaces.Company{
		Name:    bytes32.Decode(c.name),
		State:   c.state,
		Account: c.account,
	}
}

func exportCompanies(list []*memCompany, filter func(*memCompany) bool) []interfaces.Company {
	res := []interfaces.Company{}
	for _, c := range list {
		if filter == nil || filter(c) {
			res = append(res, c.export())
		}
	}
	return res
}

// MemoryAuditBookClient is a per-account gateway onto a MemoryAuditBook.
type MemoryAuditBookClient struct {
	book   *MemoryAuditBook
	caller common.Address
}

func (c *MemoryAuditBookClient) read(method string) *MemoryAuditBook {
	c.book.mutex.Lock()
	c.book.calls = append(c.book.calls, method)
	c.book.mutex.Unlock()
	return c.book
}

// write records the call and runs fn under the book's lock. fn returns the
// revert reason, empty on success.
func (c *MemoryAuditBookClient) write(op interfaces.Op, method string, fn func(m *MemoryAuditBook) string) (*types.Receipt, error) {
	m := c.book
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.calls = append(m.calls, method)
	if err := m.failWrites[op]; err != nil {
		return nil, &interfaces.RemoteWriteError{Op: op, Err: err}
	}
	if reason := fn(m); reason != "" {
		return nil, &interfaces.RemoteWriteError{Op: op, Reason: reason, Err: errReverted}
	}
	return m.receipt(), nil
}

func (c *MemoryAuditBookClient) AdminName(ctx context.Context) (string, error) {
	m := c.read("adminName")
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return bytes32.Decode(m.adminName), nil
}

func (c *MemoryAuditBookClient) Owner(ctx context.Context) (common.Address, error) {
	m := c.read("admin")
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.owner, nil
}

func (c *MemoryAuditBookClient) AuditCompanies(ctx context.Context) ([]interfaces.Company, error) {
	m := c.read("getAuditCompanies")
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return exportCompanies(m.audit, nil), nil
}

func (c *MemoryAuditBookClient) AuditableCompanies(ctx context.Context) ([]interfaces.Company, error) {
	m := c.read("getAuditableCompanies")
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return exportCompanies(m.auditable, nil), nil
}

func (c *MemoryAuditBookClient) ApprovedAuditableCompanies(ctx context.Context) ([]interfaces.Company, error) {
	m := c.read("getApprovedAuditableCompanies")
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return exportCompanies(m.auditable, func(c *memCompany) bool {
		return c.state == interfaces.StateApproved
	}), nil
}

func (c *MemoryAuditBookClient) AuditCompanyRegistration(ctx context.Context) (interfaces.Company, error) {
	m := c.read("getAuditCompanyRegister")
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if company := findCompany(m.audit, c.caller); company != nil {
		return company.export(), nil
	}
	return interfaces.Company{}, nil
}

func (c *MemoryAuditBookClient) AuditableCompanyRegistration(ctx context.Context) (interfaces.Company, error) {
	m := c.read("getAuditableCompanyRegister")
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if company := findCompany(m.auditable, c.caller); company != nil {
		return company.export(), nil
	}
	return interfaces.Company{}, nil
}

func (c *MemoryAuditBookClient) IsRegisteredAsAuditCompany(ctx context.Context) (bool, error) {
	m := c.read("IsRegisteredAsAuditCompany")
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return findCompany(m.audit, c.caller) != nil, nil
}

func (c *MemoryAuditBookClient) IsRegisteredAsAuditableCompany(ctx context.Context) (bool, error) {
	m := c.read("IsRegisteredAsAuditableCompany")
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return findCompany(m.auditable, c.caller) != nil, nil
}

func (c *MemoryAuditBookClient) SubmittedAudits(ctx context.Context) ([]interfaces.Audit, error) {
	m := c.read("getAuditableCompanySubmittedAudits")
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	res := []interfaces.Audit{}
	for _, a := range m.audits {
		if a.auditable != c.caller {
			continue
		}
		res = append(res, interfaces.Audit{
			ID:        new(big.Int).Set(a.id),
			Finding:   bytes32.Decode(a.finding),
			State:     a.state,
			Auditor:   a.auditor,
			Auditable: a.auditable,
		})
	}
	return res, nil
}

func (c *MemoryAuditBookClient) SetAdminName(ctx context.Context, name string) (*types.Receipt, error) {
	encoded, err := bytes32.Encode(name)
	if err != nil {
		return nil, err
	}
	return c.write(interfaces.OpSetAdminName, "setAdminName", func(m *MemoryAuditBook) string {
		if c.caller != m.owner {
			return RevertNotAdmin
		}
		m.adminName = encoded
		return ""
	})
}

func approve(list []*memCompany, account common.Address) string {
	company := findCompany(list, account)
	if company == nil {
		return RevertNotRegistered
	}
	if company.state != interfaces.StatePending && company.state != interfaces.StateRejected {
		return RevertCannotApprove
	}
	company.state = interfaces.StateApproved
	return ""
}

func reject(list []*memCompany, account common.Address) string {
	company := findCompany(list, account)
	if company == nil {
		return RevertNotRegistered
	}
	if company.state != interfaces.StatePending {
		return RevertCannotReject
	}
	company.state = interfaces.StateRejected
	return ""
}

func (c *MemoryAuditBookClient) ApproveAuditCompany(ctx context.Context, account common.Address) (*types.Receipt, error) {
	return c.write(interfaces.OpApproveAuditCompany, "ApproveAuditCompany", func(m *MemoryAuditBook) string {
		if c.caller != m.owner {
			return RevertNotAdmin
		}
		return approve(m.audit, account)
	})
}

func (c *MemoryAuditBookClient) RejectAuditCompany(ctx context.Context, account common.Address, reason string) (*types.Receipt, error) {
	return c.write(interfaces.OpRejectAuditCompany, "RejectAuditCompany", func(m *MemoryAuditBook) string {
		if c.caller != m.owner {
			return RevertNotAdmin
		}
		return reject(m.audit, account)
	})
}

func (c *MemoryAuditBookClient) ApproveAuditableCompany(ctx context.Context, account common.Address) (*types.Receipt, error) {
	return c.write(interfaces.OpApproveAuditableCompany, "ApproveAuditableCompany", func(m *MemoryAuditBook) string {
		if c.caller != m.owner {
			return RevertNotAdmin
		}
		return approve(m.auditable, account)
	})
}

func (c *MemoryAuditBookClient) RejectAuditableCompany(ctx context.Context, account common.Address, reason string) (*types.Receipt, error) {
	return c.write(interfaces.OpRejectAuditableCompany, "RejectAuditableCompany", func(m *MemoryAuditBook) string {
		if c.caller != m.owner {
			return RevertNotAdmin
		}
		return reject(m.auditable, account)
	})
}

func (c *MemoryAuditBookClient) RequestAuditCompanyAdmission(ctx context.Context, name string) (*types.Receipt, error) {
	encoded, err := bytes32.Encode(name)
	if err != nil {
		return nil, err
	}
	return c.write(interfaces.OpRequestAuditCompanyAdmission, "AuditCompanyRequestAdmision", func(m *MemoryAuditBook) string {
		if findCompany(m.audit, c.caller) != nil {
			return RevertAlreadyRegistered
		}
		m.audit = append(m.audit, &memCompany{name: encoded, state: interfaces.StatePending, account: c.caller})
		return ""
	})
}

func (c *MemoryAuditBookClient) RequestAuditableCompanyAdmission(ctx context.Context, name string) (*types.Receipt, error) {
	encoded, err := bytes32.Encode(name)
	if err != nil {
		return nil, err
	}
	return c.write(interfaces.OpRequestAuditableCompanyAdmission, "AuditableCompanyRequestAdmision", func(m *MemoryAuditBook) string {
		if findCompany(m.auditable, c.caller) != nil {
			return RevertAlreadyRegistered
		}
		m.auditable = append(m.auditable, &memCompany{name: encoded, state: interfaces.StatePending, account: c.caller})
		return ""
	})
}

func (c *MemoryAuditBookClient) SubmitAudit(ctx context.Context, auditable common.Address, finding string) (*types.Receipt, error) {
	encoded, err := bytes32.Encode(finding)
	if err != nil {
		return nil, err
	}
	return c.write(interfaces.OpSubmitAudit, "SubmitAudit", func(m *MemoryAuditBook) string {
		auditor := findCompany(m.audit, c.caller)
		if auditor == nil || auditor.state != interfaces.StateApproved {
			return RevertAuditorNotApproved
		}
		target := findCompany(m.auditable, auditable)
		if target == nil || target.state != interfaces.StateApproved {
			return RevertAuditableNotApproved
		}
		m.audits = append(m.audits, &memAudit{
			id:        big.NewInt(int64(len(m.audits))),
			finding:   encoded,
			state:     interfaces.AuditSubmitted,
			auditor:   c.caller,
			auditable: auditable,
		})
		return ""
	})
}

func (c *MemoryAuditBookClient) resolve(op interfaces.Op, method string, id *big.Int, state interfaces.AuditState) (*types.Receipt, error) {
	return c.write(op, method, func(m *MemoryAuditBook) string {
		if id == nil || !id.IsInt64() || id.Sign() < 0 || id.Int64() >= int64(len(m.audits)) {
			return RevertAuditNotFound
		}
		audit := m.audits[id.Int64()]
		if audit.auditable != c.caller {
			return RevertNotAuditTarget
		}
		if audit.state != interfaces.AuditSubmitted {
			return RevertAuditResolved
		}
		audit.state = state
		return ""
	})
}

func (c *MemoryAuditBookClient) ApproveSubmittedAudit(ctx context.Context, id *big.Int) (*types.Receipt, error) {
	return c.resolve(interfaces.OpApproveSubmittedAudit, "AuditableCompanyApproveSubmittedAudit", id, interfaces.AuditApproved)
}

func (c *MemoryAuditBookClient) RejectSubmittedAudit(ctx context.Context, id *big.Int) (*types.Receipt, error) {
	return c.resolve(interfaces.OpRejectSubmittedAudit, "AuditableCompanyRejectSubmittedAudit", id, interfaces.AuditRejected)
}
