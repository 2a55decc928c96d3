package interfaces

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// CompanyState mirrors the contract's registration state enum.
type CompanyState uint8

const (
	StatePending CompanyState = iota
	StateApproved
	StateRejected
)

func (s CompanyState) String() string {
	switch s {
	case StatePending:
		return "Pending"
	case StateApproved:
		return "Approved"
	case StateRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

func (s CompanyState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *CompanyState) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for _, state := range []CompanyState{StatePending, StateApproved, StateRejected} {
		if state.String() == name {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown company state %q", name)
}

// AuditState mirrors the contract's audit state enum.
type AuditState uint8

const (
	AuditSubmitted AuditState = iota
	AuditApproved
	AuditRejected
)

func (s AuditState) String() string {
	switch s {
	case AuditSubmitted:
		return "Submitted"
	case AuditApproved:
		return "Approved"
	case AuditRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

func (s AuditState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *AuditState) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for _, state := range []AuditState{AuditSubmitted, AuditApproved, AuditRejected} {
		if state.String() == name {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown audit state %q", name)
}

// BookProfile is the administrator-facing identity of the book.
type BookProfile struct {
	AdminName string         `json:"admin_name"`
	Owner     common.Address `json:"owner"`
}

// Company is a registration of either an audit company or an auditable
// company. Name is already decoded from its fixed-width form.
type Company struct {
	Name    string         `json:"name"`
	State   CompanyState   `json:"state"`
	Account common.Address `json:"account"`
}

// Audit is a finding submitted by an audit company against an auditable
// company.
type Audit struct {
	ID        *big.Int       `json:"id"`
	Finding   string         `json:"finding"`
	State     AuditState     `json:"state"`
	Auditor   common.Address `json:"auditor"`
	Auditable common.Address `json:"auditable"`
}

// Op names a remote state-changing operation. Ops key the refresh table and
// label metrics.
type Op string

const (
	OpSetAdminName                     Op = "set_admin_name"
	OpApproveAuditCompany              Op = "approve_audit_company"
	OpRejectAuditCompany               Op = "reject_audit_company"
	OpApproveAuditableCompany          Op = "approve_auditable_company"
	OpRejectAuditableCompany           Op = "reject_auditable_company"
	OpRequestAuditCompanyAdmission     Op = "request_audit_company_admission"
	OpRequestAuditableCompanyAdmission Op = "request_auditable_company_admission"
	OpSubmitAudit                      Op = "submit_audit"
	OpApproveSubmittedAudit            Op = "approve_submitted_audit"
	OpRejectSubmittedAudit             Op = "reject_submitted_audit"
)

// AllOps lists every write operation.
var AllOps = []Op{
	OpSetAdminName,
	OpApproveAuditCompany,
	OpRejectAuditCompany,
	OpApproveAuditableCompany,
	OpRejectAuditableCompany,
	OpRequestAuditCompanyAdmission,
	OpRequestAuditableCompanyAdmission,
	OpSubmitAudit,
	OpApproveSubmittedAudit,
	OpRejectSubmittedAudit,
}

// DefaultRejectionReason is sent when the owner rejects a company without
// giving a reason.
const DefaultRejectionReason = "Your company was rejected"
