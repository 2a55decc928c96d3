// Package view decides which panels and row actions the current account may
// see, and renders the panel page.
package view

import (
	"github.com/ruteri/audit-book-client/interfaces"
	"github.com/ruteri/audit-book-client/session"
)

// CompanyRow is one company in the owner panel with the actions its state allows.
type CompanyRow struct {
	interfaces.Company
	CanApprove bool `json:"can_approve"`
	CanReject  bool `json:"can_reject"`
}

// FindingRow is one submitted finding with the actions its state allows.
type FindingRow struct {
	interfaces.Audit
	CanApprove bool `json:"can_approve"`
	CanReject  bool `json:"can_reject"`
}

// PanelSet is the visibility of every panel for one snapshot.
type PanelSet struct {
	Connect              bool `json:"connect"`
	Owner                bool `json:"owner"`
	SetupAdminNamePrompt bool `json:"setup_admin_name_prompt"`
	AuditAdmission       bool `json:"audit_admission"`
	AuditStatus          bool `json:"audit_status"`
	SubmitAudit          bool `json:"submit_audit"`
	AuditableAdmission   bool `json:"auditable_admission"`
	AuditableStatus      bool `json:"auditable_status"`
	ReviewFindings       bool `json:"review_findings"`

	AuditCompanyRows     []CompanyRow `json:"audit_company_rows,omitempty"`
	AuditableCompanyRows []CompanyRow `json:"auditable_company_rows,omitempty"`
	FindingRows          []FindingRow `json:"finding_rows,omitempty"`
}

// Panels derives the panel set from a snapshot. Nothing but the connect
// panel is shown until a wallet is connected.
func Panels(s session.Snapshot) PanelSet {
	if !s.Connected {
		return PanelSet{Connect: true}
	}

	p := PanelSet{
		Owner:              s.IsOwner,
		AuditAdmission:     !s.RegisteredAsAuditCompany,
		AuditStatus:        s.RegisteredAsAuditCompany,
		AuditableAdmission: !s.RegisteredAsAuditableCompany,
		AuditableStatus:    s.RegisteredAsAuditableCompany,
	}
	p.SetupAdminNamePrompt = p.Owner && s.AdminName == ""
	p.SubmitAudit = p.AuditStatus &&
		s.AuditCompany.State == interfaces.StateApproved &&
		len(s.ApprovedAuditableCompanies) > 0
	p.ReviewFindings = p.AuditableStatus &&
		s.AuditableCompany.State == interfaces.StateApproved &&
		len(s.SubmittedAudits) > 0

	if p.Owner {
		p.AuditCompanyRows = companyRows(s.AuditCompanies)
		p.AuditableCompanyRows = companyRows(s.AuditableCompanies)
	}
	if p.ReviewFindings {
		p.FindingRows = findingRows(s.SubmittedAudits)
	}
	return p
}

func companyRows(companies []interfaces.Company) []CompanyRow {
	rows := make([]CompanyRow, 0, len(companies))
	for _, c := range companies {
		rows = append(rows, CompanyRow{
			Company:    c,
			CanApprove: c.State == interfaces.StatePending || c.State == interfaces.StateRejected,
			CanReject:  c.State == interfaces.StatePending,
		})
	}
	return rows
}

func findingRows(audits []interfaces.Audit) []FindingRow {
	rows := make([]FindingRow, 0, len(audits))
	for _, a := range audits {
		rows = append(rows, FindingRow{
			Audit:      a,
			CanApprove: a.State == interfaces.AuditSubmitted,
			CanReject:  a.State == interfaces.AuditSubmitted,
		})
	}
	return rows
}
