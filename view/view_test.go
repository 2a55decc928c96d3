package view

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ruteri/audit-book-client/interfaces"
	"github.com/ruteri/audit-book-client/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ownerAddr     = common.HexToAddress("0x1000000000000000000000000000000000000001")
	auditorAddr   = common.HexToAddress("0x2000000000000000000000000000000000000002")
	auditableAddr = common.HexToAddress("0x3000000000000000000000000000000000000003")
)

func TestPanels_NotConnected(t *testing.T) {
	assert.Equal(t, PanelSet{Connect: true}, Panels(session.Snapshot{}))
}

func TestPanels_Gating(t *testing.T) {
	approvedTarget := []interfaces.Company{{Name: "Target", State: interfaces.StateApproved, Account: auditableAddr}}
	submitted := []interfaces.Audit{{ID: big.NewInt(0), Finding: "overflow", State: interfaces.AuditSubmitted}}

	tests := []struct {
		name     string
		snapshot session.Snapshot
		expected PanelSet
	}{
		{
			name:     "fresh account",
			snapshot: session.Snapshot{Connected: true, Account: auditorAddr, AdminName: "Acme"},
			expected: PanelSet{AuditAdmission: true, AuditableAdmission: true},
		},
		{
			name:     "owner without admin name",
			snapshot: session.Snapshot{Connected: true, Account: ownerAddr, Owner: ownerAddr, IsOwner: true},
			expected: PanelSet{
				Owner: true, SetupAdminNamePrompt: true, AuditAdmission: true, AuditableAdmission: true,
				AuditCompanyRows: []CompanyRow{}, AuditableCompanyRows: []CompanyRow{},
			},
		},
		{
			name: "pending audit company",
			snapshot: session.Snapshot{
				Connected: true, Account: auditorAddr, AdminName: "Acme",
				RegisteredAsAuditCompany:   true,
				AuditCompany:               interfaces.Company{Name: "Auditors Inc", State: interfaces.StatePending},
				ApprovedAuditableCompanies: approvedTarget,
			},
			expected: PanelSet{AuditStatus: true, AuditableAdmission: true},
		},
		{
			name: "approved audit company without targets",
			snapshot: session.Snapshot{
				Connected: true, Account: auditorAddr, AdminName: "Acme",
				RegisteredAsAuditCompany: true,
				AuditCompany:             interfaces.Company{Name: "Auditors Inc", State: interfaces.StateApproved},
			},
			expected: PanelSet{AuditStatus: true, AuditableAdmission: true},
		},
		{
			name: "approved audit company with targets",
			snapshot: session.Snapshot{
				Connected: true, Account: auditorAddr, AdminName: "Acme",
				RegisteredAsAuditCompany:   true,
				AuditCompany:               interfaces.Company{Name: "Auditors Inc", State: interfaces.StateApproved},
				ApprovedAuditableCompanies: approvedTarget,
			},
			expected: PanelSet{AuditStatus: true, SubmitAudit: true, AuditableAdmission: true},
		},
		{
			name: "rejected auditable company with findings",
			snapshot: session.Snapshot{
				Connected: true, Account: auditableAddr, AdminName: "Acme",
				RegisteredAsAuditableCompany: true,
				AuditableCompany:             interfaces.Company{Name: "Target", State: interfaces.StateRejected},
				SubmittedAudits:              submitted,
			},
			expected: PanelSet{AuditAdmission: true, AuditableStatus: true},
		},
		{
			name: "approved auditable company with findings",
			snapshot: session.Snapshot{
				Connected: true, Account: auditableAddr, AdminName: "Acme",
				RegisteredAsAuditableCompany: true,
				AuditableCompany:             interfaces.Company{Name: "Target", State: interfaces.StateApproved},
				SubmittedAudits:              submitted,
			},
			expected: PanelSet{
				AuditAdmission: true, AuditableStatus: true, ReviewFindings: true,
				FindingRows: []FindingRow{{Audit: submitted[0], CanApprove: true, CanReject: true}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Panels(tt.snapshot))
		})
	}
}

func TestPanels_RowActionsFollowState(t *testing.T) {
	snapshot := session.Snapshot{
		Connected: true, Account: ownerAddr, Owner: ownerAddr, IsOwner: true, AdminName: "Acme",
		AuditCompanies: []interfaces.Company{
			{Name: "pending", State: interfaces.StatePending},
			{Name: "approved", State: interfaces.StateApproved},
			{Name: "rejected", State: interfaces.StateRejected},
		},
		RegisteredAsAuditableCompany: true,
		AuditableCompany:             interfaces.Company{State: interfaces.StateApproved},
		SubmittedAudits: []interfaces.Audit{
			{ID: big.NewInt(0), State: interfaces.AuditSubmitted},
			{ID: big.NewInt(1), State: interfaces.AuditApproved},
			{ID: big.NewInt(2), State: interfaces.AuditRejected},
		},
	}

	p := Panels(snapshot)
	require.Len(t, p.AuditCompanyRows, 3)
	assert.True(t, p.AuditCompanyRows[0].CanApprove)
	assert.True(t, p.AuditCompanyRows[0].CanReject)
	assert.False(t, p.AuditCompanyRows[1].CanApprove)
	assert.False(t, p.AuditCompanyRows[1].CanReject)
	assert.True(t, p.AuditCompanyRows[2].CanApprove)
	assert.False(t, p.AuditCompanyRows[2].CanReject)
	assert.False(t, p.SetupAdminNamePrompt)

	require.Len(t, p.FindingRows, 3)
	assert.True(t, p.FindingRows[0].CanApprove)
	assert.True(t, p.FindingRows[0].CanReject)
	assert.False(t, p.FindingRows[1].CanApprove)
	assert.False(t, p.FindingRows[2].CanReject)
}

func TestRenderer(t *testing.T) {
	r, err := NewRenderer("0xb09da8a5B236fE0295A345035287e80bb0008290")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, session.Snapshot{WalletError: session.BannerNoWallet}))
	assert.Contains(t, buf.String(), "Connect wallet")
	assert.Contains(t, buf.String(), "No wallet configured")

	buf.Reset()
	require.NoError(t, r.Render(&buf, session.Snapshot{
		Connected: true, Account: auditorAddr, AdminName: "Acme",
		RegisteredAsAuditCompany:   true,
		AuditCompany:               interfaces.Company{Name: "Auditors Inc", State: interfaces.StateApproved},
		ApprovedAuditableCompanies: []interfaces.Company{{Name: "Target <b>", State: interfaces.StateApproved, Account: auditableAddr}},
		SubmitMessage:              session.MessageSubmitSuccess,
	}))
	page := buf.String()
	assert.Contains(t, page, "administered by <strong>Acme</strong>")
	assert.Contains(t, page, "Auditors Inc: Approved")
	assert.Contains(t, page, "Target &lt;b&gt;")
	assert.Contains(t, page, auditableAddr.Hex())
	assert.Contains(t, page, session.MessageSubmitSuccess)
	assert.NotContains(t, page, "Connect wallet")
}
