package session

import (
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ruteri/audit-book-client/interfaces"
)

// Form holds the transient input fields of the panel.
type Form struct {
	AdminName               string `json:"admin_name"`
	AuditCompanyName        string `json:"audit_company_name"`
	AuditableCompanyName    string `json:"auditable_company_name"`
	AuditableCompanyAddress string `json:"auditable_company_address"`
	AuditFinding            string `json:"audit_finding"`
}

// FormUpdate changes the fields that are set and leaves the others alone.
type FormUpdate struct {
	AdminName               *string `json:"admin_name,omitempty"`
	AuditCompanyName        *string `json:"audit_company_name,omitempty"`
	AuditableCompanyName    *string `json:"auditable_company_name,omitempty"`
	AuditableCompanyAddress *string `json:"auditable_company_address,omitempty"`
	AuditFinding            *string `json:"audit_finding,omitempty"`
}

// Snapshot is a copy of everything the view renders. Remote fields hold the
// last successfully fetched value.
type Snapshot struct {
	Account     common.Address `json:"account"`
	Connected   bool           `json:"connected"`
	WalletError string         `json:"wallet_error,omitempty"`

	AdminName string         `json:"admin_name"`
	Owner     common.Address `json:"owner"`
	IsOwner   bool           `json:"is_owner"`

	AuditCompanies             []interfaces.Company `json:"audit_companies"`
	AuditableCompanies         []interfaces.Company `json:"auditable_companies"`
	ApprovedAuditableCompanies []interfaces.Company `json:"approved_auditable_companies"`

	AuditCompany                 interfaces.Company `json:"audit_company"`
	RegisteredAsAuditCompany     bool               `json:"registered_as_audit_company"`
	AuditableCompany             interfaces.Company `json:"auditable_company"`
	RegisteredAsAuditableCompany bool               `json:"registered_as_auditable_company"`

	SubmittedAudits []interfaces.Audit `json:"submitted_audits"`
	SubmitMessage   string             `json:"submit_message,omitempty"`

	Form Form `json:"form"`
}

func (s *Snapshot) clone() Snapshot {
	c := *s
	c.AuditCompanies = cloneCompanies(s.AuditCompanies)
	c.AuditableCompanies = cloneCompanies(s.AuditableCompanies)
	c.ApprovedAuditableCompanies = cloneCompanies(s.ApprovedAuditableCompanies)
	if s.SubmittedAudits != nil {
		c.SubmittedAudits = make([]interfaces.Audit, len(s.SubmittedAudits))
		for i, a := range s.SubmittedAudits {
			if a.ID != nil {
				a.ID = new(big.Int).Set(a.ID)
			}
			c.SubmittedAudits[i] = a
		}
	}
	return c
}

func cloneCompanies(list []interfaces.Company) []interfaces.Company {
	if list == nil {
		return nil
	}
	res := make([]interfaces.Company, len(list))
	copy(res, list)
	return res
}

// Store is the view state of one session.
type Store struct {
	mu    sync.RWMutex
	state Snapshot
}

func NewStore() *Store {
	return &Store{}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

func (s *Store) update(fn func(st *Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
	s.state.IsOwner = s.state.Connected && s.state.Account == s.state.Owner
}

// Reset discards every fetched value and the wallet state. The form is kept.
func (s *Store) Reset() {
	s.update(func(st *Snapshot) {
		*st = Snapshot{Form: st.Form}
	})
}

func (s *Store) SetConnected(account common.Address) {
	s.update(func(st *Snapshot) {
		st.Account = account
		st.Connected = true
		st.WalletError = ""
	})
}

func (s *Store) SetWalletError(msg string) {
	s.update(func(st *Snapshot) { st.WalletError = msg })
}

func (s *Store) SetAdminName(name string) {
	s.update(func(st *Snapshot) { st.AdminName = name })
}

func (s *Store) SetOwner(owner common.Address) {
	s.update(func(st *Snapshot) { st.Owner = owner })
}

func (s *Store) SetAuditCompanies(list []interfaces.Company) {
	s.update(func(st *Snapshot) { st.AuditCompanies = cloneCompanies(list) })
}

func (s *Store) SetAuditableCompanies(list []interfaces.Company) {
	s.update(func(st *Snapshot) { st.AuditableCompanies = cloneCompanies(list) })
}

func (s *Store) SetApprovedAuditableCompanies(list []interfaces.Company) {
	s.update(func(st *Snapshot) { st.ApprovedAuditableCompanies = cloneCompanies(list) })
}

// SetAuditCompanyRegistration stores the caller's own audit-company record
// and mirrors its name into the admission form.
func (s *Store) SetAuditCompanyRegistration(company interfaces.Company, registered bool) {
	s.update(func(st *Snapshot) {
		st.AuditCompany = company
		st.RegisteredAsAuditCompany = registered
		if registered {
			st.Form.AuditCompanyName = company.Name
		}
	})
}

// SetAuditableCompanyRegistration stores the caller's own auditable-company
// record and mirrors its name into the admission form.
func (s *Store) SetAuditableCompanyRegistration(company interfaces.Company, registered bool) {
	s.update(func(st *Snapshot) {
		st.AuditableCompany = company
		st.RegisteredAsAuditableCompany = registered
		if registered {
			st.Form.AuditableCompanyName = company.Name
		}
	})
}

func (s *Store) SetSubmittedAudits(audits []interfaces.Audit) {
	s.update(func(st *Snapshot) {
		st.SubmittedAudits = (&Snapshot{SubmittedAudits: audits}).clone().SubmittedAudits
	})
}

func (s *Store) SetSubmitMessage(msg string) {
	s.update(func(st *Snapshot) { st.SubmitMessage = msg })
}

// UpdateForm applies u. Editing the finding target or text clears the
// submit message.
func (s *Store) UpdateForm(u FormUpdate) {
	s.update(func(st *Snapshot) {
		if u.AdminName != nil {
			st.Form.AdminName = *u.AdminName
		}
		if u.AuditCompanyName != nil {
			st.Form.AuditCompanyName = *u.AuditCompanyName
		}
		if u.AuditableCompanyName != nil {
			st.Form.AuditableCompanyName = *u.AuditableCompanyName
		}
		if u.AuditableCompanyAddress != nil {
			st.Form.AuditableCompanyAddress = *u.AuditableCompanyAddress
			st.SubmitMessage = ""
		}
		if u.AuditFinding != nil {
			st.Form.AuditFinding = *u.AuditFinding
			st.SubmitMessage = ""
		}
	})
}

func (s *Store) clearFinding() {
	s.update(func(st *Snapshot) { st.Form.AuditFinding = "" })
}
