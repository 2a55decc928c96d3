package session

import (
	"context"
	"errors"

	"github.com/ruteri/audit-book-client/interfaces"
)

// Read names one refresh step. A step may issue more than one contract call
// (a registration step reads both the flag and the record).
type Read string

const (
	ReadAdminName                    Read = "admin_name"
	ReadOwner                        Read = "owner"
	ReadAuditCompanyRegistration     Read = "audit_company_registration"
	ReadAuditableCompanyRegistration Read = "auditable_company_registration"
	ReadAuditCompanies               Read = "audit_companies"
	ReadAuditableCompanies           Read = "auditable_companies"
	ReadSubmittedAudits              Read = "submitted_audits"
)

// FullRefresh is run on connect and on explicit refresh. Owner and
// registrations come first because the later steps are gated on them.
var FullRefresh = []Read{
	ReadAdminName,
	ReadOwner,
	ReadAuditCompanyRegistration,
	ReadAuditableCompanyRegistration,
	ReadAuditCompanies,
	ReadAuditableCompanies,
	ReadSubmittedAudits,
}

// refreshTable lists the reads that follow each successful write.
var refreshTable = map[interfaces.Op][]Read{
	interfaces.OpSetAdminName:                     {ReadAdminName},
	interfaces.OpApproveAuditCompany:              {ReadAuditCompanies},
	interfaces.OpRejectAuditCompany:               {ReadAuditCompanies},
	interfaces.OpApproveAuditableCompany:          {ReadAuditableCompanies},
	interfaces.OpRejectAuditableCompany:           {ReadAuditableCompanies},
	interfaces.OpRequestAuditCompanyAdmission:     {ReadAuditCompanyRegistration, ReadAuditCompanies},
	interfaces.OpRequestAuditableCompanyAdmission: {ReadAuditableCompanyRegistration, ReadAuditableCompanies},
	interfaces.OpSubmitAudit:                      {ReadSubmittedAudits},
	interfaces.OpApproveSubmittedAudit:            {ReadSubmittedAudits},
	interfaces.OpRejectSubmittedAudit:             {ReadSubmittedAudits},
}

// ReadsFor returns the refresh steps that follow a successful op.
func ReadsFor(op interfaces.Op) []Read {
	reads := refreshTable[op]
	res := make([]Read, len(reads))
	copy(res, reads)
	return res
}

// refresher executes refresh steps against a gateway, writing results into
// a store. A failed step is logged and leaves its part of the store alone.
type refresher struct {
	gateway interfaces.AuditBookReader
	store   *Store
	onError func(read Read, err error)
}

func (r *refresher) run(ctx context.Context, reads []Read) {
	for _, read := range reads {
		if err := r.step(ctx, read); err != nil {
			r.onError(read, err)
		}
	}
}

func (r *refresher) step(ctx context.Context, read Read) error {
	switch read {
	case ReadAdminName:
		name, err := r.gateway.AdminName(ctx)
		if err != nil {
			return err
		}
		r.store.SetAdminName(name)

	case ReadOwner:
		owner, err := r.gateway.Owner(ctx)
		if err != nil {
			return err
		}
		r.store.SetOwner(owner)

	case ReadAuditCompanyRegistration:
		registered, err := r.gateway.IsRegisteredAsAuditCompany(ctx)
		if err != nil {
			return err
		}
		var company interfaces.Company
		if registered {
			if company, err = r.gateway.AuditCompanyRegistration(ctx); err != nil {
				return err
			}
		}
		r.store.SetAuditCompanyRegistration(company, registered)

	case ReadAuditableCompanyRegistration:
		registered, err := r.gateway.IsRegisteredAsAuditableCompany(ctx)
		if err != nil {
			return err
		}
		var company interfaces.Company
		if registered {
			if company, err = r.gateway.AuditableCompanyRegistration(ctx); err != nil {
				return err
			}
		}
		r.store.SetAuditableCompanyRegistration(company, registered)

	case ReadAuditCompanies:
		if !r.store.Snapshot().IsOwner {
			r.store.SetAuditCompanies(nil)
			return nil
		}
		companies, err := r.gateway.AuditCompanies(ctx)
		if err != nil {
			return err
		}
		r.store.SetAuditCompanies(companies)

	case ReadAuditableCompanies:
		var errs []error
		if r.store.Snapshot().IsOwner {
			companies, err := r.gateway.AuditableCompanies(ctx)
			if err != nil {
				errs = append(errs, err)
			} else {
				r.store.SetAuditableCompanies(companies)
			}
		} else {
			r.store.SetAuditableCompanies(nil)
		}
		approved, err := r.gateway.ApprovedAuditableCompanies(ctx)
		if err != nil {
			errs = append(errs, err)
		} else {
			r.store.SetApprovedAuditableCompanies(approved)
		}
		return errors.Join(errs...)

	case ReadSubmittedAudits:
		if !r.store.Snapshot().RegisteredAsAuditableCompany {
			r.store.SetSubmittedAudits(nil)
			return nil
		}
		audits, err := r.gateway.SubmittedAudits(ctx)
		if err != nil {
			return err
		}
		r.store.SetSubmittedAudits(audits)
	}
	return nil
}
