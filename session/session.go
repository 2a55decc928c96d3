// Package session holds the state of one operator session: the connected
// wallet, the gateway bound to it, and the view store. Every action handler
// hangs off Session and they run one at a time.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ruteri/audit-book-client/interfaces"
)

// Messages shown in the view.
const (
	MessageSubmitSuccess    = "The finding was succesfully submited!"
	MessageSubmitValidation = "You have to select a company and fill the finding box"
	MessageSubmitFailure    = "There was an error submitting the finding!"

	BannerNoWallet     = "No wallet configured: pass --wallet-type and its credentials."
	BannerUserRejected = "Access to the wallet account was rejected."
)

// Session serializes the actions of one operator against the contract.
type Session struct {
	mu sync.Mutex

	log       *slog.Logger
	connector interfaces.WalletConnector
	factory   interfaces.GatewayFactory
	store     *Store

	wallet      *interfaces.WalletSession
	gateway     interfaces.AuditBookGateway
	lastRefresh []Read
}

func New(log *slog.Logger, connector interfaces.WalletConnector, factory interfaces.GatewayFactory) *Session {
	return &Session{
		log:       log,
		connector: connector,
		factory:   factory,
		store:     NewStore(),
	}
}

// Close releases the wallet connector's resources, if it holds any.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if closer, ok := s.connector.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Snapshot returns a copy of the current view state.
func (s *Session) Snapshot() Snapshot {
	return s.store.Snapshot()
}

// LastRefresh returns the refresh steps run by the last action.
func (s *Session) LastRefresh() []Read {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make([]Read, len(s.lastRefresh))
	copy(res, s.lastRefresh)
	return res
}

// Connect asks the wallet for an account, binds a fresh gateway to it and
// runs a full refresh. Previously fetched state is discarded first.
func (s *Session) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connect(ctx)
}

func (s *Session) connect(ctx context.Context) error {
	s.wallet = nil
	s.gateway = nil
	s.lastRefresh = nil
	s.store.Reset()

	wallet, err := s.connector.Connect(ctx)
	if err != nil {
		s.log.Error("could not connect wallet", "err", err)
		s.store.SetWalletError(bannerFor(err))
		return err
	}

	gateway, err := s.factory.GatewayFor(wallet)
	if err != nil {
		s.log.Error("could not bind contract gateway", "account", wallet.Account, "err", err)
		s.store.SetWalletError(fmt.Sprintf("Could not bind the contract for %s.", wallet.Account.Hex()))
		return err
	}

	s.wallet = wallet
	s.gateway = gateway
	s.store.SetConnected(wallet.Account)
	s.log.Info("wallet connected", "account", wallet.Account)

	s.refresh(ctx, FullRefresh)
	return nil
}

func bannerFor(err error) string {
	switch {
	case errors.Is(err, interfaces.ErrWalletUnavailable):
		return BannerNoWallet
	case errors.Is(err, interfaces.ErrUserRejected):
		return BannerUserRejected
	default:
		return fmt.Sprintf("Could not connect to the wallet: %v", err)
	}
}

// Refresh re-reads everything the view shows.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gateway == nil {
		return interfaces.ErrNotConnected
	}
	s.refresh(ctx, FullRefresh)
	return nil
}

func (s *Session) refresh(ctx context.Context, reads []Read) {
	r := &refresher{
		gateway: s.gateway,
		store:   s.store,
		onError: func(read Read, err error) {
			s.log.Error("refresh step failed", "read", read, "err", err)
		},
	}
	r.run(ctx, reads)
	s.lastRefresh = reads
}

// UpdateForm changes transient form fields. It never contacts the contract.
func (s *Session) UpdateForm(u FormUpdate) {
	s.store.UpdateForm(u)
}

// write runs one contract write and, on success, the reads that follow it.
// On failure the store is left as it was.
func (s *Session) write(ctx context.Context, op interfaces.Op, send func(gw interfaces.AuditBookGateway) error) error {
	if s.gateway == nil {
		return interfaces.ErrNotConnected
	}

	s.lastRefresh = nil
	if err := send(s.gateway); err != nil {
		s.log.Error("contract write failed", "op", op, "account", s.wallet.Account, "err", err)
		return err
	}

	s.log.Info("contract write mined", "op", op, "account", s.wallet.Account)
	s.refresh(ctx, ReadsFor(op))
	return nil
}

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", interfaces.ErrValidation, msg)
}

func parseAddress(field, value string) (common.Address, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return common.Address{}, validationError(field + " is required")
	}
	if !common.IsHexAddress(value) {
		return common.Address{}, validationError(field + " is not a valid address")
	}
	return common.HexToAddress(value), nil
}

func requireText(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", validationError(field + " is required")
	}
	return value, nil
}

// SetAdminName sets the book administrator's display name.
func (s *Session) SetAdminName(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name, err := requireText("admin name", name)
	if err != nil {
		return err
	}
	return s.write(ctx, interfaces.OpSetAdminName, func(gw interfaces.AuditBookGateway) error {
		_, err := gw.SetAdminName(ctx, name)
		return err
	})
}

func (s *Session) ApproveAuditCompany(ctx context.Context, account string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	addr, err := parseAddress("company address", account)
	if err != nil {
		return err
	}
	return s.write(ctx, interfaces.OpApproveAuditCompany, func(gw interfaces.AuditBookGateway) error {
		_, err := gw.ApproveAuditCompany(ctx, addr)
		return err
	})
}

// RejectAuditCompany rejects a pending audit company. An empty reason sends
// interfaces.DefaultRejectionReason.
func (s *Session) RejectAuditCompany(ctx context.Context, account, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	addr, err := parseAddress("company address", account)
	if err != nil {
		return err
	}
	reason = rejectionReason(reason)
	return s.write(ctx, interfaces.OpRejectAuditCompany, func(gw interfaces.AuditBookGateway) error {
		_, err := gw.RejectAuditCompany(ctx, addr, reason)
		return err
	})
}

func (s *Session) ApproveAuditableCompany(ctx context.Context, account string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	addr, err := parseAddress("company address", account)
	if err != nil {
		return err
	}
	return s.write(ctx, interfaces.OpApproveAuditableCompany, func(gw interfaces.AuditBookGateway) error {
		_, err := gw.ApproveAuditableCompany(ctx, addr)
		return err
	})
}

// RejectAuditableCompany rejects a pending auditable company. An empty
// reason sends interfaces.DefaultRejectionReason.
func (s *Session) RejectAuditableCompany(ctx context.Context, account, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	addr, err := parseAddress("company address", account)
	if err != nil {
		return err
	}
	reason = rejectionReason(reason)
	return s.write(ctx, interfaces.OpRejectAuditableCompany, func(gw interfaces.AuditBookGateway) error {
		_, err := gw.RejectAuditableCompany(ctx, addr, reason)
		return err
	})
}

func rejectionReason(reason string) string {
	if strings.TrimSpace(reason) == "" {
		return interfaces.DefaultRejectionReason
	}
	return reason
}

// RequestAuditCompanyAdmission registers the connected account as an audit
// company. An account already registered is refused without a transaction.
func (s *Session) RequestAuditCompanyAdmission(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name, err := requireText("company name", name)
	if err != nil {
		return err
	}
	if s.store.Snapshot().RegisteredAsAuditCompany {
		return validationError("account is already registered as an audit company")
	}
	return s.write(ctx, interfaces.OpRequestAuditCompanyAdmission, func(gw interfaces.AuditBookGateway) error {
		_, err := gw.RequestAuditCompanyAdmission(ctx, name)
		return err
	})
}

// RequestAuditableCompanyAdmission registers the connected account as an
// auditable company. An account already registered is refused without a
// transaction.
func (s *Session) RequestAuditableCompanyAdmission(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name, err := requireText("company name", name)
	if err != nil {
		return err
	}
	if s.store.Snapshot().RegisteredAsAuditableCompany {
		return validationError("account is already registered as an auditable company")
	}
	return s.write(ctx, interfaces.OpRequestAuditableCompanyAdmission, func(gw interfaces.AuditBookGateway) error {
		_, err := gw.RequestAuditableCompanyAdmission(ctx, name)
		return err
	})
}

// SubmitAudit submits a finding against an approved auditable company. The
// outcome is also reported through the snapshot's submit message.
func (s *Session) SubmitAudit(ctx context.Context, auditable, finding string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, addrErr := parseAddress("auditable company", auditable)
	finding, textErr := requireText("finding", finding)
	if err := errors.Join(addrErr, textErr); err != nil {
		s.store.SetSubmitMessage(MessageSubmitValidation)
		return err
	}

	err := s.write(ctx, interfaces.OpSubmitAudit, func(gw interfaces.AuditBookGateway) error {
		_, err := gw.SubmitAudit(ctx, target, finding)
		return err
	})
	if err != nil {
		s.store.SetSubmitMessage(submitFailureMessage(err))
		return err
	}

	s.store.clearFinding()
	s.store.SetSubmitMessage(MessageSubmitSuccess)
	return nil
}

func submitFailureMessage(err error) string {
	var writeErr *interfaces.RemoteWriteError
	if errors.As(err, &writeErr) && writeErr.Reason != "" {
		return MessageSubmitFailure + " - Detail: " + writeErr.Reason
	}
	if errors.Is(err, interfaces.ErrValidation) {
		return MessageSubmitFailure + " - Detail: " + err.Error()
	}
	return MessageSubmitFailure
}

func (s *Session) ApproveSubmittedAudit(ctx context.Context, id *big.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == nil || id.Sign() < 0 {
		return validationError("audit id is required")
	}
	return s.write(ctx, interfaces.OpApproveSubmittedAudit, func(gw interfaces.AuditBookGateway) error {
		_, err := gw.ApproveSubmittedAudit(ctx, id)
		return err
	})
}

func (s *Session) RejectSubmittedAudit(ctx context.Context, id *big.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == nil || id.Sign() < 0 {
		return validationError("audit id is required")
	}
	return s.write(ctx, interfaces.OpRejectSubmittedAudit, func(gw interfaces.AuditBookGateway) error {
		_, err := gw.RejectSubmittedAudit(ctx, id)
		return err
	})
}

// WatchAccount polls the wallet every interval and reconnects when its
// first account differs from the connected one. It returns when ctx is
// done. A non-positive interval disables polling.
func (s *Session) WatchAccount(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.checkAccount(ctx)
		}
	}
}

func (s *Session) checkAccount(ctx context.Context) {
	accounts, err := s.connector.Accounts(ctx)
	if err != nil {
		s.log.Debug("could not list wallet accounts", "err", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.wallet == nil || len(accounts) == 0 || accounts[0] == s.wallet.Account {
		return
	}

	s.log.Info("wallet account changed", "from", s.wallet.Account, "to", accounts[0])
	if err := s.connect(ctx); err != nil {
		s.log.Error("could not reconnect after account change", "err", err)
	}
}
