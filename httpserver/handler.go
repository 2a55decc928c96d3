package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ruteri/audit-book-client/interfaces"
	"github.com/ruteri/audit-book-client/session"
	"github.com/ruteri/audit-book-client/view"
)

// maxBodySize is the maximum allowed request body size (64KB).
const maxBodySize = 64 * 1024

// StateResponse is the body of every API response.
type StateResponse struct {
	State  session.Snapshot `json:"state"`
	Panels view.PanelSet    `json:"panels"`
	Error  string           `json:"error,omitempty"`
	Reason string           `json:"reason,omitempty"`
}

type nameRequest struct {
	Name string `json:"name"`
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

type submitAuditRequest struct {
	Auditable string `json:"auditable"`
	Finding   string `json:"finding"`
}

// Handler exposes one session over HTTP.
type Handler struct {
	session  *session.Session
	renderer *view.Renderer
	log      *slog.Logger
}

func NewHandler(s *session.Session, renderer *view.Renderer, log *slog.Logger) *Handler {
	return &Handler{
		session:  s,
		renderer: renderer,
		log:      log,
	}
}

// statusFor maps a session error to the HTTP status returned for it.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, interfaces.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, interfaces.ErrNotConnected),
		errors.Is(err, interfaces.ErrWalletUnavailable),
		errors.Is(err, interfaces.ErrUserRejected):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

func (h *Handler) writeState(w http.ResponseWriter, err error) {
	snapshot := h.session.Snapshot()
	resp := StateResponse{
		State:  snapshot,
		Panels: view.Panels(snapshot),
	}
	if err != nil {
		resp.Error = err.Error()
		var writeErr *interfaces.RemoteWriteError
		if errors.As(err, &writeErr) {
			resp.Reason = writeErr.Reason
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusFor(err))
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.log.Error("Failed to encode response", "err", err)
	}
}

func (h *Handler) badRequest(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// decodeBody reads an optional JSON body into v. An empty body leaves v alone.
func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// HandleIndex renders the panel page.
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Render(w, h.session.Snapshot()); err != nil {
		h.log.Error("Failed to render panel", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) HandleState(w http.ResponseWriter, r *http.Request) {
	h.writeState(w, nil)
}

func (h *Handler) HandleConnect(w http.ResponseWriter, r *http.Request) {
	h.writeState(w, h.session.Connect(r.Context()))
}

func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	h.writeState(w, h.session.Refresh(r.Context()))
}

func (h *Handler) HandleForm(w http.ResponseWriter, r *http.Request) {
	var update session.FormUpdate
	if err := decodeBody(r, &update); err != nil {
		h.badRequest(w, "Invalid form update")
		return
	}
	h.session.UpdateForm(update)
	h.writeState(w, nil)
}

func (h *Handler) HandleSetAdminName(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := decodeBody(r, &req); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}
	h.session.UpdateForm(session.FormUpdate{AdminName: &req.Name})
	h.writeState(w, h.session.SetAdminName(r.Context(), req.Name))
}

func (h *Handler) HandleApproveAuditCompany(w http.ResponseWriter, r *http.Request) {
	h.writeState(w, h.session.ApproveAuditCompany(r.Context(), chi.URLParam(r, "address")))
}

func (h *Handler) HandleRejectAuditCompany(w http.ResponseWriter, r *http.Request) {
	var req rejectRequest
	if err := decodeBody(r, &req); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}
	h.writeState(w, h.session.RejectAuditCompany(r.Context(), chi.URLParam(r, "address"), req.Reason))
}

func (h *Handler) HandleApproveAuditableCompany(w http.ResponseWriter, r *http.Request) {
	h.writeState(w, h.session.ApproveAuditableCompany(r.Context(), chi.URLParam(r, "address")))
}

func (h *Handler) HandleRejectAuditableCompany(w http.ResponseWriter, r *http.Request) {
	var req rejectRequest
	if err := decodeBody(r, &req); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}
	h.writeState(w, h.session.RejectAuditableCompany(r.Context(), chi.URLParam(r, "address"), req.Reason))
}

func (h *Handler) HandleAuditCompanyAdmission(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := decodeBody(r, &req); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}
	h.session.UpdateForm(session.FormUpdate{AuditCompanyName: &req.Name})
	h.writeState(w, h.session.RequestAuditCompanyAdmission(r.Context(), req.Name))
}

func (h *Handler) HandleAuditableCompanyAdmission(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := decodeBody(r, &req); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}
	h.session.UpdateForm(session.FormUpdate{AuditableCompanyName: &req.Name})
	h.writeState(w, h.session.RequestAuditableCompanyAdmission(r.Context(), req.Name))
}

func (h *Handler) HandleSubmitAudit(w http.ResponseWriter, r *http.Request) {
	var req submitAuditRequest
	if err := decodeBody(r, &req); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}
	h.session.UpdateForm(session.FormUpdate{
		AuditableCompanyAddress: &req.Auditable,
		AuditFinding:            &req.Finding,
	})
	h.writeState(w, h.session.SubmitAudit(r.Context(), req.Auditable, req.Finding))
}

func auditID(r *http.Request) (*big.Int, bool) {
	return new(big.Int).SetString(chi.URLParam(r, "id"), 10)
}

func (h *Handler) HandleApproveSubmittedAudit(w http.ResponseWriter, r *http.Request) {
	id, ok := auditID(r)
	if !ok {
		h.badRequest(w, "Invalid audit id")
		return
	}
	h.writeState(w, h.session.ApproveSubmittedAudit(r.Context(), id))
}

func (h *Handler) HandleRejectSubmittedAudit(w http.ResponseWriter, r *http.Request) {
	id, ok := auditID(r)
	if !ok {
		h.badRequest(w, "Invalid audit id")
		return
	}
	h.writeState(w, h.session.RejectSubmittedAudit(r.Context(), id))
}
