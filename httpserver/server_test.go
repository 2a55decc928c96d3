package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ruteri/audit-book-client/auditbook"
	"github.com/ruteri/audit-book-client/interfaces"
	"github.com/ruteri/audit-book-client/session"
	"github.com/ruteri/audit-book-client/view"
	"github.com/ruteri/audit-book-client/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var auditableAddr = common.HexToAddress("0x3000000000000000000000000000000000000003")

type testEnv struct {
	srv    *Server
	server *httptest.Server
	book   *auditbook.MemoryAuditBook
	owner  common.Address
}

// newTestEnv serves a session whose wallet is the book's owner.
func newTestEnv(t *testing.T, connector interfaces.WalletConnector, owner common.Address) *testEnv {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	book := auditbook.NewMemoryAuditBook(owner)

	renderer, err := view.NewRenderer("0xb09da8a5B236fE0295A345035287e80bb0008290")
	require.NoError(t, err)

	cfg := &HTTPServerConfig{
		ListenAddr:               "127.0.0.1:0",
		Log:                      logger,
		DrainDuration:            time.Millisecond,
		GracefulShutdownDuration: time.Second,
	}
	srv, err := New(cfg, NewHandler(session.New(logger, connector, book), renderer, logger))
	require.NoError(t, err)

	server := httptest.NewServer(srv.getRouter())
	t.Cleanup(server.Close)
	return &testEnv{srv: srv, server: server, book: book, owner: owner}
}

func newOwnerEnv(t *testing.T) *testEnv {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	connector := wallet.NewKeyConnectorFromKey(key, big.NewInt(1337))
	return newTestEnv(t, connector, crypto.PubkeyToAddress(key.PublicKey))
}

func (e *testEnv) post(t *testing.T, path string, body any) (int, StateResponse) {
	var reader io.Reader = http.NoBody
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	resp, err := http.Post(e.server.URL+path, "application/json", reader)
	require.NoError(t, err)
	defer resp.Body.Close()

	var state StateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	return resp.StatusCode, state
}

func (e *testEnv) get(t *testing.T, path string) (int, string) {
	resp, err := http.Get(e.server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestServer_HealthEndpoints(t *testing.T) {
	env := newOwnerEnv(t)

	code, body := env.get(t, "/livez")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "alive")

	code, _ = env.get(t, "/readyz")
	assert.Equal(t, http.StatusOK, code)

	code, body = env.get(t, "/drain")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `"draining"`)

	code, _ = env.get(t, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, code)

	code, body = env.get(t, "/drain")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "already draining")

	code, _ = env.get(t, "/undrain")
	assert.Equal(t, http.StatusOK, code)

	code, _ = env.get(t, "/readyz")
	assert.Equal(t, http.StatusOK, code)
}

func TestServer_ShutdownDrainsFirst(t *testing.T) {
	env := newOwnerEnv(t)
	env.srv.cfg.DrainDuration = 50 * time.Millisecond

	start := time.Now()
	env.srv.Shutdown()
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)

	code, _ := env.get(t, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, code)

	// already drained through the endpoint: no second wait
	env = newOwnerEnv(t)
	env.srv.cfg.DrainDuration = time.Hour
	code, _ = env.get(t, "/drain")
	require.Equal(t, http.StatusOK, code)
	env.srv.Shutdown()
}

func TestServer_NotConnected(t *testing.T) {
	env := newOwnerEnv(t)

	code, state := env.post(t, "/api/admin-name", map[string]string{"name": "Acme"})
	assert.Equal(t, http.StatusConflict, code)
	assert.Contains(t, state.Error, interfaces.ErrNotConnected.Error())
	assert.True(t, state.Panels.Connect)
	assert.Empty(t, env.book.Calls())
}

func TestServer_NoWalletBanner(t *testing.T) {
	env := newTestEnv(t, wallet.Unavailable{}, common.Address{})

	code, state := env.post(t, "/api/connect", nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, session.BannerNoWallet, state.State.WalletError)

	code, page := env.get(t, "/")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, page, session.BannerNoWallet)
}

func TestServer_OwnerSetsAdminName(t *testing.T) {
	env := newOwnerEnv(t)

	code, state := env.post(t, "/api/connect", nil)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, state.State.IsOwner)
	assert.True(t, state.Panels.SetupAdminNamePrompt)

	code, state = env.post(t, "/api/admin-name", map[string]string{"name": "Acme"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Acme", state.State.AdminName)
	assert.False(t, state.Panels.SetupAdminNamePrompt)

	code, page := env.get(t, "/")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, page, "administered by <strong>Acme</strong>")

	code, state = env.post(t, "/api/admin-name", map[string]string{"name": " "})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Acme", state.State.AdminName)
}

func TestServer_AdmissionAndReview(t *testing.T) {
	env := newOwnerEnv(t)
	_, _ = env.post(t, "/api/connect", nil)

	code, state := env.post(t, "/api/auditable-company/admission", map[string]string{"name": "Own Target"})
	require.Equal(t, http.StatusOK, code)
	assert.True(t, state.State.RegisteredAsAuditableCompany)
	assert.Equal(t, "Own Target", state.State.Form.AuditableCompanyName)
	require.Len(t, state.Panels.AuditableCompanyRows, 1)
	assert.True(t, state.Panels.AuditableCompanyRows[0].CanReject)

	env.book.ResetCalls()
	code, _ = env.post(t, "/api/auditable-company/admission", map[string]string{"name": "Own Target"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Empty(t, env.book.Calls())

	path := "/api/auditable-companies/" + env.owner.Hex()
	code, state = env.post(t, path+"/reject", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, interfaces.StateRejected, state.State.AuditableCompanies[0].State)

	code, state = env.post(t, path+"/reject", nil)
	assert.Equal(t, http.StatusBadGateway, code)
	assert.Equal(t, auditbook.RevertCannotReject, state.Reason)

	code, state = env.post(t, path+"/approve", nil)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, state.State.ApprovedAuditableCompanies, 1)

	// the owner audits its own company
	code, state = env.post(t, "/api/audit-company/admission", map[string]string{"name": "Owner Audits"})
	require.Equal(t, http.StatusOK, code)
	code, state = env.post(t, "/api/audit-companies/"+env.owner.Hex()+"/approve", nil)
	require.Equal(t, http.StatusOK, code)

	// registrations are re-read by a full refresh
	code, state = env.post(t, "/api/refresh", nil)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, state.Panels.SubmitAudit)

	code, state = env.post(t, "/api/audits", map[string]string{"auditable": env.owner.Hex(), "finding": "unchecked call"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, session.MessageSubmitSuccess, state.State.SubmitMessage)
	require.Len(t, state.Panels.FindingRows, 1)
	assert.True(t, state.Panels.FindingRows[0].CanApprove)

	code, state = env.post(t, "/api/audits/0/approve", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, interfaces.AuditApproved, state.State.SubmittedAudits[0].State)

	code, _ = env.post(t, "/api/audits/zero/reject", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestServer_SubmitValidation(t *testing.T) {
	env := newOwnerEnv(t)
	_, _ = env.post(t, "/api/connect", nil)
	env.book.ResetCalls()

	code, state := env.post(t, "/api/audits", map[string]string{"auditable": "", "finding": "reentrancy"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, session.MessageSubmitValidation, state.State.SubmitMessage)
	assert.Empty(t, env.book.Calls())

	code, state = env.post(t, "/api/audits", map[string]string{"auditable": auditableAddr.Hex(), "finding": "reentrancy"})
	assert.Equal(t, http.StatusBadGateway, code)
	assert.True(t, strings.HasPrefix(state.State.SubmitMessage, session.MessageSubmitFailure+" - Detail: "))
}

func TestServer_FormUpdate(t *testing.T) {
	env := newOwnerEnv(t)

	code, state := env.post(t, "/api/form", map[string]string{"audit_finding": "overflow"})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "overflow", state.State.Form.AuditFinding)

	resp, err := http.Post(env.server.URL+"/api/form", "application/json", strings.NewReader("{"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
