package interfaces

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyState_JSON(t *testing.T) {
	data, err := json.Marshal(Company{Name: "Acme", State: StateRejected})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"state":"Rejected"`)

	var c Company
	require.NoError(t, json.Unmarshal(data, &c))
	assert.Equal(t, StateRejected, c.State)

	assert.Equal(t, "Unknown", CompanyState(7).String())
	assert.Error(t, json.Unmarshal([]byte(`{"state":"Lost"}`), &c))
}

func TestAuditState_JSON(t *testing.T) {
	data, err := json.Marshal(AuditApproved)
	require.NoError(t, err)
	assert.Equal(t, `"Approved"`, string(data))

	var s AuditState
	require.NoError(t, json.Unmarshal([]byte(`"Submitted"`), &s))
	assert.Equal(t, AuditSubmitted, s)
}

func TestRemoteErrors(t *testing.T) {
	writeErr := &RemoteWriteError{Op: OpSubmitAudit, Reason: "Audit company is not approved", Err: ErrUserRejected}
	assert.ErrorIs(t, writeErr, ErrUserRejected)
	assert.Contains(t, writeErr.Error(), "Audit company is not approved")
	assert.Contains(t, writeErr.Error(), string(OpSubmitAudit))

	readErr := &RemoteReadError{Method: "adminName", Err: ErrNotConnected}
	assert.ErrorIs(t, readErr, ErrNotConnected)
	assert.Contains(t, readErr.Error(), "adminName")
}
