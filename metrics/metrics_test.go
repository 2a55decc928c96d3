package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/ruteri/audit-book-client/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRead(t *testing.T) {
	before := testutil.ToFloat64(remoteReads.WithLabelValues("adminName", OutcomeSuccess))
	beforeErr := testutil.ToFloat64(remoteReads.WithLabelValues("adminName", OutcomeError))

	RecordRead("adminName", nil)
	RecordRead("adminName", nil)
	RecordRead("adminName", errors.New("boom"))

	assert.Equal(t, before+2, testutil.ToFloat64(remoteReads.WithLabelValues("adminName", OutcomeSuccess)))
	assert.Equal(t, beforeErr+1, testutil.ToFloat64(remoteReads.WithLabelValues("adminName", OutcomeError)))
}

func TestRecordWrite(t *testing.T) {
	op := interfaces.OpSubmitAudit
	before := testutil.ToFloat64(remoteWrites.WithLabelValues(string(op), OutcomeError))

	RecordWrite(op, errors.New("reverted"), time.Second)
	RecordWrite(op, nil, 2*time.Second)

	assert.Equal(t, before+1, testutil.ToFloat64(remoteWrites.WithLabelValues(string(op), OutcomeError)))
	assert.GreaterOrEqual(t, testutil.ToFloat64(remoteWrites.WithLabelValues(string(op), OutcomeSuccess)), 1.0)
}

func TestHandler(t *testing.T) {
	RecordRead("admin", nil)

	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "auditbook_remote_reads_total")
}
