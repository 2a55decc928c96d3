package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ruteri/audit-book-client/auditbook"
	"github.com/ruteri/audit-book-client/httpserver"
	"github.com/ruteri/audit-book-client/session"
	"github.com/ruteri/audit-book-client/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintState_IsParseableJSON(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	owner := crypto.PubkeyToAddress(key.PublicKey)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := session.New(logger, wallet.NewKeyConnectorFromKey(key, devChainID), auditbook.NewMemoryAuditBook(owner))
	require.NoError(t, s.Connect(context.Background()))

	var out bytes.Buffer
	printState(&out, s)

	var resp httpserver.StateResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, owner, resp.State.Owner)
	assert.True(t, resp.Panels.Owner)
}
