package wallet

import (
	"context"
	"encoding/hex"
	"errors"
	"math/big"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/external"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/google/uuid"
	"github.com/ruteri/audit-book-client/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testChainID = big.NewInt(1337)

func TestKeyConnector(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	expected := crypto.PubkeyToAddress(key.PublicKey)

	connector, err := New(Config{
		Type:       TypeKey,
		PrivateKey: "0x" + hex.EncodeToString(crypto.FromECDSA(key)),
		ChainID:    testChainID,
	})
	require.NoError(t, err)

	session, err := connector.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, expected, session.Account)
	require.NotNil(t, session.Auth)
	assert.Equal(t, expected, session.Auth.From)

	accounts, err := connector.Accounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, expected, accounts[0])
}

func TestKeyConnector_InvalidKey(t *testing.T) {
	_, err := NewKeyConnector("not-hex", testChainID)
	assert.Error(t, err)

	_, err = NewKeyConnector("", testChainID)
	assert.ErrorIs(t, err, interfaces.ErrWalletUnavailable)
}

func writeKeystore(t *testing.T, passphrase string) (string, *keystore.Key) {
	privateKey, err := crypto.GenerateKey()
	require.NoError(t, err)

	key := &keystore.Key{
		Id:         uuid.New(),
		Address:    crypto.PubkeyToAddress(privateKey.PublicKey),
		PrivateKey: privateKey,
	}
	keyJSON, err := keystore.EncryptKey(key, passphrase, keystore.LightScryptN, keystore.LightScryptP)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "key.json")
	require.NoError(t, os.WriteFile(path, keyJSON, 0o600))
	return path, key
}

func TestKeystoreConnector(t *testing.T) {
	path, key := writeKeystore(t, "correct horse")

	connector := NewKeystoreConnector(path, "correct horse", testChainID)
	session, err := connector.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, key.Address, session.Account)

	accounts, err := connector.Accounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, key.Address, accounts[0])
}

func TestKeystoreConnector_WrongPassphrase(t *testing.T) {
	path, _ := writeKeystore(t, "correct horse")

	_, err := NewKeystoreConnector(path, "battery staple", testChainID).Connect(context.Background())
	assert.ErrorIs(t, err, interfaces.ErrUserRejected)
}

func TestKeystoreConnector_MissingFile(t *testing.T) {
	connector := NewKeystoreConnector(filepath.Join(t.TempDir(), "absent.json"), "", testChainID)

	_, err := connector.Connect(context.Background())
	assert.ErrorIs(t, err, interfaces.ErrWalletUnavailable)

	_, err = connector.Accounts(context.Background())
	assert.ErrorIs(t, err, interfaces.ErrWalletUnavailable)
}

func TestClefConnector_Unreachable(t *testing.T) {
	connector := NewClefConnector("http://127.0.0.1:1")

	_, err := connector.Connect(context.Background())
	assert.ErrorIs(t, err, interfaces.ErrWalletUnavailable)

	_, err = NewClefConnector("").Connect(context.Background())
	assert.ErrorIs(t, err, interfaces.ErrWalletUnavailable)
}

// clefService answers the account_* calls the external signer issues.
type clefService struct {
	accounts []common.Address
}

func (s *clefService) Version() string {
	return "6.0.0"
}

func (s *clefService) List() []common.Address {
	return s.accounts
}

func startClef(t *testing.T, accounts ...common.Address) string {
	server := rpc.NewServer()
	require.NoError(t, server.RegisterName("account", &clefService{accounts: accounts}))
	httpServer := httptest.NewServer(server.WebsocketHandler([]string{"*"}))
	t.Cleanup(func() {
		server.Stop()
		httpServer.Close()
	})
	return "ws" + strings.TrimPrefix(httpServer.URL, "http")
}

// signerClosed reports whether the signer's RPC client has been shut down.
func signerClosed(signer *external.ExternalSigner, account common.Address) bool {
	_, err := signer.SignText(accounts.Account{Address: account}, []byte("ping"))
	return errors.Is(err, rpc.ErrClientQuit)
}

func TestClefConnector_ReconnectClosesPreviousSigner(t *testing.T) {
	account := common.HexToAddress("0x2000000000000000000000000000000000000002")
	connector := NewClefConnector(startClef(t, account))

	ws, err := connector.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, account, ws.Account)
	assert.Equal(t, account, ws.Auth.From)

	first := connector.signer
	require.NotNil(t, first)
	assert.False(t, signerClosed(first, account))

	_, err = connector.Connect(context.Background())
	require.NoError(t, err)
	second := connector.signer
	assert.NotSame(t, first, second)
	assert.True(t, signerClosed(first, account))
	assert.False(t, signerClosed(second, account))

	require.NoError(t, connector.Close())
	assert.Nil(t, connector.signer)
	assert.True(t, signerClosed(second, account))
	require.NoError(t, connector.Close())
}

func TestClefConnector_NoAccounts(t *testing.T) {
	connector := NewClefConnector(startClef(t))

	_, err := connector.Connect(context.Background())
	assert.ErrorIs(t, err, interfaces.ErrUserRejected)
	assert.Nil(t, connector.signer)
}

func TestNew(t *testing.T) {
	connector, err := New(Config{})
	require.NoError(t, err)
	_, err = connector.Connect(context.Background())
	assert.ErrorIs(t, err, interfaces.ErrWalletUnavailable)

	_, err = New(Config{Type: "metamask"})
	assert.Error(t, err)

	connector, err = New(Config{Type: TypeClef, ClefEndpoint: "http://127.0.0.1:8550"})
	require.NoError(t, err)
	assert.IsType(t, &ClefConnector{}, connector)
}
