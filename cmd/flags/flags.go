package flags

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	auditcommon "github.com/ruteri/audit-book-client/common"
	"github.com/ruteri/audit-book-client/httpserver"
	"github.com/ruteri/audit-book-client/interfaces"
	"github.com/ruteri/audit-book-client/wallet"
	"github.com/urfave/cli/v2"
)

// DefaultContractAddr is the deployed AuditBook contract.
const DefaultContractAddr = "0xb09da8a5B236fE0295A345035287e80bb0008290"

func SetupLogger(cCtx *cli.Context) (log *slog.Logger) {
	return SetupLoggerTo(cCtx, os.Stdout)
}

// SetupLoggerTo is SetupLogger writing to out. Commands whose stdout is
// their result log to stderr.
func SetupLoggerTo(cCtx *cli.Context, out io.Writer) (log *slog.Logger) {
	logJSON := cCtx.Bool(LogJsonFlag.Name)
	logDebug := cCtx.Bool(LogDebugFlag.Name)
	logUID := cCtx.Bool(LogUidFlag.Name)
	logService := cCtx.String("log-service")

	logger := auditcommon.SetupLogger(&auditcommon.LoggingOpts{
		Debug:   logDebug,
		JSON:    logJSON,
		Service: logService,
		Version: auditcommon.Version,
		Output:  out,
	})

	if logUID {
		id := uuid.Must(uuid.NewRandom())
		logger = logger.With("uid", id.String())
	}
	return logger
}

func ConfigureServer(cCtx *cli.Context, logger *slog.Logger, listenAddr string) *httpserver.HTTPServerConfig {
	metricsAddr := cCtx.String(MetricsAddrFlag.Name)
	enablePprof := cCtx.Bool(PprofFlag.Name)
	drainDuration := time.Duration(cCtx.Int64(DrainSecondsFlag.Name)) * time.Second

	return &httpserver.HTTPServerConfig{
		ListenAddr:               listenAddr,
		MetricsAddr:              metricsAddr,
		Log:                      logger,
		EnablePprof:              enablePprof,
		DrainDuration:            drainDuration,
		GracefulShutdownDuration: 30 * time.Second,
		ReadTimeout:              60 * time.Second,
		// writes wait until mined, which has no upper bound
		WriteTimeout: 0,
	}
}

// ContractAddr parses the contract address flag.
func ContractAddr(cCtx *cli.Context) (common.Address, error) {
	addr := cCtx.String(ContractAddrFlag.Name)
	if !common.IsHexAddress(addr) {
		return common.Address{}, fmt.Errorf("invalid contract address %q", addr)
	}
	return common.HexToAddress(addr), nil
}

// SetupWallet creates the connector selected by --wallet-type for chainID.
func SetupWallet(cCtx *cli.Context, logger *slog.Logger, chainID *big.Int) (interfaces.WalletConnector, error) {
	cfg := wallet.Config{
		Type:         cCtx.String(WalletTypeFlag.Name),
		PrivateKey:   cCtx.String(WalletPrivateKeyFlag.Name),
		KeystoreFile: cCtx.String(WalletKeystoreFlag.Name),
		Passphrase:   cCtx.String(WalletPassphraseFlag.Name),
		ClefEndpoint: cCtx.String(ClefEndpointFlag.Name),
		ChainID:      chainID,
	}

	switch cfg.Type {
	case wallet.TypeNone:
		logger.Warn("No wallet configured")
	case wallet.TypeKey:
		if cfg.PrivateKey == "" {
			return nil, errors.New("wallet-private-key is required for the key wallet")
		}
		logger.Info("Using private key wallet")
	case wallet.TypeKeystore:
		if cfg.KeystoreFile == "" {
			return nil, errors.New("wallet-keystore is required for the keystore wallet")
		}
		logger.Info("Using keystore wallet", "file", cfg.KeystoreFile)
	case wallet.TypeClef:
		logger.Info("Using Clef wallet", "endpoint", cfg.ClefEndpoint)
	}

	return wallet.New(cfg)
}

var RpcAddrFlag = &cli.StringFlag{
	Name:    "rpc-addr",
	Value:   "http://127.0.0.1:8545",
	Usage:   "address to connect to RPC",
	EnvVars: []string{"AUDITBOOK_RPC_ADDR"},
}

var ContractAddrFlag = &cli.StringFlag{
	Name:    "contract-addr",
	Value:   DefaultContractAddr,
	Usage:   "address of the AuditBook contract",
	EnvVars: []string{"AUDITBOOK_CONTRACT_ADDR"},
}

var WalletTypeFlag = &cli.StringFlag{
	Name:    "wallet-type",
	Value:   "",
	Usage:   "wallet to sign with: 'key', 'keystore' or 'clef'",
	EnvVars: []string{"AUDITBOOK_WALLET_TYPE"},
}

var WalletPrivateKeyFlag = &cli.StringFlag{
	Name:    "wallet-private-key",
	Usage:   "hex-encoded private key (required if wallet-type is 'key')",
	EnvVars: []string{"AUDITBOOK_PRIVATE_KEY"},
}

var WalletKeystoreFlag = &cli.StringFlag{
	Name:    "wallet-keystore",
	Usage:   "encrypted JSON key file (required if wallet-type is 'keystore')",
	EnvVars: []string{"AUDITBOOK_KEYSTORE"},
}

var WalletPassphraseFlag = &cli.StringFlag{
	Name:    "wallet-passphrase",
	Usage:   "passphrase of the keystore file",
	EnvVars: []string{"AUDITBOOK_KEYSTORE_PASSPHRASE"},
}

var ClefEndpointFlag = &cli.StringFlag{
	Name:    "clef-endpoint",
	Value:   "http://127.0.0.1:8550",
	Usage:   "Clef signer endpoint (used if wallet-type is 'clef')",
	EnvVars: []string{"AUDITBOOK_CLEF_ENDPOINT"},
}

var LogJsonFlag = &cli.BoolFlag{
	Name:    "log-json",
	Value:   false,
	Usage:   "log in JSON format",
	EnvVars: []string{"AUDITBOOK_LOG_JSON"},
}
var LogDebugFlag = &cli.BoolFlag{
	Name:    "log-debug",
	Value:   false,
	Usage:   "log debug messages",
	EnvVars: []string{"AUDITBOOK_LOG_DEBUG"},
}
var LogUidFlag = &cli.BoolFlag{
	Name:  "log-uid",
	Value: false,
	Usage: "generate a uuid and add to all log messages",
}

var LogServiceFlagFn = func(service string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "log-service",
		Value: service,
		Usage: "add 'service' tag to logs",
	}
}

var PprofFlag = &cli.BoolFlag{
	Name:  "pprof",
	Value: false,
	Usage: "enable pprof debug endpoint",
}
var DrainSecondsFlag = &cli.Int64Flag{
	Name:  "drain-seconds",
	Value: 45,
	Usage: "seconds to keep serving while marked not ready before shutdown",
}
var MetricsAddrFlag = &cli.StringFlag{
	Name:    "metrics-addr",
	Value:   "127.0.0.1:8090",
	Usage:   "address to listen on for Prometheus metrics",
	EnvVars: []string{"AUDITBOOK_METRICS_ADDR"},
}

var CommonFlags = []cli.Flag{
	LogJsonFlag,
	LogDebugFlag,
	LogUidFlag,
	PprofFlag,
	DrainSecondsFlag,
	MetricsAddrFlag,
}

var ChainFlags = []cli.Flag{
	RpcAddrFlag,
	ContractAddrFlag,
}

var WalletFlags = []cli.Flag{
	WalletTypeFlag,
	WalletPrivateKeyFlag,
	WalletKeystoreFlag,
	WalletPassphraseFlag,
	ClefEndpointFlag,
}
