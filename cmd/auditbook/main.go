package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math/big"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ruteri/audit-book-client/cmd/flags"
	"github.com/ruteri/audit-book-client/httpserver"
	"github.com/ruteri/audit-book-client/interfaces"
	"github.com/ruteri/audit-book-client/session"
	"github.com/ruteri/audit-book-client/view"
	"github.com/urfave/cli/v2"
)

var flagListenAddr = &cli.StringFlag{
	Name:    "listen-addr",
	Value:   "127.0.0.1:8080",
	Usage:   "address to serve the panel on",
	EnvVars: []string{"AUDITBOOK_LISTEN_ADDR"},
}
var flagDev = &cli.BoolFlag{
	Name:  "dev",
	Usage: "use an in-memory audit book instead of the chain",
}
var flagAccountPollInterval = &cli.DurationFlag{
	Name:    "account-poll-interval",
	Value:   0,
	Usage:   "reconnect when the wallet's account changes, checking at this interval (0 disables)",
	EnvVars: []string{"AUDITBOOK_ACCOUNT_POLL_INTERVAL"},
}

var flagName = &cli.StringFlag{Name: "name", Required: true, Usage: "company or administrator name, at most 31 bytes"}
var flagAddress = &cli.StringFlag{Name: "address", Required: true, Usage: "company account address"}
var flagReason = &cli.StringFlag{Name: "reason", Value: interfaces.DefaultRejectionReason, Usage: "rejection reason sent to the contract"}
var flagAuditable = &cli.StringFlag{Name: "auditable", Required: true, Usage: "account of the approved auditable company"}
var flagFinding = &cli.StringFlag{Name: "finding", Required: true, Usage: "finding text, at most 31 bytes"}
var flagID = &cli.StringFlag{Name: "id", Required: true, Usage: "id of the submitted finding"}

func main() {
	globalFlags := append([]cli.Flag{flags.LogServiceFlagFn("auditbook")}, flags.CommonFlags...)
	globalFlags = append(globalFlags, flags.ChainFlags...)
	globalFlags = append(globalFlags, flags.WalletFlags...)

	app := &cli.App{
		Name:  "auditbook",
		Usage: "Operate the AuditBook contract as administrator, audit company or auditable company",
		Flags: globalFlags,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the web panel",
				Flags:  []cli.Flag{flagListenAddr, flagDev, flagAccountPollInterval},
				Action: runServe,
			},
			operation("status", "Print the state visible to the wallet's account", nil,
				func(ctx context.Context, s *session.Session, cCtx *cli.Context) error {
					return nil
				}),
			operation("set-admin-name", "Set the administrator's display name", []cli.Flag{flagName},
				func(ctx context.Context, s *session.Session, cCtx *cli.Context) error {
					return s.SetAdminName(ctx, cCtx.String(flagName.Name))
				}),
			operation("approve-audit-company", "Approve an audit company", []cli.Flag{flagAddress},
				func(ctx context.Context, s *session.Session, cCtx *cli.Context) error {
					return s.ApproveAuditCompany(ctx, cCtx.String(flagAddress.Name))
				}),
			operation("reject-audit-company", "Reject a pending audit company", []cli.Flag{flagAddress, flagReason},
				func(ctx context.Context, s *session.Session, cCtx *cli.Context) error {
					return s.RejectAuditCompany(ctx, cCtx.String(flagAddress.Name), cCtx.String(flagReason.Name))
				}),
			operation("approve-auditable-company", "Approve an auditable company", []cli.Flag{flagAddress},
				func(ctx context.Context, s *session.Session, cCtx *cli.Context) error {
					return s.ApproveAuditableCompany(ctx, cCtx.String(flagAddress.Name))
				}),
			operation("reject-auditable-company", "Reject a pending auditable company", []cli.Flag{flagAddress, flagReason},
				func(ctx context.Context, s *session.Session, cCtx *cli.Context) error {
					return s.RejectAuditableCompany(ctx, cCtx.String(flagAddress.Name), cCtx.String(flagReason.Name))
				}),
			operation("request-audit-admission", "Register the account as an audit company", []cli.Flag{flagName},
				func(ctx context.Context, s *session.Session, cCtx *cli.Context) error {
					return s.RequestAuditCompanyAdmission(ctx, cCtx.String(flagName.Name))
				}),
			operation("request-auditable-admission", "Register the account as an auditable company", []cli.Flag{flagName},
				func(ctx context.Context, s *session.Session, cCtx *cli.Context) error {
					return s.RequestAuditableCompanyAdmission(ctx, cCtx.String(flagName.Name))
				}),
			operation("submit-audit", "Submit a finding against an approved auditable company", []cli.Flag{flagAuditable, flagFinding},
				func(ctx context.Context, s *session.Session, cCtx *cli.Context) error {
					return s.SubmitAudit(ctx, cCtx.String(flagAuditable.Name), cCtx.String(flagFinding.Name))
				}),
			operation("approve-audit", "Approve a finding submitted against the account's company", []cli.Flag{flagID},
				func(ctx context.Context, s *session.Session, cCtx *cli.Context) error {
					id, err := parseID(cCtx.String(flagID.Name))
					if err != nil {
						return err
					}
					return s.ApproveSubmittedAudit(ctx, id)
				}),
			operation("reject-audit", "Reject a finding submitted against the account's company", []cli.Flag{flagID},
				func(ctx context.Context, s *session.Session, cCtx *cli.Context) error {
					id, err := parseID(cCtx.String(flagID.Name))
					if err != nil {
						return err
					}
					return s.RejectSubmittedAudit(ctx, id)
				}),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func parseID(s string) (*big.Int, error) {
	id, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: invalid audit id %q", interfaces.ErrValidation, s)
	}
	return id, nil
}

type action func(ctx context.Context, s *session.Session, cCtx *cli.Context) error

// operation builds a command that connects, runs fn and prints the state.
func operation(name, usage string, opFlags []cli.Flag, fn action) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: usage,
		Flags: opFlags,
		Action: func(cCtx *cli.Context) error {
			logger := flags.SetupLoggerTo(cCtx, os.Stderr)
			out := cCtx.App.Writer

			ctx, stop := signal.NotifyContext(cCtx.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			s, _, err := setupSession(cCtx, logger)
			if err != nil {
				return err
			}
			defer s.Close()
			if err := s.Connect(ctx); err != nil {
				printState(out, s)
				return err
			}

			opErr := fn(ctx, s, cCtx)
			printState(out, s)
			return opErr
		},
	}
}

// printState writes the session's state response as JSON to out.
func printState(out io.Writer, s *session.Session) {
	snapshot := s.Snapshot()
	encoded, err := json.MarshalIndent(httpserver.StateResponse{
		State:  snapshot,
		Panels: view.Panels(snapshot),
	}, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not encode state: %v\n", err)
		return
	}
	fmt.Fprintln(out, string(encoded))
}

func runServe(cCtx *cli.Context) error {
	logger := flags.SetupLogger(cCtx)
	listenAddr := cCtx.String(flagListenAddr.Name)
	pollInterval := cCtx.Duration(flagAccountPollInterval.Name)

	var (
		s        *session.Session
		contract string
		err      error
	)
	if cCtx.Bool(flagDev.Name) {
		s, err = setupDevSession(cCtx, logger)
		contract = "in-memory"
	} else {
		var addr common.Address
		s, addr, err = setupSession(cCtx, logger)
		contract = addr.Hex()
	}
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := context.WithCancel(cCtx.Context)
	defer cancel()

	// a missing wallet is reported in the panel, not fatal
	connectCtx, connectCancel := context.WithTimeout(ctx, time.Minute)
	if err := s.Connect(connectCtx); err != nil && !errors.Is(err, interfaces.ErrWalletUnavailable) {
		logger.Warn("Initial wallet connection failed", "err", err)
	}
	connectCancel()

	go s.WatchAccount(ctx, pollInterval)

	renderer, err := view.NewRenderer(contract)
	if err != nil {
		return err
	}

	cfg := flags.ConfigureServer(cCtx, logger, listenAddr)
	server, err := httpserver.New(cfg, httpserver.NewHandler(s, renderer, logger))
	if err != nil {
		logger.Error("Failed to create server", "err", err)
		return err
	}

	logger.Info("Starting server")
	server.RunInBackground()

	exit := make(chan os.Signal, 1)
	signal.Notify(exit, os.Interrupt, syscall.SIGTERM)

	logger.Info("Server is running, press Ctrl+C to stop")
	<-exit
	logger.Info("Shutdown signal received")

	cancel()
	server.Shutdown()
	logger.Info("Server shutdown complete")
	return nil
}
