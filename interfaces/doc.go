// Package interfaces defines the core types and interfaces of the audit book
// client, separating the contracts between components from their
// implementations.
//
// # Gateway Interfaces
//
// AuditBookReader and AuditBookWriter describe every remote operation of the
// AuditBook contract. Reads return the decoded value or a *RemoteReadError;
// writes wait until the transaction is mined and return the receipt or a
// *RemoteWriteError carrying the revert reason verbatim.
//
// GatewayFactory binds a gateway to a connected wallet, so reconnecting or
// switching accounts always produces a fresh binding.
//
// # Wallet Interfaces
//
// WalletConnector obtains an authorized account and a transaction signer.
// It fails with ErrWalletUnavailable when no wallet is configured or
// reachable, and with ErrUserRejected when access is denied.
//
// # Domain Types
//
//   - BookProfile: admin name and owner address
//   - Company: a registration of an audit or auditable company
//   - Audit: a finding submitted by an audit company against an auditable one
//   - CompanyState / AuditState: the contract's state enums
package interfaces
