// Package main (cmd/auditbook) is the operator tool for the AuditBook contract.
//
// The serve command runs the web panel for one wallet session:
//
//	serve - Serve the panel page and its JSON API. With --dev the contract is
//	        replaced by an in-memory book owned by the connected wallet, so the
//	        panel can be tried without a chain.
//
// Every other command connects the wallet, reads the book, runs one contract
// operation and prints the resulting state as JSON:
//
//	status                      - Print the state visible to the wallet's account
//	set-admin-name              - Set the administrator's display name (owner only)
//	approve-audit-company       - Approve an audit company (owner only)
//	reject-audit-company        - Reject a pending audit company (owner only)
//	approve-auditable-company   - Approve an auditable company (owner only)
//	reject-auditable-company    - Reject a pending auditable company (owner only)
//	request-audit-admission     - Register the account as an audit company
//	request-auditable-admission - Register the account as an auditable company
//	submit-audit                - Submit a finding against an approved auditable company
//	approve-audit               - Approve a finding submitted against the account's company
//	reject-audit                - Reject a finding submitted against the account's company
//
// The wallet is chosen with --wallet-type ('key', 'keystore' or 'clef'). Every
// flag can also be set through its AUDITBOOK_* environment variable.
package main
