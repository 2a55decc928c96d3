/*
Package httpserver serves the audit book panel for one operator session.

The panel page is rendered on the server and talks to a small JSON API.
Every write endpoint runs one session action and answers with the fresh
snapshot, so the page never has to guess what changed.

# Endpoints

  - GET  /                                          - Panel page
  - GET  /api/state                                 - Snapshot and panel set
  - POST /api/connect                               - Connect or reconnect the wallet
  - POST /api/refresh                               - Re-read everything
  - POST /api/form                                  - Update transient form fields
  - POST /api/admin-name                            - Set the administrator name
  - POST /api/audit-companies/{address}/approve     - Approve an audit company
  - POST /api/audit-companies/{address}/reject      - Reject an audit company
  - POST /api/auditable-companies/{address}/approve - Approve an auditable company
  - POST /api/auditable-companies/{address}/reject  - Reject an auditable company
  - POST /api/audit-company/admission               - Request admission as audit company
  - POST /api/auditable-company/admission           - Request admission as auditable company
  - POST /api/audits                                - Submit a finding
  - POST /api/audits/{id}/approve                   - Approve a submitted finding
  - POST /api/audits/{id}/reject                    - Reject a submitted finding
  - GET  /livez, /readyz, /drain, /undrain          - Health and draining

# Status codes

  - 200: the action succeeded; the body is the fresh state
  - 400: local validation failed; nothing was sent to the chain
  - 409: no wallet is connected
  - 502: the contract call failed; the body carries the revert reason when known

Error bodies carry the state as well, next to an "error" field.
*/
package httpserver
