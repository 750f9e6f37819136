// Package audit provides audit logging for CMS operations.
//
// Security-relevant operations are written as RFC5424 syslog lines to
// stdout and, when the server runs on postgres, persisted to the
// audit_messages table.
//
// # Event Types
//
//   - Login events (success/failure) and logout
//   - Content mutation events, applied or submitted for approval
//   - Moderation decisions on pending changes
//   - User management events
//
// # Usage
//
//	audit.Log(audit.LoginEvent{Username: "maria", ClientIP: ip, Success: true})
//
// Set CMS_AUDIT_ENABLED=false to silence audit output.
package audit
