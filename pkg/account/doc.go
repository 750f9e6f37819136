// Package account manages CMS user credentials.
//
// Passwords are stored as bcrypt hashes. On first start, when the users
// store has never been written, a default "admin" account is created with
// the password from ADMIN_INITIAL_PASSWORD or a random one, flagged so the
// UI asks for a change on first login.
package account
