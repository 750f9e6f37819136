// Package middleware authenticates requests and guards admin-only and
// country-scoped routes.
//
// The session token is read from the "token" cookie, falling back to the
// second word of the Authorization header. A missing token is answered
// with 401, a token that fails verification with 403.
package middleware
