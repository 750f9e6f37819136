// Package identity provides the authenticated identity of a CMS request.
//
// The token package handles signing and verifying the raw session token.
// The identity package builds on that: an Identity combines the user
// recovered from the token claims with request-specific context such as the
// client IP, and is what handlers consult for permission checks and audit.
//
// # Basic Usage
//
//	// Create identity from verified claims
//	id := identity.FromClaims(claims).WithRemoteIP(clientIP)
//
//	// Store in request context
//	ctx = identity.Set(ctx, id)
//
//	// Retrieve from context
//	id, ok := identity.Get(ctx)
package identity
