// Package server provides the HTTP server for the CMS API.
//
// The Server holds the router, the configuration and the repositories that
// handlers are built from. It wraps the router with the gorilla access log
// and CORS handling, enforces read/write timeouts and shuts down gracefully
// when its context is cancelled.
//
// # Server Setup
//
//	srv := server.NewServer(cfg, server.Stores{...}, tokens, host, port)
//	endpoints.RegisterAll(srv)
//	err := srv.Start(ctx)
//
// # Components
//
//   - Router: gorilla/mux request router
//   - UsersStore, PendingStore, ContentStore, HealthStore: repositories
//   - Tokens: session token issuer
//   - Queue: pending-change moderation workflow
//   - Auth: token authentication middleware
package server
