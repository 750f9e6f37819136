package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/velumpress/cms/pkg/config"
	"github.com/velumpress/cms/pkg/moderation"
	"github.com/velumpress/cms/pkg/server/middleware"
	"github.com/velumpress/cms/pkg/server/store"
	"github.com/velumpress/cms/pkg/token"
)

const shutdownTimeout = 10 * time.Second

// Stores groups the repositories the handlers depend on
type Stores struct {
	Users   store.UsersStore
	Pending store.PendingStore
	Content store.ContentStore
	Health  store.HealthStore
}

type Server struct {
	Config *config.CMSConfig
	Router *mux.Router

	UsersStore   store.UsersStore
	PendingStore store.PendingStore
	ContentStore store.ContentStore
	HealthStore  store.HealthStore

	Tokens *token.Issuer
	Queue  *moderation.Queue
	Auth   *middleware.TokenAuthenticator

	srv *http.Server
}

func NewServer(
	cfg *config.CMSConfig,
	stores Stores,
	tokens *token.Issuer,
	host string,
	port string,
) *Server {
	router := mux.NewRouter()

	s := &Server{
		Config:       cfg,
		Router:       router,
		UsersStore:   stores.Users,
		PendingStore: stores.Pending,
		ContentStore: stores.Content,
		HealthStore:  stores.Health,
		Tokens:       tokens,
		Queue:        moderation.NewQueue(stores.Pending, stores.Content, cfg.ApplyOnApprove),
		Auth:         middleware.NewTokenAuthenticator(tokens, stores.Users),
	}

	s.srv = &http.Server{
		Handler:      s.Handler(),
		Addr:         host + ":" + port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler wraps the router with the access log and CORS
func (s *Server) Handler() http.Handler {
	return handlers.LoggingHandler(os.Stdout, s.cors()(s.Router))
}

func (s *Server) cors() func(http.Handler) http.Handler {
	opts := []handlers.CORSOption{
		handlers.AllowCredentials(),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	}
	if len(s.Config.CORSOrigins) > 0 {
		opts = append(opts, handlers.AllowedOrigins(s.Config.CORSOrigins))
	} else {
		// Reflect any origin so cookie-carrying requests keep working
		opts = append(opts, handlers.AllowedOriginValidator(func(string) bool { return true }))
	}
	return handlers.CORS(opts...)
}

// Addr is the listen address
func (s *Server) Addr() string {
	return s.srv.Addr
}

// Start serves until ctx is cancelled, then drains in-flight requests
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}
