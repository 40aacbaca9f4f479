package server

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"

	"github.com/workgram/miniapp-server/internal/config"
	"github.com/workgram/miniapp-server/registrations"
	"github.com/workgram/miniapp-server/session"
	"github.com/workgram/miniapp-server/storage"
	"github.com/workgram/miniapp-server/users"
)

// Deps are the collaborators the HTTP layer is wired with: the database
// handle (health checks), the user directory, the registration store and the
// object store for CV uploads.
type Deps struct {
	DB            *bun.DB
	Users         users.Directory
	Registrations registrations.Repo
	Store         storage.Store
}

type Server struct {
	env    string // Environment (e.g., "DEV", "PROD")
	mux    *http.ServeMux
	routes []string
	config config.Config

	db            *bun.DB
	users         users.Directory
	registrations registrations.Repo
	store         storage.Store

	issuer        *session.Issuer
	authenticator *session.Authenticator
}

func New(cfg config.Config, deps Deps) (*Server, error) {
	// Both secrets are required before the first request, not at first use.
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("[Server New] %w", err)
	}

	s := &Server{
		mux:           http.NewServeMux(),
		config:        cfg,
		db:            deps.DB,
		users:         deps.Users,
		registrations: deps.Registrations,
		store:         deps.Store,
		issuer:        session.NewIssuer(cfg.GetSessionSecret()),
		authenticator: session.NewAuthenticator(cfg.GetSessionSecret()),
	}
	s.env = cfg.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		log.Debug().Str("route", route).Msg("registered")
	}
}
