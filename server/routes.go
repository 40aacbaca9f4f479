package server

import "net/http"

func (s *Server) initRoutes() {
	// LOGIN
	s.RegisterRouteFunc("POST "+RouteAuthTelegram, ChainMiddleware(s.TelegramLoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteAuthMe, ChainMiddleware(s.MeHandler(), s.APIMiddleware(s.RequireAuth())...))

	// REGISTRATIONS
	s.RegisterRouteFunc("POST "+RouteRegistrations, ChainMiddleware(s.SubmitRegistrationHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteFunc("GET "+RouteRegistrations, ChainMiddleware(s.ListRegistrationsHandler(), s.APIMiddleware(s.RequireAuth())...))

	// Uploaded CVs (public URL side of the object store)
	s.RegisterRouteFunc("GET "+RouteFiles, ChainMiddleware(s.ServeUploadHandler(), s.APIMiddleware()...))

	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())

	// Method-qualified patterns never match preflights, so OPTIONS is routed
	// to the CORS middleware alone.
	s.RegisterRouteFunc("OPTIONS /", s.CorsMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
}
