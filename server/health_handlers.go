package server

import (
	"context"
	"net/http"
	"time"
)

// HealthHandler reports liveness, including database reachability when the
// server was wired with one.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := s.db.PingContext(ctx); err != nil {
				writeError(w, http.StatusServiceUnavailable, "unhealthy", "database unreachable")
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
