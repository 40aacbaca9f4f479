package server

import (
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
)

// ServeUploadHandler streams a previously uploaded CV back from the object
// store. Unknown and malformed names both come back as 404.
func (s *Server) ServeUploadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("file")

		rc, contentType, err := s.store.Open(name)
		if err != nil {
			writeError(w, http.StatusNotFound, "not_found", "No such file")
			return
		}
		defer rc.Close()

		w.Header().Set("Content-Type", contentType)
		if _, err := io.Copy(w, rc); err != nil {
			log.Warn().Err(err).Str("file", name).Msg("aborted while streaming upload")
		}
	}
}
