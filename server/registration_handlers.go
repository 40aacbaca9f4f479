package server

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/workgram/miniapp-server/registrations"
)

// maxCVBytes caps the uploaded CV size.
const maxCVBytes = 5 << 20

// allowedCVTypes maps accepted CV file extensions to the content type stored
// alongside the upload.
var allowedCVTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// SubmitRegistrationHandler accepts a multipart job-seeker submission: the
// profile fields plus a "cv" file part, which is uploaded to the object store
// before the registration row is written.
func (s *Server) SubmitRegistrationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "no_token", "Missing bearer token")
			return
		}
		userID, err := uuid.Parse(identity.UserID)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid_token", "Invalid or expired session token")
			return
		}

		// One extra MiB of headroom for the form fields and part framing.
		r.Body = http.MaxBytesReader(w, r.Body, maxCVBytes+1<<20)
		if err := r.ParseMultipartForm(maxCVBytes + 1<<20); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "Request must be a multipart form")
			return
		}

		registration := &registrations.Registration{
			UserID:     userID,
			FullName:   strings.TrimSpace(r.FormValue("full_name")),
			Phone:      strings.TrimSpace(r.FormValue("phone")),
			Email:      strings.TrimSpace(r.FormValue("email")),
			City:       strings.TrimSpace(r.FormValue("city")),
			Position:   strings.TrimSpace(r.FormValue("position")),
			Experience: strings.TrimSpace(r.FormValue("experience")),
		}
		if err := registration.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
			return
		}

		file, header, err := r.FormFile("cv")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "cv file is required")
			return
		}
		defer file.Close()

		ext := strings.ToLower(filepath.Ext(header.Filename))
		contentType, ok := allowedCVTypes[ext]
		if !ok {
			writeError(w, http.StatusBadRequest, "unsupported_file_type", "cv must be a pdf, doc or docx file")
			return
		}

		data, err := io.ReadAll(io.LimitReader(file, maxCVBytes+1))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "Could not read cv file")
			return
		}
		if len(data) > maxCVBytes {
			writeError(w, http.StatusBadRequest, "file_too_large", "cv file exceeds 5 MiB")
			return
		}

		objectName := uuid.New().String() + ext
		cvURL, err := s.store.Put(r.Context(), objectName, contentType, data)
		if err != nil {
			log.Error().Err(err).Msg("object store failure during registration")
			writeError(w, http.StatusBadGateway, "store_unavailable", "Could not store cv file")
			return
		}
		registration.CVURL = cvURL

		stored, err := s.registrations.Insert(r.Context(), registration)
		if err != nil {
			log.Error().Err(err).Msg("registration store failure")
			writeError(w, http.StatusBadGateway, "database_unavailable", "Could not store registration")
			return
		}

		writeJSON(w, http.StatusCreated, stored)
	}
}

// ListRegistrationsHandler returns the caller's submissions, newest first.
func (s *Server) ListRegistrationsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "no_token", "Missing bearer token")
			return
		}
		userID, err := uuid.Parse(identity.UserID)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid_token", "Invalid or expired session token")
			return
		}

		list, err := s.registrations.ListByUser(r.Context(), userID)
		if err != nil {
			log.Error().Err(err).Msg("registration store failure")
			writeError(w, http.StatusBadGateway, "database_unavailable", "Could not list registrations")
			return
		}
		if list == nil {
			list = []*registrations.Registration{}
		}

		writeJSON(w, http.StatusOK, list)
	}
}
