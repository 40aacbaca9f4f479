package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/workgram/miniapp-server/initdata"
	apperrors "github.com/workgram/miniapp-server/internal/errors"
	"github.com/workgram/miniapp-server/session"
	"github.com/workgram/miniapp-server/users"
)

type telegramLoginRequest struct {
	InitData string `json:"init_data"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  *users.User `json:"user"`
}

// TelegramLoginHandler exchanges signed Mini App init data for a session
// token, creating the user on first login.
func (s *Server) TelegramLoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req telegramLoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "Body must be a JSON object")
			return
		}
		if req.InitData == "" {
			writeError(w, http.StatusBadRequest, "invalid_request", "init_data is required")
			return
		}

		data, err := initdata.Parse(req.InitData)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "init_data is not a valid query string")
			return
		}

		identity, err := initdata.Verify(data, s.config.GetBotToken())
		switch {
		case errors.Is(err, initdata.ErrMissingHash):
			writeError(w, http.StatusUnauthorized, "missing_hash", "init_data has no hash field")
			return
		case errors.Is(err, initdata.ErrMalformedClaim):
			writeError(w, http.StatusUnauthorized, "malformed_claim", "init_data user field is missing or malformed")
			return
		case err != nil:
			writeError(w, http.StatusUnauthorized, "signature_mismatch", "init_data signature did not verify")
			return
		}

		user, err := s.lookupOrCreate(r.Context(), identity)
		if err != nil {
			log.Error().Err(err).Msg("user directory failure during login")
			writeError(w, http.StatusBadGateway, "directory_unavailable", "Could not resolve user")
			return
		}

		if err := s.users.TouchLastLogin(r.Context(), user.ID); err != nil {
			// Login still succeeds; the timestamp is best effort.
			log.Warn().Err(err).Str("user_id", user.ID.String()).Msg("failed to record last login")
		}

		token, err := s.issuer.Issue(session.Identity{
			UserID:      user.ID.String(),
			TelegramID:  user.TelegramID,
			DisplayName: user.DisplayName(),
		})
		if err != nil {
			log.Error().Err(err).Msg("failed to issue session token")
			writeError(w, http.StatusInternalServerError, "internal_error", "Could not issue session token")
			return
		}

		writeJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
	}
}

// lookupOrCreate resolves the verified Telegram identity against the user
// directory. A concurrent first login can race on Create; the unique
// telegram_id constraint rejects the loser, so the lookup is retried once.
func (s *Server) lookupOrCreate(ctx context.Context, identity initdata.Identity) (*users.User, error) {
	user, err := s.users.FindByTelegramID(ctx, identity.TelegramID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}

	created, createErr := s.users.Create(ctx, &users.User{
		TelegramID: identity.TelegramID,
		FirstName:  identity.FirstName,
		LastName:   identity.LastName,
	})
	if createErr == nil {
		return created, nil
	}

	if user, err := s.users.FindByTelegramID(ctx, identity.TelegramID); err == nil {
		return user, nil
	}
	return nil, createErr
}

// MeHandler returns the authenticated caller's directory record.
func (s *Server) MeHandler() http.HandlerFunc {
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

		user, err := s.users.GetByID(r.Context(), userID)
		if errors.Is(err, apperrors.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user_not_found", "User no longer exists")
			return
		}
		if err != nil {
			log.Error().Err(err).Msg("user directory failure")
			writeError(w, http.StatusBadGateway, "directory_unavailable", "Could not resolve user")
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}
