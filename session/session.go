// Package session issues and authenticates the signed session tokens handed
// out after a successful Telegram login. Tokens are self-contained HS256 JWTs
// with a fixed seven-day lifetime; there is no refresh and no revocation, an
// expired token requires a fresh login.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrNoToken is returned when the Authorization header is absent or is not a bearer token
	ErrNoToken = errors.New("no bearer token")
	// ErrInvalidToken is returned when the presented token is corrupt, expired or signed with another key
	ErrInvalidToken = errors.New("invalid session token")
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// TokenLifetime is the fixed validity window of an issued session token.
const TokenLifetime = 7 * 24 * time.Hour

// Identity is the claim set carried by a session token: the internal user ID,
// the Telegram ID the user logged in with, and their display name.
type Identity struct {
	UserID      string `json:"id"`
	TelegramID  string `json:"telegram_id"`
	DisplayName string `json:"display_name,omitempty"`
}

// Claims is the JWT claim layout of a session token.
type Claims struct {
	jwt.RegisteredClaims
	TelegramID  string `json:"tg_id"`
	DisplayName string `json:"name,omitempty"`
}

// Issuer signs session tokens with a process-wide symmetric secret.
type Issuer struct {
	secret []byte
}

// NewIssuer creates an Issuer signing with the given secret.
func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret)}
}

// Issue creates a signed session token for identity, valid for TokenLifetime
// from now.
func (i *Issuer) Issue(identity Identity) (string, error) {
	now := NowTimeFunc()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
			ID:        uuid.New().String(),
		},
		TelegramID:  identity.TelegramID,
		DisplayName: identity.DisplayName,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Authenticator validates bearer tokens presented on protected requests.
type Authenticator struct {
	secret []byte
}

// NewAuthenticator creates an Authenticator verifying with the given secret.
func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// Authenticate validates an Authorization header value and returns the
// identity embedded in the token. An absent or malformed bearer header yields
// ErrNoToken; a present but corrupt, expired or wrongly signed token yields
// ErrInvalidToken.
func (a *Authenticator) Authenticate(authorizationHeader string) (Identity, error) {
	raw, err := bearerToken(authorizationHeader)
	if err != nil {
		return Identity{}, err
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, a.verificationKey,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return NowTimeFunc() }),
	)
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}
	if claims.Subject == "" {
		return Identity{}, ErrInvalidToken
	}

	return Identity{
		UserID:      claims.Subject,
		TelegramID:  claims.TelegramID,
		DisplayName: claims.DisplayName,
	}, nil
}

func (a *Authenticator) verificationKey(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return a.secret, nil
}

// bearerToken extracts the token from a "Bearer <token>" header value.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrNoToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrNoToken
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}
