package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/workgram/miniapp-server/session"
)

const testSecret = "test-session-secret"

func testIdentity() session.Identity {
	return session.Identity{
		UserID:      "9f1c2b34-0000-4000-8000-000000000001",
		TelegramID:  "123",
		DisplayName: "Ada L",
	}
}

func TestIssueThenAuthenticate(t *testing.T) {
	issuer := session.NewIssuer(testSecret)
	authenticator := session.NewAuthenticator(testSecret)

	token, err := issuer.Issue(testIdentity())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := authenticator.Authenticate("Bearer " + token)
	require.NoError(t, err)
	require.Equal(t, testIdentity(), identity)
}

func TestAuthenticateWrongSecret(t *testing.T) {
	issuer := session.NewIssuer(testSecret)
	authenticator := session.NewAuthenticator("a-different-secret")

	token, err := issuer.Issue(testIdentity())
	require.NoError(t, err)

	_, err = authenticator.Authenticate("Bearer " + token)
	require.ErrorIs(t, err, session.ErrInvalidToken)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	issuer := session.NewIssuer(testSecret)
	authenticator := session.NewAuthenticator(testSecret)

	issuedAt := time.Now().Add(-session.TokenLifetime - time.Hour)
	session.NowTimeFunc = func() time.Time { return issuedAt }
	token, err := issuer.Issue(testIdentity())
	session.NowTimeFunc = time.Now
	require.NoError(t, err)

	_, err = authenticator.Authenticate("Bearer " + token)
	require.ErrorIs(t, err, session.ErrInvalidToken)
}

func TestAuthenticateHeaderVariants(t *testing.T) {
	issuer := session.NewIssuer(testSecret)
	authenticator := session.NewAuthenticator(testSecret)

	token, err := issuer.Issue(testIdentity())
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		wantErr error
	}{
		{name: "absent", header: "", wantErr: session.ErrNoToken},
		{name: "wrong scheme", header: "Basic " + token, wantErr: session.ErrNoToken},
		{name: "scheme only", header: "Bearer", wantErr: session.ErrNoToken},
		{name: "empty token", header: "Bearer ", wantErr: session.ErrNoToken},
		{name: "garbage token", header: "Bearer not.a.jwt", wantErr: session.ErrInvalidToken},
		{name: "lowercase scheme", header: "bearer " + token, wantErr: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := authenticator.Authenticate(tc.header)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestIssuedTokenExpiryIsSevenDays(t *testing.T) {
	issuer := session.NewIssuer(testSecret)
	authenticator := session.NewAuthenticator(testSecret)

	issuedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	session.NowTimeFunc = func() time.Time { return issuedAt }
	token, err := issuer.Issue(testIdentity())
	require.NoError(t, err)

	// Just inside the window.
	session.NowTimeFunc = func() time.Time { return issuedAt.Add(session.TokenLifetime - time.Minute) }
	_, err = authenticator.Authenticate("Bearer " + token)
	require.NoError(t, err)

	// Just past it.
	session.NowTimeFunc = func() time.Time { return issuedAt.Add(session.TokenLifetime + time.Minute) }
	_, err = authenticator.Authenticate("Bearer " + token)
	require.ErrorIs(t, err, session.ErrInvalidToken)

	session.NowTimeFunc = time.Now
}
