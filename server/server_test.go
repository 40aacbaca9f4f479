package server_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/workgram/miniapp-server/internal/config"
	regfake "github.com/workgram/miniapp-server/registrations/repofake"
	"github.com/workgram/miniapp-server/server"
	"github.com/workgram/miniapp-server/storage/storefake"
	userfake "github.com/workgram/miniapp-server/users/repofake"
)

const (
	testBotToken      = "botsecret"
	testSessionSecret = "session-signing-secret"
	testBaseURL       = "http://localhost:8080"
)

// testFixture holds the server under test and its fake collaborators.
type testFixture struct {
	server        *server.Server
	users         *userfake.FakeDirectory
	registrations *regfake.FakeRepo
	store         *storefake.FakeStore
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	t.Setenv("TELEGRAM_BOT_TOKEN", testBotToken)
	t.Setenv("SESSION_SECRET", testSessionSecret)
	t.Setenv("ENV", "TEST")

	users := userfake.NewFakeDirectory()
	registrations := regfake.NewFakeRepo()
	store := storefake.New(testBaseURL)

	srv, err := server.New(config.New(), server.Deps{
		Users:         users,
		Registrations: registrations,
		Store:         store,
	})
	require.NoError(t, err)

	return &testFixture{
		server:        srv,
		users:         users,
		registrations: registrations,
		store:         store,
	}
}

// signInitData builds a signed init data blob the same way Telegram does.
func signInitData(fields map[string]string, botToken string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	parts := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		lines = append(lines, k+"="+fields[k])
		parts = append(parts, url.QueryEscape(k)+"="+url.QueryEscape(fields[k]))
	}

	secretMac := hmac.New(sha256.New, []byte(botToken))
	secretMac.Write([]byte("WebAppData"))
	mac := hmac.New(sha256.New, secretMac.Sum(nil))
	mac.Write([]byte(strings.Join(lines, "\n")))

	parts = append(parts, "hash="+hex.EncodeToString(mac.Sum(nil)))
	return strings.Join(parts, "&")
}

func validInitData() string {
	return signInitData(map[string]string{
		"auth_date": "1700000000",
		"query_id":  "AA",
		"user":      `{"id":123,"first_name":"Ada","last_name":"L"}`,
	}, testBotToken)
}
