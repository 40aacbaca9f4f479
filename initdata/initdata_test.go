package initdata_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/workgram/miniapp-server/initdata"
)

const testBotToken = "botsecret"

// signPayload builds a signed init data blob from key-value pairs, rendered
// in the given order so tests can exercise order independence.
func signPayload(fields [][2]string, botToken string) string {
	deduped := make(map[string]string, len(fields))
	for _, f := range fields {
		deduped[f[0]] = f[1]
	}
	keys := make([]string, 0, len(deduped))
	for k := range deduped {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+deduped[k])
	}

	secretMac := hmac.New(sha256.New, []byte(botToken))
	secretMac.Write([]byte("WebAppData"))
	mac := hmac.New(sha256.New, secretMac.Sum(nil))
	mac.Write([]byte(strings.Join(lines, "\n")))
	hash := hex.EncodeToString(mac.Sum(nil))

	parts := make([]string, 0, len(fields)+1)
	for _, f := range fields {
		parts = append(parts, url.QueryEscape(f[0])+"="+url.QueryEscape(f[1]))
	}
	parts = append(parts, "hash="+hash)
	return strings.Join(parts, "&")
}

func defaultFields() [][2]string {
	return [][2]string{
		{"auth_date", "1700000000"},
		{"query_id", "AA"},
		{"user", `{"id":123,"first_name":"Ada","last_name":"L"}`},
	}
}

func mustParse(t *testing.T, raw string) initdata.Data {
	t.Helper()
	data, err := initdata.Parse(raw)
	require.NoError(t, err)
	return data
}

func TestVerifyValidPayload(t *testing.T) {
	raw := signPayload(defaultFields(), testBotToken)

	identity, err := initdata.Verify(mustParse(t, raw), testBotToken)
	require.NoError(t, err)
	require.Equal(t, "123", identity.TelegramID)
	require.Equal(t, "Ada", identity.FirstName)
	require.Equal(t, "L", identity.LastName)
}

func TestVerifyFieldOrderDoesNotMatter(t *testing.T) {
	fields := defaultFields()
	reversed := [][2]string{fields[2], fields[1], fields[0]}

	id1, err := initdata.Verify(mustParse(t, signPayload(fields, testBotToken)), testBotToken)
	require.NoError(t, err)
	id2, err := initdata.Verify(mustParse(t, signPayload(reversed, testBotToken)), testBotToken)
	require.NoError(t, err)
	require.Equal(t, id1, id2)
}

func TestVerifyMutatedValueFails(t *testing.T) {
	raw := signPayload(defaultFields(), testBotToken)
	mutated := strings.Replace(raw, "1700000000", "1700000001", 1)

	_, err := initdata.Verify(mustParse(t, mutated), testBotToken)
	require.ErrorIs(t, err, initdata.ErrSignatureMismatch)
}

func TestVerifyTruncatedHashFails(t *testing.T) {
	raw := signPayload(defaultFields(), testBotToken)
	truncated := raw[:len(raw)-1]

	_, err := initdata.Verify(mustParse(t, truncated), testBotToken)
	require.ErrorIs(t, err, initdata.ErrSignatureMismatch)
}

func TestVerifyWrongBotTokenFails(t *testing.T) {
	raw := signPayload(defaultFields(), testBotToken)

	_, err := initdata.Verify(mustParse(t, raw), "someotherbot")
	require.ErrorIs(t, err, initdata.ErrSignatureMismatch)
}

func TestVerifyMissingHash(t *testing.T) {
	data := mustParse(t, "auth_date=1700000000&query_id=AA")

	_, err := initdata.Verify(data, testBotToken)
	require.ErrorIs(t, err, initdata.ErrMissingHash)
}

func TestVerifyEmptyPayload(t *testing.T) {
	data := mustParse(t, "")

	_, err := initdata.Verify(data, testBotToken)
	require.ErrorIs(t, err, initdata.ErrMissingHash)
}

func TestVerifyMissingUserField(t *testing.T) {
	raw := signPayload([][2]string{
		{"auth_date", "1700000000"},
		{"query_id", "AA"},
	}, testBotToken)

	_, err := initdata.Verify(mustParse(t, raw), testBotToken)
	require.ErrorIs(t, err, initdata.ErrMalformedClaim)
}

func TestVerifyUnparsableUserField(t *testing.T) {
	raw := signPayload([][2]string{
		{"auth_date", "1700000000"},
		{"user", "not-json"},
	}, testBotToken)

	_, err := initdata.Verify(mustParse(t, raw), testBotToken)
	require.ErrorIs(t, err, initdata.ErrMalformedClaim)
}

func TestVerifyUserWithoutIDFails(t *testing.T) {
	raw := signPayload([][2]string{
		{"auth_date", "1700000000"},
		{"user", `{"first_name":"Ada"}`},
	}, testBotToken)

	_, err := initdata.Verify(mustParse(t, raw), testBotToken)
	require.ErrorIs(t, err, initdata.ErrMalformedClaim)
}

func TestDuplicateKeysLastWins(t *testing.T) {
	// The signing helper dedupes last-wins exactly like the verifier, so a
	// payload carrying both occurrences still verifies against the last one.
	fields := [][2]string{
		{"auth_date", "1"},
		{"auth_date", "1700000000"},
		{"user", `{"id":123,"first_name":"Ada","last_name":"L"}`},
	}

	data := mustParse(t, signPayload(fields, testBotToken))
	require.Equal(t, 4, data.Len())

	got, ok := data.Get("auth_date")
	require.True(t, ok)
	require.Equal(t, "1700000000", got)

	_, err := initdata.Verify(data, testBotToken)
	require.NoError(t, err)
}

func TestParseRejectsBadEscape(t *testing.T) {
	_, err := initdata.Parse("user=%zz")
	require.Error(t, err)
}

func TestParseDecodesEscapedFields(t *testing.T) {
	data := mustParse(t, "user=%7B%22id%22%3A1%7D&query_id=A%20B")

	user, ok := data.Get("user")
	require.True(t, ok)
	require.Equal(t, `{"id":1}`, user)

	qid, ok := data.Get("query_id")
	require.True(t, ok)
	require.Equal(t, "A B", qid)
}
