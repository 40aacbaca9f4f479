// Package initdata verifies Telegram Mini App init data.
//
// Init data arrives as a URL-encoded query string whose fields are signed by
// the Telegram bot that launched the Mini App. The signature chain is:
//
//	secretKey  = HMAC_SHA256(key = botToken, message = "WebAppData")
//	calculated = hex(HMAC_SHA256(key = secretKey, message = checkString))
//
// where checkString is every field except "hash", sorted by key and rendered
// as newline-joined "key=value" lines. Verification is a pure function of the
// payload and the bot token.
package initdata

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrMissingHash is returned when the payload has no hash field to check against
	ErrMissingHash = errors.New("init data is missing the hash field")
	// ErrSignatureMismatch is returned when the computed signature does not match the received hash
	ErrSignatureMismatch = errors.New("init data signature mismatch")
	// ErrMalformedClaim is returned when the user field is absent or cannot be parsed
	ErrMalformedClaim = errors.New("init data user field is missing or malformed")
)

// secretKeyConstant is the fixed HMAC message Telegram uses to derive the
// per-bot secret key from the bot token.
const secretKeyConstant = "WebAppData"

// hashField is detached from the payload before the check-string is built.
const hashField = "hash"

// Pair is a single decoded key-value field of the init data payload.
type Pair struct {
	Key   string
	Value string
}

// Data is the parsed init data payload, preserving the original field order.
type Data struct {
	pairs []Pair
}

// Parse decodes a raw URL-encoded init data blob into its key-value pairs.
// Field order is preserved. Telegram does not send duplicate keys, but if a
// key does appear more than once the last occurrence wins everywhere a single
// value is needed (Get, the check-string, the embedded user claim).
func Parse(raw string) (Data, error) {
	var data Data
	if raw == "" {
		return data, nil
	}

	for _, field := range strings.Split(raw, "&") {
		if field == "" {
			continue
		}
		k, v, _ := strings.Cut(field, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			return Data{}, fmt.Errorf("init data field %q: %w", k, err)
		}
		value, err := url.QueryUnescape(v)
		if err != nil {
			return Data{}, fmt.Errorf("init data field %q: %w", key, err)
		}
		data.pairs = append(data.pairs, Pair{Key: key, Value: value})
	}
	return data, nil
}

// Get returns the value of key. With duplicate keys the last occurrence wins.
func (d Data) Get(key string) (string, bool) {
	for i := len(d.pairs) - 1; i >= 0; i-- {
		if d.pairs[i].Key == key {
			return d.pairs[i].Value, true
		}
	}
	return "", false
}

// Len returns the number of decoded fields, including duplicates.
func (d Data) Len() int {
	return len(d.pairs)
}

// checkString builds the canonical signing payload: every field except hash,
// deduplicated last-wins, sorted by key, rendered as "key=value" and joined
// with single newlines.
func (d Data) checkString() string {
	fields := make(map[string]string, len(d.pairs))
	for _, p := range d.pairs {
		if p.Key == hashField {
			continue
		}
		fields[p.Key] = p.Value
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+fields[k])
	}
	return strings.Join(lines, "\n")
}

// Identity is the user claim embedded in verified init data.
type Identity struct {
	TelegramID string
	FirstName  string
	LastName   string
}

// telegramUser mirrors the JSON object Telegram places in the user field.
type telegramUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Verify checks the payload signature against botToken and, on success,
// extracts the embedded user identity. It performs no I/O and never logs;
// failures map onto ErrMissingHash, ErrSignatureMismatch and ErrMalformedClaim.
func Verify(data Data, botToken string) (Identity, error) {
	receivedHash, ok := data.Get(hashField)
	if !ok {
		return Identity{}, ErrMissingHash
	}

	secretKey := hmacSHA256([]byte(botToken), []byte(secretKeyConstant))
	calculated := hmacSHA256(secretKey, []byte(data.checkString()))
	calculatedHex := hex.EncodeToString(calculated)

	// hmac.Equal is constant time; a length mismatch also fails closed.
	if !hmac.Equal([]byte(calculatedHex), []byte(receivedHash)) {
		return Identity{}, ErrSignatureMismatch
	}

	rawUser, ok := data.Get("user")
	if !ok {
		return Identity{}, ErrMalformedClaim
	}

	var user telegramUser
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		return Identity{}, ErrMalformedClaim
	}
	if user.ID == 0 {
		return Identity{}, ErrMalformedClaim
	}

	return Identity{
		TelegramID: strconv.FormatInt(user.ID, 10),
		FirstName:  user.FirstName,
		LastName:   user.LastName,
	}, nil
}

func hmacSHA256(key, message []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(message)
	return mac.Sum(nil)
}
