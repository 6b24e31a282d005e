package logger

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MinSaltLength is the shortest accepted LOG_HASH_SALT.
const MinSaltLength = 32

// hashLength is the number of hex characters kept from each digest.
const hashLength = 8

// ErrWeakSalt is returned by InitHashSalt for a missing or short salt.
var ErrWeakSalt = fmt.Errorf("LOG_HASH_SALT must be at least %d characters", MinSaltLength)

var hashSalt string

// InitHashSalt sets the key used by HashUserID and HashUsername.
func InitHashSalt(salt string) error {
	if len(salt) < MinSaltLength {
		return ErrWeakSalt
	}
	hashSalt = salt
	return nil
}

// InitHashSaltForTesting sets the salt directly without validation.
func InitHashSaltForTesting(salt string) {
	hashSalt = salt
}

// HashUserID returns a short keyed digest of a user ID, stable for one salt.
func HashUserID(userID string) string {
	return hashValue("id", userID)
}

// HashUsername returns a short keyed digest of a login name.
// It never equals HashUserID of the same text.
func HashUsername(username string) string {
	return hashValue("name", username)
}

func hashValue(kind, v string) string {
	mac := hmac.New(sha256.New, []byte(hashSalt))
	mac.Write([]byte(kind))
	mac.Write([]byte{0})
	mac.Write([]byte(v))
	return hex.EncodeToString(mac.Sum(nil))[:hashLength]
}

// SanitizeDescription replaces an expense description with its shape.
func SanitizeDescription(desc string) string {
	if desc == "" {
		return "<empty>"
	}
	return fmt.Sprintf("<redacted: %d words, %d chars>", len(strings.Fields(desc)), utf8.RuneCountInString(desc))
}

// SanitizeText keeps at most the first three characters of longer text.
func SanitizeText(text string) string {
	n := utf8.RuneCountInString(text)
	switch {
	case n == 0:
		return "<empty>"
	case n <= 10:
		return fmt.Sprintf("<%d chars>", n)
	}

	runes := []rune(text)
	return fmt.Sprintf("%s...<%d chars>", string(runes[:3]), n)
}
