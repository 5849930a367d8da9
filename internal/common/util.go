package common

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MakeRandHexString generates a random hexadecimal string of the given size.
// The final string is twice as long as size, since each byte expands to two
// hex characters. It returns an error if the random number generator fails.
func MakeRandHexString(size int) (string, error) {

	b := make([]byte, size)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}

// NormalizeEmail lower-cases and trims an address before any comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// DisplayNameFromEmail capitalizes the local part of an address:
// "alice@immerseindia.com" becomes "Alice".
func DisplayNameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(local)
	return string(unicode.ToUpper(r)) + local[size:]
}

// WipeByteArray zeroes b in place. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
