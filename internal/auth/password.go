package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Stored credentials use the form salt$iterations$hex(pbkdf2-sha256), so the
// verifier needs no out-of-band parameters.
const DefaultIterations = 100000

// HashPassword derives a stored credential string. An empty salt falls back
// to a digest-derived one so that seeding a fresh deployment from a single
// ADMIN_PASSWORD value stays reproducible.
func HashPassword(password, salt string, iterations int) string {
	if salt == "" {
		sum := sha256.Sum256([]byte(password))
		salt = hex.EncodeToString(sum[:])[:16]
	}
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	key := pbkdf2.Key([]byte(password), []byte(salt), iterations, sha256.Size, sha256.New)
	return fmt.Sprintf("%s$%d$%s", salt, iterations, hex.EncodeToString(key))
}

// VerifyPassword checks a candidate password against a stored credential.
// Malformed credentials never verify. The comparison is constant time.
func VerifyPassword(password, stored string) bool {
	parts := strings.Split(stored, "$")
	if len(parts) != 3 {
		return false
	}
	iterations, err := strconv.Atoi(parts[1])
	if err != nil || iterations <= 0 {
		return false
	}
	key := pbkdf2.Key([]byte(password), []byte(parts[0]), iterations, sha256.Size, sha256.New)
	derived := hex.EncodeToString(key)
	return subtle.ConstantTimeCompare([]byte(derived), []byte(parts[2])) == 1
}

// BearerToken extracts the credential from an Authorization header value.
func BearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
