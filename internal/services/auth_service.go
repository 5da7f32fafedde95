package services

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// authService implements the credential gate against a reference mapping
// supplied by the secrets provider at startup.
type authService struct {
	credentials map[string]string
}

// NewAuthService creates a new AuthServicer over the given username→secret
// reference mapping.
func NewAuthService(credentials map[string]string) AuthServicer {
	return &authService{credentials: credentials}
}

// Verify checks the submitted pair against the reference mapping. Unknown
// usernames fail closed. Plaintext entries are compared in constant time;
// bcrypt entries (prefix "$2") go through bcrypt's own equal-time compare.
// There is no lockout or throttling; retries are unbounded.
func (s *authService) Verify(username, password string) bool {
	expected, ok := s.credentials[username]
	if !ok {
		return false
	}

	if strings.HasPrefix(expected, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(expected), []byte(password)) == nil
	}

	return subtle.ConstantTimeCompare([]byte(password), []byte(expected)) == 1
}
