// Package auth implements the injected authentication collaborator.
// Credentials come from configuration; the checkout engine and the rest of
// the application stay role-agnostic and only see domain.Role.
package auth

import (
	"crypto/subtle"

	"github.com/tunasmustika/kasir/internal/domain"
)

// Credential is one username/password pair bound to a role.
type Credential struct {
	Username string
	Password string
	Role     domain.Role
}

// Static authenticates against a fixed credential set.
type Static struct {
	creds []Credential
}

// NewStatic builds an authenticator from the given credentials.
func NewStatic(creds []Credential) *Static {
	return &Static{creds: creds}
}

// Authenticate resolves the operator's role. Satisfies domain.Authenticator.
func (s *Static) Authenticate(username, password string) (domain.Role, error) {
	for _, c := range s.creds {
		userOK := subtle.ConstantTimeCompare([]byte(c.Username), []byte(username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(c.Password), []byte(password)) == 1
		if userOK && passOK {
			return c.Role, nil
		}
	}
	return "", domain.ErrInvalidCredentials
}
