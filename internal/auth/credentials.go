// Package auth implements login against a static credential list and
// redis-backed sessions. This is deliberately not a security-grade user
// system: the operator provisions a handful of fixed accounts through the
// environment.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Staff roles. Couriers get a reduced read surface; analytics and
// category management are admin-only.
const (
	RoleAdmin   = "admin"
	RoleOffice  = "office"
	RoleCourier = "courier"
)

// ErrInvalidCredentials indicates login failure.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Credential is one static account. Secret is a bcrypt hash; a plain
// value is tolerated for local development and compared in constant time.
type Credential struct {
	Email  string
	Role   string
	Secret string
}

// ParseStaticUsers decodes the STATIC_USERS environment value:
// comma-separated "email:role:secret" entries.
func ParseStaticUsers(raw string) ([]Credential, error) {
	var creds []Credential
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("auth: malformed credential entry %q", entry)
		}
		role := strings.TrimSpace(parts[1])
		switch role {
		case RoleAdmin, RoleOffice, RoleCourier:
		default:
			return nil, fmt.Errorf("auth: unknown role %q", role)
		}
		creds = append(creds, Credential{
			Email:  strings.ToLower(strings.TrimSpace(parts[0])),
			Role:   role,
			Secret: parts[2],
		})
	}
	if len(creds) == 0 {
		return nil, errors.New("auth: static user list is empty")
	}
	return creds, nil
}

// Service validates credentials against the static list.
type Service struct {
	creds []Credential
}

// NewService constructs a Service.
func NewService(creds []Credential) *Service {
	return &Service{creds: creds}
}

// Authenticate checks email/password against the list.
func (s *Service) Authenticate(email, password string) (Credential, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, cred := range s.creds {
		if cred.Email != email {
			continue
		}
		if matches(cred.Secret, password) {
			return cred, nil
		}
		return Credential{}, ErrInvalidCredentials
	}
	return Credential{}, ErrInvalidCredentials
}

func matches(secret, password string) bool {
	if strings.HasPrefix(secret, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(secret), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(password)) == 1
}
