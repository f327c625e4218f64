package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/DjordjeVuckovic/media-catalog/internal/apperr"
	"golang.org/x/crypto/bcrypt"
)

// MsgInvalidCredentials is the only message a failed login reveals.
const MsgInvalidCredentials = "Invalid credentials"

var ErrInvalidCredentials = errors.New("invalid credentials")

// Authenticator checks the single administrator account.
type Authenticator struct {
	email string
	hash  []byte
}

func NewAuthenticator(email, passwordHash string) *Authenticator {
	return &Authenticator{
		email: strings.ToLower(strings.TrimSpace(email)),
		hash:  []byte(passwordHash),
	}
}

func (a *Authenticator) Authenticate(_ context.Context, email, password string) error {
	emailOK := subtle.ConstantTimeCompare(
		[]byte(strings.ToLower(strings.TrimSpace(email))),
		[]byte(a.email),
	) == 1

	// Always run bcrypt so timing does not reveal a wrong email.
	pwErr := bcrypt.CompareHashAndPassword(a.hash, []byte(password))

	if !emailOK || pwErr != nil {
		return apperr.NewUnauthorized(MsgInvalidCredentials, ErrInvalidCredentials)
	}
	return nil
}

// HashPassword returns a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
