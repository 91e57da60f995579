package service

import (
	"errors"
	"fmt"
	"strings"

	"feature_voting/internal/apperror"

	"github.com/matthewhartstonge/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Password hashing schemes.
const (
	SchemeBcrypt   = "bcrypt"
	SchemeArgon2id = "argon2id"
)

const argon2Prefix = "$argon2"

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// Hasher produces hashes with the configured scheme and verifies hashes of
// either scheme, so switching schemes keeps existing accounts working.
type Hasher struct {
	scheme     string
	bcryptCost int
	argon      argon2.Config
}

var _ PasswordHasher = (*Hasher)(nil)

// NewHasher returns a hasher for scheme. A bcrypt cost below bcrypt.MinCost
// falls back to bcrypt.DefaultCost.
func NewHasher(scheme string, bcryptCost int) *Hasher {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	if scheme != SchemeArgon2id {
		scheme = SchemeBcrypt
	}
	return &Hasher{scheme: scheme, bcryptCost: bcryptCost, argon: argon2.DefaultConfig()}
}

// Hash returns a salted one-way hash of password.
func (h *Hasher) Hash(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", apperror.Invalid("password is empty")
	}
	if h.scheme == SchemeArgon2id {
		encoded, err := h.argon.HashEncoded([]byte(password))
		if err != nil {
			return "", fmt.Errorf("hash password: %w", err)
		}
		return string(encoded), nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", apperror.Invalid("password is too long")
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether password matches hash. Both libraries compare in
// constant time.
func (h *Hasher) Verify(password, hash string) bool {
	if strings.HasPrefix(hash, argon2Prefix) {
		ok, err := argon2.VerifyEncoded([]byte(password), []byte(hash))
		return err == nil && ok
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
