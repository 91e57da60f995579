package service

import (
	"errors"
	"fmt"
	"time"

	"feature_voting/internal/apperror"

	"github.com/golang-jwt/jwt/v5"
)

// Claims defines JWT claims. Subject mirrors UserID.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// TokenManager issues and validates stateless HS256 bearer tokens.
type TokenManager struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewTokenManager(signingKey string, ttl time.Duration) *TokenManager {
	return &TokenManager{key: []byte(signingKey), ttl: ttl, now: time.Now}
}

// Issue returns a signed token for the user, valid for the configured TTL.
func (m *TokenManager) Issue(userID, email string) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		UserID: userID,
		Email:  email,
	})
	signed, err := token.SignedString(m.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate verifies signature and expiry. Failures are classified as
// ErrTokenExpired, ErrTokenMalformed, ErrInvalidSignature or
// ErrVerificationFailed.
func (m *TokenManager) Validate(accessToken string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(accessToken, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, classifyTokenError(err)
	}
	if !token.Valid || claims.UserID == "" || claims.Subject != claims.UserID {
		return nil, apperror.ErrVerificationFailed
	}
	return claims, nil
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return apperror.ErrTokenExpired.Wrap(err)
	case errors.Is(err, jwt.ErrTokenMalformed):
		return apperror.ErrTokenMalformed.Wrap(err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return apperror.ErrInvalidSignature.Wrap(err)
	default:
		return apperror.ErrVerificationFailed.Wrap(err)
	}
}
