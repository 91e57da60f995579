package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"feature_voting/internal/apperror"
	"feature_voting/internal/models"
	"feature_voting/internal/repository"

	"github.com/google/uuid"
)

// AuthService handles registration, login, token parsing and profile changes.
type AuthService struct {
	users  repository.Users
	hasher PasswordHasher
	tokens *TokenManager
}

func NewAuthService(users repository.Users, hasher PasswordHasher, tokens *TokenManager) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register hashes the password, creates the user and issues a token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return AuthResult{}, apperror.Invalid("email and password are required")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return AuthResult{}, err
	}

	now := time.Now().UTC()
	u := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         in.Name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return AuthResult{}, err
	}

	return s.issue(u)
}

// Login verifies credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return AuthResult{}, apperror.Invalid("email and password are required")
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrUserNotFound) {
			return AuthResult{}, apperror.ErrBadCredentials
		}
		return AuthResult{}, err
	}
	if !s.hasher.Verify(password, u.PasswordHash) {
		return AuthResult{}, apperror.ErrBadCredentials
	}

	return s.issue(*u)
}

func (s *AuthService) issue(u models.User) (AuthResult, error) {
	token, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: u, Token: token}, nil
}

// ParseToken validates a bearer token and returns its claims.
func (s *AuthService) ParseToken(accessToken string) (*Claims, error) {
	return s.tokens.Validate(accessToken)
}

func (s *AuthService) Profile(ctx context.Context, userID string) (models.UserProfile, error) {
	return s.users.GetProfile(ctx, userID)
}

// UpdateProfile applies a partial name/email change to the caller's account.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, upd models.UserUpdate) (*models.User, error) {
	if upd.Email != nil {
		email := normalizeEmail(*upd.Email)
		if email == "" {
			return nil, apperror.Invalid("email must not be empty")
		}
		upd.Email = &email
	}
	if upd.Empty() {
		return s.users.GetByID(ctx, userID)
	}
	return s.users.Update(ctx, userID, upd)
}

// ChangePassword replaces the hash after verifying the current password.
// Tokens issued earlier stay valid until they expire.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return apperror.Invalid("current password and new password are required")
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(currentPassword, u.PasswordHash) {
		return apperror.ErrBadCredentials.WithMessage("current password is incorrect")
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}
