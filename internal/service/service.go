package service

import (
	"context"

	"feature_voting/internal/config"
	"feature_voting/internal/models"
	"feature_voting/internal/repository"
)

type Authorization interface {
	Register(ctx context.Context, in RegisterInput) (AuthResult, error)
	Login(ctx context.Context, email, password string) (AuthResult, error)
	ParseToken(accessToken string) (*Claims, error)
	Profile(ctx context.Context, userID string) (models.UserProfile, error)
	UpdateProfile(ctx context.Context, userID string, upd models.UserUpdate) (*models.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}

// Users exposes account administration.
type Users interface {
	List(ctx context.Context) ([]models.UserProfile, error)
	Get(ctx context.Context, id string) (models.UserDetail, error)
	Update(ctx context.Context, id string, upd models.UserUpdate) (models.UserProfile, error)
	Delete(ctx context.Context, id string) error
}

// Features exposes feature CRUD; every read carries live vote counts.
type Features interface {
	List(ctx context.Context) ([]models.Feature, error)
	Get(ctx context.Context, id string) (models.Feature, error)
	Create(ctx context.Context, in FeatureInput) (models.Feature, error)
	Update(ctx context.Context, id string, upd models.FeatureUpdate) (models.Feature, error)
	Delete(ctx context.Context, id string) error
	Counts(ctx context.Context) ([]models.FeatureVoteCount, error)
}

// Votes exposes the vote ledger and the toggle engine.
type Votes interface {
	Toggle(ctx context.Context, featureID, voterID string) (models.ToggleResult, error)
	Create(ctx context.Context, featureID, voterID string) (models.Vote, error)
	Get(ctx context.Context, id string) (models.Vote, error)
	List(ctx context.Context) ([]models.Vote, error)
	Delete(ctx context.Context, id string) error
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Users
	Features
	Votes
}

// NewService wires the repository layer into concrete services. The auth
// settings are captured once here; nothing reads configuration afterwards.
func NewService(repos *repository.Repository, cfg config.AuthConfig) *Service {
	hasher := NewHasher(cfg.Hasher, cfg.BcryptCost)
	tokens := NewTokenManager(cfg.SigningKey, cfg.TokenTTL)
	return &Service{
		Authorization: NewAuthService(repos.Users, hasher, tokens),
		Users:         NewUserService(repos.Users, repos.Features, repos.Votes),
		Features:      NewFeatureService(repos.Features, repos.Votes),
		Votes:         NewVoteService(repos.Votes),
	}
}
