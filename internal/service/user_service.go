package service

import (
	"context"
	"strings"

	"feature_voting/internal/apperror"
	"feature_voting/internal/models"
	"feature_voting/internal/repository"
)

type UserService struct {
	users    repository.Users
	features repository.Features
	votes    repository.Votes
}

func NewUserService(users repository.Users, features repository.Features, votes repository.Votes) *UserService {
	return &UserService{users: users, features: features, votes: votes}
}

func (s *UserService) List(ctx context.Context) ([]models.UserProfile, error) {
	return s.users.List(ctx)
}

// Get returns the user with its created features and cast votes.
func (s *UserService) Get(ctx context.Context, id string) (models.UserDetail, error) {
	p, err := s.users.GetProfile(ctx, id)
	if err != nil {
		return models.UserDetail{}, err
	}
	features, err := s.features.ListByCreator(ctx, id)
	if err != nil {
		return models.UserDetail{}, err
	}
	votes, err := s.votes.ListByVoter(ctx, id)
	if err != nil {
		return models.UserDetail{}, err
	}
	return models.UserDetail{UserProfile: p, Features: features, Votes: votes}, nil
}

func (s *UserService) Update(ctx context.Context, id string, upd models.UserUpdate) (models.UserProfile, error) {
	if upd.Email != nil {
		email := normalizeEmail(*upd.Email)
		if email == "" {
			return models.UserProfile{}, apperror.Invalid("email must not be empty")
		}
		upd.Email = &email
	}
	if !upd.Empty() {
		if _, err := s.users.Update(ctx, id, upd); err != nil {
			return models.UserProfile{}, err
		}
	}
	return s.users.GetProfile(ctx, id)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperror.Invalid("user id is required")
	}
	return s.users.Delete(ctx, id)
}
