package service

import (
	"context"
	"strings"
	"time"

	"feature_voting/internal/apperror"
	"feature_voting/internal/models"
	"feature_voting/internal/repository"

	"github.com/google/uuid"
)

type FeatureService struct {
	features repository.Features
	votes    repository.Votes
}

func NewFeatureService(features repository.Features, votes repository.Votes) *FeatureService {
	return &FeatureService{features: features, votes: votes}
}

// List returns all features newest first, each with its votes attached.
func (s *FeatureService) List(ctx context.Context) ([]models.Feature, error) {
	features, err := s.features.List(ctx)
	if err != nil {
		return nil, err
	}
	votes, err := s.votes.List(ctx)
	if err != nil {
		return nil, err
	}

	byFeature := make(map[string][]models.Vote, len(features))
	for _, v := range votes {
		byFeature[v.FeatureID] = append(byFeature[v.FeatureID], v)
	}
	for i := range features {
		features[i].Votes = nonNilVotes(byFeature[features[i].ID])
	}
	return features, nil
}

func (s *FeatureService) Get(ctx context.Context, id string) (models.Feature, error) {
	f, err := s.features.GetByID(ctx, id)
	if err != nil {
		return models.Feature{}, err
	}
	return s.withVotes(ctx, f)
}

func (s *FeatureService) withVotes(ctx context.Context, f models.Feature) (models.Feature, error) {
	votes, err := s.votes.ListByFeature(ctx, f.ID)
	if err != nil {
		return models.Feature{}, err
	}
	f.Votes = nonNilVotes(votes)
	return f, nil
}

func (s *FeatureService) Create(ctx context.Context, in FeatureInput) (models.Feature, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Feature{}, apperror.Invalid("title is required")
	}

	now := time.Now().UTC()
	f := models.Feature{
		ID:          uuid.NewString(),
		Title:       title,
		Description: in.Description,
		CreatedBy:   in.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
		Votes:       []models.Vote{},
	}
	if err := s.features.Create(ctx, f); err != nil {
		return models.Feature{}, err
	}
	return f, nil
}

func (s *FeatureService) Update(ctx context.Context, id string, upd models.FeatureUpdate) (models.Feature, error) {
	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" {
			return models.Feature{}, apperror.Invalid("title must not be empty")
		}
		upd.Title = &title
	}
	f, err := s.features.Update(ctx, id, upd)
	if err != nil {
		return models.Feature{}, err
	}
	return s.withVotes(ctx, f)
}

// Delete removes the feature together with its votes.
func (s *FeatureService) Delete(ctx context.Context, id string) error {
	return s.features.Delete(ctx, id)
}

func (s *FeatureService) Counts(ctx context.Context) ([]models.FeatureVoteCount, error) {
	return s.features.Counts(ctx)
}

func nonNilVotes(v []models.Vote) []models.Vote {
	if v == nil {
		return []models.Vote{}
	}
	return v
}
