package service

import (
	"context"
	"strings"

	"feature_voting/internal/apperror"
	"feature_voting/internal/models"
	"feature_voting/internal/repository"
)

type VoteService struct {
	votes repository.Votes
}

func NewVoteService(votes repository.Votes) *VoteService {
	return &VoteService{votes: votes}
}

// voterKey maps an empty voter id to the anonymous voter.
func voterKey(voterID string) *string {
	voterID = strings.TrimSpace(voterID)
	if voterID == "" {
		return nil
	}
	return &voterID
}

// Toggle flips the (feature, voter) vote: removes it if present, adds it otherwise.
func (s *VoteService) Toggle(ctx context.Context, featureID, voterID string) (models.ToggleResult, error) {
	if strings.TrimSpace(featureID) == "" {
		return models.ToggleResult{}, apperror.Invalid("featureId is required")
	}
	return s.votes.Toggle(ctx, featureID, voterKey(voterID))
}

// Create adds a vote explicitly; a second vote for the same pair conflicts.
func (s *VoteService) Create(ctx context.Context, featureID, voterID string) (models.Vote, error) {
	if strings.TrimSpace(featureID) == "" {
		return models.Vote{}, apperror.Invalid("featureId is required")
	}
	return s.votes.Create(ctx, featureID, voterKey(voterID))
}

func (s *VoteService) Get(ctx context.Context, id string) (models.Vote, error) {
	return s.votes.GetByID(ctx, id)
}

func (s *VoteService) List(ctx context.Context) ([]models.Vote, error) {
	return s.votes.List(ctx)
}

func (s *VoteService) Delete(ctx context.Context, id string) error {
	return s.votes.Delete(ctx, id)
}
