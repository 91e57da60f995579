package service

import (
	"context"
	"errors"
	"testing"

	"feature_voting/internal/apperror"
	"feature_voting/internal/models"
)

func TestVoteService_ToggleVoterKey(t *testing.T) {
	cases := []struct {
		name      string
		voterID   string
		wantVoter *string
	}{
		{"named voter", "u-1", strPtr("u-1")},
		{"anonymous", "", nil},
		{"blank is anonymous", "  ", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockVotesRepo{toggle: models.ToggleResult{Action: models.VoteAdded}}
			svc := NewVoteService(repo)

			res, err := svc.Toggle(context.Background(), "f-1", tc.voterID)
			if err != nil || res.Action != models.VoteAdded {
				t.Fatalf("Toggle: %+v %v", res, err)
			}
			switch {
			case tc.wantVoter == nil && repo.lastVoterID != nil:
				t.Fatalf("expected anonymous voter, got %q", *repo.lastVoterID)
			case tc.wantVoter != nil && (repo.lastVoterID == nil || *repo.lastVoterID != *tc.wantVoter):
				t.Fatalf("expected voter %q, got %v", *tc.wantVoter, repo.lastVoterID)
			}
		})
	}
}

func TestVoteService_RequiresFeatureID(t *testing.T) {
	repo := &mockVotesRepo{}
	svc := NewVoteService(repo)
	ctx := context.Background()

	if _, err := svc.Toggle(ctx, "", "u-1"); !errors.Is(err, apperror.ErrInvalidInput) {
		t.Fatalf("Toggle: expected invalid input, got %v", err)
	}
	if _, err := svc.Create(ctx, " ", "u-1"); !errors.Is(err, apperror.ErrInvalidInput) {
		t.Fatalf("Create: expected invalid input, got %v", err)
	}
	if repo.toggleCalls != 0 || repo.lastFeatureID != "" {
		t.Fatalf("repository must not be reached")
	}
}

func TestVoteService_PassesRepositoryErrors(t *testing.T) {
	repo := &mockVotesRepo{err: apperror.ErrDuplicateVote}
	svc := NewVoteService(repo)

	if _, err := svc.Create(context.Background(), "f-1", "u-1"); !errors.Is(err, apperror.ErrDuplicateVote) {
		t.Fatalf("expected duplicate vote, got %v", err)
	}
	if _, err := svc.Get(context.Background(), "v-x"); !errors.Is(err, apperror.ErrVoteNotFound) {
		t.Fatalf("expected vote not found, got %v", err)
	}
}
