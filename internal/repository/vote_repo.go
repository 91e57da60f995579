package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"feature_voting/internal/apperror"
	"feature_voting/internal/models"

	"github.com/google/uuid"
)

type VoteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

var _ Votes = (*VoteRepository)(nil)

// created_by IS ? matches NULL to NULL, so the anonymous voter is a regular key.
const (
	voteColumns = `id, feature_id, created_by, created_at`

	featureExistsSQL    = `SELECT 1 FROM features WHERE id = ?`
	insertVoteSQL       = `INSERT INTO votes (id, feature_id, created_by, created_at) VALUES (?, ?, ?, ?)`
	deleteVoteByPairSQL = `DELETE FROM votes WHERE feature_id = ? AND created_by IS ?`
	deleteVoteSQL       = `DELETE FROM votes WHERE id = ?`
	selectVoteByIDSQL   = `SELECT ` + voteColumns + ` FROM votes WHERE id = ?`
	selectVotesSQL      = `SELECT ` + voteColumns + ` FROM votes ORDER BY created_at DESC`
	selectVotesByFeat   = `SELECT ` + voteColumns + ` FROM votes WHERE feature_id = ? ORDER BY created_at DESC`
	selectVotesByVoter  = `SELECT ` + voteColumns + ` FROM votes WHERE created_by = ? ORDER BY created_at DESC`
)

func scanVote(row rowScanner) (models.Vote, error) {
	var (
		v         models.Vote
		createdBy sql.NullString
	)
	if err := row.Scan(&v.ID, &v.FeatureID, &createdBy, &v.CreatedAt); err != nil {
		return models.Vote{}, err
	}
	if createdBy.Valid {
		v.CreatedBy = &createdBy.String
	}
	v.CreatedAt = v.CreatedAt.UTC()
	return v, nil
}

func newVote(featureID string, voterID *string) models.Vote {
	return models.Vote{
		ID:        uuid.NewString(),
		FeatureID: featureID,
		CreatedBy: voterID,
		CreatedAt: time.Now().UTC(),
	}
}

func featureExists(ctx context.Context, q dbtx, featureID string) error {
	var one int
	if err := q.QueryRowContext(ctx, featureExistsSQL, featureID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperror.ErrFeatureNotFound
		}
		return fmt.Errorf("lookup feature %q: %w", featureID, err)
	}
	return nil
}

func insertVote(ctx context.Context, q dbtx, v models.Vote) error {
	_, err := q.ExecContext(ctx, insertVoteSQL, v.ID, v.FeatureID, v.CreatedBy, v.CreatedAt)
	switch classify(err) {
	case uniqueConstraint:
		return apperror.ErrDuplicateVote.Wrap(err)
	case foreignKeyConstraint:
		return apperror.ErrUserNotFound.Wrap(err)
	}
	if err != nil {
		return fmt.Errorf("insert vote: %w", err)
	}
	return nil
}

func deletePair(ctx context.Context, q dbtx, featureID string, voterID *string) (bool, error) {
	res, err := q.ExecContext(ctx, deleteVoteByPairSQL, featureID, voterID)
	if err != nil {
		return false, fmt.Errorf("delete vote: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// Toggle flips the existence of the (feature, voter) vote in one transaction:
// delete if present, otherwise insert. Transactions begin IMMEDIATE (see
// db.DSN), so two toggles on the same pair cannot interleave. If an insert
// still hits the unique index, another writer owns the slot and the toggle
// becomes a removal of that vote.
func (r *VoteRepository) Toggle(ctx context.Context, featureID string, voterID *string) (models.ToggleResult, error) {
	var result models.ToggleResult
	err := withTx(ctx, r.db, func(tx dbtx) error {
		if err := featureExists(ctx, tx, featureID); err != nil {
			return err
		}

		removed, err := deletePair(ctx, tx, featureID, voterID)
		if err != nil {
			return err
		}
		if removed {
			result = models.ToggleResult{Action: models.VoteRemoved}
			return nil
		}

		v := newVote(featureID, voterID)
		err = insertVote(ctx, tx, v)
		if errors.Is(err, apperror.ErrDuplicateVote) {
			if _, err := deletePair(ctx, tx, featureID, voterID); err != nil {
				return err
			}
			result = models.ToggleResult{Action: models.VoteRemoved}
			return nil
		}
		if err != nil {
			return err
		}
		result = models.ToggleResult{Action: models.VoteAdded, Vote: &v}
		return nil
	})
	if err != nil {
		return models.ToggleResult{}, err
	}
	return result, nil
}

// Create inserts a vote, failing with ErrDuplicateVote if the pair already voted.
func (r *VoteRepository) Create(ctx context.Context, featureID string, voterID *string) (models.Vote, error) {
	v := newVote(featureID, voterID)
	err := withTx(ctx, r.db, func(tx dbtx) error {
		if err := featureExists(ctx, tx, featureID); err != nil {
			return err
		}
		return insertVote(ctx, tx, v)
	})
	if err != nil {
		return models.Vote{}, err
	}
	return v, nil
}

func (r *VoteRepository) GetByID(ctx context.Context, id string) (models.Vote, error) {
	v, err := scanVote(r.db.QueryRowContext(ctx, selectVoteByIDSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Vote{}, apperror.ErrVoteNotFound
		}
		return models.Vote{}, fmt.Errorf("select vote %q: %w", id, err)
	}
	return v, nil
}

func (r *VoteRepository) list(ctx context.Context, query string, args ...any) ([]models.Vote, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}
	defer rows.Close()

	out := make([]models.Vote, 0, 16)
	for rows.Next() {
		v, err := scanVote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vote: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// List returns every vote, newest first.
func (r *VoteRepository) List(ctx context.Context) ([]models.Vote, error) {
	return r.list(ctx, selectVotesSQL)
}

func (r *VoteRepository) ListByFeature(ctx context.Context, featureID string) ([]models.Vote, error) {
	return r.list(ctx, selectVotesByFeat, featureID)
}

func (r *VoteRepository) ListByVoter(ctx context.Context, voterID string) ([]models.Vote, error) {
	return r.list(ctx, selectVotesByVoter, voterID)
}

func (r *VoteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteVoteSQL, id)
	if err != nil {
		return fmt.Errorf("delete vote %q: %w", id, err)
	}
	return expectAffected(res, apperror.ErrVoteNotFound)
}
