package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"feature_voting/internal/apperror"
	"feature_voting/internal/models"
)

type FeatureRepository struct {
	db *sql.DB
}

func NewFeatureRepository(db *sql.DB) *FeatureRepository {
	return &FeatureRepository{db: db}
}

var _ Features = (*FeatureRepository)(nil)

// The vote count is a correlated subquery so reads never see a stale number.
const (
	featureSelect = `SELECT f.id, f.title, f.description, f.created_by, f.created_at, f.updated_at,
		(SELECT COUNT(*) FROM votes v WHERE v.feature_id = f.id) AS vote_count
		FROM features f`

	insertFeatureSQL          = `INSERT INTO features (id, title, description, created_by, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`
	selectFeatureByIDSQL      = featureSelect + ` WHERE f.id = ?`
	selectFeaturesSQL         = featureSelect + ` ORDER BY f.created_at DESC`
	selectFeaturesByCreator   = featureSelect + ` WHERE f.created_by = ? ORDER BY f.created_at DESC`
	deleteFeatureSQL          = `DELETE FROM features WHERE id = ?`
	selectFeatureVoteCountSQL = `SELECT f.id, COUNT(v.id) FROM features f
		LEFT JOIN votes v ON v.feature_id = f.id
		GROUP BY f.id ORDER BY f.created_at DESC`
)

func scanFeature(row rowScanner) (models.Feature, error) {
	var (
		f         models.Feature
		createdBy sql.NullString
	)
	if err := row.Scan(&f.ID, &f.Title, &f.Description, &createdBy, &f.CreatedAt, &f.UpdatedAt, &f.Count.Votes); err != nil {
		return models.Feature{}, err
	}
	if createdBy.Valid {
		f.CreatedBy = &createdBy.String
	}
	f.CreatedAt = f.CreatedAt.UTC()
	f.UpdatedAt = f.UpdatedAt.UTC()
	return f, nil
}

// Create inserts a feature. A creator that does not exist yields ErrUserNotFound.
func (r *FeatureRepository) Create(ctx context.Context, f models.Feature) error {
	_, err := r.db.ExecContext(ctx, insertFeatureSQL,
		f.ID, f.Title, f.Description, f.CreatedBy, f.CreatedAt.UTC(), f.UpdatedAt.UTC())
	if err != nil {
		if classify(err) == foreignKeyConstraint {
			return apperror.ErrUserNotFound.Wrap(err)
		}
		return fmt.Errorf("insert feature: %w", err)
	}
	return nil
}

func (r *FeatureRepository) GetByID(ctx context.Context, id string) (models.Feature, error) {
	f, err := scanFeature(r.db.QueryRowContext(ctx, selectFeatureByIDSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Feature{}, apperror.ErrFeatureNotFound
		}
		return models.Feature{}, fmt.Errorf("select feature %q: %w", id, err)
	}
	return f, nil
}

func (r *FeatureRepository) list(ctx context.Context, query string, args ...any) ([]models.Feature, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list features: %w", err)
	}
	defer rows.Close()

	out := make([]models.Feature, 0, 16)
	for rows.Next() {
		f, err := scanFeature(rows)
		if err != nil {
			return nil, fmt.Errorf("scan feature: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// List returns all features, newest first.
func (r *FeatureRepository) List(ctx context.Context) ([]models.Feature, error) {
	return r.list(ctx, selectFeaturesSQL)
}

func (r *FeatureRepository) ListByCreator(ctx context.Context, userID string) ([]models.Feature, error) {
	return r.list(ctx, selectFeaturesByCreator, userID)
}

func buildFeatureUpdate(id string, upd models.FeatureUpdate, now time.Time) (string, []any) {
	var (
		sets []string
		args []any
	)
	if upd.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *upd.Title)
	}
	if upd.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *upd.Description)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, now.UTC(), id)
	return "UPDATE features SET " + strings.Join(sets, ", ") + " WHERE id = ?", args
}

func (r *FeatureRepository) Update(ctx context.Context, id string, upd models.FeatureUpdate) (models.Feature, error) {
	q, args := buildFeatureUpdate(id, upd, time.Now())
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return models.Feature{}, fmt.Errorf("update feature %q: %w", id, err)
	}
	if err := expectAffected(res, apperror.ErrFeatureNotFound); err != nil {
		return models.Feature{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes the feature; its votes go with it (ON DELETE CASCADE).
func (r *FeatureRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteFeatureSQL, id)
	if err != nil {
		return fmt.Errorf("delete feature %q: %w", id, err)
	}
	return expectAffected(res, apperror.ErrFeatureNotFound)
}

// Counts returns the live vote count of every feature, newest feature first.
func (r *FeatureRepository) Counts(ctx context.Context) ([]models.FeatureVoteCount, error) {
	rows, err := r.db.QueryContext(ctx, selectFeatureVoteCountSQL)
	if err != nil {
		return nil, fmt.Errorf("count votes: %w", err)
	}
	defer rows.Close()

	var out []models.FeatureVoteCount
	for rows.Next() {
		var c models.FeatureVoteCount
		if err := rows.Scan(&c.FeatureID, &c.Votes); err != nil {
			return nil, fmt.Errorf("scan vote count: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
