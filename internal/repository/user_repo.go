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

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	userColumns = `u.id, u.email, u.name, u.password_hash, u.created_at, u.updated_at`
	userCounts  = `(SELECT COUNT(*) FROM features f WHERE f.created_by = u.id),
		(SELECT COUNT(*) FROM votes v WHERE v.created_by = u.id)`

	insertUserSQL         = `INSERT INTO users (id, email, name, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`
	selectUserByIDSQL     = `SELECT ` + userColumns + ` FROM users u WHERE u.id = ?`
	selectUserByEmailSQL  = `SELECT ` + userColumns + ` FROM users u WHERE u.email = ?`
	selectUserProfileSQL  = `SELECT ` + userColumns + `, ` + userCounts + ` FROM users u WHERE u.id = ?`
	selectUserProfilesSQL = `SELECT ` + userColumns + `, ` + userCounts + ` FROM users u ORDER BY u.created_at DESC`
	updatePasswordSQL     = `UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`
	deleteUserSQL         = `DELETE FROM users WHERE id = ?`
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, extra ...any) (*models.User, error) {
	var (
		u    models.User
		name sql.NullString
	)
	dest := append([]any{&u.ID, &u.Email, &name, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if name.Valid {
		u.Name = &name.String
	}
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return &u, nil
}

// Create inserts a new user. The caller supplies the id and timestamps.
func (r *UserRepository) Create(ctx context.Context, u models.User) error {
	_, err := r.db.ExecContext(ctx, insertUserSQL,
		u.ID, u.Email, u.Name, u.PasswordHash, u.CreatedAt.UTC(), u.UpdatedAt.UTC())
	if err != nil {
		if classify(err) == uniqueConstraint {
			return apperror.ErrDuplicateEmail.Wrap(err)
		}
		return fmt.Errorf("insert user %q: %w", u.Email, err)
	}
	return nil
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, selectUserByIDSQL, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, selectUserByEmailSQL, email)
}

// GetProfile returns the user with live feature and vote counts.
func (r *UserRepository) GetProfile(ctx context.Context, id string) (models.UserProfile, error) {
	var counts models.UserCounts
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUserProfileSQL, id), &counts.Features, &counts.Votes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UserProfile{}, apperror.ErrUserNotFound
		}
		return models.UserProfile{}, fmt.Errorf("select user profile: %w", err)
	}
	return models.UserProfile{User: *u, Count: counts}, nil
}

// List returns all users, newest first.
func (r *UserRepository) List(ctx context.Context) ([]models.UserProfile, error) {
	rows, err := r.db.QueryContext(ctx, selectUserProfilesSQL)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := make([]models.UserProfile, 0, 16)
	for rows.Next() {
		var counts models.UserCounts
		u, err := scanUser(rows, &counts.Features, &counts.Votes)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, models.UserProfile{User: *u, Count: counts})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// buildUserUpdate returns the UPDATE statement and its args for the set fields.
func buildUserUpdate(id string, upd models.UserUpdate, now time.Time) (string, []any) {
	var (
		sets []string
		args []any
	)
	if upd.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *upd.Email)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, now.UTC(), id)
	return "UPDATE users SET " + strings.Join(sets, ", ") + " WHERE id = ?", args
}

// Update applies a partial update and returns the stored user.
func (r *UserRepository) Update(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error) {
	q, args := buildUserUpdate(id, upd, time.Now())
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		if classify(err) == uniqueConstraint {
			return nil, apperror.ErrDuplicateEmail.WithMessage("email already taken").Wrap(err)
		}
		return nil, fmt.Errorf("update user %q: %w", id, err)
	}
	if err := expectAffected(res, apperror.ErrUserNotFound); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	res, err := r.db.ExecContext(ctx, updatePasswordSQL, hash, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update password for %q: %w", id, err)
	}
	return expectAffected(res, apperror.ErrUserNotFound)
}

// Delete removes the user. Votes cast by the user are removed with it;
// features they created remain with no creator.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteUserSQL, id)
	if err != nil {
		return fmt.Errorf("delete user %q: %w", id, err)
	}
	return expectAffected(res, apperror.ErrUserNotFound)
}

// expectAffected returns notFound when the statement touched no rows.
func expectAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
