package repository

import (
	"context"
	"database/sql"

	"feature_voting/internal/models"
)

// Users persists accounts. Lookups return apperror.ErrUserNotFound when no
// row matches and writes return apperror.ErrDuplicateEmail on email collisions.
type Users interface {
	Create(ctx context.Context, u models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetProfile(ctx context.Context, id string) (models.UserProfile, error)
	List(ctx context.Context) ([]models.UserProfile, error)
	Update(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error)
	UpdatePassword(ctx context.Context, id, hash string) error
	Delete(ctx context.Context, id string) error
}

// Features persists feature proposals. Every read carries the live vote count.
type Features interface {
	Create(ctx context.Context, f models.Feature) error
	GetByID(ctx context.Context, id string) (models.Feature, error)
	List(ctx context.Context) ([]models.Feature, error)
	ListByCreator(ctx context.Context, userID string) ([]models.Feature, error)
	Update(ctx context.Context, id string, upd models.FeatureUpdate) (models.Feature, error)
	Delete(ctx context.Context, id string) error
	Counts(ctx context.Context) ([]models.FeatureVoteCount, error)
}

// Votes is the vote ledger. A nil voter is the anonymous voter.
type Votes interface {
	Toggle(ctx context.Context, featureID string, voterID *string) (models.ToggleResult, error)
	Create(ctx context.Context, featureID string, voterID *string) (models.Vote, error)
	GetByID(ctx context.Context, id string) (models.Vote, error)
	List(ctx context.Context) ([]models.Vote, error)
	ListByFeature(ctx context.Context, featureID string) ([]models.Vote, error)
	ListByVoter(ctx context.Context, voterID string) ([]models.Vote, error)
	Delete(ctx context.Context, id string) error
}

type Repository struct {
	Users    Users
	Features Features
	Votes    Votes
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:    NewUserRepository(db),
		Features: NewFeatureRepository(db),
		Votes:    NewVoteRepository(db),
	}
}

// dbtx is the subset of database/sql shared by *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// withTx runs fn inside a transaction, committing on success and rolling
// back on error or panic.
func withTx(ctx context.Context, db *sql.DB, fn func(tx dbtx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()
	return fn(tx)
}
