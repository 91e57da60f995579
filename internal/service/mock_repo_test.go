package service

import (
	"context"

	"feature_voting/internal/apperror"
	"feature_voting/internal/models"
)

// mockUsersRepo is a lightweight in-test mock for repository.Users.
// Unset functions fall back to an in-memory map keyed by id.
type mockUsersRepo struct {
	byID map[string]models.User

	CreateFn func(u models.User) error
	UpdateFn func(id string, upd models.UserUpdate) (*models.User, error)

	createCalls   []models.User
	passwordCalls []string
}

func newMockUsersRepo() *mockUsersRepo {
	return &mockUsersRepo{byID: map[string]models.User{}}
}

func (m *mockUsersRepo) Create(ctx context.Context, u models.User) error {
	m.createCalls = append(m.createCalls, u)
	if m.CreateFn != nil {
		return m.CreateFn(u)
	}
	for _, existing := range m.byID {
		if existing.Email == u.Email {
			return apperror.ErrDuplicateEmail
		}
	}
	m.byID[u.ID] = u
	return nil
}

func (m *mockUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, apperror.ErrUserNotFound
	}
	return &u, nil
}

func (m *mockUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, apperror.ErrUserNotFound
}

func (m *mockUsersRepo) GetProfile(ctx context.Context, id string) (models.UserProfile, error) {
	u, err := m.GetByID(ctx, id)
	if err != nil {
		return models.UserProfile{}, err
	}
	return models.UserProfile{User: *u}, nil
}

func (m *mockUsersRepo) List(ctx context.Context) ([]models.UserProfile, error) {
	out := make([]models.UserProfile, 0, len(m.byID))
	for _, u := range m.byID {
		out = append(out, models.UserProfile{User: u})
	}
	return out, nil
}

func (m *mockUsersRepo) Update(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(id, upd)
	}
	u, ok := m.byID[id]
	if !ok {
		return nil, apperror.ErrUserNotFound
	}
	if upd.Name != nil {
		u.Name = upd.Name
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	m.byID[id] = u
	return &u, nil
}

func (m *mockUsersRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	m.passwordCalls = append(m.passwordCalls, hash)
	u, ok := m.byID[id]
	if !ok {
		return apperror.ErrUserNotFound
	}
	u.PasswordHash = hash
	m.byID[id] = u
	return nil
}

func (m *mockUsersRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return apperror.ErrUserNotFound
	}
	delete(m.byID, id)
	return nil
}

type mockFeaturesRepo struct {
	list    []models.Feature
	created []models.Feature
	err     error
}

func (m *mockFeaturesRepo) Create(ctx context.Context, f models.Feature) error {
	m.created = append(m.created, f)
	return m.err
}
func (m *mockFeaturesRepo) GetByID(ctx context.Context, id string) (models.Feature, error) {
	for _, f := range m.list {
		if f.ID == id {
			return f, nil
		}
	}
	return models.Feature{}, apperror.ErrFeatureNotFound
}
func (m *mockFeaturesRepo) List(ctx context.Context) ([]models.Feature, error) {
	return m.list, m.err
}
func (m *mockFeaturesRepo) ListByCreator(ctx context.Context, userID string) ([]models.Feature, error) {
	var out []models.Feature
	for _, f := range m.list {
		if f.CreatedBy != nil && *f.CreatedBy == userID {
			out = append(out, f)
		}
	}
	return out, m.err
}
func (m *mockFeaturesRepo) Update(ctx context.Context, id string, upd models.FeatureUpdate) (models.Feature, error) {
	f, err := m.GetByID(ctx, id)
	if err != nil {
		return f, err
	}
	if upd.Title != nil {
		f.Title = *upd.Title
	}
	return f, nil
}
func (m *mockFeaturesRepo) Delete(ctx context.Context, id string) error { return m.err }
func (m *mockFeaturesRepo) Counts(ctx context.Context) ([]models.FeatureVoteCount, error) {
	return nil, m.err
}

type mockVotesRepo struct {
	list   []models.Vote
	toggle models.ToggleResult
	err    error

	lastFeatureID string
	lastVoterID   *string
	toggleCalls   int
}

func (m *mockVotesRepo) Toggle(ctx context.Context, featureID string, voterID *string) (models.ToggleResult, error) {
	m.toggleCalls++
	m.lastFeatureID, m.lastVoterID = featureID, voterID
	return m.toggle, m.err
}
func (m *mockVotesRepo) Create(ctx context.Context, featureID string, voterID *string) (models.Vote, error) {
	m.lastFeatureID, m.lastVoterID = featureID, voterID
	return models.Vote{FeatureID: featureID, CreatedBy: voterID}, m.err
}
func (m *mockVotesRepo) GetByID(ctx context.Context, id string) (models.Vote, error) {
	return models.Vote{}, apperror.ErrVoteNotFound
}
func (m *mockVotesRepo) List(ctx context.Context) ([]models.Vote, error) {
	return m.list, m.err
}
func (m *mockVotesRepo) ListByFeature(ctx context.Context, featureID string) ([]models.Vote, error) {
	var out []models.Vote
	for _, v := range m.list {
		if v.FeatureID == featureID {
			out = append(out, v)
		}
	}
	return out, m.err
}
func (m *mockVotesRepo) ListByVoter(ctx context.Context, voterID string) ([]models.Vote, error) {
	var out []models.Vote
	for _, v := range m.list {
		if v.CreatedBy != nil && *v.CreatedBy == voterID {
			out = append(out, v)
		}
	}
	return out, m.err
}
func (m *mockVotesRepo) Delete(ctx context.Context, id string) error { return m.err }
