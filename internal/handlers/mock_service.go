package handlers

import (
	"context"
	"net/http"

	"feature_voting/internal/models"
	"feature_voting/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerRes service.AuthResult
	registerErr error
	loginRes    service.AuthResult
	loginErr    error
	claims      *service.Claims
	parseErr    error
	profile     models.UserProfile
	profileErr  error
	updated     *models.User
	updateErr   error
	changePwErr error

	lastRegister   service.RegisterInput
	lastLoginEmail string
	lastParseToken string
	lastProfileID  string
	lastUpdate     models.UserUpdate
	lastChangePw   [3]string
}

func (m *mockAuth) Register(ctx context.Context, in service.RegisterInput) (service.AuthResult, error) {
	m.lastRegister = in
	return m.registerRes, m.registerErr
}
func (m *mockAuth) Login(ctx context.Context, email, password string) (service.AuthResult, error) {
	m.lastLoginEmail = email
	return m.loginRes, m.loginErr
}
func (m *mockAuth) ParseToken(token string) (*service.Claims, error) {
	m.lastParseToken = token
	return m.claims, m.parseErr
}
func (m *mockAuth) Profile(ctx context.Context, userID string) (models.UserProfile, error) {
	m.lastProfileID = userID
	return m.profile, m.profileErr
}
func (m *mockAuth) UpdateProfile(ctx context.Context, userID string, upd models.UserUpdate) (*models.User, error) {
	m.lastUpdate = upd
	return m.updated, m.updateErr
}
func (m *mockAuth) ChangePassword(ctx context.Context, userID, current, next string) error {
	m.lastChangePw = [3]string{userID, current, next}
	return m.changePwErr
}

type mockUsers struct {
	list    []models.UserProfile
	detail  models.UserDetail
	updated models.UserProfile
	err     error

	lastID string
}

func (m *mockUsers) List(ctx context.Context) ([]models.UserProfile, error) {
	return m.list, m.err
}
func (m *mockUsers) Get(ctx context.Context, id string) (models.UserDetail, error) {
	m.lastID = id
	return m.detail, m.err
}
func (m *mockUsers) Update(ctx context.Context, id string, upd models.UserUpdate) (models.UserProfile, error) {
	m.lastID = id
	return m.updated, m.err
}
func (m *mockUsers) Delete(ctx context.Context, id string) error {
	m.lastID = id
	return m.err
}

type mockFeatures struct {
	list      []models.Feature
	feature   models.Feature
	counts    []models.FeatureVoteCount
	err       error
	countsErr error

	lastID     string
	lastCreate service.FeatureInput
	lastUpdate models.FeatureUpdate
}

func (m *mockFeatures) List(ctx context.Context) ([]models.Feature, error) {
	return m.list, m.err
}
func (m *mockFeatures) Get(ctx context.Context, id string) (models.Feature, error) {
	m.lastID = id
	return m.feature, m.err
}
func (m *mockFeatures) Create(ctx context.Context, in service.FeatureInput) (models.Feature, error) {
	m.lastCreate = in
	return m.feature, m.err
}
func (m *mockFeatures) Update(ctx context.Context, id string, upd models.FeatureUpdate) (models.Feature, error) {
	m.lastID = id
	m.lastUpdate = upd
	return m.feature, m.err
}
func (m *mockFeatures) Delete(ctx context.Context, id string) error {
	m.lastID = id
	return m.err
}
func (m *mockFeatures) Counts(ctx context.Context) ([]models.FeatureVoteCount, error) {
	return m.counts, m.countsErr
}

type mockVotes struct {
	toggle    models.ToggleResult
	toggleErr error
	vote      models.Vote
	list      []models.Vote
	err       error

	toggleCalls   int
	lastFeatureID string
	lastVoterID   string
	lastID        string
}

func (m *mockVotes) Toggle(ctx context.Context, featureID, voterID string) (models.ToggleResult, error) {
	m.toggleCalls++
	m.lastFeatureID = featureID
	m.lastVoterID = voterID
	return m.toggle, m.toggleErr
}
func (m *mockVotes) Create(ctx context.Context, featureID, voterID string) (models.Vote, error) {
	m.lastFeatureID = featureID
	m.lastVoterID = voterID
	return m.vote, m.err
}
func (m *mockVotes) Get(ctx context.Context, id string) (models.Vote, error) {
	m.lastID = id
	return m.vote, m.err
}
func (m *mockVotes) List(ctx context.Context) ([]models.Vote, error) {
	return m.list, m.err
}
func (m *mockVotes) Delete(ctx context.Context, id string) error {
	m.lastID = id
	return m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
