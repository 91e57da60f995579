package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"feature_voting/internal/apperror"
	"feature_voting/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService() (*AuthService, *mockUsersRepo) {
	repo := newMockUsersRepo()
	svc := NewAuthService(repo, NewHasher(SchemeBcrypt, bcrypt.MinCost), NewTokenManager(testKey, time.Hour))
	return svc, repo
}

// --- Register tests ---

func TestAuthService_Register_SuccessHashesPasswordAndIssuesToken(t *testing.T) {
	svc, repo := newTestAuthService()
	name := "Alice"

	res, err := svc.Register(context.Background(), RegisterInput{Email: " A@x.com", Password: "p1", Name: &name})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if len(repo.createCalls) != 1 {
		t.Fatalf("expected 1 Create call, got %d", len(repo.createCalls))
	}
	stored := repo.createCalls[0]
	if stored.Email != "a@x.com" {
		t.Errorf("expected normalized email, got %q", stored.Email)
	}
	if stored.PasswordHash == "p1" || bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("p1")) != nil {
		t.Errorf("stored hash does not verify with original password")
	}
	if stored.ID == "" || stored.CreatedAt.IsZero() {
		t.Errorf("id and timestamps must be set: %+v", stored)
	}

	// Scenario A: the token decodes to the new user's id
	claims, err := svc.ParseToken(res.Token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.UserID != stored.ID || claims.Email != "a@x.com" {
		t.Fatalf("unexpected claims %+v for user %s", claims, stored.ID)
	}
	if res.User.ID != stored.ID {
		t.Fatalf("result user mismatch")
	}
}

func TestAuthService_Register_InvalidInput(t *testing.T) {
	cases := []RegisterInput{
		{Email: "", Password: "p1"},
		{Email: "   ", Password: "p1"},
		{Email: "a@x.com", Password: ""},
		{Email: "a@x.com", Password: "   "},
	}
	for _, in := range cases {
		svc, repo := newTestAuthService()
		_, err := svc.Register(context.Background(), in)
		if !errors.Is(err, apperror.ErrInvalidInput) {
			t.Fatalf("Register(%+v): expected invalid input, got %v", in, err)
		}
		if len(repo.createCalls) != 0 {
			t.Fatalf("expected no Create calls, got %d", len(repo.createCalls))
		}
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()
	if _, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "p1"}); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	// Scenario B
	_, err := svc.Register(ctx, RegisterInput{Email: "A@X.COM", Password: "p2"})
	if !errors.Is(err, apperror.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthService_Register_RepoError(t *testing.T) {
	svc, repo := newTestAuthService()
	repo.CreateFn = func(u models.User) error { return errors.New("db down") }

	_, err := svc.Register(context.Background(), RegisterInput{Email: "c@x.com", Password: "pass123"})
	if err == nil || apperror.KindOf(err) != apperror.KindInternal {
		t.Fatalf("expected internal repo error, got %v", err)
	}
}

// --- Login tests ---

func TestAuthService_Login(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()
	reg, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "letmein"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	res, err := svc.Login(ctx, "a@x.com", "letmein")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	claims, err := svc.ParseToken(res.Token)
	if err != nil || claims.UserID != reg.User.ID {
		t.Fatalf("login token does not decode to the user: %+v %v", claims, err)
	}

	cases := []struct {
		name, email, password string
		want                  error
	}{
		{"wrong password", "a@x.com", "wrong", apperror.ErrBadCredentials}, // Scenario C
		{"unknown email", "ghost@x.com", "letmein", apperror.ErrBadCredentials},
		{"missing password", "a@x.com", "", apperror.ErrInvalidInput},
		{"missing email", "", "letmein", apperror.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tc.email, tc.password)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

// --- Profile tests ---

func TestAuthService_UpdateProfile(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()
	a, _ := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "p1"})
	_, _ = svc.Register(ctx, RegisterInput{Email: "b@x.com", Password: "p1"})

	name := "Alice"
	u, err := svc.UpdateProfile(ctx, a.User.ID, models.UserUpdate{Name: &name})
	if err != nil || u.Name == nil || *u.Name != "Alice" || u.Email != "a@x.com" {
		t.Fatalf("partial update failed: %+v %v", u, err)
	}

	u, err = svc.UpdateProfile(ctx, a.User.ID, models.UserUpdate{})
	if err != nil || u.ID != a.User.ID {
		t.Fatalf("empty update should return the user: %+v %v", u, err)
	}

	blank := "  "
	if _, err := svc.UpdateProfile(ctx, a.User.ID, models.UserUpdate{Email: &blank}); !errors.Is(err, apperror.ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank email, got %v", err)
	}
}

// --- ChangePassword tests ---

func TestAuthService_ChangePassword(t *testing.T) {
	svc, repo := newTestAuthService()
	ctx := context.Background()
	a, _ := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "old"})

	if err := svc.ChangePassword(ctx, a.User.ID, "", "new"); !errors.Is(err, apperror.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	err := svc.ChangePassword(ctx, a.User.ID, "wrong", "new")
	if !errors.Is(err, apperror.ErrBadCredentials) || err.Error() != "current password is incorrect" {
		t.Fatalf("expected bad credentials, got %v", err)
	}
	if len(repo.passwordCalls) != 0 {
		t.Fatalf("hash must not change on a failed attempt")
	}

	if err := svc.ChangePassword(ctx, a.User.ID, "old", "new"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if _, err := svc.Login(ctx, "a@x.com", "old"); !errors.Is(err, apperror.ErrBadCredentials) {
		t.Fatalf("old password must stop working, got %v", err)
	}
	if _, err := svc.Login(ctx, "a@x.com", "new"); err != nil {
		t.Fatalf("new password must work: %v", err)
	}

	if err := svc.ChangePassword(ctx, "ghost", "old", "new"); !errors.Is(err, apperror.ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
}
