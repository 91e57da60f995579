package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"feature_voting/internal/apperror"
	"feature_voting/internal/service"

	"github.com/gin-gonic/gin"
)

// minimal router wiring only the gates + a protected endpoint
func newMiddlewareOnlyRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(s, nil)
	echo := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "userId": c.GetString(ctxUserID), "email": c.GetString(ctxEmail)})
	}
	r.GET("/secure", h.userIdentity, echo)
	r.GET("/optional", h.optionalIdentity, echo)
	return r
}

func TestUserIdentity_Errors(t *testing.T) {
	cases := []struct {
		name     string
		header   string
		parseErr error
		wantCode string
		wantMsg  string
	}{
		{name: "missing header", header: "", wantCode: apperror.ReasonNoToken, wantMsg: "access denied: no token provided or invalid format"},
		{name: "invalid scheme", header: "Token abc", wantCode: apperror.ReasonNoToken},
		{name: "bearer without token", header: "Bearer", wantCode: apperror.ReasonNoToken},
		{name: "bearer with blank token", header: "Bearer   ", wantCode: apperror.ReasonNoToken},
		{name: "expired token", header: "Bearer old", parseErr: apperror.ErrTokenExpired, wantCode: apperror.ReasonTokenExpired, wantMsg: "token expired"},
		{name: "malformed token", header: "Bearer abc", parseErr: apperror.ErrTokenMalformed, wantCode: apperror.ReasonTokenMalformed},
		{name: "bad signature", header: "Bearer forged", parseErr: apperror.ErrInvalidSignature, wantCode: apperror.ReasonInvalidSignature},
		{name: "other verification failure", header: "Bearer x", parseErr: apperror.ErrVerificationFailed, wantCode: apperror.ReasonVerificationFailed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuth{parseErr: tc.parseErr}
			s := &service.Service{Authorization: auth}
			r := newMiddlewareOnlyRouter(s)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/secure", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status: got %d, want 401 (body=%s)", w.Code, w.Body.String())
			}

			var out errorResponse
			_ = json.Unmarshal(w.Body.Bytes(), &out)
			if out.Code != tc.wantCode {
				t.Fatalf("code: got %q, want %q", out.Code, tc.wantCode)
			}
			if tc.wantMsg != "" && out.Error != tc.wantMsg {
				t.Fatalf("error message: got %q, want %q", out.Error, tc.wantMsg)
			}
		})
	}
}

func TestUserIdentity_SuccessSetsIdentityAndProceeds(t *testing.T) {
	auth := &mockAuth{claims: &service.Claims{UserID: "u-123", Email: "a@x.com"}}
	s := &service.Service{Authorization: auth}
	r := newMiddlewareOnlyRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body=%s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp struct {
		OK     bool   `json:"ok"`
		UserID string `json:"userId"`
		Email  string `json:"email"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.OK || resp.UserID != "u-123" || resp.Email != "a@x.com" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if auth.lastParseToken != "good-token" {
		t.Fatalf("ParseToken got %q, want %q", auth.lastParseToken, "good-token")
	}
}

func TestOptionalIdentity_NeverAborts(t *testing.T) {
	cases := []struct {
		name     string
		header   string
		claims   *service.Claims
		parseErr error
		wantUID  string
	}{
		{name: "no header", header: ""},
		{name: "wrong scheme", header: "Basic abc"},
		{name: "invalid token", header: "Bearer bad", parseErr: apperror.ErrTokenMalformed},
		{name: "expired token", header: "Bearer old", parseErr: apperror.ErrTokenExpired},
		{name: "valid token", header: "Bearer good", claims: &service.Claims{UserID: "u-1"}, wantUID: "u-1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuth{claims: tc.claims, parseErr: tc.parseErr}
			r := newMiddlewareOnlyRouter(&service.Service{Authorization: auth})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/optional", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status: got %d, want 200", w.Code)
			}
			var resp struct {
				UserID string `json:"userId"`
			}
			_ = json.Unmarshal(w.Body.Bytes(), &resp)
			if resp.UserID != tc.wantUID {
				t.Fatalf("userId: got %q, want %q", resp.UserID, tc.wantUID)
			}
		})
	}
}
