package handlers

import (
	"net/http"
	"strings"
	"time"

	"feature_voting/internal/apperror"
	"feature_voting/internal/service"

	"github.com/gin-gonic/gin"
)

// Gin context keys set by the auth gates.
const (
	ctxUserID = "userId"
	ctxEmail  = "email"
)

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func setIdentity(c *gin.Context, claims *service.Claims) {
	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxEmail, claims.Email)
}

// userIdentity is the strict gate: requests without a valid bearer token
// are rejected with 401 and a reason describing the failure.
func (h *Handler) userIdentity(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		h.abortWithError(c, apperror.ErrNoToken)
		return
	}

	claims, err := h.services.ParseToken(token)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	setIdentity(c, claims)
	c.Next()
}

// optionalIdentity never aborts. It attaches the identity only when a
// valid token is present.
func (h *Handler) optionalIdentity(c *gin.Context) {
	if token, ok := bearerToken(c); ok {
		if claims, err := h.services.ParseToken(token); err == nil {
			setIdentity(c, claims)
		} else if h.log != nil {
			h.log.Debugw("optional_auth_ignored", "reason", apperror.ReasonOf(err))
		}
	}
	c.Next()
}

// currentUserID returns the caller's id set by an auth gate, or "".
func currentUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// requestLogger logs one line per request. Bodies and headers are never logged.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()
	if h.log == nil {
		return
	}

	status := c.Writer.Status()
	kv := []interface{}{
		"method", c.Request.Method,
		"path", c.FullPath(),
		"status", status,
		"latency", time.Since(start),
		"client_ip", c.ClientIP(),
	}
	switch {
	case status >= http.StatusInternalServerError:
		h.log.Errorw("http_request", kv...)
	case status >= http.StatusBadRequest:
		h.log.Warnw("http_request", kv...)
	default:
		h.log.Infow("http_request", kv...)
	}
}
