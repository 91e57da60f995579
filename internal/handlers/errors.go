package handlers

import (
	"errors"
	"net/http"

	"feature_voting/internal/apperror"

	"github.com/gin-gonic/gin"
)

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Error string `json:"error" example:"feature not found"`
	Code  string `json:"code,omitempty" example:"feature_not_found"`
}

func statusFor(err error) int {
	switch apperror.KindOf(err) {
	case apperror.KindInvalidInput:
		return http.StatusBadRequest
	case apperror.KindUnauthorized:
		return http.StatusUnauthorized
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) errorBody(c *gin.Context, err error) (int, errorResponse) {
	code := statusFor(err)
	if code == http.StatusInternalServerError && h.log != nil {
		h.log.Errorw("request_failed", "path", c.FullPath(), "err", err)
	}

	body := errorResponse{Error: err.Error(), Code: apperror.ReasonOf(err)}
	var ae *apperror.Error
	if errors.As(err, &ae) {
		// the cause stays in the logs
		body.Error = ae.Message
	}
	return code, body
}

// respondError writes err using the status mapped from its kind.
func (h *Handler) respondError(c *gin.Context, err error) {
	code, body := h.errorBody(c, err)
	c.JSON(code, body)
}

// abortWithError is respondError for middleware.
func (h *Handler) abortWithError(c *gin.Context, err error) {
	code, body := h.errorBody(c, err)
	c.AbortWithStatusJSON(code, body)
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.badBody(c, err)
		return false
	}
	return true
}

func (h *Handler) badBody(c *gin.Context, err error) {
	if h.log != nil {
		h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
	}
	h.respondError(c, apperror.Invalid("invalid body: "+err.Error()))
}
