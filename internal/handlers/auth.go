package handlers

import (
	"net/http"

	"feature_voting/internal/models"
	"feature_voting/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Email    string  `json:"email" example:"a@x.com"`
	Password string  `json:"password" example:"p1"`
	Name     *string `json:"name,omitempty" example:"Alice"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" example:"a@x.com"`
	Password string `json:"password" example:"p1"`
}

// ProfileRequest is a partial profile update; absent fields are kept.
type ProfileRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// ChangePasswordRequest is the password change payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Message string      `json:"message"`
	User    models.User `json:"user"`
	Token   string      `json:"token"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

type profileUpdateResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

// @Summary      Register
// @Description  Creates an account and returns a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      RegisterRequest  true  "Credentials"
// @Success      201   {object}  AuthResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var req RegisterRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	res, err := h.services.Register(c.Request.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_register_failed", "email", req.Email, "err", err)
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{Message: "User registered successfully", User: res.User, Token: res.Token})
}

// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      LoginRequest  true  "Credentials"
// @Success      200   {object}  AuthResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var req LoginRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	res, err := h.services.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_login_failed", "email", req.Email, "err", err)
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Message: "Login successful", User: res.User, Token: res.Token})
}

// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  models.UserProfile
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/profile [get]
// @Security     BearerAuth
func (h *Handler) getProfile(c *gin.Context) {
	p, err := h.services.Profile(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      Update profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      ProfileRequest  true  "Fields to change"
// @Success      200   {object}  profileUpdateResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/auth/profile [put]
// @Security     BearerAuth
func (h *Handler) updateProfile(c *gin.Context) {
	var req ProfileRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	u, err := h.services.UpdateProfile(c.Request.Context(), currentUserID(c), models.UserUpdate{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileUpdateResponse{Message: "Profile updated successfully", User: u})
}

// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      ChangePasswordRequest  true  "Current and new password"
// @Success      200   {object}  MessageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/change-password [put]
// @Security     BearerAuth
func (h *Handler) changePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	userID := currentUserID(c)
	if err := h.services.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		if h.log != nil {
			h.log.Infow("auth_change_password_failed", "user_id", userID, "err", err)
		}
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Password changed successfully"})
}
