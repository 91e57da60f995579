package handlers

import (
	"net/http"

	"feature_voting/internal/models"

	"github.com/gin-gonic/gin"
)

// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}   models.UserProfile
// @Failure      500  {object}  errorResponse
// @Router       /api/users [get]
func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.services.Users.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// @Summary      Get user
// @Description  Includes the features the user created and the votes they cast
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  models.UserDetail
// @Failure      404  {object}  errorResponse
// @Router       /api/users/{id} [get]
func (h *Handler) getUser(c *gin.Context) {
	u, err := h.services.Users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary      Update user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "User ID"
// @Param        body  body      ProfileRequest  true  "Fields to change"
// @Success      200   {object}  models.UserProfile
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/users/{id} [put]
func (h *Handler) updateUser(c *gin.Context) {
	var req ProfileRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	u, err := h.services.Users.Update(c.Request.Context(), c.Param("id"), models.UserUpdate{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary      Delete user
// @Description  Votes cast by the user are removed; features they created are kept without a creator
// @Tags         users
// @Param        id   path  string  true  "User ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/users/{id} [delete]
func (h *Handler) deleteUser(c *gin.Context) {
	if err := h.services.Users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
