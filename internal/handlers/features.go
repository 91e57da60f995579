package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"feature_voting/internal/models"
	"feature_voting/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK    = "OK"
	serviceName = "Feature Voting API"

	msgVoteAdded   = "Vote added"
	msgVoteRemoved = "Vote removed"
)

// FeatureRequest is the payload for creating a feature.
type FeatureRequest struct {
	Title       string `json:"title" example:"Dark mode"`
	Description string `json:"description" example:"A dark theme for the app"`
}

// FeatureUpdateRequest is a partial feature update; absent fields are kept.
type FeatureUpdateRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ToggleVoteRequest names the voter when the caller is not authenticated.
type ToggleVoteRequest struct {
	VoterID string `json:"voterId,omitempty"`
}

// ToggleVoteResponse reports which way the vote flipped.
type ToggleVoteResponse struct {
	Action  string       `json:"action" example:"added"`
	Message string       `json:"message" example:"Vote added"`
	Vote    *models.Vote `json:"vote,omitempty"`
}

// HealthResponse is the health check body.
type HealthResponse struct {
	Status    string    `json:"status" example:"OK"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service" example:"Feature Voting API"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /api/health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    statusOK,
		Timestamp: time.Now().UTC(),
		Service:   serviceName,
	})
}

// @Summary      List features
// @Description  Newest first, each with its votes and live vote count
// @Tags         features
// @Produce      json
// @Success      200  {array}   models.Feature
// @Failure      500  {object}  errorResponse
// @Router       /api/features [get]
func (h *Handler) listFeatures(c *gin.Context) {
	features, err := h.services.Features.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, features)
}

// @Summary      Get feature
// @Tags         features
// @Produce      json
// @Param        id   path      string  true  "Feature ID"
// @Success      200  {object}  models.Feature
// @Failure      404  {object}  errorResponse
// @Router       /api/features/{id} [get]
func (h *Handler) getFeature(c *gin.Context) {
	f, err := h.services.Features.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// @Summary      Create feature
// @Description  The creator is the authenticated caller, if any
// @Tags         features
// @Accept       json
// @Produce      json
// @Param        body  body      FeatureRequest  true  "Feature"
// @Success      201   {object}  models.Feature
// @Failure      400   {object}  errorResponse
// @Router       /api/features [post]
// @Security     BearerAuth
func (h *Handler) createFeature(c *gin.Context) {
	var req FeatureRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	in := service.FeatureInput{Title: req.Title, Description: req.Description}
	if uid := currentUserID(c); uid != "" {
		in.CreatedBy = &uid
	}

	f, err := h.services.Features.Create(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}

// @Summary      Update feature
// @Tags         features
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Feature ID"
// @Param        body  body      FeatureUpdateRequest  true  "Fields to change"
// @Success      200   {object}  models.Feature
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/features/{id} [put]
func (h *Handler) updateFeature(c *gin.Context) {
	var req FeatureUpdateRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	f, err := h.services.Features.Update(c.Request.Context(), c.Param("id"), models.FeatureUpdate{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// @Summary      Delete feature
// @Description  Removes the feature and all of its votes
// @Tags         features
// @Param        id   path  string  true  "Feature ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/features/{id} [delete]
func (h *Handler) deleteFeature(c *gin.Context) {
	if err := h.services.Features.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary      Toggle vote
// @Description  Adds the caller's vote if absent, removes it if present. The voter is the
// @Description  token subject, else body voterId, else the anonymous voter.
// @Tags         votes
// @Accept       json
// @Produce      json
// @Param        id    path      string             true   "Feature ID"
// @Param        body  body      ToggleVoteRequest  false  "Voter"
// @Success      200   {object}  ToggleVoteResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/features/{id}/toggle-vote [post]
// @Security     BearerAuth
func (h *Handler) toggleVote(c *gin.Context) {
	var req ToggleVoteRequest
	// the body is optional
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.badBody(c, err)
		return
	}

	voterID := req.VoterID
	if uid := currentUserID(c); uid != "" {
		voterID = uid
	}

	featureID := c.Param("id")
	res, err := h.services.Votes.Toggle(c.Request.Context(), featureID, voterID)
	if err != nil {
		if h.log != nil {
			h.log.Infow("vote_toggle_failed", "feature_id", featureID, "err", err)
		}
		h.respondError(c, err)
		return
	}

	msg := msgVoteAdded
	if res.Action == models.VoteRemoved {
		msg = msgVoteRemoved
	}
	c.JSON(http.StatusOK, ToggleVoteResponse{Action: res.Action, Message: msg, Vote: res.Vote})
}
