package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// VoteRequest is the payload for an explicit vote. CreatedBy is accepted as
// an alias of VoterID.
type VoteRequest struct {
	FeatureID string `json:"featureId" example:"5b0c..."`
	VoterID   string `json:"voterId,omitempty"`
	CreatedBy string `json:"createdBy,omitempty"`
}

func (r VoteRequest) voter() string {
	if r.VoterID != "" {
		return r.VoterID
	}
	return r.CreatedBy
}

// @Summary      List votes
// @Description  Newest first
// @Tags         votes
// @Produce      json
// @Success      200  {array}   models.Vote
// @Failure      500  {object}  errorResponse
// @Router       /api/votes [get]
func (h *Handler) listVotes(c *gin.Context) {
	votes, err := h.services.Votes.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, votes)
}

// @Summary      Get vote
// @Tags         votes
// @Produce      json
// @Param        id   path      string  true  "Vote ID"
// @Success      200  {object}  models.Vote
// @Failure      404  {object}  errorResponse
// @Router       /api/votes/{id} [get]
func (h *Handler) getVote(c *gin.Context) {
	v, err := h.services.Votes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// @Summary      Create vote
// @Tags         votes
// @Accept       json
// @Produce      json
// @Param        body  body      VoteRequest  true  "Vote"
// @Success      201   {object}  models.Vote
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/votes [post]
func (h *Handler) createVote(c *gin.Context) {
	var req VoteRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	v, err := h.services.Votes.Create(c.Request.Context(), req.FeatureID, req.voter())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

// @Summary      Delete vote
// @Tags         votes
// @Param        id   path  string  true  "Vote ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/votes/{id} [delete]
func (h *Handler) deleteVote(c *gin.Context) {
	if err := h.services.Votes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
