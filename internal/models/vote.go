package models

import "time"

// Vote is a single ledger row. CreatedBy is nil for anonymous votes.
type Vote struct {
	ID        string    `json:"id"`
	FeatureID string    `json:"featureId"`
	CreatedBy *string   `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// Toggle actions.
const (
	VoteAdded   = "added"
	VoteRemoved = "removed"
)

// ToggleResult reports what a toggle did. Vote is set only when Action is VoteAdded.
type ToggleResult struct {
	Action string `json:"action"`
	Vote   *Vote  `json:"vote,omitempty"`
}
