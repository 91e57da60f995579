package models

import "time"

type Feature struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedBy   *string   `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	// Votes is only populated on read paths that load the ledger rows.
	Votes []Vote        `json:"votes,omitempty"`
	Count FeatureCounts `json:"_count"`
}

// FeatureCounts is computed from live vote rows at read time.
type FeatureCounts struct {
	Votes int `json:"votes"`
}

// FeatureUpdate is a partial update; nil fields are left untouched.
type FeatureUpdate struct {
	Title       *string
	Description *string
}

// FeatureVoteCount is one entry of the live count stream.
type FeatureVoteCount struct {
	FeatureID string `json:"featureId"`
	Votes     int    `json:"votes"`
}
