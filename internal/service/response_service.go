package service

import "feature_voting/internal/models"

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Email    string
	Password string
	Name     *string // optional
}

// AuthResult is returned by register and login.
type AuthResult struct {
	User  models.User
	Token string
}

// FeatureInput carries the fields accepted when creating a feature.
type FeatureInput struct {
	Title       string
	Description string
	CreatedBy   *string // caller identity, if any
}
