package models

import "github.com/MKhiriev/remy-site/internal/auth"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	// ID points at the existing resource on 409 conflicts.
	ID string `json:"id,omitempty"`
}

// OKResponse acknowledges a write.
type OKResponse struct {
	OK   bool      `json:"ok"`
	ID   string    `json:"id,omitempty"`
	Name string    `json:"name,omitempty"`
	Role auth.Role `json:"role,omitempty"`
	Key  string    `json:"key,omitempty"`
}

// MeResponse describes the caller. Only LoggedIn is set for anonymous
// callers.
type MeResponse struct {
	LoggedIn bool            `json:"loggedIn"`
	User     *auth.Identity  `json:"user,omitempty"`
	Review   *OwnReview      `json:"review"`
	Defaults *ReviewDefaults `json:"defaults,omitempty"`
}

// AnonymousResponse is returned by /api/auth/me without a valid session.
type AnonymousResponse struct {
	LoggedIn bool `json:"loggedIn"`
}
