// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// remy-site handlers and middleware.
//
// All Msg* constants are the public strings written into the "error" field
// of JSON response bodies. The browser front-end matches some of them
// verbatim, so the wording must not drift.
package app

const (
	// MsgUnauthorized is returned when no valid session accompanies a
	// request that needs one.
	MsgUnauthorized = "Unauthorized"

	// MsgForbidden is returned when the session's role is below the
	// required one.
	MsgForbidden = "Forbidden"

	// MsgInvalidBody is returned when the request body is not a JSON object.
	MsgInvalidBody = "Invalid body"

	// MsgInternalServerError hides unexpected failures from the client.
	MsgInternalServerError = "Internal server error"

	// MsgNotFound is returned for unknown routes and methods.
	MsgNotFound = "Not found"

	MsgInvalidName         = "Invalid name (2..30)"
	MsgInvalidPassword     = "Invalid password (6..72)"
	MsgNameAlreadyTaken    = "Name already taken"
	MsgMissingCredentials  = "Missing credentials"
	MsgInvalidCredentials  = "Invalid credentials"
	MsgProductExists       = "Product already exists"
	MsgProductFieldsNeeded = "Title and description are required"

	MsgInvalidMessage      = "Invalid message"
	MsgInvalidRating       = "Invalid rating (1..5)"
	MsgInvalidImageURL     = "Invalid imageUrl"
	MsgReviewAlreadyExists = "You already posted a review. Use PUT to update it."
	MsgNoReviewToUpdate    = "No review to update"

	MsgUnsupportedImageType = "Unsupported image type"
	MsgInvalidSize          = "Invalid size"
	MsgFileTooLarge         = "File too large"
	MsgMissingURL           = "Missing url"
	MsgInvalidURL           = "Invalid url"

	// MsgUploadsDisabled is returned by upload endpoints when no bucket is
	// configured.
	MsgUploadsDisabled = "Uploads are not configured"
)
