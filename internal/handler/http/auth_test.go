// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/remy-site/internal/auth"
	"github.com/MKhiriev/remy-site/internal/service"
	"github.com/MKhiriev/remy-site/internal/store"
	"github.com/MKhiriev/remy-site/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(router http.Handler, method, path, body, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// ─────────────────────────────────────────────
// register
// ─────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	services := newTestServices()
	services.AuthService = &fakeAuthService{
		registerUserFn: func(_ context.Context, c models.Credentials) (models.User, error) {
			assert.Equal(t, models.Credentials{Name: "remy", Password: "secret1"}, c)
			return models.User{ID: "u1", Name: "remy", Role: auth.RoleUser}, nil
		},
	}

	rec := serve(newTestRouter(services), http.MethodPost, "/api/auth/register", `{"name":"remy","password":"secret1"}`, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"id":"u1","name":"remy"}`, rec.Body.String())
	assert.True(t, strings.HasPrefix(rec.Header().Get("Set-Cookie"), "session=token-u1;"))
}

func TestRegister_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{name: "not json", body: `name=remy`, wantStatus: http.StatusBadRequest, wantBody: `{"error":"Invalid body"}`},
		{name: "null", body: `null`, wantStatus: http.StatusBadRequest, wantBody: `{"error":"Invalid body"}`},
		{name: "array", body: `[]`, wantStatus: http.StatusBadRequest, wantBody: `{"error":"Invalid body"}`},
		{name: "empty", body: ``, wantStatus: http.StatusBadRequest, wantBody: `{"error":"Invalid body"}`},
		{name: "bad name", body: `{}`, err: service.ErrInvalidName, wantStatus: http.StatusBadRequest, wantBody: `{"error":"Invalid name (2..30)"}`},
		{name: "bad password", body: `{}`, err: service.ErrInvalidPassword, wantStatus: http.StatusBadRequest, wantBody: `{"error":"Invalid password (6..72)"}`},
		{name: "taken", body: `{}`, err: store.ErrNameAlreadyTaken, wantStatus: http.StatusConflict, wantBody: `{"error":"Name already taken"}`},
		{name: "db down", body: `{}`, err: store.ErrExecutingStatement, wantStatus: http.StatusInternalServerError, wantBody: `{"error":"Internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			services := newTestServices()
			services.AuthService = &fakeAuthService{
				registerUserFn: func(context.Context, models.Credentials) (models.User, error) {
					return models.User{}, tt.err
				},
			}

			rec := serve(newTestRouter(services), http.MethodPost, "/api/auth/register", tt.body, "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			assert.Empty(t, rec.Header().Get("Set-Cookie"))
		})
	}
}

// ─────────────────────────────────────────────
// login
// ─────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	services := newTestServices()
	services.AuthService = &fakeAuthService{
		loginFn: func(context.Context, models.Credentials) (models.User, error) {
			return models.User{ID: "a1", Name: "boss", Role: auth.RoleAdmin}, nil
		},
	}

	rec := serve(newTestRouter(services), http.MethodPost, "/api/auth/login", `{"name":"boss","password":"secret1"}`, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"id":"a1","name":"boss","role":"ADMIN"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("Set-Cookie"))
}

func TestLogin_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{name: "missing", err: service.ErrMissingCredentials, wantStatus: http.StatusBadRequest, wantBody: `{"error":"Missing credentials"}`},
		{name: "invalid", err: service.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized, wantBody: `{"error":"Invalid credentials"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			services := newTestServices()
			services.AuthService = &fakeAuthService{
				loginFn: func(context.Context, models.Credentials) (models.User, error) {
					return models.User{}, tt.err
				},
			}

			rec := serve(newTestRouter(services), http.MethodPost, "/api/auth/login", `{"name":"x"}`, "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestLogin_SigningFailure(t *testing.T) {
	services := newTestServices()
	services.AuthService = &fakeAuthService{
		loginFn: func(context.Context, models.Credentials) (models.User, error) {
			return models.User{ID: "u1"}, nil
		},
	}
	services.SessionService = &fakeSessionService{
		issueFn: func(context.Context, models.User) (string, error) {
			return "", auth.ErrInvalidSession
		},
	}

	rec := serve(newTestRouter(services), http.MethodPost, "/api/auth/login", `{}`, "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, rec.Header().Get("Set-Cookie"))
}

// ─────────────────────────────────────────────
// logout and me
// ─────────────────────────────────────────────

func TestLogout(t *testing.T) {
	rec := serve(newTestRouter(newTestServices()), http.MethodPost, "/api/auth/logout", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestMe_Anonymous(t *testing.T) {
	rec := serve(newTestRouter(newTestServices()), http.MethodGet, "/api/auth/me", "", "session=forged")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"loggedIn":false}`, rec.Body.String())
}

func TestMe_WithoutReview(t *testing.T) {
	services := newTestServices()
	services.ReviewService = &fakeReviewService{
		findFn: func(_ context.Context, userID string) (models.Review, bool, error) {
			assert.Equal(t, "u1", userID)
			return models.Review{}, false, nil
		},
	}

	rec := serve(newTestRouter(services), http.MethodGet, "/api/auth/me", "", "session=guest")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"loggedIn": true,
		"user": {"id":"u1","name":"remy","role":"USER"},
		"review": null,
		"defaults": {"rating":5,"message":"","imageUrl":null}
	}`, rec.Body.String())
}

func TestMe_WithReview(t *testing.T) {
	image := "https://cdn.example.com/reviews/a.jpg"
	services := newTestServices()
	services.ReviewService = &fakeReviewService{
		findFn: func(context.Context, string) (models.Review, bool, error) {
			return models.Review{
				ID:        "r1",
				Rating:    4,
				Message:   "Bravo",
				ImageURL:  &image,
				CreatedAt: time.Date(2026, 5, 2, 18, 30, 0, 0, time.UTC),
			}, true, nil
		},
	}

	rec := serve(newTestRouter(services), http.MethodGet, "/api/auth/me", "", "session=guest")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"loggedIn": true,
		"user": {"id":"u1","name":"remy","role":"USER"},
		"review": {"id":"r1","rating":4,"message":"Bravo","imageUrl":"https://cdn.example.com/reviews/a.jpg","createdAt":"2026-05-02T18:30:00Z"},
		"defaults": {"rating":4,"message":"Bravo","imageUrl":"https://cdn.example.com/reviews/a.jpg"}
	}`, rec.Body.String())
}
