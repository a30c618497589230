// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// buildRouter creates a minimal chi.Mux with a set of routes for tests.
// It intentionally does not use Handler.Init() to avoid service/logger setup.
func buildRouter() *chi.Mux {
	router := chi.NewRouter()

	router.Get("/api/product", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("product"))
	})
	router.With(func(next http.Handler) http.Handler { return next }).
		Put("/api/product", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusAccepted)
		})
	router.Delete("/api/upload", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

// ---- Table test ----

func TestCheckHTTPMethod_TableTest(t *testing.T) {
	router := buildRouter()

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{name: "GET /api/product passes", method: http.MethodGet, path: "/api/product", expectedStatus: http.StatusOK},
		{name: "PUT /api/product behind middleware passes", method: http.MethodPut, path: "/api/product", expectedStatus: http.StatusAccepted},
		{name: "DELETE /api/upload passes", method: http.MethodDelete, path: "/api/upload", expectedStatus: http.StatusNoContent},
		{name: "PATCH /api/product is 404", method: http.MethodPatch, path: "/api/product", expectedStatus: http.StatusNotFound},
		{name: "HEAD /api/product is 404", method: http.MethodHead, path: "/api/product", expectedStatus: http.StatusNotFound},
		{name: "GET /api/upload is 404", method: http.MethodGet, path: "/api/upload", expectedStatus: http.StatusNotFound},
		{name: "DELETE /api/product is 404", method: http.MethodDelete, path: "/api/product", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.NotEqual(t, http.StatusMethodNotAllowed, rr.Code)
		})
	}
}

func TestCheckHTTPMethod_NotFoundBody(t *testing.T) {
	router := buildRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, rr.Body.String())
}

func TestCheckHTTPMethod_PassThroughBody(t *testing.T) {
	router := buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/product", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "product", rr.Body.String())
}
