package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON serializes the given data to JSON and writes it to the HTTP response.
//
// It sets the "Content-Type" header to "application/json" and writes
// the provided HTTP status code before sending the response body.
//
// If marshaling fails, it responds with 500 Internal Server Error
// and returns a wrapped error.
//
// Example usage:
//
//	WriteJSON(w, models.OKResponse{OK: true}, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// errorBody mirrors models.ErrorResponse without importing models.
type errorBody struct {
	Error string `json:"error"`
	ID    string `json:"id,omitempty"`
}

// WriteError writes {"error": message} with the given status.
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	WriteJSON(w, errorBody{Error: message}, statusCode)
}

// WriteConflict writes {"error": message, "id": id} with 409 Conflict.
func WriteConflict(w http.ResponseWriter, message, id string) {
	WriteJSON(w, errorBody{Error: message, ID: id}, http.StatusConflict)
}
