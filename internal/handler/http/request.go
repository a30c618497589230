package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const maxBodyBytes = 1 << 20

// decodeJSONBody reads a JSON object from the request into dst. Anything
// else, including null and arrays, fails with errInvalidBody.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) error {
	var raw json.RawMessage
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&raw); err != nil {
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}

	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '{' {
		return errInvalidBody
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	return nil
}

// cookieHeader joins every Cookie header of r the way a single header would
// carry them.
func cookieHeader(r *http.Request) string {
	return strings.Join(r.Header.Values("Cookie"), "; ")
}
