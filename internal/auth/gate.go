package auth

import "net/http"

// Denial reasons sent to the client verbatim.
const (
	ReasonUnauthorized = "Unauthorized"
	ReasonForbidden    = "Forbidden"
)

// Identity is the authenticated caller.
type Identity struct {
	Subject string `json:"id"`
	Name    string `json:"name"`
	Role    Role   `json:"role"`
}

// Decision is the outcome of [Gate.RequireRole]. When Allowed is false,
// Status and Reason describe the response to send.
type Decision struct {
	Allowed  bool
	Identity Identity
	Status   int
	Reason   string
}

// Outcome returns a short label for metrics and logs.
func (d Decision) Outcome() string {
	switch {
	case d.Allowed:
		return "allowed"
	case d.Status == http.StatusForbidden:
		return "forbidden"
	default:
		return "unauthorized"
	}
}

// Gate decides whether a request may proceed based on its session cookie.
type Gate struct {
	codec   *Codec
	cookies *CookieManager
}

// NewGate returns a Gate reading cookies with cookies and tokens with codec.
func NewGate(codec *Codec, cookies *CookieManager) *Gate {
	return &Gate{codec: codec, cookies: cookies}
}

// ReadIdentity returns the caller carried by a valid session cookie.
func (g *Gate) ReadIdentity(rawCookieHeader string) (Identity, bool) {
	token, ok := g.cookies.Extract(rawCookieHeader)
	if !ok {
		return Identity{}, false
	}

	claims, err := g.codec.Verify(token)
	if err != nil {
		return Identity{}, false
	}
	return claims.Identity(), true
}

// RequireRole allows the request only for a valid session whose role is at
// least minimum. A missing or invalid session is 401; an insufficient or
// unknown role is 403.
func (g *Gate) RequireRole(rawCookieHeader string, minimum Role) Decision {
	identity, ok := g.ReadIdentity(rawCookieHeader)
	if !ok {
		return Decision{Status: http.StatusUnauthorized, Reason: ReasonUnauthorized}
	}

	if !identity.Role.Satisfies(minimum) {
		return Decision{Identity: identity, Status: http.StatusForbidden, Reason: ReasonForbidden}
	}

	return Decision{Allowed: true, Identity: identity, Status: http.StatusOK}
}
