package auth

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "session"

// CookieManager renders and reads the session cookie.
type CookieManager struct {
	name   string
	maxAge int
	secure bool
}

// CookieOption customizes a [CookieManager].
type CookieOption func(*CookieManager)

// WithCookieMaxAge overrides the cookie lifetime. Keep it equal to the
// token TTL so the browser drops the cookie when the token expires.
func WithCookieMaxAge(ttl time.Duration) CookieOption {
	return func(m *CookieManager) {
		m.maxAge = int(ttl / time.Second)
	}
}

// NewCookieManager returns a manager for the "session" cookie. secure adds
// the Secure attribute and must be set when the site is served over HTTPS.
func NewCookieManager(secure bool, opts ...CookieOption) *CookieManager {
	m := &CookieManager{
		name:   SessionCookieName,
		maxAge: int(SessionTTL / time.Second),
		secure: secure,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the cookie name.
func (m *CookieManager) Name() string {
	return m.name
}

// Serialize returns the Set-Cookie value that stores token:
//
//	session=<token>; Path=/; HttpOnly; SameSite=Lax; Max-Age=1209600;[ Secure;]
func (m *CookieManager) Serialize(token string) string {
	return m.render(token, m.maxAge)
}

// Clear returns the Set-Cookie value that removes the session cookie.
func (m *CookieManager) Clear() string {
	return m.render("", 0)
}

func (m *CookieManager) render(value string, maxAge int) string {
	var b strings.Builder
	b.WriteString(m.name)
	b.WriteByte('=')
	b.WriteString(value)
	b.WriteString("; Path=/; HttpOnly; SameSite=Lax; Max-Age=")
	b.WriteString(strconv.Itoa(maxAge))
	b.WriteByte(';')
	if m.secure {
		b.WriteString(" Secure;")
	}
	return b.String()
}

// Extract finds the session token in a raw Cookie request header. A missing
// header, a missing cookie and an empty value are all reported as absent.
func (m *CookieManager) Extract(rawCookieHeader string) (string, bool) {
	if rawCookieHeader == "" {
		return "", false
	}

	req := http.Request{Header: http.Header{"Cookie": {rawCookieHeader}}}
	c, err := req.Cookie(m.name)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}
