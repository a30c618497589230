package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// Issuer is the "iss" claim of every session token.
	Issuer = "remy-site"
	// SessionTTL is the lifetime of a session token and its cookie.
	SessionTTL = 14 * 24 * time.Hour
	// MinSecretLength is the shortest accepted HMAC key.
	MinSecretLength = 32

	maxTokenLength = 4096
)

var signingMethod = jwt.SigningMethodHS256

// encodedHeader is the first token segment, {"alg":"HS256","typ":"JWT"}.
var encodedHeader = func() string {
	header, err := json.Marshal(struct {
		Alg string `json:"alg"`
		Typ string `json:"typ"`
	}{Alg: signingMethod.Alg(), Typ: "JWT"})
	if err != nil {
		panic(err)
	}
	return b64.EncodeToString(header)
}()

// Claims is the payload of a session token.
type Claims struct {
	Issuer    string `json:"iss"`
	Subject   string `json:"sub"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// Identity returns the caller identity carried by the claims.
func (c Claims) Identity() Identity {
	return Identity{Subject: c.Subject, Name: c.Name, Role: c.Role}
}

// Codec signs and verifies compact HS256 session tokens.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// CodecOption customizes a [Codec].
type CodecOption func(*Codec)

// WithClock replaces the time source used for iat, exp and expiry checks.
func WithClock(now func() time.Time) CodecOption {
	return func(c *Codec) {
		c.now = now
	}
}

// WithTTL overrides the default 14 day token lifetime.
func WithTTL(ttl time.Duration) CodecOption {
	return func(c *Codec) {
		c.ttl = ttl
	}
}

// NewCodec returns a Codec signing with a copy of secret.
func NewCodec(secret []byte, opts ...CodecOption) (*Codec, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("%w: got %d bytes, need at least %d", ErrSecretTooShort, len(secret), MinSecretLength)
	}

	c := &Codec{
		secret: bytes.Clone(secret),
		ttl:    SessionTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Sign issues a token for the given account, valid for the codec TTL.
func (c *Codec) Sign(subject, name string, role Role) (string, error) {
	if subject == "" {
		return "", ErrEmptySubject
	}
	if !role.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}

	now := c.now().Unix()
	return c.Encode(Claims{
		Issuer:    Issuer,
		Subject:   subject,
		Name:      name,
		Role:      role,
		IssuedAt:  now,
		ExpiresAt: now + int64(c.ttl/time.Second),
	})
}

// Encode serializes and signs arbitrary claims without validating them.
func (c *Codec) Encode(claims Claims) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(claims); err != nil {
		return "", fmt.Errorf("error encoding session claims: %w", err)
	}
	payload := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))

	signingString := encodedHeader + "." + b64.EncodeToString(payload)
	sig, err := signingMethod.Sign(signingString, c.secret)
	if err != nil {
		return "", fmt.Errorf("error signing session token: %w", err)
	}

	return signingString + "." + b64.EncodeToString(sig), nil
}

// Verify authenticates token and returns its claims. Every failure wraps
// [ErrInvalidSession].
//
// The signature is checked before the payload is decoded, so nothing from
// an unauthenticated token is ever interpreted.
func (c *Codec) Verify(token string) (Claims, error) {
	if len(token) > maxTokenLength {
		return Claims{}, fmt.Errorf("%w: token too long", ErrInvalidSession)
	}

	segments := strings.Split(token, ".")
	if len(segments) != 3 || segments[0] == "" || segments[1] == "" || segments[2] == "" {
		return Claims{}, fmt.Errorf("%w: malformed token", ErrInvalidSession)
	}

	sig, err := b64.DecodeString(segments[2])
	if err != nil {
		return Claims{}, fmt.Errorf("%w: malformed signature", ErrInvalidSession)
	}
	if err := signingMethod.Verify(segments[0]+"."+segments[1], sig, c.secret); err != nil {
		return Claims{}, fmt.Errorf("%w: bad signature", ErrInvalidSession)
	}

	payload, err := b64.DecodeString(segments[1])
	if err != nil {
		return Claims{}, fmt.Errorf("%w: malformed payload", ErrInvalidSession)
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return Claims{}, fmt.Errorf("%w: malformed claims", ErrInvalidSession)
	}

	switch {
	case claims.Issuer != Issuer:
		return Claims{}, fmt.Errorf("%w: wrong issuer", ErrInvalidSession)
	case claims.Subject == "":
		return Claims{}, fmt.Errorf("%w: empty subject", ErrInvalidSession)
	case !claims.Role.Valid():
		return Claims{}, fmt.Errorf("%w: unknown role", ErrInvalidSession)
	case claims.ExpiresAt <= c.now().Unix():
		return Claims{}, fmt.Errorf("%w: expired", ErrInvalidSession)
	}

	return claims, nil
}
