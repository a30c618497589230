package auth

import "errors"

var (
	// ErrSecretTooShort is returned by [NewCodec] when the signing secret
	// is shorter than [MinSecretLength] bytes.
	ErrSecretTooShort = errors.New("session secret is too short")

	// ErrInvalidSession is the single sentinel returned for every token
	// that fails verification. Callers must not distinguish the reasons.
	ErrInvalidSession = errors.New("invalid session")

	// ErrUnknownRole is returned when a value is not USER or ADMIN.
	ErrUnknownRole = errors.New("unknown role")
	// ErrEmptySubject is returned when signing a token without a subject.
	ErrEmptySubject = errors.New("empty session subject")

	ErrMalformedHash        = errors.New("malformed password hash")
	ErrUnsupportedAlgorithm = errors.New("unsupported password hash algorithm")
	ErrUnsupportedDigest    = errors.New("unsupported password hash digest")
	ErrIterationsOutOfRange = errors.New("password hash iterations out of range")
)
