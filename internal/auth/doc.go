// Package auth implements credential hashing, signed session tokens, the
// session cookie and the role gate that protects privileged endpoints.
//
// Passwords are stored as
//
//	pbkdf2$sha256$120000$<b64url salt>$<b64url key>
//
// Sessions are compact HS256 tokens with the claims iss, sub, name, role,
// iat and exp, carried in an HttpOnly "session" cookie for 14 days. The
// package holds no state besides the injected signing secret.
package auth
