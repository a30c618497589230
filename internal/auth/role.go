package auth

import "fmt"

// Role is the authorization level carried by an account and its session.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// rank orders the known roles. Unknown roles have no rank.
var rank = map[Role]int{
	RoleUser:  1,
	RoleAdmin: 2,
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := rank[r]
	return ok
}

// Satisfies reports whether r is at least as privileged as minimum.
// It is false whenever either side is not a known role.
func (r Role) Satisfies(minimum Role) bool {
	have, ok := rank[r]
	if !ok {
		return false
	}
	need, ok := rank[minimum]
	if !ok {
		return false
	}
	return have >= need
}

func (r Role) String() string {
	return string(r)
}

// ParseRole converts a stored or transmitted value into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return r, nil
}
