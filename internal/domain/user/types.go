package user

import "errors"

var ErrInvalidRole = errors.New("invalid user role")

type Role string

const (
	RoleGuest Role = "guest"
	RoleAdmin Role = "admin"
)

func NewRole(value string) (Role, error) {
	switch Role(value) {
	case RoleGuest, RoleAdmin:
		return Role(value), nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
