package role

import "errors"

var ErrNotFound = errors.New("role not found")

// The closed set of roles. Exactly one is authoritative per user at any time.
const (
	Superadmin = "superadmin"
	Admin      = "admin"
	User       = "user"
	Prospect   = "prospect"
)

type Role struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

type CreateRoleRequest struct {
	Label string `json:"label" binding:"required,min=4,max=15"`
}

type UpdateRoleRequest struct {
	Label string `json:"label" binding:"required,min=4,max=15"`
}
