package services

import (
	"salonhub-backend/models"

	"github.com/google/uuid"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID uuid.UUID
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// CanAccess reports whether the actor owns the record or is an admin.
func (a Actor) CanAccess(owner uuid.UUID) bool {
	return a.IsAdmin() || (a.UserID != uuid.Nil && a.UserID == owner)
}

func requireAdmin(a Actor) error {
	if !a.IsAdmin() {
		return &ForbiddenError{Message: "Admin access required"}
	}
	return nil
}
