// Package roles stores role definitions and user-role assignments.
package roles

import (
	"context"

	"github.com/dmitrijs2005/tasktracker/internal/server/models"
)

type Repository interface {
	// Ensure returns the role called name, creating it when absent.
	Ensure(ctx context.Context, name string) (*models.Role, error)
	GetByName(ctx context.Context, name string) (*models.Role, error)
	// Assign links a user to a role. Assigning twice is a no-op.
	Assign(ctx context.Context, userID, roleID int64) error
}
