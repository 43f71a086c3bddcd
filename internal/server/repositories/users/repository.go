// Package users is the identity store: users, their profiles and the role
// names attached to them.
package users

import (
	"context"

	"github.com/dmitrijs2005/tasktracker/internal/server/models"
)

type Repository interface {
	// Create inserts a user and returns it with ID and CreatedAt set.
	// A duplicate email yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// UpsertByEmail returns the user with email, creating it when absent.
	UpsertByEmail(ctx context.Context, email string) (*models.User, error)
	SetProfile(ctx context.Context, userID int64, fullName string) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Count(ctx context.Context) (int, error)
	// List returns users oldest first, ties broken by id.
	List(ctx context.Context, skip, limit int) ([]models.User, error)
}
