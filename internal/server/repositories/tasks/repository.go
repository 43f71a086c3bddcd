// Package tasks is the task store.
package tasks

import (
	"context"

	"github.com/dmitrijs2005/tasktracker/internal/server/models"
)

type Repository interface {
	Count(ctx context.Context) (int, error)
	// List returns tasks newest first, ties broken by descending id.
	List(ctx context.Context, skip, limit int) ([]models.Task, error)
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	// Create inserts the task and returns its id. An unknown assignee
	// yields common.ErrorValidation.
	Create(ctx context.Context, title string, assignedToID *int64) (int64, error)
	// Update overwrites title, done and assignee. Unknown ids yield
	// common.ErrorNotFound.
	Update(ctx context.Context, t *models.Task) error
	Delete(ctx context.Context, id int64) error
}
