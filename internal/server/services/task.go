package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/server/events"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/pagination"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/repomanager"
)

// TaskService lists and mutates tasks and announces every committed change
// to the event publisher.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	publisher   events.Publisher
	logger      logging.Logger
	now         func() time.Time
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager, p events.Publisher, l logging.Logger) *TaskService {
	return &TaskService{db: db, repomanager: m, publisher: p, logger: l, now: time.Now}
}

// List returns one page of tasks, newest first.
func (s *TaskService) List(ctx context.Context, req pagination.Request) (*pagination.Result[models.Task], error) {
	repo := s.repomanager.Tasks(s.db)
	return pagination.ListPage(ctx, req, repo.Count, repo.List)
}

func (s *TaskService) Create(ctx context.Context, title string, assignedToID *int64) (*models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}

	task, err := dbx.WithTxResult(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.Task, error) {
		repo := s.repomanager.Tasks(tx)
		id, err := repo.Create(ctx, title, assignedToID)
		if err != nil {
			return nil, err
		}
		return repo.GetByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{Type: events.TaskCreated, TaskID: task.ID, Task: task})
	return task, nil
}

// Update applies patch to the task with id. Unknown ids yield common.ErrorNotFound.
func (s *TaskService) Update(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error) {
	if patch.Title != nil {
		t := strings.TrimSpace(*patch.Title)
		if t == "" {
			return nil, fmt.Errorf("%w: title must not be empty", common.ErrorValidation)
		}
		patch.Title = &t
	}

	task, err := dbx.WithTxResult(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.Task, error) {
		repo := s.repomanager.Tasks(tx)
		current, err := repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		updated := patch.Apply(*current)
		if err := repo.Update(ctx, &updated); err != nil {
			return nil, err
		}
		return repo.GetByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{Type: events.TaskUpdated, TaskID: task.ID, Task: task})
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if err := s.repomanager.Tasks(s.db).Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, events.Event{Type: events.TaskDeleted, TaskID: id})
	return nil
}

// publish never fails the caller: the change is already committed.
func (s *TaskService) publish(ctx context.Context, e events.Event) {
	if s.publisher == nil {
		return
	}
	e.At = s.now().UTC()
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.logger.Warn(ctx, "publish task event", "type", e.Type, "task_id", e.TaskID, "error", err)
	}
}
