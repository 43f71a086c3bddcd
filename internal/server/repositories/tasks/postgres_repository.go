package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectTask = `SELECT t.id, t.title, t.done, t.created_at, t.assigned_to_id, u.email, p.full_name
  FROM tasks t
  LEFT JOIN users u ON u.id = t.assigned_to_id
  LEFT JOIN profiles p ON p.user_id = u.id`

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (*models.Task, error) {
	var (
		t        models.Task
		assignee sql.NullInt64
		email    sql.NullString
		fullName sql.NullString
	)
	if err := s.Scan(&t.ID, &t.Title, &t.Done, &t.CreatedAt, &assignee, &email, &fullName); err != nil {
		return nil, err
	}
	if assignee.Valid {
		id := assignee.Int64
		t.AssignedToID = &id
		t.AssignedTo = &models.Assignee{ID: id, Email: email.String, FullName: fullName.String}
	}
	return &t, nil
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) List(ctx context.Context, skip, limit int) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx, selectTask+`
 ORDER BY t.created_at DESC, t.id DESC
 LIMIT $1 OFFSET $2`, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	t, err := scanTask(r.db.QueryRowContext(ctx, selectTask+`
 WHERE t.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) Create(ctx context.Context, title string, assignedToID *int64) (int64, error) {
	query := `INSERT INTO tasks (title, assigned_to_id)
		VALUES ($1, $2)
		RETURNING id`

	var id int64
	if err := r.db.QueryRowContext(ctx, query, title, nullableID(assignedToID)).Scan(&id); err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: assignee does not exist", common.ErrorValidation)
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) Update(ctx context.Context, t *models.Task) error {
	query := `UPDATE tasks
		SET title = $1, done = $2, assigned_to_id = $3
		WHERE id = $4`

	res, err := r.db.ExecContext(ctx, query, t.Title, t.Done, nullableID(t.AssignedToID), t.ID)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: assignee does not exist", common.ErrorValidation)
		}
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
