package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/repomanager"
)

// Seeder makes sure the base roles and the administrator account exist.
// Running it repeatedly is safe.
type Seeder struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewSeeder(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *Seeder {
	return &Seeder{db: db, repomanager: m, logger: l}
}

func (s *Seeder) Run(ctx context.Context, adminEmail, adminName string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		roles := s.repomanager.Roles(tx)
		users := s.repomanager.Users(tx)

		admin, err := roles.Ensure(ctx, models.RoleAdmin)
		if err != nil {
			return err
		}
		if _, err := roles.Ensure(ctx, models.RoleUser); err != nil {
			return err
		}

		u, err := users.UpsertByEmail(ctx, adminEmail)
		if err != nil {
			return err
		}
		if err := users.SetProfile(ctx, u.ID, adminName); err != nil {
			return err
		}
		return roles.Assign(ctx, u.ID, admin.ID)
	})
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	s.logger.Info(ctx, "seed complete", "admin_email", adminEmail)
	return nil
}
