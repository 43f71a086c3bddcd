// Package services contains the server-side business logic. UserService
// covers registration, login, token refresh and the user listing;
// TaskService covers task listing and mutation.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/server/auth"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/pagination"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Email    string
	Password string
	Username string
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User   *models.User
	Tokens *auth.TokenPair
}

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	issuer      *auth.Issuer
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, issuer *auth.Issuer) *UserService {
	return &UserService{db: db, repomanager: m, issuer: issuer}
}

// hashPassword is a seam for bcrypt so tests stay fast.
var hashPassword = func(password []byte) ([]byte, error) {
	return bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
}

// Register creates the user, its profile and its "user" role in one
// transaction and issues a token pair. The password is optional; when given
// it is stored as a bcrypt hash.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := in.Email
	username := strings.TrimSpace(in.Username)
	if strings.TrimSpace(email) == "" || username == "" {
		return nil, fmt.Errorf("%w: email and username are required", common.ErrorValidation)
	}

	var hash string
	if in.Password != "" {
		h, err := hashPassword([]byte(in.Password))
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		hash = string(h)
	}

	user, err := dbx.WithTxResult(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.User, error) {
		u, err := s.repomanager.Users(tx).Create(ctx, &models.User{Email: email, PasswordHash: hash})
		if err != nil {
			return nil, err
		}
		if err := s.repomanager.Users(tx).SetProfile(ctx, u.ID, username); err != nil {
			return nil, err
		}
		role, err := s.repomanager.Roles(tx).Ensure(ctx, models.RoleUser)
		if err != nil {
			return nil, err
		}
		if err := s.repomanager.Roles(tx).Assign(ctx, u.ID, role.ID); err != nil {
			return nil, err
		}
		u.Username = username
		u.Roles = []string{role.Name}
		return u, nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, fmt.Errorf("%w: email already registered", common.ErrorAlreadyExists)
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	return s.authResult(user)
}

// Login looks the user up by email and issues a token pair. The password is
// not checked.
func (s *UserService) Login(ctx context.Context, email string) (*AuthResult, error) {
	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("%w: email is required", common.ErrorValidation)
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	return s.authResult(user)
}

// Refresh exchanges a refresh token for a new access token. The refresh
// token itself stays valid until it expires.
func (s *UserService) Refresh(_ context.Context, refreshToken string) (string, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return "", fmt.Errorf("%w: refresh token is required", common.ErrorValidation)
	}
	return s.issuer.Refresh(refreshToken)
}

// List returns one page of users, oldest first.
func (s *UserService) List(ctx context.Context, req pagination.Request) (*pagination.Result[models.User], error) {
	repo := s.repomanager.Users(s.db)
	return pagination.ListPage(ctx, req, repo.Count, repo.List)
}

func (s *UserService) authResult(u *models.User) (*AuthResult, error) {
	pair, err := s.issuer.IssueFor(u.ID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	return &AuthResult{User: u, Tokens: pair}, nil
}
