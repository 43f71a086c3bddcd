// Package session persists the signed-in user's tokens between CLI runs.
//
// A Record is stored as JSON under the key common.SessionKey. Store
// implementations return common.ErrorNotFound from Get when no session is
// stored.
package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/tasktracker/internal/common"
)

// User is the identity cached alongside the tokens for display.
type User struct {
	ID       int64    `json:"id"`
	Email    string   `json:"email"`
	Username string   `json:"username"`
	Roles    []string `json:"roles,omitempty"`
}

type Record struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}

type Store interface {
	Get(ctx context.Context) (*Record, error)
	Set(ctx context.Context, r *Record) error
	Clear(ctx context.Context) error
}

// MemoryStore keeps the record in process memory.
type MemoryStore struct {
	mu  sync.Mutex
	rec *Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get(context.Context) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rec == nil {
		return nil, common.ErrorNotFound
	}
	r := *s.rec
	return &r, nil
}

func (s *MemoryStore) Set(_ context.Context, r *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *r
	s.rec = &cp
	return nil
}

func (s *MemoryStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = nil
	return nil
}
