package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeeder_IsIdempotent(t *testing.T) {
	db, mock := newSQLMockDB(t)
	rm := newFakeRepoManager()
	s := NewSeeder(db, rm, logging.Nop{})

	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
		require.NoError(t, s.Run(context.Background(), "admin@example.com", "Admin One"))
	}
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Len(t, rm.roles.roles, 2)
	admin, err := rm.users.GetByEmail(context.Background(), "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Admin One", admin.Username)
	assert.Equal(t, []int64{rm.roles.roles["admin"].ID}, rm.roles.assigned[admin.ID])
}

func TestSeeder_RollsBackOnError(t *testing.T) {
	db, mock := newSQLMockDB(t)
	rm := newFakeRepoManager()
	rm.roles.err = errors.New("no table")
	s := NewSeeder(db, rm, logging.Nop{})

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := s.Run(context.Background(), "admin@example.com", "Admin One")
	assert.ErrorContains(t, err, "no table")
	require.NoError(t, mock.ExpectationsWereMet())
}
