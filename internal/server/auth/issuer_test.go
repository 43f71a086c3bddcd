package auth

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuer_IssueFor(t *testing.T) {
	c, _ := newTestCodec(t)
	iss := NewIssuer(c)

	pair, err := iss.IssueFor(11, "bob@example.com")
	require.NoError(t, err)
	require.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	want := Payload{SubjectID: 11, SubjectEmail: "bob@example.com"}

	got, err := c.Verify(Access, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = c.Verify(Refresh, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestIssuer_RefreshDoesNotRotate(t *testing.T) {
	c, clock := newTestCodec(t)
	iss := NewIssuer(c)

	pair, err := iss.IssueFor(4, "d@example.com")
	require.NoError(t, err)

	// Past the access window, inside the refresh window.
	clock.Advance(time.Hour)
	_, err = c.Verify(Access, pair.AccessToken)
	require.ErrorIs(t, err, common.ErrTokenExpired)

	access, err := iss.Refresh(pair.RefreshToken)
	require.NoError(t, err)

	p, err := c.Verify(Access, access)
	require.NoError(t, err)
	assert.Equal(t, int64(4), p.SubjectID)
	assert.Equal(t, "d@example.com", p.SubjectEmail)

	// The same refresh token keeps working.
	again, err := iss.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, again)
}

func TestIssuer_RefreshFailures(t *testing.T) {
	c, clock := newTestCodec(t)
	iss := NewIssuer(c)

	pair, err := iss.IssueFor(4, "d@example.com")
	require.NoError(t, err)

	_, err = iss.Refresh(pair.AccessToken)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.ErrorIs(t, err, common.ErrInvalidSignature)

	clock.Advance(8 * 24 * time.Hour)
	_, err = iss.Refresh(pair.RefreshToken)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestPayloadContext(t *testing.T) {
	_, ok := PayloadFromContext(context.Background())
	assert.False(t, ok)

	ctx := WithPayload(context.Background(), Payload{SubjectID: 2, SubjectEmail: "e@f.g"})
	p, ok := PayloadFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(2), p.SubjectID)
}
