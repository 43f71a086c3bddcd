package cli

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/tasktracker/internal/api"
	"github.com/dmitrijs2005/tasktracker/internal/client/session"
)

func TestRegister_Success(t *testing.T) {
	var gotEmail, gotPass, gotName string
	f := &fakeAPI{register: func(email, password, username string) (*session.Record, error) {
		gotEmail, gotPass, gotName = email, password, username
		return loggedInRecord(), nil
	}}
	a, out := newTestApp(f, "")
	stubInputs(t, []byte("secret"), "alice@example.com", "alice")

	require.NoError(t, a.Register(context.Background()))
	assert.Equal(t, "alice@example.com", gotEmail)
	assert.Equal(t, "secret", gotPass)
	assert.Equal(t, "alice", gotName)
	assert.True(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Welcome, alice!")
}

func TestRegister_ErrorKeepsLoggedOut(t *testing.T) {
	f := &fakeAPI{register: func(string, string, string) (*session.Record, error) {
		return nil, errors.New("email already registered")
	}}
	a, _ := newTestApp(f, "")
	stubInputs(t, nil, "alice@example.com", "alice")

	require.EqualError(t, a.Register(context.Background()), "email already registered")
	assert.False(t, a.isLoggedIn())
}

func TestRegister_InputError(t *testing.T) {
	called := false
	f := &fakeAPI{register: func(string, string, string) (*session.Record, error) {
		called = true
		return nil, nil
	}}
	a, _ := newTestApp(f, "")
	stubInputs(t, nil)

	require.ErrorIs(t, a.Register(context.Background()), io.EOF)
	assert.False(t, called)
}

func TestLogin_Success(t *testing.T) {
	f := &fakeAPI{login: func(email, password string) (*session.Record, error) {
		assert.Equal(t, "alice@example.com", email)
		assert.Equal(t, "", password)
		return loggedInRecord(), nil
	}}
	a, out := newTestApp(f, "")
	stubInputs(t, []byte{}, "alice@example.com")

	require.NoError(t, a.Login(context.Background()))
	assert.True(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Logged in as alice@example.com")
}

func TestLogout(t *testing.T) {
	f := &fakeAPI{}
	a, _ := newTestApp(f, "")
	a.user = &session.User{ID: 1}

	require.NoError(t, a.Logout(context.Background()))
	assert.True(t, f.loggedOut)
	assert.False(t, a.isLoggedIn())
}

func TestLogout_ErrorPropagates(t *testing.T) {
	f := &fakeAPI{logoutErr: errors.New("clean-fail")}
	a, _ := newTestApp(f, "")
	a.user = &session.User{ID: 1}

	require.Error(t, a.Logout(context.Background()))
	assert.True(t, a.isLoggedIn())
}

func TestWhoAmI(t *testing.T) {
	f := &fakeAPI{me: func() (*api.MeResponse, error) {
		return &api.MeResponse{UserID: 7, Email: "bob@example.com"}, nil
	}}
	a, out := newTestApp(f, "")

	require.NoError(t, a.WhoAmI(context.Background()))
	assert.Equal(t, "user #7 bob@example.com\n", out.String())
}
