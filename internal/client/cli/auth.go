package cli

import (
	"context"
	"fmt"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for email, username and an optional password and creates
// the account. The new session is stored, so the user is logged in afterwards.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	rec, err := a.api.Register(ctx, email, string(password), username)
	if err != nil {
		return err
	}

	u := rec.User
	a.user = &u
	fmt.Fprintf(a.out, "Welcome, %s!\n", u.Username)
	return nil
}

// Login prompts for credentials and signs in. The server does not check the
// password; it is sent as typed.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	rec, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	u := rec.User
	a.user = &u
	fmt.Fprintf(a.out, "Logged in as %s\n", u.Email)
	return nil
}

// Logout forgets the stored session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.api.Logout(ctx); err != nil {
		return err
	}
	a.user = nil
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// WhoAmI shows the identity the server reads from the access token.
func (a *App) WhoAmI(ctx context.Context) error {
	me, err := a.api.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "user #%d %s\n", me.UserID, me.Email)
	return nil
}
