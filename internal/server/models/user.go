// Package models holds the server-side domain types shared by repositories,
// services and HTTP handlers.
package models

import "time"

// User is a registered identity. Email is the unique login key; Username is
// the display name stored on the user's profile.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Username     string
	Roles        []string
	CreatedAt    time.Time
}

type Role struct {
	ID   int64
	Name string
}

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)
