// Package models defines server-side data models persisted by the repositories.
package models

import "time"

type User struct {
	ID           string
	UserName     string
	PasswordHash string
	Email        string
	DisplayName  string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}
