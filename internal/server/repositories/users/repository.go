//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=../../mocks/mock_users_repository.go -package=mocks -mock_names=Repository=MockUsersRepository

// Package users stores registered accounts.
package users

import (
	"context"
	"time"

	"github.com/dmitrijs2005/meetingd/internal/server/models"
)

// Repository persists users. Create fails with common.ErrorAlreadyExists when
// the username is taken; lookups fail with common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUserName(ctx context.Context, userName string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}
