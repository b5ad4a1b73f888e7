//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=../../mocks/mock_sessions_repository.go -package=mocks -mock_names=Repository=MockSessionsRepository

// Package sessions stores server-side login sessions.
package sessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/meetingd/internal/server/models"
)

// Repository persists sessions. Find and Delete fail with
// common.ErrorNotFound for unknown ids.
type Repository interface {
	Create(ctx context.Context, s *models.Session) error
	Find(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
