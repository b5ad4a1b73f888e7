package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dmitrijs2005/meetingd/internal/common"
	"github.com/dmitrijs2005/meetingd/internal/server/models"
)

const keyPrefix = "session:"

// BadgerRepository keeps sessions in Badger with a native TTL so expired
// entries disappear without a sweep.
type BadgerRepository struct {
	db  *badger.DB
	now func() time.Time
}

func NewBadgerRepository(db *badger.DB) *BadgerRepository {
	return &BadgerRepository{db: db, now: time.Now}
}

type diskSession struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func key(id string) []byte {
	return []byte(keyPrefix + id)
}

func (r *BadgerRepository) Create(ctx context.Context, s *models.Session) error {
	ttl := s.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", s.ID)
	}

	data, err := json.Marshal(diskSession{ID: s.ID, UserID: s.UserID, CreatedAt: s.CreatedAt, ExpiresAt: s.ExpiresAt})
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}

	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key(s.ID)); err == nil {
			return common.ErrorAlreadyExists
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("badger error: %w", err)
		}
		return txn.SetEntry(badger.NewEntry(key(s.ID), data).WithTTL(ttl))
	})
}

func (r *BadgerRepository) Find(ctx context.Context, id string) (*models.Session, error) {
	var ds diskSession

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &ds)
		})
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("badger error: %w", err)
	}

	return &models.Session{ID: ds.ID, UserID: ds.UserID, CreatedAt: ds.CreatedAt, ExpiresAt: ds.ExpiresAt}, nil
}

func (r *BadgerRepository) Delete(ctx context.Context, id string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key(id)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return common.ErrorNotFound
			}
			return fmt.Errorf("badger error: %w", err)
		}
		return txn.Delete(key(id))
	})
}

// DeleteExpired is a no-op: Badger drops entries once their TTL passes.
func (r *BadgerRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}
