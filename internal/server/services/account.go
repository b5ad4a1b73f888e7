// Package services contains server-side business logic: accounts and
// sessions, the meeting registry and the participant tracker.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/meetingd/internal/common"
	"github.com/dmitrijs2005/meetingd/internal/logging"
	"github.com/dmitrijs2005/meetingd/internal/server/auth"
	"github.com/dmitrijs2005/meetingd/internal/server/config"
	"github.com/dmitrijs2005/meetingd/internal/server/models"
	"github.com/dmitrijs2005/meetingd/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const sessionIDBytes = 32

// AccountService registers users and manages their sessions.
type AccountService struct {
	repomanager       repomanager.RepositoryManager
	jwtSecret         []byte
	sessionTTL        time.Duration
	passwordMinLength int
	passwordParams    auth.PasswordParams
	now               func() time.Time
	logger            logging.Logger
}

// NewAccountService constructs an AccountService using repositories and server config.
func NewAccountService(m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *AccountService {
	return &AccountService{
		repomanager:       m,
		jwtSecret:         []byte(cfg.SecretKey),
		sessionTTL:        cfg.SessionTTL,
		passwordMinLength: cfg.PasswordMinLength,
		passwordParams: auth.PasswordParams{
			Time:      cfg.Argon2Time,
			MemoryKiB: cfg.Argon2MemoryKiB,
			Threads:   cfg.Argon2Threads,
		},
		now:    time.Now,
		logger: logger.With("module", "account_service"),
	}
}

// Register validates the input, hashes the password and stores a new user.
// An empty display name defaults to the username.
func (s *AccountService) Register(ctx context.Context, userName, password, email, displayName string) (*models.User, error) {
	req := auth.RegisterRequest{UserName: userName, Password: password, Email: email, DisplayName: displayName}
	if err := auth.ValidateRegister(req, s.passwordMinLength); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.passwordParams)
	if err != nil {
		return nil, fmt.Errorf("%w: hash password: %v", common.ErrorInternal, err)
	}

	if displayName == "" {
		displayName = userName
	}

	user := &models.User{
		ID:           uuid.NewString(),
		UserName:     userName,
		PasswordHash: hash,
		Email:        email,
		DisplayName:  displayName,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.repomanager.Users().Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			s.logger.Debug(ctx, "username taken", "username", userName)
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// Login verifies credentials and mints a new session. Expired sessions are
// purged on the way.
func (s *AccountService) Login(ctx context.Context, userName, password string) (*models.Session, *models.User, error) {
	user, err := s.repomanager.Users().GetByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("error loading user: %w", err)
	}

	ok, err := auth.ComparePassword(password, user.PasswordHash)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: compare password: %v", common.ErrorInternal, err)
	}
	if !ok {
		s.logger.Debug(ctx, "wrong password", "user_id", user.ID)
		return nil, nil, common.ErrorUnauthenticated
	}

	s.purgeExpired(ctx)

	session, err := s.newSession(user.ID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.repomanager.Sessions().Create(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("error storing session: %w", err)
	}

	if err := s.repomanager.Users().UpdateLastLogin(ctx, user.ID, session.CreatedAt); err != nil {
		s.logger.Warn(ctx, "failed to record last login", "user_id", user.ID, "error", err)
	} else {
		at := session.CreatedAt
		user.LastLoginAt = &at
	}

	return session, user, nil
}

// ValidateToken resolves a session token to its user id. Malformed, forged or
// expired tokens and sessions that are gone or expired all fail as
// unauthenticated. The session row decides expiry: a token within
// auth.ExpiryLeeway of its exp still reaches it, and an expired session found
// that way is deleted.
func (s *AccountService) ValidateToken(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", common.ErrInvalidToken
	}

	claims, err := auth.ParseToken(token, s.jwtSecret, s.now())
	if err != nil {
		return "", err
	}

	session, err := s.repomanager.Sessions().Find(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrInvalidToken
		}
		return "", fmt.Errorf("error loading session: %w", err)
	}

	if session.UserID != claims.UserID {
		return "", common.ErrInvalidToken
	}

	if session.Expired(s.now()) {
		if err := s.repomanager.Sessions().Delete(ctx, session.ID); err != nil && !errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "failed to delete expired session", "error", err)
		}
		return "", common.ErrSessionExpired
	}

	return session.UserID, nil
}

// Logout destroys the session behind token.
func (s *AccountService) Logout(ctx context.Context, token string) error {
	claims, err := auth.ParseToken(token, s.jwtSecret, s.now())
	if err != nil {
		return err
	}

	if err := s.repomanager.Sessions().Delete(ctx, claims.SessionID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrInvalidToken
		}
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}

// GetProfile returns the user with the given id.
func (s *AccountService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repomanager.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return user, nil
}

// --- helpers below ---

func (s *AccountService) newSession(userID string) (*models.Session, error) {
	id, err := common.MakeRandHexString(sessionIDBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: session id: %v", common.ErrorInternal, err)
	}

	now := s.now().UTC()
	token, err := auth.GenerateToken(id, userID, s.jwtSecret, now, s.sessionTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: sign token: %v", common.ErrorInternal, err)
	}

	return &models.Session{
		ID:        id,
		UserID:    userID,
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}, nil
}

func (s *AccountService) purgeExpired(ctx context.Context) {
	n, err := s.repomanager.Sessions().DeleteExpired(ctx, s.now())
	if err != nil {
		s.logger.Warn(ctx, "failed to purge expired sessions", "error", err)
		return
	}
	if n > 0 {
		s.logger.Debug(ctx, "purged expired sessions", "count", n)
	}
}
