// Package common defines shared constants and sentinel errors used across
// client and server layers of meetingd. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal        = errors.New("internal error")
	ErrorUnauthenticated = errors.New("unauthenticated")
	ErrorInvalidArgument = errors.New("invalid argument")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
	ErrSessionExpired = errors.New("session expired")

	// Meeting errors.
	ErrMeetingNotFound     = errors.New("meeting not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrParticipantNotFound = errors.New("participant not found in meeting")
	ErrAlreadyJoined       = errors.New("participant already in meeting")
	ErrMeetingEnded        = errors.New("meeting has ended")
	ErrMeetingFull         = errors.New("meeting has reached maximum participant limit")
	ErrPermissionDenied    = errors.New("permission denied")

	// Endpoint allocation errors.
	ErrNoCapacity = errors.New("no media node capacity left")
)
