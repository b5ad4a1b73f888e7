package common

import "errors"

// Code is the numeric error code carried in every response envelope.
type Code int32

// Stable envelope codes. Values never change once published.
const (
	CodeOK                  Code = 0
	CodeInvalidArgument     Code = 1
	CodeNotFound            Code = 2
	CodeAlreadyExists       Code = 3
	CodeAlreadyJoined       Code = 4
	CodeUnauthenticated     Code = 5
	CodeInternal            Code = 6
	CodeParticipantNotFound Code = 7
	CodeMeetingEnded        Code = 8
	CodeResourceExhausted   Code = 9
	CodePermissionDenied    Code = 10
)

var codeNames = map[Code]string{
	CodeOK:                  "OK",
	CodeInvalidArgument:     "INVALID_ARGUMENT",
	CodeNotFound:            "NOT_FOUND",
	CodeAlreadyExists:       "ALREADY_EXISTS",
	CodeAlreadyJoined:       "ALREADY_JOINED",
	CodeUnauthenticated:     "UNAUTHENTICATED",
	CodeInternal:            "INTERNAL",
	CodeParticipantNotFound: "PARTICIPANT_NOT_FOUND",
	CodeMeetingEnded:        "MEETING_ENDED",
	CodeResourceExhausted:   "RESOURCE_EXHAUSTED",
	CodePermissionDenied:    "PERMISSION_DENIED",
}

func (c Code) String() string {
	if n, ok := codeNames[c]; ok {
		return n
	}
	return "UNKNOWN"
}

// IsNotFound reports whether the code belongs to the NotFound class.
func (c Code) IsNotFound() bool {
	return c == CodeNotFound || c == CodeParticipantNotFound
}

// order matters: the more specific sentinels are checked before the generic ones.
var codeTable = []struct {
	err  error
	code Code
}{
	{ErrParticipantNotFound, CodeParticipantNotFound},
	{ErrMeetingNotFound, CodeNotFound},
	{ErrUserNotFound, CodeNotFound},
	{ErrorNotFound, CodeNotFound},
	{ErrAlreadyJoined, CodeAlreadyJoined},
	{ErrorAlreadyExists, CodeAlreadyExists},
	{ErrorInvalidArgument, CodeInvalidArgument},
	{ErrorUnauthenticated, CodeUnauthenticated},
	{ErrInvalidToken, CodeUnauthenticated},
	{ErrTokenExpired, CodeUnauthenticated},
	{ErrSessionExpired, CodeUnauthenticated},
	{ErrMeetingEnded, CodeMeetingEnded},
	{ErrMeetingFull, CodeResourceExhausted},
	{ErrNoCapacity, CodeResourceExhausted},
	{ErrPermissionDenied, CodePermissionDenied},
}

// CodeOf maps an error returned by a service to its envelope code.
// nil maps to CodeOK, unrecognised errors to CodeInternal.
func CodeOf(err error) Code {
	if err == nil {
		return CodeOK
	}
	for _, e := range codeTable {
		if errors.Is(err, e.err) {
			return e.code
		}
	}
	return CodeInternal
}
