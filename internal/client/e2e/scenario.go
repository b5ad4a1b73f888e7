package e2e

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/dmitrijs2005/meetingd/internal/api"
	"github.com/dmitrijs2005/meetingd/internal/client/client"
)

const (
	MeetingTopic = "Integration Test Meeting"
	ClientInfo   = "client-x"
)

// ErrUnexpectedSuccess is returned when a step that must be rejected succeeds.
var ErrUnexpectedSuccess = errors.New("expected failure, got success")

// Scenario holds everything one run needs.
type Scenario struct {
	Client      client.Client
	Password    string
	CallTimeout time.Duration
	Out         io.Writer

	Now    func() time.Time
	Suffix func() int
}

// NewScenario returns a Scenario with wall-clock time and random user suffixes.
func NewScenario(c client.Client, password string, callTimeout time.Duration, out io.Writer) *Scenario {
	return &Scenario{
		Client:      c,
		Password:    password,
		CallTimeout: callTimeout,
		Out:         out,
		Now:         time.Now,
		Suffix:      func() int { return rand.IntN(10000) },
	}
}

func (s *Scenario) userName(prefix string) string {
	return fmt.Sprintf("%s_%d_%04d", prefix, s.Now().Unix(), s.Suffix())
}

func (s *Scenario) call(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.CallTimeout)
	defer cancel()
	return fn(ctx)
}

func (s *Scenario) step(format string, args ...any) {
	fmt.Fprintf(s.Out, "==> "+format+"\n", args...)
}

// signUp registers userName and logs in, returning the session token.
func (s *Scenario) signUp(ctx context.Context, userName string) (string, error) {
	s.step("register %s", userName)
	err := s.call(ctx, func(ctx context.Context) error {
		_, err := s.Client.Register(ctx, userName, s.Password, userName+"@example.com", "")
		return err
	})
	if err != nil {
		return "", fmt.Errorf("register %s: %w", userName, err)
	}

	s.step("login %s", userName)
	var token string
	err = s.call(ctx, func(ctx context.Context) error {
		t, _, err := s.Client.Login(ctx, userName, s.Password)
		token = t
		return err
	})
	if err != nil {
		return "", fmt.Errorf("login %s: %w", userName, err)
	}
	return token, nil
}

// Run executes the scenario and returns the first failing step.
func (s *Scenario) Run(ctx context.Context) error {
	if err := s.call(ctx, s.Client.Ping); err != nil {
		return fmt.Errorf("ping: %w", err)
	}

	hostToken, err := s.signUp(ctx, s.userName("host"))
	if err != nil {
		return err
	}

	start := s.Now().Add(time.Hour).Truncate(time.Second)
	s.step("create meeting %q at %s", MeetingTopic, start.Format(time.RFC3339))
	var meeting *api.Meeting
	err = s.call(ctx, func(ctx context.Context) error {
		m, err := s.Client.CreateMeeting(ctx, hostToken, MeetingTopic, start)
		meeting = m
		return err
	})
	if err != nil {
		return fmt.Errorf("create meeting: %w", err)
	}
	fmt.Fprintf(s.Out, "    meeting %s (code %s)\n", meeting.ID, meeting.Code)

	guestToken, err := s.signUp(ctx, s.userName("guest"))
	if err != nil {
		return err
	}

	s.step("guest joins %s", meeting.ID)
	var endpoint *api.Endpoint
	err = s.call(ctx, func(ctx context.Context) error {
		ep, err := s.Client.JoinMeeting(ctx, guestToken, meeting.ID, ClientInfo)
		endpoint = ep
		return err
	})
	if err != nil {
		return fmt.Errorf("guest join: %w", err)
	}
	if endpoint == nil {
		return errors.New("guest join: no endpoint assigned")
	}
	fmt.Fprintf(s.Out, "    endpoint %s:%d (%s)\n", endpoint.IP, endpoint.Port, endpoint.Region)

	s.step("guest leaves")
	if err := s.call(ctx, func(ctx context.Context) error {
		return s.Client.LeaveMeeting(ctx, guestToken, meeting.ID)
	}); err != nil {
		return fmt.Errorf("guest leave: %w", err)
	}

	s.step("guest leaves again")
	err = s.call(ctx, func(ctx context.Context) error {
		return s.Client.LeaveMeeting(ctx, guestToken, meeting.ID)
	})
	if err == nil {
		return fmt.Errorf("second guest leave: %w", ErrUnexpectedSuccess)
	}
	var envErr *api.Error
	if !errors.As(err, &envErr) || !envErr.Code.IsNotFound() {
		return fmt.Errorf("second guest leave: want a not-found code: %w", err)
	}
	fmt.Fprintf(s.Out, "    rejected: %v\n", envErr)

	s.step("host leaves")
	if err := s.call(ctx, func(ctx context.Context) error {
		return s.Client.LeaveMeeting(ctx, hostToken, meeting.ID)
	}); err != nil {
		return fmt.Errorf("host leave: %w", err)
	}

	fmt.Fprintln(s.Out, "OK")
	return nil
}
