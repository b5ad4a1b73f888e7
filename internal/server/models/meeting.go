package models

import (
	"net"
	"strconv"
	"time"
)

type MeetingState string

const (
	MeetingScheduled MeetingState = "scheduled"
	MeetingActive    MeetingState = "active"
	MeetingEnded     MeetingState = "ended"
)

type Role string

const (
	RoleHost  Role = "host"
	RoleGuest Role = "guest"
)

type Meeting struct {
	ID             string
	Code           string
	Topic          string
	HostID         string
	ScheduledStart time.Time
	State          MeetingState
	Participants   []Participant
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Participant returns the participant entry for userID, if any.
func (m *Meeting) Participant(userID string) (*Participant, bool) {
	for i := range m.Participants {
		if m.Participants[i].UserID == userID {
			return &m.Participants[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy safe to hand out of a repository.
func (m *Meeting) Clone() *Meeting {
	c := *m
	c.Participants = make([]Participant, len(m.Participants))
	for i, p := range m.Participants {
		c.Participants[i] = p
		if p.Endpoint != nil {
			ep := *p.Endpoint
			c.Participants[i].Endpoint = &ep
		}
	}
	return &c
}

// Participant is a user's seat in a meeting. Endpoint is nil while the host
// is seated but has not joined media.
type Participant struct {
	MeetingID  string
	UserID     string
	Role       Role
	ClientInfo string
	JoinedAt   time.Time
	Endpoint   *Endpoint
}

// Endpoint is the media address handed to a joined participant.
type Endpoint struct {
	IP     string
	Port   int
	Region string
}

func (e Endpoint) String() string {
	return net.JoinHostPort(e.IP, strconv.Itoa(e.Port))
}
