package meetings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/meetingd/internal/common"
	"github.com/dmitrijs2005/meetingd/internal/dbx"
	"github.com/dmitrijs2005/meetingd/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, m *models.Meeting) error {
	query :=
		`INSERT INTO meetings (id, code, topic, host_id, scheduled_start, state, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 `

	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.Code, m.Topic, m.HostID, m.ScheduledStart, string(m.State), m.CreatedAt, m.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Meeting, error) {
	query :=
		`SELECT id, code, topic, host_id, scheduled_start, state, created_at, updated_at FROM meetings
		 WHERE id = $1
		 `

	return r.load(ctx, r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByCode(ctx context.Context, code string) (*models.Meeting, error) {
	query :=
		`SELECT id, code, topic, host_id, scheduled_start, state, created_at, updated_at FROM meetings
		 WHERE code = $1
		 `

	return r.load(ctx, r.db.QueryRowContext(ctx, query, code))
}

func (r *PostgresRepository) UpdateState(ctx context.Context, id string, state models.MeetingState, at time.Time) error {
	query :=
		`UPDATE meetings SET state = $2, updated_at = $3
		 WHERE id = $1
		 `

	return r.execOne(ctx, common.ErrMeetingNotFound, query, id, string(state), at)
}

func (r *PostgresRepository) AddParticipant(ctx context.Context, p *models.Participant) error {
	query :=
		`INSERT INTO meeting_participants (meeting_id, user_id, role, client_info, joined_at, endpoint_ip, endpoint_port, endpoint_region)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 `

	ip, port, region := endpointArgs(p.Endpoint)
	_, err := r.db.ExecContext(ctx, query,
		p.MeetingID, p.UserID, string(p.Role), p.ClientInfo, p.JoinedAt, ip, port, region)
	if err != nil {
		switch {
		case dbx.IsUniqueViolation(err):
			return common.ErrAlreadyJoined
		case dbx.IsForeignKeyViolation(err):
			return common.ErrMeetingNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SeatParticipant(ctx context.Context, p *models.Participant) error {
	query :=
		`UPDATE meeting_participants
		 SET client_info = $3, joined_at = $4, endpoint_ip = $5, endpoint_port = $6, endpoint_region = $7
		 WHERE meeting_id = $1 AND user_id = $2
		 `

	ip, port, region := endpointArgs(p.Endpoint)
	return r.execOne(ctx, common.ErrParticipantNotFound, query, p.MeetingID, p.UserID, p.ClientInfo, p.JoinedAt, ip, port, region)
}

func (r *PostgresRepository) RemoveParticipant(ctx context.Context, meetingID, userID string) error {
	query :=
		`DELETE FROM meeting_participants
		 WHERE meeting_id = $1 AND user_id = $2
		 `

	return r.execOne(ctx, common.ErrParticipantNotFound, query, meetingID, userID)
}

func (r *PostgresRepository) ClearParticipants(ctx context.Context, meetingID string) error {
	query := `DELETE FROM meeting_participants WHERE meeting_id = $1`

	if _, err := r.db.ExecContext(ctx, query, meetingID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) load(ctx context.Context, row *sql.Row) (*models.Meeting, error) {
	m := &models.Meeting{}
	var state string

	err := row.Scan(&m.ID, &m.Code, &m.Topic, &m.HostID, &m.ScheduledStart, &state, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	m.State = models.MeetingState(state)

	participants, err := r.participants(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	m.Participants = participants
	return m, nil
}

func (r *PostgresRepository) participants(ctx context.Context, meetingID string) ([]models.Participant, error) {
	query :=
		`SELECT user_id, role, client_info, joined_at, endpoint_ip, endpoint_port, endpoint_region
		 FROM meeting_participants
		 WHERE meeting_id = $1
		 ORDER BY joined_at
		 `

	rows, err := r.db.QueryContext(ctx, query, meetingID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Participant, 0)
	for rows.Next() {
		p := models.Participant{MeetingID: meetingID}
		var role string
		var ip, region sql.NullString
		var port sql.NullInt64

		if err := rows.Scan(&p.UserID, &role, &p.ClientInfo, &p.JoinedAt, &ip, &port, &region); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		p.Role = models.Role(role)
		if ip.Valid && port.Valid {
			p.Endpoint = &models.Endpoint{IP: ip.String, Port: int(port.Int64), Region: region.String}
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) execOne(ctx context.Context, notFound error, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func endpointArgs(ep *models.Endpoint) (ip, port, region any) {
	if ep == nil {
		return nil, nil, nil
	}
	return ep.IP, ep.Port, ep.Region
}
