package repository

import (
	"context"
	"strings"
	"time"

	"github.com/parishops/sacristy/backend/internal/domain"
)

func (r *Repository) GetLiturgicalEventsInRange(start, end time.Time) ([]*domain.LiturgicalEvent, error) {
	// colors is stored comma-separated so the stdlib driver can scan it
	query := `
		SELECT id, event_date, name, colors, grade, grade_abbr, event_type
		FROM liturgical_events
		WHERE event_date >= $1 AND event_date <= $2
		ORDER BY event_date, grade DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []*domain.LiturgicalEvent{}
	for rows.Next() {
		var event domain.LiturgicalEvent
		var colors string
		dst := []any{&event.ID, &event.Date, &event.Name, &colors, &event.Grade, &event.GradeAbbr, &event.Type}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		event.Colors = splitColors(colors)
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

func (r *Repository) GetLiturgicalEventsByIDs(ids []int64) ([]*domain.LiturgicalEvent, error) {
	query := `
		SELECT event_date, name, colors, grade, grade_abbr, event_type
		FROM liturgical_events WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	events := []*domain.LiturgicalEvent{}
	for _, id := range ids {
		event := &domain.LiturgicalEvent{
			ID: id,
		}

		var colors string
		dst := []any{&event.Date, &event.Name, &colors, &event.Grade, &event.GradeAbbr, &event.Type}
		if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
			return nil, err
		}
		event.Colors = splitColors(colors)

		events = append(events, event)
	}

	return events, nil
}

func (r *Repository) CreateLiturgicalEvent(event *domain.LiturgicalEvent) error {
	query := `
		INSERT INTO liturgical_events (event_date, name, colors, grade, grade_abbr, event_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{event.Date, event.Name, strings.Join(event.Colors, ","), event.Grade, event.GradeAbbr, event.Type}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&event.ID)
}

func splitColors(colors string) []string {
	if colors == "" {
		return []string{}
	}

	parts := strings.Split(colors, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}
