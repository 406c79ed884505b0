// Package repository provides data access for the room lifecycle audit log.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/RansilvaV29/backend-chat-websoket/internal/model"
)

// RoomEventRepository persists room lifecycle transitions. The table is
// append-only; message payloads are never stored.
type RoomEventRepository struct {
	db *sql.DB
}

// NewRoomEventRepository creates a new RoomEventRepository.
func NewRoomEventRepository(db *sql.DB) *RoomEventRepository {
	return &RoomEventRepository{db: db}
}

// Record appends one lifecycle event.
func (r *RoomEventRepository) Record(ctx context.Context, ev model.RoomEvent) error {
	query := `
		INSERT INTO room_events (pin, kind, conn_id, capacity)
		VALUES (?, ?, ?, ?)
	`

	var connID sql.NullString
	if ev.ConnID != "" {
		connID = sql.NullString{String: ev.ConnID, Valid: true}
	}
	var capacity sql.NullInt64
	if ev.Capacity != nil {
		capacity = sql.NullInt64{Int64: int64(*ev.Capacity), Valid: true}
	}

	if _, err := r.db.ExecContext(ctx, query, ev.Pin, ev.Kind, connID, capacity); err != nil {
		return fmt.Errorf("failed to record room event: %w", err)
	}
	return nil
}

// ListByPin returns the audit trail for a PIN in insertion order.
func (r *RoomEventRepository) ListByPin(ctx context.Context, pin string) ([]*model.RoomEvent, error) {
	query := `
		SELECT id, pin, kind, conn_id, capacity, created_at
		FROM room_events
		WHERE pin = ?
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, pin)
	if err != nil {
		return nil, fmt.Errorf("failed to list room events: %w", err)
	}
	defer rows.Close()

	var events []*model.RoomEvent
	for rows.Next() {
		ev, err := scanRoomEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// CountByKind returns the number of recorded events of the given kind.
func (r *RoomEventRepository) CountByKind(ctx context.Context, kind model.RoomEventKind) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM room_events WHERE kind = ?`, kind,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count room events: %w", err)
	}
	return count, nil
}

func scanRoomEvent(rows *sql.Rows) (*model.RoomEvent, error) {
	ev := &model.RoomEvent{}
	var connID sql.NullString
	var capacity sql.NullInt64

	if err := rows.Scan(&ev.ID, &ev.Pin, &ev.Kind, &connID, &capacity, &ev.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan room event: %w", err)
	}
	if connID.Valid {
		ev.ConnID = connID.String
	}
	if capacity.Valid {
		c := int(capacity.Int64)
		ev.Capacity = &c
	}
	return ev, nil
}
