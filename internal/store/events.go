package store

import (
	"encoding/json"
	"fmt"
	"time"
)

// AppendEvent writes one event to the append-only log.
func (s *Store) AppendEvent(rec EventRecord) error {
	payload := "{}"
	if len(rec.Payload) > 0 {
		raw, err := json.Marshal(rec.Payload)
		if err != nil {
			return fmt.Errorf("marshal event payload: %w", err)
		}
		payload = string(raw)
	}

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO events (id, kind, description, payload, created_at) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.Kind, rec.Description, payload, createdAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

// ListEvents returns events newest first, optionally filtered by kind and day.
func (s *Store) ListEvents(f EventFilter) ([]EventRecord, error) {
	query := `SELECT id, kind, description, payload, created_at FROM events WHERE 1=1`
	var args []any

	if f.Kind != "" {
		query += ` AND kind = ?`
		args = append(args, f.Kind)
	}
	if f.Day != "" {
		from, to, err := s.dayBounds(f.Day)
		if err != nil {
			return nil, err
		}
		query += ` AND created_at >= ? AND created_at < ?`
		args = append(args, from, to)
	}
	query += ` ORDER BY created_at DESC, id DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var records []EventRecord
	for rows.Next() {
		var rec EventRecord
		var payload, createdAt string
		if err := rows.Scan(&rec.ID, &rec.Kind, &rec.Description, &payload, &createdAt); err != nil {
			return nil, err
		}
		if payload != "" && payload != "{}" {
			if err := json.Unmarshal([]byte(payload), &rec.Payload); err != nil {
				return nil, fmt.Errorf("decode event payload %s: %w", rec.ID, err)
			}
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CountEventsByKind aggregates how many events of each kind happened on day
// (YYYY-MM-DD in the store's location).
func (s *Store) CountEventsByKind(day string) (map[string]int, error) {
	from, to, err := s.dayBounds(day)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Query(
		`SELECT kind, COUNT(*) FROM events WHERE created_at >= ? AND created_at < ? GROUP BY kind`,
		from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		counts[kind] = n
	}
	return counts, rows.Err()
}
