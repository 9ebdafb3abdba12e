package store

import (
	"fmt"
	"time"
)

// LogIntake records a drink of amountMl at the given time.
func (s *Store) LogIntake(amountMl int, at time.Time) (*IntakeEntry, error) {
	if at.IsZero() {
		at = time.Now()
	}
	atStr := at.UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO intake_log (amount_ml, logged_at) VALUES (?, ?)`,
		amountMl, atStr,
	)
	if err != nil {
		return nil, fmt.Errorf("log intake: %w", err)
	}
	id, _ := res.LastInsertId()
	return &IntakeEntry{ID: id, AmountMl: amountMl, LoggedAt: at.UTC()}, nil
}

// IntakeTotal sums all intake logged on day (YYYY-MM-DD in the store's
// location).
func (s *Store) IntakeTotal(day string) (int, error) {
	from, to, err := s.dayBounds(day)
	if err != nil {
		return 0, err
	}
	var total int
	err = s.db.QueryRow(
		`SELECT COALESCE(SUM(amount_ml), 0) FROM intake_log WHERE logged_at >= ? AND logged_at < ?`,
		from, to,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("intake total: %w", err)
	}
	return total, nil
}

// IntakeByDay aggregates intake per calendar day (in the store's location)
// over [from, to), oldest day first.
func (s *Store) IntakeByDay(from, to time.Time) ([]DailyIntake, error) {
	rows, err := s.db.Query(`
		SELECT amount_ml, logged_at FROM intake_log
		WHERE logged_at >= ? AND logged_at < ?
		ORDER BY logged_at`,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("intake by day: %w", err)
	}
	defer rows.Close()

	var days []DailyIntake
	index := make(map[string]int)
	for rows.Next() {
		var amount int
		var loggedAt string
		if err := rows.Scan(&amount, &loggedAt); err != nil {
			return nil, err
		}
		at, err := time.Parse(time.RFC3339, loggedAt)
		if err != nil {
			return nil, fmt.Errorf("parse logged_at %q: %w", loggedAt, err)
		}
		day := at.In(s.loc).Format("2006-01-02")
		i, ok := index[day]
		if !ok {
			i = len(days)
			index[day] = i
			days = append(days, DailyIntake{Date: day})
		}
		days[i].TotalMl += int64(amount)
		days[i].Drinks++
	}
	return days, rows.Err()
}

// ListIntake returns the most recent drinks, newest first.
func (s *Store) ListIntake(limit int) ([]IntakeEntry, error) {
	query := `SELECT id, amount_ml, logged_at FROM intake_log ORDER BY logged_at DESC, id DESC`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, limit)
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list intake: %w", err)
	}
	defer rows.Close()

	var entries []IntakeEntry
	for rows.Next() {
		var e IntakeEntry
		var loggedAt string
		if err := rows.Scan(&e.ID, &e.AmountMl, &loggedAt); err != nil {
			return nil, err
		}
		e.LoggedAt, _ = time.Parse(time.RFC3339, loggedAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
