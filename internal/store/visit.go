// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"newsdesk/internal/models"
)

// VisitStore maintains the per-day visit counters.
type VisitStore struct {
	db *sql.DB
}

// NewVisitStore returns a new VisitStore.
func NewVisitStore(db *sql.DB) *VisitStore {
	return &VisitStore{db: db}
}

// Track records one visit for today. The upsert is atomic, so concurrent
// first visits of a new day cannot lose increments or duplicate the row.
func (s *VisitStore) Track(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO site_visits (visit_date, count)
		VALUES (CURRENT_DATE, 1)
		ON CONFLICT (visit_date) DO UPDATE SET count = site_visits.count + 1
	`)
	if err != nil {
		return fmt.Errorf("track visit: %w", err)
	}
	return nil
}

// Total returns the all-time visit count.
func (s *VisitStore) Total(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(count), 0) FROM site_visits`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total visits: %w", err)
	}
	return total, nil
}

// LastNDays returns the most recent n daily counters, oldest first. Days
// with no recorded visits are absent.
func (s *VisitStore) LastNDays(ctx context.Context, n int) ([]models.SiteVisit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, visit_date, count FROM (
			SELECT id, visit_date, count FROM site_visits
			ORDER BY visit_date DESC
			LIMIT $1
		) recent
		ORDER BY visit_date
	`, n)
	if err != nil {
		return nil, fmt.Errorf("recent visits: %w", err)
	}
	defer rows.Close()

	visits := []models.SiteVisit{}
	for rows.Next() {
		var v models.SiteVisit
		if err := rows.Scan(&v.ID, &v.Date, &v.Count); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		visits = append(visits, v)
	}
	return visits, rows.Err()
}
