// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"newsdesk/internal/imageurl"
	"newsdesk/internal/models"
)

// ProfileStore manages the mirrored account profiles. Profile IDs come
// from the external identity provider and are never minted here.
type ProfileStore struct {
	db *sql.DB
}

// NewProfileStore returns a new ProfileStore.
func NewProfileStore(db *sql.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

const profileColumns = `id, full_name, role, avatar_url, status, email, created_at`

// ProfileFilter narrows admin profile listings. Search matches full name
// or email.
type ProfileFilter struct {
	Search   string
	Status   string
	Page     int
	PageSize int
}

func (f ProfileFilter) whereClause() (string, []any) {
	var conds []string
	var args []any
	next := 1

	if f.Status != "" && f.Status != StatusAll {
		conds = append(conds, fmt.Sprintf("status = $%d", next))
		args = append(args, f.Status)
		next++
	}
	if f.Search != "" {
		conds = append(conds, fmt.Sprintf("(full_name ILIKE $%d OR email ILIKE $%d)", next, next))
		args = append(args, "%"+escapeLike(f.Search)+"%")
		next++
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// ProfileList is one page of results plus the unpaginated total.
type ProfileList struct {
	Profiles []models.Profile
	Total    int
}

// List returns profiles matching the filter, newest first.
func (s *ProfileStore) List(ctx context.Context, f ProfileFilter) (ProfileList, error) {
	where, args := f.whereClause()
	limit, offset := PostFilter{Page: f.Page, PageSize: f.PageSize}.Limits()

	query := fmt.Sprintf(
		`SELECT `+profileColumns+` FROM profiles %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2,
	)
	rows, err := s.db.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return ProfileList{}, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	profiles := []models.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return ProfileList{}, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return ProfileList{}, fmt.Errorf("list profiles: %w", err)
	}

	var total int
	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles `+where, args...).Scan(&total)
	if err != nil {
		return ProfileList{}, fmt.Errorf("count profiles: %w", err)
	}

	return ProfileList{Profiles: profiles, Total: total}, nil
}

// FindByID retrieves a profile by its provider-issued ID. Returns nil if
// not found.
func (s *ProfileStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create mirrors a new account locally.
func (s *ProfileStore) Create(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	if p.Role == "" {
		p.Role = "user"
	}
	if p.Status == "" {
		p.Status = "active"
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (id, full_name, role, avatar_url, status, email)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, p.ID, p.FullName, p.Role, imageurl.NormalizePtr(p.AvatarURL), p.Status, p.Email)
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return s.FindByID(ctx, p.ID)
}

// Update modifies the display fields and role. The email is owned by the
// identity provider and is left untouched.
func (s *ProfileStore) Update(ctx context.Context, p *models.Profile) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE profiles SET full_name = $1, role = $2, avatar_url = $3, status = $4
		WHERE id = $5
	`, p.FullName, p.Role, imageurl.NormalizePtr(p.AvatarURL), p.Status, p.ID)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// Delete removes the local mirror. Posts keep their author_id column NULLed
// by the foreign key.
func (s *ProfileStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(row scanner) (models.Profile, error) {
	var p models.Profile
	err := row.Scan(&p.ID, &p.FullName, &p.Role, &p.AvatarURL, &p.Status, &p.Email, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Profile{}, err
		}
		return models.Profile{}, fmt.Errorf("scan profile: %w", err)
	}
	p.AvatarURL = imageurl.NormalizePtr(p.AvatarURL)
	return p, nil
}
