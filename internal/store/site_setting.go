// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"newsdesk/internal/imageurl"
	"newsdesk/internal/models"
)

// SettingStore manages the settings singleton.
type SettingStore struct {
	db *sql.DB
}

// NewSettingStore returns a new SettingStore.
func NewSettingStore(db *sql.DB) *SettingStore {
	return &SettingStore{db: db}
}

// Get reads the singleton settings row. When the row is missing or
// unreadable it returns the built-in defaults so public rendering keeps
// working.
func (s *SettingStore) Get(ctx context.Context) models.SiteSettings {
	var (
		st        models.SiteSettings
		languages []byte
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, org_name, logo_url, primary_color, secondary_color, accent_color,
		       social_facebook, social_tiktok, social_instagram, social_linkedin, social_youtube,
		       available_languages, default_language,
		       contact_phone, contact_email, contact_location
		FROM site_settings
		ORDER BY id
		LIMIT 1
	`).Scan(
		&st.ID, &st.OrgName, &st.LogoURL, &st.PrimaryColor, &st.SecondaryColor, &st.AccentColor,
		&st.SocialFacebook, &st.SocialTiktok, &st.SocialInstagram, &st.SocialLinkedin, &st.SocialYoutube,
		&languages, &st.DefaultLanguage,
		&st.ContactPhone, &st.ContactEmail, &st.ContactLocation,
	)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Warn("settings unreadable, serving defaults", "error", err)
		}
		return models.DefaultSiteSettings()
	}

	if err := json.Unmarshal(languages, &st.AvailableLanguages); err != nil || len(st.AvailableLanguages) == 0 {
		st.AvailableLanguages = models.DefaultSiteSettings().AvailableLanguages
	}
	st.LogoURL = imageurl.NormalizePtr(st.LogoURL)
	return st
}

// Update replaces the singleton row wholesale. The row targeted is always
// the lowest-id one, so stray duplicates never split the configuration.
func (s *SettingStore) Update(ctx context.Context, st models.SiteSettings) error {
	if len(st.AvailableLanguages) == 0 {
		st.AvailableLanguages = models.DefaultSiteSettings().AvailableLanguages
	}
	languages, err := json.Marshal(st.AvailableLanguages)
	if err != nil {
		return fmt.Errorf("encode languages: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE site_settings SET
			org_name = $1, logo_url = $2,
			primary_color = $3, secondary_color = $4, accent_color = $5,
			social_facebook = $6, social_tiktok = $7, social_instagram = $8,
			social_linkedin = $9, social_youtube = $10,
			available_languages = $11, default_language = $12,
			contact_phone = $13, contact_email = $14, contact_location = $15
		WHERE id = (SELECT MIN(id) FROM site_settings)
	`, st.OrgName, imageurl.NormalizePtr(st.LogoURL),
		st.PrimaryColor, st.SecondaryColor, st.AccentColor,
		st.SocialFacebook, st.SocialTiktok, st.SocialInstagram,
		st.SocialLinkedin, st.SocialYoutube,
		languages, st.DefaultLanguage,
		st.ContactPhone, st.ContactEmail, st.ContactLocation,
	)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}

	// First boot without the seed: create the row instead.
	if n, _ := res.RowsAffected(); n == 0 {
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO site_settings (org_name, logo_url,
				primary_color, secondary_color, accent_color,
				social_facebook, social_tiktok, social_instagram,
				social_linkedin, social_youtube,
				available_languages, default_language,
				contact_phone, contact_email, contact_location)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		`, st.OrgName, imageurl.NormalizePtr(st.LogoURL),
			st.PrimaryColor, st.SecondaryColor, st.AccentColor,
			st.SocialFacebook, st.SocialTiktok, st.SocialInstagram,
			st.SocialLinkedin, st.SocialYoutube,
			languages, st.DefaultLanguage,
			st.ContactPhone, st.ContactEmail, st.ContactLocation,
		)
		if err != nil {
			return fmt.Errorf("insert settings: %w", err)
		}
	}
	return nil
}
