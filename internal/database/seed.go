package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Seed populates the database with initial development data: the singleton
// settings row, a small category tree, and a welcome post. It is a no-op
// when categories already exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	// Singleton settings row with schema defaults.
	if _, err := db.Exec(`INSERT INTO site_settings DEFAULT VALUES`); err != nil {
		return fmt.Errorf("seed site settings: %w", err)
	}

	var newsID int64
	err := db.QueryRow(`
		INSERT INTO categories (name, slug) VALUES ($1, $2) RETURNING id
	`, "هەواڵەکان", "hewal").Scan(&newsID)
	if err != nil {
		return fmt.Errorf("seed root category: %w", err)
	}

	if _, err := db.Exec(`
		INSERT INTO categories (name, slug, parent_id) VALUES ($1, $2, $3)
	`, "ناوخۆ", "nawxo", newsID); err != nil {
		return fmt.Errorf("seed child category: %w", err)
	}

	if _, err := db.Exec(`
		INSERT INTO posts (title, content, excerpt, category_id, status)
		VALUES ($1, $2, $3, $4, 'published')
	`, "بەخێربێن", "یەکەم بابەتی ماڵپەڕ.", "یەکەم بابەت", newsID); err != nil {
		return fmt.Errorf("seed welcome post: %w", err)
	}

	slog.Info("database seeded with default settings and starter content")
	return nil
}
