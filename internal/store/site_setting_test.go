package store

import (
	"context"
	"testing"

	"newsdesk/internal/models"
)

func TestSettingStoreGetServesDefaultsWithoutRow(t *testing.T) {
	db := testDB(t)
	s := NewSettingStore(db)

	// Empty the table; Update reinstates the row afterwards.
	before := s.Get(context.Background())
	if _, err := db.Exec(`DELETE FROM site_settings`); err != nil {
		t.Fatalf("clear settings: %v", err)
	}
	t.Cleanup(func() { s.Update(context.Background(), before) })

	got := s.Get(context.Background())
	want := models.DefaultSiteSettings()
	if got.OrgName != want.OrgName {
		t.Errorf("org_name: got %q, want default %q", got.OrgName, want.OrgName)
	}
	if got.PrimaryColor != want.PrimaryColor {
		t.Errorf("primary_color: got %q, want %q", got.PrimaryColor, want.PrimaryColor)
	}
	if len(got.AvailableLanguages) == 0 {
		t.Error("available_languages must not be empty")
	}
}

func TestSettingStoreUpdateRoundTrip(t *testing.T) {
	db := testDB(t)
	s := NewSettingStore(db)

	before := s.Get(context.Background())
	t.Cleanup(func() { s.Update(context.Background(), before) })

	st := before
	st.OrgName = "Test Org"
	st.LogoURL = strPtr("logo.png")
	st.AvailableLanguages = []string{"ku", "en"}
	st.DefaultLanguage = "en"
	if err := s.Update(context.Background(), st); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got := s.Get(context.Background())
	if got.OrgName != "Test Org" {
		t.Errorf("org_name: got %q, want %q", got.OrgName, "Test Org")
	}
	if got.LogoURL == nil || *got.LogoURL != "/uploads/logo.png" {
		t.Errorf("logo_url: got %v, want /uploads/logo.png", got.LogoURL)
	}
	if len(got.AvailableLanguages) != 2 || got.AvailableLanguages[1] != "en" {
		t.Errorf("languages: got %v, want [ku en]", got.AvailableLanguages)
	}
}
