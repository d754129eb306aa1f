// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// SiteSettings holds the singleton branding/contact/locale row. It is read
// on nearly every public request and updated wholesale from the admin
// settings form.
type SiteSettings struct {
	ID                 int64    `json:"id"`
	OrgName            string   `json:"org_name"`
	LogoURL            *string  `json:"logo_url"`
	PrimaryColor       string   `json:"primary_color"`
	SecondaryColor     string   `json:"secondary_color"`
	AccentColor        string   `json:"accent_color"`
	SocialFacebook     *string  `json:"social_facebook"`
	SocialTiktok       *string  `json:"social_tiktok"`
	SocialInstagram    *string  `json:"social_instagram"`
	SocialLinkedin     *string  `json:"social_linkedin"`
	SocialYoutube      *string  `json:"social_youtube"`
	AvailableLanguages []string `json:"available_languages"`
	DefaultLanguage    string   `json:"default_language"`
	ContactPhone       *string  `json:"contact_phone"`
	ContactEmail       *string  `json:"contact_email"`
	ContactLocation    *string  `json:"contact_location"`
}

// DefaultSiteSettings returns the settings served when the row is missing
// or unreadable, so public rendering never fails on configuration.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		OrgName:            "زانست و پەروەردەی کوردی",
		PrimaryColor:       "#563a4a",
		SecondaryColor:     "#c29181",
		AccentColor:        "#f0ecee",
		AvailableLanguages: []string{"ku"},
		DefaultLanguage:    "ku",
	}
}
