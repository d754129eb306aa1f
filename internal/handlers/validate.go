package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for user-supplied fields.
const (
	maxTitleLen   = 500
	maxSlugLen    = 255
	maxNameLen    = 255
	maxContentLen = 200_000
	maxExcerptLen = 2_000
	maxLabelLen   = 255
	maxURLLen     = 2_000
)

// validatePost checks post inputs and returns the first error found.
func validatePost(title, content, excerpt string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "title is required"
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "title is too long (max 500 characters)"
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return "content is too long (max 200,000 characters)"
	}
	if utf8.RuneCountInString(excerpt) > maxExcerptLen {
		return "excerpt is too long (max 2,000 characters)"
	}
	return ""
}

// validateName checks a category or tag name.
func validateName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "name is required"
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "name is too long (max 255 characters)"
	}
	return ""
}

// validateMenuItem checks menu item inputs.
func validateMenuItem(label, itemType string) string {
	if strings.TrimSpace(label) == "" {
		return "label is required"
	}
	if utf8.RuneCountInString(label) > maxLabelLen {
		return "label is too long (max 255 characters)"
	}
	switch itemType {
	case "page", "category", "custom":
		return ""
	}
	return "type must be page, category or custom"
}

// validatePage checks page inputs.
func validatePage(title, slug string) string {
	if strings.TrimSpace(title) == "" {
		return "title is required"
	}
	if utf8.RuneCountInString(title) > maxNameLen {
		return "title is too long (max 255 characters)"
	}
	if utf8.RuneCountInString(slug) > maxSlugLen {
		return "slug is too long (max 255 characters)"
	}
	return ""
}
