package service

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Validation errors shared by the editorial services.
var (
	ErrTitleRequired = errors.New("title is required")
	ErrSlugRequired  = errors.New("slug is required")
	ErrStatusInvalid = errors.New("status is invalid")
)

var slugUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeSlug lowercases a slug and collapses anything outside [a-z0-9] to
// single hyphens.
func NormalizeSlug(raw string) string {
	slug := slugUnsafe.ReplaceAllString(strings.ToLower(strings.TrimSpace(raw)), "-")
	return strings.Trim(slug, "-")
}

func normalizeStatus(status, fallback string) string {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" {
		return fallback
	}
	return status
}

// requireTitleAndSlug validates the two fields every editorial record needs
// and returns their normalized forms.
func requireTitleAndSlug(title, slug string) (string, string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", "", ErrTitleRequired
	}
	slug = NormalizeSlug(slug)
	if slug == "" {
		return "", "", ErrSlugRequired
	}
	return title, slug, nil
}

// publishedAtFor keeps an existing publish time, stamps now on the first
// publish and clears it for drafts.
func publishedAtFor(status string, current *time.Time, now time.Time) *time.Time {
	if status != "published" {
		return nil
	}
	if current != nil && !current.IsZero() {
		return current
	}
	stamp := now.UTC()
	return &stamp
}

func calculateReadingTime(content string) int {
	words := len(strings.Fields(content))
	if words == 0 {
		return 0
	}
	minutes := words / 200
	if words%200 != 0 {
		minutes++
	}
	return minutes
}

func summarizeContent(markdown string, limit int) string {
	replacer := strings.NewReplacer(
		"#", " ",
		"*", " ",
		"`", " ",
		"_", " ",
		">", " ",
		"[", " ",
		"]", " ",
		"(", " ",
		")", " ",
	)
	plain := strings.Join(strings.Fields(replacer.Replace(markdown)), " ")
	if plain == "" {
		return ""
	}

	if utf8.RuneCountInString(plain) <= limit {
		return plain
	}

	runes := []rune(plain)
	return strings.TrimSpace(string(runes[:limit])) + "…"
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func normalizePerPage(perPage, fallback int) int {
	if perPage <= 0 {
		return fallback
	}
	return perPage
}

func calculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 {
		return 1
	}
	if total == 0 {
		return 1
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

func optionalID(id *uint) *uint {
	if id == nil || *id == 0 {
		return nil
	}
	value := *id
	return &value
}
