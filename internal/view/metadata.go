// Package view turns resolved CMS content and editorial records into the
// typed structures the HTML templates render.
package view

import (
	"strings"

	"github.com/revanew/site/internal/db"
	"github.com/revanew/site/internal/service"
)

// Kinds of detail pages, used for not-found titles.
const (
	KindPage        = "Page"
	KindBlogPost    = "Blog Post"
	KindCaseStudy   = "Case Study"
	KindJobPosting  = "Job Posting"
	KindArticle     = "Article"
	KindIndustry    = "Industry"
	titleSeparator  = " | "
	defaultKeywords = "revenue operations, CRM, RevOps consulting"
)

// Metadata is rendered into <title> and the meta tags of every public page.
type Metadata struct {
	Title       string
	Description string
	Keywords    string
	Canonical   string
	Image       string
	NotFound    bool
}

// Title appends the site name, "Pricing" becomes "Pricing | REV-ANEW".
func Title(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return service.DefaultSiteName
	}
	return title + titleSeparator + service.DefaultSiteName
}

// NewMetadata builds metadata for a page titled title.
func NewMetadata(title, description string) Metadata {
	return Metadata{
		Title:       Title(title),
		Description: strings.TrimSpace(description),
		Keywords:    defaultKeywords,
	}
}

// NotFoundMetadata is used when a slug does not resolve, e.g.
// "Case Study Not Found | REV-ANEW".
func NotFoundMetadata(kind string) Metadata {
	return Metadata{
		Title:       Title(kind + " Not Found"),
		Description: "The " + strings.ToLower(kind) + " you are looking for does not exist or is no longer available.",
		NotFound:    true,
	}
}

// WithPage overrides title, description and keywords with whatever the CMS page sets.
func (m Metadata) WithPage(page *db.Page) Metadata {
	if page == nil {
		return m
	}
	if title := strings.TrimSpace(page.Title); title != "" {
		m.Title = Title(title)
	}
	if description := strings.TrimSpace(page.MetaDescription); description != "" {
		m.Description = description
	}
	if keywords := strings.TrimSpace(page.MetaKeywords); keywords != "" {
		m.Keywords = keywords
	}
	return m
}

// WithCanonical sets the canonical URL from the site base URL and path.
func (m Metadata) WithCanonical(baseURL, path string) Metadata {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return m
	}
	m.Canonical = baseURL + "/" + strings.TrimLeft(path, "/")
	return m
}

// WithImage sets the social preview image.
func (m Metadata) WithImage(url string) Metadata {
	m.Image = strings.TrimSpace(url)
	return m
}
