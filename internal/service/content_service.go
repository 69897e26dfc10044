package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/revanew/site/internal/db"
	"github.com/revanew/site/internal/metrics"
	"github.com/revanew/site/internal/store"
)

const resolveConcurrency = 4

// SectionContent is a published section joined with its ordered fields.
type SectionContent struct {
	Route   string
	Section db.Section
	index   map[string]int
}

// NewSectionContent wraps a section whose Fields are already in render order.
func NewSectionContent(route string, section db.Section) *SectionContent {
	sc := &SectionContent{Route: route, Section: section, index: make(map[string]int, len(section.Fields))}
	for i, field := range section.Fields {
		sc.index[field.FieldKey] = i
	}
	return sc
}

// Key returns the section key.
func (s *SectionContent) Key() string {
	if s == nil {
		return ""
	}
	return s.Section.SectionKey
}

// Fields returns the fields in render order.
func (s *SectionContent) Fields() []db.ContentField {
	if s == nil {
		return nil
	}
	return s.Section.Fields
}

// Field looks up a field row by key.
func (s *SectionContent) Field(key string) (db.ContentField, bool) {
	if s == nil {
		return db.ContentField{}, false
	}
	i, ok := s.index[key]
	if !ok {
		return db.ContentField{}, false
	}
	return s.Section.Fields[i], true
}

// Value returns the field value when the field exists and carries a non-blank value.
func (s *SectionContent) Value(key string) (string, bool) {
	field, ok := s.Field(key)
	if !ok || field.FieldValue == nil {
		return "", false
	}
	value := strings.TrimSpace(*field.FieldValue)
	if value == "" {
		return "", false
	}
	return value, true
}

// Text returns the field value or fallback.
func (s *SectionContent) Text(key, fallback string) string {
	if value, ok := s.Value(key); ok {
		return value
	}
	return fallback
}

// Bool parses a boolean field, returning fallback when absent or unparsable.
func (s *SectionContent) Bool(key string, fallback bool) bool {
	value, ok := s.Value(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// PageContent is a published page with its published sections in render order.
type PageContent struct {
	Page     db.Page
	Sections []*SectionContent
}

// Section returns the section with key, or nil.
func (p *PageContent) Section(key string) *SectionContent {
	if p == nil {
		return nil
	}
	for _, section := range p.Sections {
		if section.Key() == key {
			return section
		}
	}
	return nil
}

// ContentService resolves CMS sections for public rendering. Absence and store
// failures both come back as nil so callers fall back to their defaults.
type ContentService struct {
	store *store.Client
	log   *zap.SugaredLogger
}

// NewContentService returns a ContentService.
func NewContentService(client *store.Client, log *zap.SugaredLogger) *ContentService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &ContentService{store: client, log: log}
}

// GetSectionContent returns the published section sectionKey of the published
// page at route, with fields ordered by display_order then field_key. It
// returns nil when either is missing, unpublished or the store fails.
func (s *ContentService) GetSectionContent(ctx context.Context, route, sectionKey string) *SectionContent {
	route = NormalizeRoute(route)
	sectionKey = strings.TrimSpace(sectionKey)
	if route == "" || sectionKey == "" {
		return nil
	}

	gdb, err := s.store.Read(ctx)
	if err != nil {
		s.fail(err, "route", route, "section", sectionKey)
		return nil
	}

	page, err := s.publishedPage(gdb, route)
	if err != nil {
		s.fail(err, "route", route, "section", sectionKey)
		return nil
	}
	if page == nil {
		metrics.ContentResolutions.WithLabelValues("miss").Inc()
		return nil
	}

	var section db.Section
	err = gdb.Preload("Fields", orderFields).
		Where("page_id = ? AND section_key = ? AND status = ?", page.ID, sectionKey, db.StatusPublished).
		First(&section).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.ContentResolutions.WithLabelValues("miss").Inc()
			return nil
		}
		s.fail(err, "route", route, "section", sectionKey)
		return nil
	}

	metrics.ContentResolutions.WithLabelValues("hit").Inc()
	return NewSectionContent(route, section)
}

// GetPage returns the published page row at route without its sections, or
// nil when it is missing, unpublished or the store fails.
func (s *ContentService) GetPage(ctx context.Context, route string) *db.Page {
	route = NormalizeRoute(route)
	if route == "" {
		return nil
	}
	gdb, err := s.store.Read(ctx)
	if err != nil {
		s.fail(err, "route", route)
		return nil
	}
	page, err := s.publishedPage(gdb, route)
	if err != nil {
		s.fail(err, "route", route)
		return nil
	}
	return page
}

// GetPageContent returns the published page at route with every published
// section ordered by display_order then section_key.
func (s *ContentService) GetPageContent(ctx context.Context, route string) *PageContent {
	route = NormalizeRoute(route)
	if route == "" {
		return nil
	}

	gdb, err := s.store.Read(ctx)
	if err != nil {
		s.fail(err, "route", route)
		return nil
	}

	page, err := s.publishedPage(gdb, route)
	if err != nil {
		s.fail(err, "route", route)
		return nil
	}
	if page == nil {
		metrics.ContentResolutions.WithLabelValues("miss").Inc()
		return nil
	}

	var sections []db.Section
	if err := gdb.Preload("Fields", orderFields).
		Where("page_id = ? AND status = ?", page.ID, db.StatusPublished).
		Order("display_order asc, section_key asc, id asc").
		Find(&sections).Error; err != nil {
		s.fail(err, "route", route)
		return nil
	}

	content := &PageContent{Page: *page, Sections: make([]*SectionContent, 0, len(sections))}
	for _, section := range sections {
		content.Sections = append(content.Sections, NewSectionContent(route, section))
	}
	metrics.ContentResolutions.WithLabelValues("hit").Inc()
	return content
}

// ResolveSections looks up several sections of one route concurrently. Every
// requested key is present in the result; unresolved keys map to nil.
func (s *ContentService) ResolveSections(ctx context.Context, route string, keys ...string) map[string]*SectionContent {
	resolved := make([]*SectionContent, len(keys))

	var g errgroup.Group
	g.SetLimit(resolveConcurrency)
	for i, key := range keys {
		g.Go(func() error {
			resolved[i] = s.GetSectionContent(ctx, route, key)
			return nil
		})
	}
	_ = g.Wait()

	result := make(map[string]*SectionContent, len(keys))
	for i, key := range keys {
		result[key] = resolved[i]
	}
	return result
}

func (s *ContentService) publishedPage(gdb *gorm.DB, route string) (*db.Page, error) {
	var page db.Page
	err := gdb.Where("route = ? AND status = ?", route, db.StatusPublished).First(&page).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &page, nil
}

func (s *ContentService) fail(err error, keysAndValues ...interface{}) {
	metrics.ContentResolutions.WithLabelValues("error").Inc()
	if errors.Is(err, store.ErrUnavailable) {
		s.log.Debugw("content store unavailable", keysAndValues...)
		return
	}
	s.log.Errorw("content resolution failed", append(keysAndValues, "err", err)...)
}

func orderFields(tx *gorm.DB) *gorm.DB {
	return tx.Order("display_order asc, field_key asc, id asc")
}

// NormalizeRoute trims a route to its canonical form: a leading slash and no
// trailing slash except for the root.
func NormalizeRoute(route string) string {
	trimmed := strings.TrimSpace(route)
	if trimmed == "" {
		return ""
	}
	trimmed = "/" + strings.Trim(trimmed, "/")
	return trimmed
}
