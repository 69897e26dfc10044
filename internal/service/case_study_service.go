package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/revanew/site/internal/db"
	"github.com/revanew/site/internal/store"
)

var ErrCaseStudyNotFound = errors.New("case study not found")

// CaseStudyInput represents fields accepted when creating or updating a case study.
type CaseStudyInput struct {
	Title      string
	Slug       string
	ClientName string
	Industry   string
	Summary    string
	Challenge  string
	Solution   string
	Results    string
	Content    string
	CoverImage string
	Status     string
	CategoryID *uint
	AuthorID   *uint
}

// CaseStudyFilter narrows public case study listings.
type CaseStudyFilter struct {
	Industry string
	Page     int
	PerPage  int
}

// CaseStudyService handles case study CRUD.
type CaseStudyService struct {
	store *store.Client
	now   func() time.Time
}

// NewCaseStudyService creates a CaseStudyService instance.
func NewCaseStudyService(client *store.Client) *CaseStudyService {
	return &CaseStudyService{store: client, now: time.Now}
}

// ListPublished returns published case studies, optionally for one industry.
func (s *CaseStudyService) ListPublished(ctx context.Context, filter CaseStudyFilter) (ListResult[db.CaseStudy], error) {
	gdb, err := s.store.Read(ctx)
	if err != nil {
		return ListResult[db.CaseStudy]{}, err
	}
	query := gdb.Model(&db.CaseStudy{}).Where("status = ?", db.StatusPublished)
	if industry := strings.TrimSpace(filter.Industry); industry != "" {
		query = query.Where("LOWER(industry) = ?", strings.ToLower(industry))
	}
	query = query.Order("published_at desc, id desc")
	return paginate[db.CaseStudy](query, filter.Page, filter.PerPage, 9, "Category", "Author")
}

// ListAll returns every case study for the admin.
func (s *CaseStudyService) ListAll(ctx context.Context) ([]db.CaseStudy, error) {
	gdb, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	var items []db.CaseStudy
	if err := gdb.Preload("Category").Preload("Author").Order("updated_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetPublishedBySlug fetches a published case study.
func (s *CaseStudyService) GetPublishedBySlug(ctx context.Context, slug string) (*db.CaseStudy, error) {
	slug = NormalizeSlug(slug)
	if slug == "" {
		return nil, ErrCaseStudyNotFound
	}
	gdb, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	var item db.CaseStudy
	query := gdb.Preload("Category").Preload("Author").Where("slug = ? AND status = ?", slug, db.StatusPublished)
	if err := firstOr(query, &item, ErrCaseStudyNotFound); err != nil {
		return nil, err
	}
	return &item, nil
}

// Get fetches a case study by id regardless of status.
func (s *CaseStudyService) Get(ctx context.Context, id uint) (*db.CaseStudy, error) {
	gdb, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	var item db.CaseStudy
	if err := firstOr(gdb.Preload("Category").Preload("Author"), &item, ErrCaseStudyNotFound, id); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts a new case study.
func (s *CaseStudyService) Create(ctx context.Context, input CaseStudyInput, actor string) (*db.CaseStudy, error) {
	item := db.CaseStudy{CreatedBy: actor}
	if err := s.apply(&item, input); err != nil {
		return nil, err
	}
	item.UpdatedBy = actor

	gdb, err := s.store.Write(ctx)
	if err != nil {
		return nil, err
	}
	if err := gdb.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create case study: %w", err)
	}
	return &item, nil
}

// Update modifies an existing case study.
func (s *CaseStudyService) Update(ctx context.Context, id uint, input CaseStudyInput, actor string) (*db.CaseStudy, error) {
	gdb, err := s.store.Write(ctx)
	if err != nil {
		return nil, err
	}

	var item db.CaseStudy
	if err := firstOr(gdb, &item, ErrCaseStudyNotFound, id); err != nil {
		return nil, err
	}
	if err := s.apply(&item, input); err != nil {
		return nil, err
	}
	item.UpdatedBy = actor

	if err := gdb.Omit("Category", "Author").Save(&item).Error; err != nil {
		return nil, fmt.Errorf("update case study: %w", err)
	}
	return &item, nil
}

// Delete removes a case study.
func (s *CaseStudyService) Delete(ctx context.Context, id uint) error {
	gdb, err := s.store.Write(ctx)
	if err != nil {
		return err
	}
	return deleteByID(gdb, &db.CaseStudy{}, id, ErrCaseStudyNotFound)
}

func (s *CaseStudyService) apply(item *db.CaseStudy, input CaseStudyInput) error {
	title, slug, err := requireTitleAndSlug(input.Title, input.Slug)
	if err != nil {
		return err
	}
	status := normalizeStatus(input.Status, db.StatusDraft)
	if !db.ValidEditorialStatus(status) {
		return ErrStatusInvalid
	}

	item.Title = title
	item.Slug = slug
	item.ClientName = strings.TrimSpace(input.ClientName)
	item.Industry = strings.TrimSpace(input.Industry)
	item.Summary = strings.TrimSpace(input.Summary)
	item.Challenge = input.Challenge
	item.Solution = input.Solution
	item.Results = input.Results
	item.Content = input.Content
	item.CoverImage = strings.TrimSpace(input.CoverImage)
	item.Status = status
	item.CategoryID = optionalID(input.CategoryID)
	item.AuthorID = optionalID(input.AuthorID)
	item.PublishedAt = publishedAtFor(status, item.PublishedAt, s.now())
	return nil
}
