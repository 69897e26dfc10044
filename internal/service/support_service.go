package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/revanew/site/internal/db"
	"github.com/revanew/site/internal/store"
)

var ErrSupportArticleNotFound = errors.New("support article not found")

// SupportArticleInput represents fields accepted when creating or updating an article.
type SupportArticleInput struct {
	Title        string
	Slug         string
	Summary      string
	Content      string
	CategoryID   *uint
	DisplayOrder int
	Status       string
}

// SupportService manages help center articles.
type SupportService struct {
	store *store.Client
}

// NewSupportService creates a SupportService instance.
func NewSupportService(client *store.Client) *SupportService {
	return &SupportService{store: client}
}

// ListPublished returns published articles ordered by display_order then title.
// A non-empty search matches title or summary.
func (s *SupportService) ListPublished(ctx context.Context, search string) ([]db.SupportArticle, error) {
	gdb, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	query := gdb.Preload("Category").Where("status = ?", db.StatusPublished)
	if search = strings.TrimSpace(search); search != "" {
		like := "%" + search + "%"
		query = query.Where("title LIKE ? OR summary LIKE ?", like, like)
	}

	var articles []db.SupportArticle
	if err := query.Order("display_order asc, title asc").Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

// ListAll returns every article for the admin.
func (s *SupportService) ListAll(ctx context.Context) ([]db.SupportArticle, error) {
	gdb, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	var articles []db.SupportArticle
	if err := gdb.Preload("Category").Order("display_order asc, title asc").Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

// GetPublishedBySlug fetches a published article.
func (s *SupportService) GetPublishedBySlug(ctx context.Context, slug string) (*db.SupportArticle, error) {
	slug = NormalizeSlug(slug)
	if slug == "" {
		return nil, ErrSupportArticleNotFound
	}
	gdb, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	var article db.SupportArticle
	query := gdb.Preload("Category").Where("slug = ? AND status = ?", slug, db.StatusPublished)
	if err := firstOr(query, &article, ErrSupportArticleNotFound); err != nil {
		return nil, err
	}
	return &article, nil
}

// Get fetches an article by id regardless of status.
func (s *SupportService) Get(ctx context.Context, id uint) (*db.SupportArticle, error) {
	gdb, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	var article db.SupportArticle
	if err := firstOr(gdb.Preload("Category"), &article, ErrSupportArticleNotFound, id); err != nil {
		return nil, err
	}
	return &article, nil
}

// Create inserts an article.
func (s *SupportService) Create(ctx context.Context, input SupportArticleInput, actor string) (*db.SupportArticle, error) {
	article := db.SupportArticle{CreatedBy: actor}
	if err := applySupportInput(&article, input); err != nil {
		return nil, err
	}
	article.UpdatedBy = actor

	gdb, err := s.store.Write(ctx)
	if err != nil {
		return nil, err
	}
	if err := gdb.Create(&article).Error; err != nil {
		return nil, fmt.Errorf("create support article: %w", err)
	}
	return &article, nil
}

// Update modifies an article.
func (s *SupportService) Update(ctx context.Context, id uint, input SupportArticleInput, actor string) (*db.SupportArticle, error) {
	gdb, err := s.store.Write(ctx)
	if err != nil {
		return nil, err
	}

	var article db.SupportArticle
	if err := firstOr(gdb, &article, ErrSupportArticleNotFound, id); err != nil {
		return nil, err
	}
	if err := applySupportInput(&article, input); err != nil {
		return nil, err
	}
	article.UpdatedBy = actor

	if err := gdb.Omit("Category").Save(&article).Error; err != nil {
		return nil, fmt.Errorf("update support article: %w", err)
	}
	return &article, nil
}

// Delete removes an article.
func (s *SupportService) Delete(ctx context.Context, id uint) error {
	gdb, err := s.store.Write(ctx)
	if err != nil {
		return err
	}
	return deleteByID(gdb, &db.SupportArticle{}, id, ErrSupportArticleNotFound)
}

func applySupportInput(article *db.SupportArticle, input SupportArticleInput) error {
	title, slug, err := requireTitleAndSlug(input.Title, input.Slug)
	if err != nil {
		return err
	}
	status := normalizeStatus(input.Status, db.StatusDraft)
	if !db.ValidEditorialStatus(status) {
		return ErrStatusInvalid
	}

	article.Title = title
	article.Slug = slug
	article.Summary = strings.TrimSpace(input.Summary)
	if article.Summary == "" {
		article.Summary = summarizeContent(input.Content, 140)
	}
	article.Content = input.Content
	article.CategoryID = optionalID(input.CategoryID)
	article.DisplayOrder = input.DisplayOrder
	article.Status = status
	return nil
}
