package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/revanew/site/internal/db"
	"github.com/revanew/site/internal/store"
)

var (
	ErrCategoryNameRequired = errors.New("category name is required")
	ErrAuthorNameRequired   = errors.New("author name is required")
)

// AuthorInput represents fields accepted when creating an author.
type AuthorInput struct {
	Name      string
	Title     string
	AvatarURL string
	Bio       string
}

// TaxonomyService manages categories and authors referenced by editorial records.
type TaxonomyService struct {
	store *store.Client
}

// NewTaxonomyService creates a TaxonomyService instance.
func NewTaxonomyService(client *store.Client) *TaxonomyService {
	return &TaxonomyService{store: client}
}

// ListCategories returns categories ordered by name.
func (s *TaxonomyService) ListCategories(ctx context.Context) ([]db.Category, error) {
	gdb, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	var categories []db.Category
	if err := gdb.Order("name asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory inserts a category. An empty slug is derived from the name.
func (s *TaxonomyService) CreateCategory(ctx context.Context, name, slug string) (*db.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}
	slug = NormalizeSlug(slug)
	if slug == "" {
		slug = NormalizeSlug(name)
	}
	if slug == "" {
		return nil, ErrSlugRequired
	}

	gdb, err := s.store.Write(ctx)
	if err != nil {
		return nil, err
	}
	category := db.Category{Name: name, Slug: slug}
	if err := gdb.Create(&category).Error; err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &category, nil
}

// ListAuthors returns authors ordered by name.
func (s *TaxonomyService) ListAuthors(ctx context.Context) ([]db.Author, error) {
	gdb, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	var authors []db.Author
	if err := gdb.Order("name asc").Find(&authors).Error; err != nil {
		return nil, err
	}
	return authors, nil
}

// CreateAuthor inserts an author.
func (s *TaxonomyService) CreateAuthor(ctx context.Context, input AuthorInput) (*db.Author, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrAuthorNameRequired
	}

	gdb, err := s.store.Write(ctx)
	if err != nil {
		return nil, err
	}
	author := db.Author{
		Name:      name,
		Title:     strings.TrimSpace(input.Title),
		AvatarURL: strings.TrimSpace(input.AvatarURL),
		Bio:       strings.TrimSpace(input.Bio),
	}
	if err := gdb.Create(&author).Error; err != nil {
		return nil, fmt.Errorf("create author: %w", err)
	}
	return &author, nil
}
