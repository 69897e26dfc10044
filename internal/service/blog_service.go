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

var ErrBlogPostNotFound = errors.New("blog post not found")

// BlogPostInput represents fields accepted when creating or updating a post.
type BlogPostInput struct {
	Title      string
	Slug       string
	Excerpt    string
	Content    string
	CoverImage string
	Status     string
	CategoryID *uint
	AuthorID   *uint
}

// BlogService wraps blog post database operations.
type BlogService struct {
	store *store.Client
	now   func() time.Time
}

// NewBlogService creates a BlogService instance.
func NewBlogService(client *store.Client) *BlogService {
	return &BlogService{store: client, now: time.Now}
}

// ListPublished returns published posts, newest first.
func (s *BlogService) ListPublished(ctx context.Context, page, perPage int) (ListResult[db.BlogPost], error) {
	gdb, err := s.store.Read(ctx)
	if err != nil {
		return ListResult[db.BlogPost]{}, err
	}
	query := gdb.Model(&db.BlogPost{}).
		Where("status = ?", db.StatusPublished).
		Order("published_at desc, id desc")
	return paginate[db.BlogPost](query, page, perPage, 9, "Category", "Author")
}

// ListAll returns every post for the admin, most recently updated first.
func (s *BlogService) ListAll(ctx context.Context) ([]db.BlogPost, error) {
	gdb, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	var posts []db.BlogPost
	if err := gdb.Preload("Category").Preload("Author").Order("updated_at desc").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPublishedBySlug fetches a published post for the public blog.
func (s *BlogService) GetPublishedBySlug(ctx context.Context, slug string) (*db.BlogPost, error) {
	slug = NormalizeSlug(slug)
	if slug == "" {
		return nil, ErrBlogPostNotFound
	}
	gdb, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	var post db.BlogPost
	query := gdb.Preload("Category").Preload("Author").Where("slug = ? AND status = ?", slug, db.StatusPublished)
	if err := firstOr(query, &post, ErrBlogPostNotFound); err != nil {
		return nil, err
	}
	return &post, nil
}

// Get fetches a post by id regardless of status.
func (s *BlogService) Get(ctx context.Context, id uint) (*db.BlogPost, error) {
	gdb, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	var post db.BlogPost
	if err := firstOr(gdb.Preload("Category").Preload("Author"), &post, ErrBlogPostNotFound, id); err != nil {
		return nil, err
	}
	return &post, nil
}

// Create persists a new post.
func (s *BlogService) Create(ctx context.Context, input BlogPostInput, actor string) (*db.BlogPost, error) {
	post := db.BlogPost{CreatedBy: actor}
	if err := s.apply(&post, input); err != nil {
		return nil, err
	}
	post.UpdatedBy = actor

	gdb, err := s.store.Write(ctx)
	if err != nil {
		return nil, err
	}
	if err := gdb.Create(&post).Error; err != nil {
		return nil, fmt.Errorf("create blog post: %w", err)
	}
	return &post, nil
}

// Update applies input to an existing post.
func (s *BlogService) Update(ctx context.Context, id uint, input BlogPostInput, actor string) (*db.BlogPost, error) {
	gdb, err := s.store.Write(ctx)
	if err != nil {
		return nil, err
	}

	var post db.BlogPost
	if err := firstOr(gdb, &post, ErrBlogPostNotFound, id); err != nil {
		return nil, err
	}
	if err := s.apply(&post, input); err != nil {
		return nil, err
	}
	post.UpdatedBy = actor

	if err := gdb.Omit("Category", "Author").Save(&post).Error; err != nil {
		return nil, fmt.Errorf("update blog post: %w", err)
	}
	return &post, nil
}

// Delete removes a post by id.
func (s *BlogService) Delete(ctx context.Context, id uint) error {
	gdb, err := s.store.Write(ctx)
	if err != nil {
		return err
	}
	return deleteByID(gdb, &db.BlogPost{}, id, ErrBlogPostNotFound)
}

func (s *BlogService) apply(post *db.BlogPost, input BlogPostInput) error {
	title, slug, err := requireTitleAndSlug(input.Title, input.Slug)
	if err != nil {
		return err
	}
	status := normalizeStatus(input.Status, db.StatusDraft)
	if !db.ValidEditorialStatus(status) {
		return ErrStatusInvalid
	}

	post.Title = title
	post.Slug = slug
	post.Content = input.Content
	post.Excerpt = strings.TrimSpace(input.Excerpt)
	if post.Excerpt == "" {
		post.Excerpt = summarizeContent(input.Content, 160)
	}
	post.CoverImage = strings.TrimSpace(input.CoverImage)
	post.Status = status
	post.ReadingTime = calculateReadingTime(input.Content)
	post.CategoryID = optionalID(input.CategoryID)
	post.AuthorID = optionalID(input.AuthorID)
	post.PublishedAt = publishedAtFor(status, post.PublishedAt, s.now())
	return nil
}
