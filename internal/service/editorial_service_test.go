package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/revanew/site/internal/db"
)

func TestBlogServicePublishStampsOnce(t *testing.T) {
	_, client := setupServiceTestDB(t)
	svc := NewBlogService(client)
	first := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return first }
	ctx := context.Background()

	post, err := svc.Create(ctx, BlogPostInput{Title: "Pipeline hygiene", Slug: "Pipeline Hygiene!", Content: "# Clean\nyour *pipeline*", Status: "published"}, "admin")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if post.Slug != "pipeline-hygiene" {
		t.Fatalf("expected normalized slug, got %q", post.Slug)
	}
	if post.PublishedAt == nil || !post.PublishedAt.Equal(first) {
		t.Fatalf("expected publish time %v, got %v", first, post.PublishedAt)
	}
	if post.Excerpt != "Clean your pipeline" {
		t.Fatalf("expected derived excerpt, got %q", post.Excerpt)
	}
	if post.ReadingTime != 1 {
		t.Fatalf("expected 1 minute read, got %d", post.ReadingTime)
	}

	svc.now = func() time.Time { return first.Add(48 * time.Hour) }
	updated, err := svc.Update(ctx, post.ID, BlogPostInput{Title: "Pipeline hygiene", Slug: "pipeline-hygiene", Status: "published"}, "admin")
	if err != nil {
		t.Fatalf("update post: %v", err)
	}
	if !updated.PublishedAt.Equal(first) {
		t.Fatalf("republishing must keep the first publish time, got %v", updated.PublishedAt)
	}

	drafted, err := svc.Update(ctx, post.ID, BlogPostInput{Title: "Pipeline hygiene", Slug: "pipeline-hygiene"}, "admin")
	if err != nil {
		t.Fatalf("draft post: %v", err)
	}
	if drafted.PublishedAt != nil {
		t.Fatalf("draft must clear publish time, got %v", drafted.PublishedAt)
	}
}

func TestBlogServicePublicReadsHideDrafts(t *testing.T) {
	_, client := setupServiceTestDB(t)
	svc := NewBlogService(client)
	ctx := context.Background()

	for _, input := range []BlogPostInput{
		{Title: "One", Slug: "one", Status: "published"},
		{Title: "Two", Slug: "two", Status: "published"},
		{Title: "Hidden", Slug: "hidden"},
	} {
		if _, err := svc.Create(ctx, input, "admin"); err != nil {
			t.Fatalf("create %s: %v", input.Slug, err)
		}
	}

	result, err := svc.ListPublished(ctx, 1, 1)
	if err != nil {
		t.Fatalf("list published: %v", err)
	}
	if result.Total != 2 || result.TotalPages != 2 || len(result.Items) != 1 {
		t.Fatalf("unexpected pagination %+v", result)
	}

	if _, err := svc.GetPublishedBySlug(ctx, "hidden"); !errors.Is(err, ErrBlogPostNotFound) {
		t.Fatalf("expected draft to be hidden, got %v", err)
	}
	all, err := svc.ListAll(ctx)
	if err != nil || len(all) != 3 {
		t.Fatalf("expected admin list of 3, got %d (%v)", len(all), err)
	}
}

func TestBlogServiceValidation(t *testing.T) {
	_, client := setupServiceTestDB(t)
	svc := NewBlogService(client)
	ctx := context.Background()

	if _, err := svc.Create(ctx, BlogPostInput{Slug: "x"}, "admin"); !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
	if _, err := svc.Create(ctx, BlogPostInput{Title: "x", Slug: "!!"}, "admin"); !errors.Is(err, ErrSlugRequired) {
		t.Fatalf("expected ErrSlugRequired, got %v", err)
	}
	if err := svc.Delete(ctx, 42); !errors.Is(err, ErrBlogPostNotFound) {
		t.Fatalf("expected ErrBlogPostNotFound, got %v", err)
	}
}

func TestCaseStudyServiceFiltersByIndustry(t *testing.T) {
	_, client := setupServiceTestDB(t)
	svc := NewCaseStudyService(client)
	ctx := context.Background()

	for _, input := range []CaseStudyInput{
		{Title: "A", Slug: "a", Industry: "Healthcare", Status: "published"},
		{Title: "B", Slug: "b", Industry: "SaaS", Status: "published"},
		{Title: "C", Slug: "c", Industry: "healthcare"},
	} {
		if _, err := svc.Create(ctx, input, "admin"); err != nil {
			t.Fatalf("create %s: %v", input.Slug, err)
		}
	}

	result, err := svc.ListPublished(ctx, CaseStudyFilter{Industry: "HEALTHCARE"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.Total != 1 || result.Items[0].Slug != "a" {
		t.Fatalf("unexpected filtered result %+v", result.Items)
	}

	if _, err := svc.GetPublishedBySlug(ctx, "acme-crm-rollout"); !errors.Is(err, ErrCaseStudyNotFound) {
		t.Fatalf("expected ErrCaseStudyNotFound, got %v", err)
	}
}

func TestJobServiceListActiveSkipsClosed(t *testing.T) {
	_, client := setupServiceTestDB(t)
	svc := NewJobService(client)
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	past := now.Add(-time.Hour)
	future := now.Add(24 * time.Hour)
	for _, input := range []JobPostingInput{
		{Title: "Analyst", Slug: "analyst", Department: "Analytics", Status: "active", ClosesAt: &future},
		{Title: "Architect", Slug: "architect", Department: "Delivery", Status: "active"},
		{Title: "Expired", Slug: "expired", Department: "Delivery", Status: "active", ClosesAt: &past},
		{Title: "Closed", Slug: "closed", Status: "closed"},
	} {
		if _, err := svc.Create(ctx, input, "admin"); err != nil {
			t.Fatalf("create %s: %v", input.Slug, err)
		}
	}

	jobs, err := svc.ListActive(ctx)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(jobs) != 2 || jobs[0].Slug != "analyst" || jobs[1].Slug != "architect" {
		t.Fatalf("unexpected active jobs %+v", jobs)
	}
	if jobs[0].PostedAt == nil {
		t.Fatal("active posting should be stamped")
	}

	if _, err := svc.Create(ctx, JobPostingInput{Title: "x", Slug: "x", Status: "published"}, "admin"); !errors.Is(err, ErrStatusInvalid) {
		t.Fatalf("expected ErrStatusInvalid, got %v", err)
	}
	if _, err := svc.GetActiveBySlug(ctx, "closed"); !errors.Is(err, ErrJobPostingNotFound) {
		t.Fatalf("expected ErrJobPostingNotFound, got %v", err)
	}
}

func TestJobServiceGetActiveBySlugHonoursClosingTime(t *testing.T) {
	_, client := setupServiceTestDB(t)
	svc := NewJobService(client)
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	expired := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)
	for _, input := range []JobPostingInput{
		{Title: "Expired", Slug: "expired", Status: "active", ClosesAt: &expired},
		{Title: "Open", Slug: "open", Status: "active", ClosesAt: &future},
	} {
		if _, err := svc.Create(ctx, input, "admin"); err != nil {
			t.Fatalf("create %s: %v", input.Slug, err)
		}
	}

	if _, err := svc.GetActiveBySlug(ctx, "expired"); !errors.Is(err, ErrJobPostingNotFound) {
		t.Fatalf("expired posting should be hidden, got %v", err)
	}
	job, err := svc.GetActiveBySlug(ctx, "open")
	if err != nil {
		t.Fatalf("open posting: %v", err)
	}
	if job.Slug != "open" {
		t.Fatalf("unexpected posting %q", job.Slug)
	}

	// 截止时间过后同一职位不再可见
	svc.now = func() time.Time { return future.Add(time.Minute) }
	if _, err := svc.GetActiveBySlug(ctx, "open"); !errors.Is(err, ErrJobPostingNotFound) {
		t.Fatalf("posting past closes_at should be hidden, got %v", err)
	}
}

func TestSupportServiceSearch(t *testing.T) {
	_, client := setupServiceTestDB(t)
	svc := NewSupportService(client)
	ctx := context.Background()

	for _, input := range []SupportArticleInput{
		{Title: "Sandbox access", Slug: "sandbox", Summary: "Invite our team", DisplayOrder: 2, Status: "published"},
		{Title: "First week", Slug: "first-week", Content: "Kickoff and **discovery**", DisplayOrder: 1, Status: "published"},
		{Title: "Sandbox internals", Slug: "sandbox-internals"},
	} {
		if _, err := svc.Create(ctx, input, "admin"); err != nil {
			t.Fatalf("create %s: %v", input.Slug, err)
		}
	}

	all, err := svc.ListPublished(ctx, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0].Slug != "first-week" {
		t.Fatalf("expected display order, got %+v", all)
	}
	if all[0].Summary != "Kickoff and discovery" {
		t.Fatalf("expected derived summary, got %q", all[0].Summary)
	}

	found, err := svc.ListPublished(ctx, "sandbox")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 1 || found[0].Slug != "sandbox" {
		t.Fatalf("unexpected search result %+v", found)
	}
}

func TestTaxonomyService(t *testing.T) {
	_, client := setupServiceTestDB(t)
	svc := NewTaxonomyService(client)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, "Revenue Ops", "")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if category.Slug != "revenue-ops" {
		t.Fatalf("expected derived slug, got %q", category.Slug)
	}
	if _, err := svc.CreateCategory(ctx, " ", ""); !errors.Is(err, ErrCategoryNameRequired) {
		t.Fatalf("expected ErrCategoryNameRequired, got %v", err)
	}
	if _, err := svc.CreateAuthor(ctx, AuthorInput{}); !errors.Is(err, ErrAuthorNameRequired) {
		t.Fatalf("expected ErrAuthorNameRequired, got %v", err)
	}
	if _, err := svc.CreateAuthor(ctx, AuthorInput{Name: "Morgan"}); err != nil {
		t.Fatalf("create author: %v", err)
	}

	categories, _ := svc.ListCategories(ctx)
	authors, _ := svc.ListAuthors(ctx)
	if len(categories) != 1 || len(authors) != 1 {
		t.Fatalf("expected one of each, got %d categories %d authors", len(categories), len(authors))
	}

	posts := NewBlogService(client)
	post, err := posts.Create(ctx, BlogPostInput{Title: "Tagged", Slug: "tagged", Status: db.StatusPublished, CategoryID: &category.ID}, "admin")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	loaded, err := posts.GetPublishedBySlug(ctx, post.Slug)
	if err != nil {
		t.Fatalf("load post: %v", err)
	}
	if loaded.Category == nil || loaded.Category.Name != "Revenue Ops" {
		t.Fatalf("expected category preloaded, got %+v", loaded.Category)
	}
}
