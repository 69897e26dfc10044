package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/revanew/site/internal/db"
	"github.com/revanew/site/internal/store"
)

var ErrJobPostingNotFound = errors.New("job posting not found")

// JobPostingInput represents fields accepted when creating or updating a posting.
type JobPostingInput struct {
	Title          string
	Slug           string
	Department     string
	Location       string
	EmploymentType string
	Description    string
	Requirements   string
	ApplyURL       string
	Status         string
	ClosesAt       *time.Time
}

// JobService manages careers postings.
type JobService struct {
	store *store.Client
	now   func() time.Time
}

// NewJobService creates a JobService instance.
func NewJobService(client *store.Client) *JobService {
	return &JobService{store: client, now: time.Now}
}

// ListActive returns active postings ordered by department then title.
// Postings past their closing time are left out.
func (s *JobService) ListActive(ctx context.Context) ([]db.JobPosting, error) {
	gdb, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	var jobs []db.JobPosting
	if err := s.open(gdb).
		Order("department asc, title asc").
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// ListAll returns every posting for the admin.
func (s *JobService) ListAll(ctx context.Context) ([]db.JobPosting, error) {
	gdb, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	var jobs []db.JobPosting
	if err := gdb.Order("updated_at desc").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// open scopes a query to postings the careers pages may show: active and not
// past closes_at.
func (s *JobService) open(gdb *gorm.DB) *gorm.DB {
	return gdb.Where("status = ?", db.JobStatusActive).
		Where("closes_at IS NULL OR closes_at > ?", s.now().UTC())
}

// GetActiveBySlug fetches an open posting for the careers page.
func (s *JobService) GetActiveBySlug(ctx context.Context, slug string) (*db.JobPosting, error) {
	slug = NormalizeSlug(slug)
	if slug == "" {
		return nil, ErrJobPostingNotFound
	}
	gdb, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	var job db.JobPosting
	if err := firstOr(s.open(gdb).Where("slug = ?", slug), &job, ErrJobPostingNotFound); err != nil {
		return nil, err
	}
	return &job, nil
}

// Get fetches a posting by id regardless of status.
func (s *JobService) Get(ctx context.Context, id uint) (*db.JobPosting, error) {
	gdb, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	var job db.JobPosting
	if err := firstOr(gdb, &job, ErrJobPostingNotFound, id); err != nil {
		return nil, err
	}
	return &job, nil
}

// Create inserts a posting.
func (s *JobService) Create(ctx context.Context, input JobPostingInput, actor string) (*db.JobPosting, error) {
	job := db.JobPosting{CreatedBy: actor}
	if err := s.apply(&job, input); err != nil {
		return nil, err
	}
	job.UpdatedBy = actor

	gdb, err := s.store.Write(ctx)
	if err != nil {
		return nil, err
	}
	if err := gdb.Create(&job).Error; err != nil {
		return nil, fmt.Errorf("create job posting: %w", err)
	}
	return &job, nil
}

// Update modifies a posting.
func (s *JobService) Update(ctx context.Context, id uint, input JobPostingInput, actor string) (*db.JobPosting, error) {
	gdb, err := s.store.Write(ctx)
	if err != nil {
		return nil, err
	}

	var job db.JobPosting
	if err := firstOr(gdb, &job, ErrJobPostingNotFound, id); err != nil {
		return nil, err
	}
	if err := s.apply(&job, input); err != nil {
		return nil, err
	}
	job.UpdatedBy = actor

	if err := gdb.Save(&job).Error; err != nil {
		return nil, fmt.Errorf("update job posting: %w", err)
	}
	return &job, nil
}

// Delete removes a posting.
func (s *JobService) Delete(ctx context.Context, id uint) error {
	gdb, err := s.store.Write(ctx)
	if err != nil {
		return err
	}
	return deleteByID(gdb, &db.JobPosting{}, id, ErrJobPostingNotFound)
}

func (s *JobService) apply(job *db.JobPosting, input JobPostingInput) error {
	title, slug, err := requireTitleAndSlug(input.Title, input.Slug)
	if err != nil {
		return err
	}
	status := normalizeStatus(input.Status, db.JobStatusDraft)
	if !db.ValidJobStatus(status) {
		return ErrStatusInvalid
	}

	job.Title = title
	job.Slug = slug
	job.Department = strings.TrimSpace(input.Department)
	job.Location = strings.TrimSpace(input.Location)
	job.EmploymentType = strings.TrimSpace(input.EmploymentType)
	job.Description = input.Description
	job.Requirements = input.Requirements
	job.ApplyURL = strings.TrimSpace(input.ApplyURL)
	job.Status = status
	job.ClosesAt = input.ClosesAt
	if status == db.JobStatusActive && job.PostedAt == nil {
		posted := s.now().UTC()
		job.PostedAt = &posted
	}
	return nil
}
