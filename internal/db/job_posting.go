package db

import "time"

// JobPosting is an open role on the careers page. Status is draft, active or closed.
type JobPosting struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Title          string     `gorm:"size:255;not null" json:"title"`
	Slug           string     `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Department     string     `gorm:"size:120" json:"department"`
	Location       string     `gorm:"size:120" json:"location"`
	EmploymentType string     `gorm:"size:60" json:"employment_type"`
	Description    string     `gorm:"type:text" json:"description"`
	Requirements   string     `gorm:"type:text" json:"requirements"`
	ApplyURL       string     `gorm:"size:500" json:"apply_url"`
	Status         string     `gorm:"size:20;index;default:draft" json:"status"`
	PostedAt       *time.Time `json:"posted_at"`
	ClosesAt       *time.Time `json:"closes_at"`
	CreatedBy      string     `gorm:"size:100" json:"created_by"`
	UpdatedBy      string     `gorm:"size:100" json:"updated_by"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TableName 指定自定义表名。
func (JobPosting) TableName() string {
	return "job_postings"
}
