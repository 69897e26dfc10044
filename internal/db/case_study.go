package db

import "time"

// CaseStudy 描述一个客户成功案例。
type CaseStudy struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Slug        string     `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	ClientName  string     `gorm:"size:255" json:"client_name"`
	Industry    string     `gorm:"size:120;index" json:"industry"`
	Summary     string     `gorm:"type:text" json:"summary"`
	Challenge   string     `gorm:"type:text" json:"challenge"`
	Solution    string     `gorm:"type:text" json:"solution"`
	Results     string     `gorm:"type:text" json:"results"`
	Content     string     `gorm:"type:text" json:"content"`
	CoverImage  string     `gorm:"size:500" json:"cover_image"`
	Status      string     `gorm:"size:20;index;default:draft" json:"status"`
	CategoryID  *uint      `json:"category_id"`
	Category    *Category  `json:"category,omitempty"`
	AuthorID    *uint      `json:"author_id"`
	Author      *Author    `json:"author,omitempty"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedBy   string     `gorm:"size:100" json:"created_by"`
	UpdatedBy   string     `gorm:"size:100" json:"updated_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName 指定自定义表名。
func (CaseStudy) TableName() string {
	return "case_studies"
}
