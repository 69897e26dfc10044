package db

import "time"

// BlogPost 定义了博客文章模型，Content 为 Markdown 正文。
type BlogPost struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Slug        string     `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Excerpt     string     `gorm:"type:text" json:"excerpt"`
	Content     string     `gorm:"type:text" json:"content"`
	CoverImage  string     `gorm:"size:500" json:"cover_image"`
	Status      string     `gorm:"size:20;index;default:draft" json:"status"`
	ReadingTime int        `json:"reading_time"`
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
func (BlogPost) TableName() string {
	return "blog_posts"
}
