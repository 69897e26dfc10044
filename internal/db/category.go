package db

import "time"

// Category 用于归类博客文章、案例与支持文档。
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Slug      string    `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 指定自定义表名。
func (Category) TableName() string {
	return "categories"
}

// Author is the byline attached to blog posts and case studies.
type Author struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:120;not null" json:"name"`
	Title     string    `gorm:"size:120" json:"title"`
	AvatarURL string    `gorm:"size:500" json:"avatar_url"`
	Bio       string    `gorm:"type:text" json:"bio"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 指定自定义表名。
func (Author) TableName() string {
	return "authors"
}
