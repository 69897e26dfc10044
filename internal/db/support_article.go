package db

import "time"

// SupportArticle 为帮助中心文档，DisplayOrder 越小越靠前。
type SupportArticle struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Slug         string    `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Summary      string    `gorm:"type:text" json:"summary"`
	Content      string    `gorm:"type:text" json:"content"`
	CategoryID   *uint     `json:"category_id"`
	Category     *Category `json:"category,omitempty"`
	DisplayOrder int       `gorm:"default:0" json:"display_order"`
	Status       string    `gorm:"size:20;index;default:draft" json:"status"`
	CreatedBy    string    `gorm:"size:100" json:"created_by"`
	UpdatedBy    string    `gorm:"size:100" json:"updated_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName 指定自定义表名。
func (SupportArticle) TableName() string {
	return "support_articles"
}
