package db

import "time"

// Page is a routable page whose sections can be overridden from the admin.
// Route is the page identity, e.g. "/" or "/industries/healthcare".
type Page struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Route           string    `gorm:"size:255;uniqueIndex;not null" json:"route"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	MetaDescription string    `gorm:"size:500" json:"meta_description"`
	MetaKeywords    string    `gorm:"size:500" json:"meta_keywords"`
	Status          string    `gorm:"size:20;index;default:draft" json:"status"`
	CreatedBy       string    `gorm:"size:100" json:"created_by"`
	UpdatedBy       string    `gorm:"size:100" json:"updated_by"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Sections        []Section `gorm:"constraint:OnDelete:CASCADE" json:"sections,omitempty"`
}

// TableName 指定自定义表名。
func (Page) TableName() string {
	return "pages"
}

// Section is an orderable block of a page. SectionKey is unique per page.
type Section struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	PageID       uint           `gorm:"not null;uniqueIndex:idx_sections_page_key" json:"page_id"`
	SectionKey   string         `gorm:"size:100;not null;uniqueIndex:idx_sections_page_key" json:"section_key"`
	SectionType  string         `gorm:"size:50" json:"section_type"`
	DisplayOrder int            `gorm:"default:0;index" json:"display_order"`
	Status       string         `gorm:"size:20;default:draft" json:"status"`
	CreatedBy    string         `gorm:"size:100" json:"created_by"`
	UpdatedBy    string         `gorm:"size:100" json:"updated_by"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	Fields       []ContentField `gorm:"constraint:OnDelete:CASCADE" json:"fields,omitempty"`
}

// TableName 指定自定义表名。
func (Section) TableName() string {
	return "sections"
}

// ContentField is a typed key/value pair of a section. FieldKey is unique per section.
type ContentField struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SectionID    uint      `gorm:"not null;uniqueIndex:idx_content_fields_section_key" json:"section_id"`
	FieldKey     string    `gorm:"size:100;not null;uniqueIndex:idx_content_fields_section_key" json:"field_key"`
	FieldType    FieldType `gorm:"size:20;not null;default:text" json:"field_type"`
	FieldValue   *string   `gorm:"type:text" json:"field_value"`
	DisplayOrder int       `gorm:"default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName 指定自定义表名。
func (ContentField) TableName() string {
	return "content_fields"
}
