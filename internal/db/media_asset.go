package db

import "time"

// MediaAsset 记录每一次成功的图片上传。
type MediaAsset struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FileName    string    `gorm:"size:255;uniqueIndex;not null" json:"file_name"`
	PublicPath  string    `gorm:"size:500;not null" json:"public_path"`
	ContentType string    `gorm:"size:100" json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	UploadedBy  string    `gorm:"size:100" json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName 指定自定义表名。
func (MediaAsset) TableName() string {
	return "media_assets"
}
