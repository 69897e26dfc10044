package db

import "time"

// SiteSetting 存储后台可配置的站点级键值对。
type SiteSetting struct {
	ID        uint      `gorm:"primaryKey"`
	Key       string    `gorm:"size:100;uniqueIndex;not null"`
	Value     string    `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 自定义表名以保持命名一致。
func (SiteSetting) TableName() string {
	return "site_settings"
}

const (
	SettingKeySiteName     = "site_name"
	SettingKeyTagline      = "tagline"
	SettingKeyContactEmail = "contact_email"
	SettingKeyFooterText   = "footer_text"
)
