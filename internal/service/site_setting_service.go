package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/revanew/site/internal/db"
	"github.com/revanew/site/internal/store"
)

// DefaultSiteName is used wherever no site name has been configured.
const DefaultSiteName = "REV-ANEW"

// ErrContactEmailInvalid 表示联系邮箱格式不正确。
var ErrContactEmailInvalid = errors.New("contact email is invalid")

var validate = validator.New()

// SiteSettings 描述后台可配置的站点信息。
type SiteSettings struct {
	SiteName     string `json:"site_name"`
	Tagline      string `json:"tagline"`
	ContactEmail string `json:"contact_email"`
	FooterText   string `json:"footer_text"`
}

// DefaultSiteSettings returns the values used before anything is saved.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		SiteName:   DefaultSiteName,
		Tagline:    "Revenue operations, renewed.",
		FooterText: "Built for teams that grow on purpose.",
	}
}

var settingKeys = []string{
	db.SettingKeySiteName,
	db.SettingKeyTagline,
	db.SettingKeyContactEmail,
	db.SettingKeyFooterText,
}

// SiteSettingService 提供站点设置的读取与更新能力。
type SiteSettingService struct {
	store *store.Client
}

// NewSiteSettingService 构造 SiteSettingService。
func NewSiteSettingService(client *store.Client) *SiteSettingService {
	return &SiteSettingService{store: client}
}

// GetSettings 读取站点设置，未设置的项返回默认值。 On a store error the
// defaults are returned together with the error.
func (s *SiteSettingService) GetSettings(ctx context.Context) (SiteSettings, error) {
	result := DefaultSiteSettings()

	gdb, err := s.store.Read(ctx)
	if err != nil {
		return result, err
	}

	var records []db.SiteSetting
	if err := gdb.Where("key IN ?", settingKeys).Find(&records).Error; err != nil {
		return result, fmt.Errorf("load site settings: %w", err)
	}

	for _, record := range records {
		value := strings.TrimSpace(record.Value)
		if value == "" {
			continue
		}
		switch record.Key {
		case db.SettingKeySiteName:
			result.SiteName = value
		case db.SettingKeyTagline:
			result.Tagline = value
		case db.SettingKeyContactEmail:
			result.ContactEmail = value
		case db.SettingKeyFooterText:
			result.FooterText = value
		}
	}

	return result, nil
}

// UpdateSettings 保存站点设置，未填写站点名称时回退默认值。
func (s *SiteSettingService) UpdateSettings(ctx context.Context, input SiteSettings) (SiteSettings, error) {
	sanitized := SiteSettings{
		SiteName:     strings.TrimSpace(input.SiteName),
		Tagline:      strings.TrimSpace(input.Tagline),
		ContactEmail: strings.TrimSpace(input.ContactEmail),
		FooterText:   strings.TrimSpace(input.FooterText),
	}
	if sanitized.SiteName == "" {
		sanitized.SiteName = DefaultSiteName
	}
	if sanitized.ContactEmail != "" {
		if err := validate.Var(sanitized.ContactEmail, "email"); err != nil {
			return SiteSettings{}, ErrContactEmailInvalid
		}
	}

	gdb, err := s.store.Write(ctx)
	if err != nil {
		return SiteSettings{}, err
	}

	values := map[string]string{
		db.SettingKeySiteName:     sanitized.SiteName,
		db.SettingKeyTagline:      sanitized.Tagline,
		db.SettingKeyContactEmail: sanitized.ContactEmail,
		db.SettingKeyFooterText:   sanitized.FooterText,
	}
	err = gdb.Transaction(func(tx *gorm.DB) error {
		for _, key := range settingKeys {
			if err := upsertSetting(tx, key, values[key]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return SiteSettings{}, fmt.Errorf("update site settings: %w", err)
	}

	return sanitized, nil
}

func upsertSetting(tx *gorm.DB, key, value string) error {
	setting := db.SiteSetting{Key: key, Value: value}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&setting).Error; err != nil {
		return fmt.Errorf("upsert setting %s: %w", key, err)
	}
	return nil
}
