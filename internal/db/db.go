package db

import "gorm.io/gorm"

// Models lists every persisted type in migration order.
func Models() []interface{} {
	return []interface{}{
		&User{},
		&Page{},
		&Section{},
		&ContentField{},
		&Category{},
		&Author{},
		&BlogPost{},
		&CaseStudy{},
		&JobPosting{},
		&SupportArticle{},
		&MediaAsset{},
		&SiteSetting{},
	}
}

// Migrate 自动迁移模式，为全部模型创建或更新表结构。
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(Models()...); err != nil {
		return err
	}

	// Rows written before status existed default to draft so nothing leaks publicly.
	for _, model := range []interface{}{&Page{}, &Section{}} {
		if err := gdb.Model(model).
			Where("status = '' OR status IS NULL").
			Update("status", StatusDraft).Error; err != nil {
			return err
		}
	}
	return nil
}
