package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/revanew/site/internal/db"
	"github.com/revanew/site/internal/store"
)

var (
	ErrPageNotFound       = errors.New("page not found")
	ErrRouteRequired      = errors.New("page route is required")
	ErrSectionNotFound    = errors.New("section not found")
	ErrSectionKeyRequired = errors.New("section key is required")
	ErrFieldKeyRequired   = errors.New("field key is required")
	ErrFieldTypeInvalid   = errors.New("field type is invalid")
	ErrDuplicateFieldKey  = errors.New("field key is duplicated within the section")
)

// PageInput represents fields accepted when creating or updating a page.
type PageInput struct {
	Route           string
	Title           string
	MetaDescription string
	MetaKeywords    string
	Status          string
}

// SectionInput describes a section upsert. Sections are matched by page and key.
type SectionInput struct {
	SectionKey   string
	SectionType  string
	DisplayOrder int
	Status       string
}

// FieldInput describes one field of a section's field set.
type FieldInput struct {
	FieldKey     string
	FieldType    string
	FieldValue   *string
	DisplayOrder int
}

// PageService provides admin access to CMS pages, sections and fields.
type PageService struct {
	store *store.Client
}

// NewPageService returns a new PageService instance.
func NewPageService(client *store.Client) *PageService {
	return &PageService{store: client}
}

// List returns every page regardless of status, ordered by route.
func (s *PageService) List(ctx context.Context) ([]db.Page, error) {
	gdb, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}

	var pages []db.Page
	if err := gdb.Order("route asc").Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

// Get fetches a page with all sections and fields, drafts included.
func (s *PageService) Get(ctx context.Context, id uint) (*db.Page, error) {
	gdb, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}

	var page db.Page
	err = gdb.Preload("Sections", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("display_order asc, section_key asc, id asc")
	}).Preload("Sections.Fields", orderFields).First(&page, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// Create inserts a page. Route uniqueness is enforced by the store.
func (s *PageService) Create(ctx context.Context, input PageInput, actor string) (*db.Page, error) {
	page := db.Page{CreatedBy: actor}
	if err := applyPageInput(&page, input); err != nil {
		return nil, err
	}
	page.UpdatedBy = actor

	gdb, err := s.store.Write(ctx)
	if err != nil {
		return nil, err
	}
	if err := gdb.Create(&page).Error; err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	return &page, nil
}

// Update modifies page metadata and status.
func (s *PageService) Update(ctx context.Context, id uint, input PageInput, actor string) (*db.Page, error) {
	gdb, err := s.store.Write(ctx)
	if err != nil {
		return nil, err
	}

	var page db.Page
	if err := gdb.First(&page, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}

	if err := applyPageInput(&page, input); err != nil {
		return nil, err
	}
	page.UpdatedBy = actor

	if err := gdb.Save(&page).Error; err != nil {
		return nil, fmt.Errorf("update page: %w", err)
	}
	return &page, nil
}

// Delete removes a page together with its sections and fields.
func (s *PageService) Delete(ctx context.Context, id uint) error {
	gdb, err := s.store.Write(ctx)
	if err != nil {
		return err
	}

	return gdb.Transaction(func(tx *gorm.DB) error {
		var page db.Page
		if err := tx.First(&page, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPageNotFound
			}
			return err
		}

		sectionIDs := tx.Model(&db.Section{}).Select("id").Where("page_id = ?", page.ID)
		if err := tx.Where("section_id IN (?)", sectionIDs).Delete(&db.ContentField{}).Error; err != nil {
			return err
		}
		if err := tx.Where("page_id = ?", page.ID).Delete(&db.Section{}).Error; err != nil {
			return err
		}
		return tx.Delete(&page).Error
	})
}

// SaveSection creates the section pageID/key or updates it when it exists.
func (s *PageService) SaveSection(ctx context.Context, pageID uint, input SectionInput, actor string) (*db.Section, error) {
	key := strings.TrimSpace(input.SectionKey)
	if key == "" {
		return nil, ErrSectionKeyRequired
	}
	status := normalizeStatus(input.Status, db.StatusDraft)
	if !db.ValidEditorialStatus(status) {
		return nil, ErrStatusInvalid
	}

	gdb, err := s.store.Write(ctx)
	if err != nil {
		return nil, err
	}

	var page db.Page
	if err := gdb.Select("id").First(&page, pageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}

	var section db.Section
	err = gdb.Where("page_id = ? AND section_key = ?", pageID, key).First(&section).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		section = db.Section{PageID: pageID, SectionKey: key, CreatedBy: actor}
	case err != nil:
		return nil, err
	}

	section.SectionType = strings.TrimSpace(input.SectionType)
	section.DisplayOrder = input.DisplayOrder
	section.Status = status
	section.UpdatedBy = actor

	if err := gdb.Save(&section).Error; err != nil {
		return nil, fmt.Errorf("save section: %w", err)
	}
	return &section, nil
}

// DeleteSection removes a section and its fields.
func (s *PageService) DeleteSection(ctx context.Context, sectionID uint) error {
	gdb, err := s.store.Write(ctx)
	if err != nil {
		return err
	}

	return gdb.Transaction(func(tx *gorm.DB) error {
		var section db.Section
		if err := tx.First(&section, sectionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSectionNotFound
			}
			return err
		}
		if err := tx.Where("section_id = ?", section.ID).Delete(&db.ContentField{}).Error; err != nil {
			return err
		}
		return tx.Delete(&section).Error
	})
}

// ReplaceFields swaps the whole field set of a section in one transaction.
// Keys must be unique within the set and types must be known.
func (s *PageService) ReplaceFields(ctx context.Context, sectionID uint, inputs []FieldInput, actor string) ([]db.ContentField, error) {
	fields, err := buildFields(sectionID, inputs)
	if err != nil {
		return nil, err
	}

	gdb, err := s.store.Write(ctx)
	if err != nil {
		return nil, err
	}

	err = gdb.Transaction(func(tx *gorm.DB) error {
		var section db.Section
		if err := tx.First(&section, sectionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSectionNotFound
			}
			return err
		}

		if err := tx.Where("section_id = ?", section.ID).Delete(&db.ContentField{}).Error; err != nil {
			return err
		}
		if len(fields) > 0 {
			if err := tx.Create(&fields).Error; err != nil {
				return err
			}
		}
		return tx.Model(&section).Update("updated_by", actor).Error
	})
	if err != nil {
		return nil, err
	}
	return fields, nil
}

func buildFields(sectionID uint, inputs []FieldInput) ([]db.ContentField, error) {
	seen := make(map[string]struct{}, len(inputs))
	fields := make([]db.ContentField, 0, len(inputs))
	for _, input := range inputs {
		key := strings.TrimSpace(input.FieldKey)
		if key == "" {
			return nil, ErrFieldKeyRequired
		}
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateFieldKey, key)
		}
		seen[key] = struct{}{}

		fieldType := db.FieldType(strings.ToLower(strings.TrimSpace(input.FieldType)))
		if fieldType == "" {
			fieldType = db.FieldText
		}
		if !fieldType.Valid() {
			return nil, fmt.Errorf("%w: %s", ErrFieldTypeInvalid, input.FieldType)
		}

		fields = append(fields, db.ContentField{
			SectionID:    sectionID,
			FieldKey:     key,
			FieldType:    fieldType,
			FieldValue:   input.FieldValue,
			DisplayOrder: input.DisplayOrder,
		})
	}
	return fields, nil
}

func applyPageInput(page *db.Page, input PageInput) error {
	route := NormalizeRoute(input.Route)
	if route == "" {
		return ErrRouteRequired
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return ErrTitleRequired
	}
	status := normalizeStatus(input.Status, db.StatusDraft)
	if !db.ValidEditorialStatus(status) {
		return ErrStatusInvalid
	}

	page.Route = route
	page.Title = title
	page.MetaDescription = strings.TrimSpace(input.MetaDescription)
	page.MetaKeywords = strings.TrimSpace(input.MetaKeywords)
	page.Status = status
	return nil
}
