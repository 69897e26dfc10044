package service

import (
	"errors"

	"gorm.io/gorm"
)

// ListResult aggregates one page of records and pagination counters.
type ListResult[T any] struct {
	Items      []T
	Total      int64
	TotalPages int
	Page       int
	PerPage    int
}

// paginate counts query and loads the requested page into a ListResult.
// query must already carry filters and ordering; associations named in
// preloads are only loaded for the returned page.
func paginate[T any](query *gorm.DB, page, perPage, fallbackPerPage int, preloads ...string) (ListResult[T], error) {
	result := ListResult[T]{
		Page:    normalizePage(page),
		PerPage: normalizePerPage(perPage, fallbackPerPage),
	}

	if err := query.Session(&gorm.Session{}).Count(&result.Total).Error; err != nil {
		return result, err
	}
	result.TotalPages = calculateTotalPages(result.Total, result.PerPage)

	offset := (result.Page - 1) * result.PerPage
	for _, name := range preloads {
		query = query.Preload(name)
	}
	if err := query.Limit(result.PerPage).Offset(offset).Find(&result.Items).Error; err != nil {
		return result, err
	}
	return result, nil
}

// firstOr loads the first match into dst, mapping a missing row to notFound.
func firstOr(query *gorm.DB, dst interface{}, notFound error, conds ...interface{}) error {
	if err := query.First(dst, conds...).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound
		}
		return err
	}
	return nil
}

// deleteByID removes the row of model with id, reporting notFound when no row matched.
func deleteByID(gdb *gorm.DB, model interface{}, id uint, notFound error) error {
	result := gdb.Delete(model, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound
	}
	return nil
}
