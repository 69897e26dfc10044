package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/revanew/site/internal/service"
	"github.com/revanew/site/internal/store"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

func parsePositiveInt(raw string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func errorsIsUnavailable(err error) bool {
	return errors.Is(err, store.ErrUnavailable)
}

var (
	badRequestErrors = []error{
		service.ErrTitleRequired,
		service.ErrSlugRequired,
		service.ErrStatusInvalid,
		service.ErrRouteRequired,
		service.ErrSectionKeyRequired,
		service.ErrFieldKeyRequired,
		service.ErrFieldTypeInvalid,
		service.ErrDuplicateFieldKey,
		service.ErrCategoryNameRequired,
		service.ErrAuthorNameRequired,
		service.ErrContactEmailInvalid,
	}
	notFoundErrors = []error{
		service.ErrPageNotFound,
		service.ErrSectionNotFound,
		service.ErrBlogPostNotFound,
		service.ErrCaseStudyNotFound,
		service.ErrJobPostingNotFound,
		service.ErrSupportArticleNotFound,
	}
)

// respondServiceError maps service errors onto status codes. Validation
// messages are shown to the admin; store failures get the generic fallback.
func (a *API) respondServiceError(c *gin.Context, err error, fallback string) {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			respondError(c, http.StatusBadRequest, target.Error())
			return
		}
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			respondError(c, http.StatusNotFound, target.Error())
			return
		}
	}

	switch {
	case errors.Is(err, store.ErrUnavailable):
		respondError(c, http.StatusServiceUnavailable, "content store is not configured")
	case errors.Is(err, store.ErrReadOnly):
		respondError(c, http.StatusServiceUnavailable, "content store is read-only, configure a service key to enable edits")
	default:
		a.log.Errorw(fallback, "path", c.FullPath(), "err", err)
		respondError(c, http.StatusInternalServerError, fallback)
	}
}
