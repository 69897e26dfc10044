package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/revanew/site/internal/auth"
	"github.com/revanew/site/internal/service"
)

type pageRequest struct {
	Route           string `json:"route"`
	Title           string `json:"title"`
	MetaDescription string `json:"meta_description"`
	MetaKeywords    string `json:"meta_keywords"`
	Status          string `json:"status"`
}

func (r pageRequest) toInput() service.PageInput {
	return service.PageInput{
		Route:           r.Route,
		Title:           r.Title,
		MetaDescription: r.MetaDescription,
		MetaKeywords:    r.MetaKeywords,
		Status:          r.Status,
	}
}

type sectionRequest struct {
	SectionKey   string `json:"section_key"`
	SectionType  string `json:"section_type"`
	DisplayOrder int    `json:"display_order"`
	Status       string `json:"status"`
}

type fieldRequest struct {
	FieldKey     string  `json:"field_key"`
	FieldType    string  `json:"field_type"`
	FieldValue   *string `json:"field_value"`
	DisplayOrder int     `json:"display_order"`
}

type fieldsRequest struct {
	Fields []fieldRequest `json:"fields"`
}

// ListPages 返回所有 CMS 页面
func (a *API) ListPages(c *gin.Context) {
	pages, err := a.pages.List(c.Request.Context())
	if err != nil {
		a.respondServiceError(c, err, "failed to list pages")
		return
	}
	c.JSON(http.StatusOK, gin.H{"pages": pages})
}

// GetPage 返回页面及其分区与字段
func (a *API) GetPage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid page id")
		return
	}

	page, err := a.pages.Get(c.Request.Context(), id)
	if err != nil {
		a.respondServiceError(c, err, "failed to load page")
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page})
}

// CreatePage 创建页面
func (a *API) CreatePage(c *gin.Context) {
	var req pageRequest
	if !bindJSON(c, &req, "invalid page payload") {
		return
	}

	page, err := a.pages.Create(c.Request.Context(), req.toInput(), auth.Actor(c))
	if err != nil {
		a.respondServiceError(c, err, "failed to create page")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "page created", "page": page})
}

// UpdatePage 更新页面元信息
func (a *API) UpdatePage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid page id")
		return
	}

	var req pageRequest
	if !bindJSON(c, &req, "invalid page payload") {
		return
	}

	page, err := a.pages.Update(c.Request.Context(), id, req.toInput(), auth.Actor(c))
	if err != nil {
		a.respondServiceError(c, err, "failed to update page")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "page updated", "page": page})
}

// DeletePage 删除页面及其所有分区
func (a *API) DeletePage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid page id")
		return
	}

	if err := a.pages.Delete(c.Request.Context(), id); err != nil {
		a.respondServiceError(c, err, "failed to delete page")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "page deleted"})
}

// SaveSection 按 section_key 新建或更新分区
func (a *API) SaveSection(c *gin.Context) {
	pageID, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid page id")
		return
	}

	var req sectionRequest
	if !bindJSON(c, &req, "invalid section payload") {
		return
	}

	section, err := a.pages.SaveSection(c.Request.Context(), pageID, service.SectionInput{
		SectionKey:   req.SectionKey,
		SectionType:  req.SectionType,
		DisplayOrder: req.DisplayOrder,
		Status:       req.Status,
	}, auth.Actor(c))
	if err != nil {
		a.respondServiceError(c, err, "failed to save section")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "section saved", "section": section})
}

// DeleteSection 删除分区及其字段
func (a *API) DeleteSection(c *gin.Context) {
	id, err := parseUintParam(c, "sectionID")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid section id")
		return
	}

	if err := a.pages.DeleteSection(c.Request.Context(), id); err != nil {
		a.respondServiceError(c, err, "failed to delete section")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "section deleted"})
}

// ReplaceFields 整体替换分区的字段集合
func (a *API) ReplaceFields(c *gin.Context) {
	id, err := parseUintParam(c, "sectionID")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid section id")
		return
	}

	var req fieldsRequest
	if !bindJSON(c, &req, "invalid fields payload") {
		return
	}

	inputs := make([]service.FieldInput, 0, len(req.Fields))
	for _, field := range req.Fields {
		inputs = append(inputs, service.FieldInput{
			FieldKey:     field.FieldKey,
			FieldType:    field.FieldType,
			FieldValue:   field.FieldValue,
			DisplayOrder: field.DisplayOrder,
		})
	}

	fields, err := a.pages.ReplaceFields(c.Request.Context(), id, inputs, auth.Actor(c))
	if err != nil {
		a.respondServiceError(c, err, "failed to save fields")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "fields saved", "fields": fields})
}
