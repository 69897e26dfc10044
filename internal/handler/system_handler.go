package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/revanew/site/internal/service"
)

// HealthCheck 提供部署平台与监控系统使用的健康检查端点。
// A placeholder store still answers 200 so the site keeps serving defaults.
func (a *API) HealthCheck(c *gin.Context) {
	if !a.store.Ready() {
		c.JSON(http.StatusOK, gin.H{
			"status":   "degraded",
			"database": "not configured",
		})
		return
	}

	if err := a.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "error",
			"message": "database unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"database": "up",
		"access":   a.store.Privileged().Access().String(),
	})
}

// GetSiteSettings 返回当前站点设置。
func (a *API) GetSiteSettings(c *gin.Context) {
	settings, err := a.settings.GetSettings(c.Request.Context())
	if err != nil {
		a.respondServiceError(c, err, "failed to load site settings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpdateSiteSettings 保存站点设置。
func (a *API) UpdateSiteSettings(c *gin.Context) {
	var payload service.SiteSettings
	if !bindJSON(c, &payload, "invalid site settings payload") {
		return
	}

	settings, err := a.settings.UpdateSettings(c.Request.Context(), payload)
	if err != nil {
		a.respondServiceError(c, err, "failed to save site settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "site settings saved",
		"settings": settings,
	})
}

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug"`
}

type authorRequest struct {
	Name      string `json:"name" binding:"required"`
	Title     string `json:"title"`
	AvatarURL string `json:"avatar_url"`
	Bio       string `json:"bio"`
}

// ListCategories 获取分类列表
func (a *API) ListCategories(c *gin.Context) {
	categories, err := a.taxa.ListCategories(c.Request.Context())
	if err != nil {
		a.respondServiceError(c, err, "failed to list categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateCategory 创建分类
func (a *API) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if !bindJSON(c, &req, "category name is required") {
		return
	}
	category, err := a.taxa.CreateCategory(c.Request.Context(), req.Name, req.Slug)
	if err != nil {
		a.respondServiceError(c, err, "failed to create category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category created", "category": category})
}

// ListAuthors 获取作者列表
func (a *API) ListAuthors(c *gin.Context) {
	authors, err := a.taxa.ListAuthors(c.Request.Context())
	if err != nil {
		a.respondServiceError(c, err, "failed to list authors")
		return
	}
	c.JSON(http.StatusOK, gin.H{"authors": authors})
}

// CreateAuthor 创建作者
func (a *API) CreateAuthor(c *gin.Context) {
	var req authorRequest
	if !bindJSON(c, &req, "author name is required") {
		return
	}
	author, err := a.taxa.CreateAuthor(c.Request.Context(), service.AuthorInput{
		Name:      req.Name,
		Title:     req.Title,
		AvatarURL: req.AvatarURL,
		Bio:       req.Bio,
	})
	if err != nil {
		a.respondServiceError(c, err, "failed to create author")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "author created", "author": author})
}
