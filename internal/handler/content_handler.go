package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/revanew/site/internal/auth"
	"github.com/revanew/site/internal/service"
)

type blogPostRequest struct {
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	Excerpt    string `json:"excerpt"`
	Content    string `json:"content"`
	CoverImage string `json:"cover_image"`
	Status     string `json:"status"`
	CategoryID *uint  `json:"category_id"`
	AuthorID   *uint  `json:"author_id"`
}

func (r blogPostRequest) toInput() service.BlogPostInput {
	return service.BlogPostInput{
		Title:      r.Title,
		Slug:       r.Slug,
		Excerpt:    r.Excerpt,
		Content:    r.Content,
		CoverImage: r.CoverImage,
		Status:     r.Status,
		CategoryID: r.CategoryID,
		AuthorID:   r.AuthorID,
	}
}

// ListBlogPostsAdmin 返回全部博客文章（含草稿）
func (a *API) ListBlogPostsAdmin(c *gin.Context) {
	posts, err := a.admin.blog.ListAll(c.Request.Context())
	if err != nil {
		a.respondServiceError(c, err, "failed to list blog posts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": posts})
}

// GetBlogPost 返回单篇文章
func (a *API) GetBlogPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid blog post id")
		return
	}
	post, err := a.admin.blog.Get(c.Request.Context(), id)
	if err != nil {
		a.respondServiceError(c, err, "failed to load blog post")
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": post})
}

// CreateBlogPost 创建文章
func (a *API) CreateBlogPost(c *gin.Context) {
	var req blogPostRequest
	if !bindJSON(c, &req, "invalid blog post payload") {
		return
	}
	post, err := a.admin.blog.Create(c.Request.Context(), req.toInput(), auth.Actor(c))
	if err != nil {
		a.respondServiceError(c, err, "failed to create blog post")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "blog post created", "item": post})
}

// UpdateBlogPost 更新文章
func (a *API) UpdateBlogPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid blog post id")
		return
	}
	var req blogPostRequest
	if !bindJSON(c, &req, "invalid blog post payload") {
		return
	}
	post, err := a.admin.blog.Update(c.Request.Context(), id, req.toInput(), auth.Actor(c))
	if err != nil {
		a.respondServiceError(c, err, "failed to update blog post")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "blog post updated", "item": post})
}

// DeleteBlogPost 删除文章
func (a *API) DeleteBlogPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid blog post id")
		return
	}
	if err := a.admin.blog.Delete(c.Request.Context(), id); err != nil {
		a.respondServiceError(c, err, "failed to delete blog post")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "blog post deleted"})
}

type caseStudyRequest struct {
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	ClientName string `json:"client_name"`
	Industry   string `json:"industry"`
	Summary    string `json:"summary"`
	Challenge  string `json:"challenge"`
	Solution   string `json:"solution"`
	Results    string `json:"results"`
	Content    string `json:"content"`
	CoverImage string `json:"cover_image"`
	Status     string `json:"status"`
	CategoryID *uint  `json:"category_id"`
	AuthorID   *uint  `json:"author_id"`
}

func (r caseStudyRequest) toInput() service.CaseStudyInput {
	return service.CaseStudyInput{
		Title:      r.Title,
		Slug:       r.Slug,
		ClientName: r.ClientName,
		Industry:   r.Industry,
		Summary:    r.Summary,
		Challenge:  r.Challenge,
		Solution:   r.Solution,
		Results:    r.Results,
		Content:    r.Content,
		CoverImage: r.CoverImage,
		Status:     r.Status,
		CategoryID: r.CategoryID,
		AuthorID:   r.AuthorID,
	}
}

// ListCaseStudiesAdmin 返回全部客户案例
func (a *API) ListCaseStudiesAdmin(c *gin.Context) {
	items, err := a.admin.cases.ListAll(c.Request.Context())
	if err != nil {
		a.respondServiceError(c, err, "failed to list case studies")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetCaseStudy 返回单个案例
func (a *API) GetCaseStudy(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid case study id")
		return
	}
	item, err := a.admin.cases.Get(c.Request.Context(), id)
	if err != nil {
		a.respondServiceError(c, err, "failed to load case study")
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// CreateCaseStudy 创建案例
func (a *API) CreateCaseStudy(c *gin.Context) {
	var req caseStudyRequest
	if !bindJSON(c, &req, "invalid case study payload") {
		return
	}
	item, err := a.admin.cases.Create(c.Request.Context(), req.toInput(), auth.Actor(c))
	if err != nil {
		a.respondServiceError(c, err, "failed to create case study")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "case study created", "item": item})
}

// UpdateCaseStudy 更新案例
func (a *API) UpdateCaseStudy(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid case study id")
		return
	}
	var req caseStudyRequest
	if !bindJSON(c, &req, "invalid case study payload") {
		return
	}
	item, err := a.admin.cases.Update(c.Request.Context(), id, req.toInput(), auth.Actor(c))
	if err != nil {
		a.respondServiceError(c, err, "failed to update case study")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "case study updated", "item": item})
}

// DeleteCaseStudy 删除案例
func (a *API) DeleteCaseStudy(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid case study id")
		return
	}
	if err := a.admin.cases.Delete(c.Request.Context(), id); err != nil {
		a.respondServiceError(c, err, "failed to delete case study")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "case study deleted"})
}

type jobPostingRequest struct {
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	Department     string     `json:"department"`
	Location       string     `json:"location"`
	EmploymentType string     `json:"employment_type"`
	Description    string     `json:"description"`
	Requirements   string     `json:"requirements"`
	ApplyURL       string     `json:"apply_url"`
	Status         string     `json:"status"`
	ClosesAt       *time.Time `json:"closes_at"`
}

func (r jobPostingRequest) toInput() service.JobPostingInput {
	return service.JobPostingInput{
		Title:          r.Title,
		Slug:           r.Slug,
		Department:     r.Department,
		Location:       r.Location,
		EmploymentType: r.EmploymentType,
		Description:    r.Description,
		Requirements:   r.Requirements,
		ApplyURL:       r.ApplyURL,
		Status:         r.Status,
		ClosesAt:       r.ClosesAt,
	}
}

// ListJobsAdmin 返回全部职位
func (a *API) ListJobsAdmin(c *gin.Context) {
	jobs, err := a.admin.jobs.ListAll(c.Request.Context())
	if err != nil {
		a.respondServiceError(c, err, "failed to list job postings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": jobs})
}

// GetJob 返回单个职位
func (a *API) GetJob(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid job posting id")
		return
	}
	job, err := a.admin.jobs.Get(c.Request.Context(), id)
	if err != nil {
		a.respondServiceError(c, err, "failed to load job posting")
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": job})
}

// CreateJob 创建职位
func (a *API) CreateJob(c *gin.Context) {
	var req jobPostingRequest
	if !bindJSON(c, &req, "invalid job posting payload") {
		return
	}
	job, err := a.admin.jobs.Create(c.Request.Context(), req.toInput(), auth.Actor(c))
	if err != nil {
		a.respondServiceError(c, err, "failed to create job posting")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "job posting created", "item": job})
}

// UpdateJob 更新职位
func (a *API) UpdateJob(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid job posting id")
		return
	}
	var req jobPostingRequest
	if !bindJSON(c, &req, "invalid job posting payload") {
		return
	}
	job, err := a.admin.jobs.Update(c.Request.Context(), id, req.toInput(), auth.Actor(c))
	if err != nil {
		a.respondServiceError(c, err, "failed to update job posting")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "job posting updated", "item": job})
}

// DeleteJob 删除职位
func (a *API) DeleteJob(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid job posting id")
		return
	}
	if err := a.admin.jobs.Delete(c.Request.Context(), id); err != nil {
		a.respondServiceError(c, err, "failed to delete job posting")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "job posting deleted"})
}

type supportArticleRequest struct {
	Title        string `json:"title"`
	Slug         string `json:"slug"`
	Summary      string `json:"summary"`
	Content      string `json:"content"`
	CategoryID   *uint  `json:"category_id"`
	DisplayOrder int    `json:"display_order"`
	Status       string `json:"status"`
}

func (r supportArticleRequest) toInput() service.SupportArticleInput {
	return service.SupportArticleInput{
		Title:        r.Title,
		Slug:         r.Slug,
		Summary:      r.Summary,
		Content:      r.Content,
		CategoryID:   r.CategoryID,
		DisplayOrder: r.DisplayOrder,
		Status:       r.Status,
	}
}

// ListSupportArticlesAdmin 返回全部帮助文章
func (a *API) ListSupportArticlesAdmin(c *gin.Context) {
	articles, err := a.admin.support.ListAll(c.Request.Context())
	if err != nil {
		a.respondServiceError(c, err, "failed to list support articles")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": articles})
}

// GetSupportArticle 返回单篇帮助文章
func (a *API) GetSupportArticle(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid support article id")
		return
	}
	article, err := a.admin.support.Get(c.Request.Context(), id)
	if err != nil {
		a.respondServiceError(c, err, "failed to load support article")
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": article})
}

// CreateSupportArticle 创建帮助文章
func (a *API) CreateSupportArticle(c *gin.Context) {
	var req supportArticleRequest
	if !bindJSON(c, &req, "invalid support article payload") {
		return
	}
	article, err := a.admin.support.Create(c.Request.Context(), req.toInput(), auth.Actor(c))
	if err != nil {
		a.respondServiceError(c, err, "failed to create support article")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "support article created", "item": article})
}

// UpdateSupportArticle 更新帮助文章
func (a *API) UpdateSupportArticle(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid support article id")
		return
	}
	var req supportArticleRequest
	if !bindJSON(c, &req, "invalid support article payload") {
		return
	}
	article, err := a.admin.support.Update(c.Request.Context(), id, req.toInput(), auth.Actor(c))
	if err != nil {
		a.respondServiceError(c, err, "failed to update support article")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "support article updated", "item": article})
}

// DeleteSupportArticle 删除帮助文章
func (a *API) DeleteSupportArticle(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid support article id")
		return
	}
	if err := a.admin.support.Delete(c.Request.Context(), id); err != nil {
		a.respondServiceError(c, err, "failed to delete support article")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "support article deleted"})
}
