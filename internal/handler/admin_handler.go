package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/revanew/site/internal/auth"
	"github.com/revanew/site/internal/db"
	"github.com/revanew/site/internal/service"
	"github.com/revanew/site/internal/view"
)

const dashboardPath = "/admin/dashboard"

// ShowLoginPage 渲染登录页面
func (a *API) ShowLoginPage(c *gin.Context) {
	if a.gate.Check(c).Result == auth.Authorized {
		c.Redirect(http.StatusFound, dashboardPath)
		return
	}
	a.renderHTML(c, http.StatusOK, "login.html", gin.H{
		"meta": view.NewMetadata("Admin login", ""),
	})
}

// Login 处理用户登录请求
func (a *API) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := a.users.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		status := http.StatusUnauthorized
		message := "Invalid username or password."
		if !errors.Is(err, service.ErrInvalidCredentials) {
			a.logReadError("admin login", err)
			status = http.StatusServiceUnavailable
			message = "Login is unavailable right now."
		}
		a.renderHTML(c, status, "login.html", gin.H{
			"meta":     view.NewMetadata("Admin login", ""),
			"error":    message,
			"username": username,
		})
		return
	}

	if !user.IsAdmin() {
		a.renderHTML(c, http.StatusForbidden, "login.html", gin.H{
			"meta":     view.NewMetadata("Admin login", ""),
			"error":    "This account does not have admin access.",
			"username": username,
		})
		return
	}

	if err := auth.Login(c, user); err != nil {
		a.log.Errorw("save admin session", "user", user.Username, "err", err)
		a.renderHTML(c, http.StatusInternalServerError, "login.html", gin.H{
			"meta":  view.NewMetadata("Admin login", ""),
			"error": "Could not start a session.",
		})
		return
	}

	a.log.Infow("admin logged in", "user", user.Username)
	c.Redirect(http.StatusFound, dashboardPath)
}

// Logout 处理用户登出
func (a *API) Logout(c *gin.Context) {
	auth.Logout(c)
	c.Redirect(http.StatusFound, auth.LoginPath)
}

type dashboardCounts struct {
	Pages           int64
	BlogPosts       int64
	CaseStudies     int64
	JobPostings     int64
	SupportArticles int64
	MediaAssets     int64
}

// ShowDashboard 渲染后台主面板
func (a *API) ShowDashboard(c *gin.Context) {
	counts, err := a.countContent(c.Request.Context())
	if err != nil {
		a.logReadError("count dashboard content", err)
	}

	a.renderHTML(c, http.StatusOK, "dashboard.html", gin.H{
		"meta":      view.NewMetadata("Dashboard", ""),
		"counts":    counts,
		"settings":  a.siteSettings(c),
		"storeMode": a.store.Privileged().Access().String(),
		"ready":     a.store.Ready(),
	})
}

func (a *API) countContent(ctx context.Context) (dashboardCounts, error) {
	var counts dashboardCounts
	gdb, err := a.store.Read(ctx)
	if err != nil {
		return counts, err
	}

	targets := []struct {
		model interface{}
		dst   *int64
	}{
		{&db.Page{}, &counts.Pages},
		{&db.BlogPost{}, &counts.BlogPosts},
		{&db.CaseStudy{}, &counts.CaseStudies},
		{&db.JobPosting{}, &counts.JobPostings},
		{&db.SupportArticle{}, &counts.SupportArticles},
		{&db.MediaAsset{}, &counts.MediaAssets},
	}

	var g errgroup.Group
	for _, target := range targets {
		target := target
		g.Go(func() error {
			return gdb.Model(target.model).Count(target.dst).Error
		})
	}
	return counts, g.Wait()
}

// ShowPageList 渲染 CMS 页面列表
func (a *API) ShowPageList(c *gin.Context) {
	pages, err := a.pages.List(c.Request.Context())
	if err != nil {
		a.logReadError("list pages", err)
	}
	a.renderHTML(c, http.StatusOK, "pages.html", gin.H{
		"meta":  view.NewMetadata("Pages", ""),
		"pages": pages,
	})
}

// ShowPageEdit 渲染页面编辑器。/admin/pages/new 没有 id。
func (a *API) ShowPageEdit(c *gin.Context) {
	data := gin.H{
		"meta":       view.NewMetadata("Edit page", ""),
		"fieldTypes": db.FieldTypes,
		"icons":      view.IconOptions(),
	}

	if raw := c.Param("id"); raw != "" {
		id, err := parseUintParam(c, "id")
		if err != nil {
			a.renderNotFound(c, view.KindPage)
			return
		}
		page, err := a.pages.Get(c.Request.Context(), id)
		if err != nil {
			if !errors.Is(err, service.ErrPageNotFound) {
				a.logReadError("get page", err)
			}
			a.renderNotFound(c, view.KindPage)
			return
		}
		data["page"] = page
	}

	a.renderHTML(c, http.StatusOK, "page_edit.html", data)
}

type contentKind struct {
	Key      string
	Title    string
	Endpoint string
	Public   string
	Statuses []string
}

var contentKinds = map[string]contentKind{
	"blog":         {Key: "blog", Title: "Blog posts", Endpoint: "/admin/api/blog-posts", Public: "/blog", Statuses: []string{db.StatusDraft, db.StatusPublished}},
	"case-studies": {Key: "case-studies", Title: "Case studies", Endpoint: "/admin/api/case-studies", Public: "/case-studies", Statuses: []string{db.StatusDraft, db.StatusPublished}},
	"jobs":         {Key: "jobs", Title: "Job postings", Endpoint: "/admin/api/jobs", Public: "/careers", Statuses: []string{db.JobStatusDraft, db.JobStatusActive, db.JobStatusClosed}},
	"support":      {Key: "support", Title: "Support articles", Endpoint: "/admin/api/support-articles", Public: "/support", Statuses: []string{db.StatusDraft, db.StatusPublished}},
}

// ShowContentList 渲染编辑内容列表，数据通过 JSON API 加载。
func (a *API) ShowContentList(c *gin.Context) {
	kind, ok := contentKinds[strings.TrimSpace(c.Param("kind"))]
	if !ok {
		a.renderNotFound(c, view.KindPage)
		return
	}

	categories, err := a.taxa.ListCategories(c.Request.Context())
	if err != nil {
		a.logReadError("list categories", err)
	}
	authors, err := a.taxa.ListAuthors(c.Request.Context())
	if err != nil {
		a.logReadError("list authors", err)
	}

	a.renderHTML(c, http.StatusOK, "content_list.html", gin.H{
		"meta":       view.NewMetadata(kind.Title, ""),
		"kind":       kind,
		"categories": categories,
		"authors":    authors,
	})
}

// ShowMediaLibrary 渲染已上传图片列表
func (a *API) ShowMediaLibrary(c *gin.Context) {
	assets, err := a.media.List(c.Request.Context(), 0)
	if err != nil {
		a.logReadError("list media", err)
	}
	a.renderHTML(c, http.StatusOK, "media.html", gin.H{
		"meta":     view.NewMetadata("Media", ""),
		"assets":   assets,
		"maxBytes": a.media.MaxBytes(),
	})
}
