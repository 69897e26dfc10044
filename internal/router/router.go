package router

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/revanew/site/internal/config"
	"github.com/revanew/site/internal/handler"
	"github.com/revanew/site/internal/logger"
	"github.com/revanew/site/internal/metrics"
	"github.com/revanew/site/internal/store"
	"github.com/revanew/site/web"
)

const sessionName = "revanew_session"

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(cfg *config.Config, client *store.Client, log *zap.SugaredLogger) (*gin.Engine, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	r := gin.New()
	r.Use(gin.Recovery(), logger.Middleware(log), metrics.Middleware())

	// 配置会话中间件
	sessionStore := cookie.NewStore([]byte(cfg.HTTP.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, sessionStore))

	// 加载模板并添加自定义函数
	tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(web.Templates,
		"template/partials/*.html",
		"template/public/*.html",
		"template/admin/*.html",
	)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	// 静态文件服务
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return nil, fmt.Errorf("static assets: %w", err)
	}
	r.StaticFS("/static", http.FS(staticFS))

	uploadURL := "/" + strings.Trim(cfg.Uploads.URLPath, "/")
	r.Static(uploadURL, cfg.Uploads.Dir)

	api := handler.NewAPI(client, log, handler.Options{
		UploadDir:      cfg.Uploads.Dir,
		UploadURLPath:  uploadURL,
		MaxUploadBytes: cfg.Uploads.MaxBytes,
		SiteBaseURL:    cfg.HTTP.SiteBaseURL,
	})
	gate := api.Gate()

	r.GET("/healthz", api.HealthCheck)
	if strings.TrimSpace(cfg.HTTP.MetricsAddr) == "" {
		r.GET("/metrics", gate.RequireAdminAPI(), gin.WrapH(MetricsHandler()))
	}

	// 公开页面
	r.GET("/", api.ShowHome)
	r.GET("/about", api.ShowAbout)
	r.GET("/industries", api.ShowIndustries)
	r.GET("/industries/:slug", api.ShowIndustry)
	r.GET("/case-studies", api.ListCaseStudies)
	r.GET("/case-studies/:slug", api.ShowCaseStudy)
	r.GET("/blog", api.ListBlogPosts)
	r.GET("/blog/:slug", api.ShowBlogPost)
	r.GET("/support", api.ListSupportArticles)
	r.GET("/support/:slug", api.ShowSupportArticle)
	r.GET("/careers", api.ListJobs)
	r.GET("/careers/:slug", api.ShowJob)

	// 后台管理路由
	admin := r.Group("/admin")
	{
		admin.GET("", func(c *gin.Context) { c.Redirect(http.StatusFound, "/admin/dashboard") })
		admin.GET("/login", api.ShowLoginPage)
		admin.POST("/login", api.Login)
		admin.GET("/logout", api.Logout)
		admin.POST("/logout", api.Logout)

		// 需要管理员权限的页面
		pages := admin.Group("")
		pages.Use(gate.RequireAdminPage())
		{
			pages.GET("/dashboard", api.ShowDashboard)
			pages.GET("/pages", api.ShowPageList)
			pages.GET("/pages/new", api.ShowPageEdit)
			pages.GET("/pages/:id/edit", api.ShowPageEdit)
			pages.GET("/content/:kind", api.ShowContentList)
			pages.GET("/media", api.ShowMediaLibrary)
		}

		// API路由
		apiGroup := admin.Group("/api")
		apiGroup.Use(gate.RequireAdminAPI())
		{
			apiGroup.GET("/pages", api.ListPages)
			apiGroup.POST("/pages", api.CreatePage)
			apiGroup.GET("/pages/:id", api.GetPage)
			apiGroup.PUT("/pages/:id", api.UpdatePage)
			apiGroup.DELETE("/pages/:id", api.DeletePage)
			apiGroup.POST("/pages/:id/sections", api.SaveSection)
			apiGroup.DELETE("/sections/:sectionID", api.DeleteSection)
			apiGroup.PUT("/sections/:sectionID/fields", api.ReplaceFields)

			apiGroup.GET("/blog-posts", api.ListBlogPostsAdmin)
			apiGroup.POST("/blog-posts", api.CreateBlogPost)
			apiGroup.GET("/blog-posts/:id", api.GetBlogPost)
			apiGroup.PUT("/blog-posts/:id", api.UpdateBlogPost)
			apiGroup.DELETE("/blog-posts/:id", api.DeleteBlogPost)

			apiGroup.GET("/case-studies", api.ListCaseStudiesAdmin)
			apiGroup.POST("/case-studies", api.CreateCaseStudy)
			apiGroup.GET("/case-studies/:id", api.GetCaseStudy)
			apiGroup.PUT("/case-studies/:id", api.UpdateCaseStudy)
			apiGroup.DELETE("/case-studies/:id", api.DeleteCaseStudy)

			apiGroup.GET("/jobs", api.ListJobsAdmin)
			apiGroup.POST("/jobs", api.CreateJob)
			apiGroup.GET("/jobs/:id", api.GetJob)
			apiGroup.PUT("/jobs/:id", api.UpdateJob)
			apiGroup.DELETE("/jobs/:id", api.DeleteJob)

			apiGroup.GET("/support-articles", api.ListSupportArticlesAdmin)
			apiGroup.POST("/support-articles", api.CreateSupportArticle)
			apiGroup.GET("/support-articles/:id", api.GetSupportArticle)
			apiGroup.PUT("/support-articles/:id", api.UpdateSupportArticle)
			apiGroup.DELETE("/support-articles/:id", api.DeleteSupportArticle)

			apiGroup.GET("/categories", api.ListCategories)
			apiGroup.POST("/categories", api.CreateCategory)
			apiGroup.GET("/authors", api.ListAuthors)
			apiGroup.POST("/authors", api.CreateAuthor)

			apiGroup.GET("/settings", api.GetSiteSettings)
			apiGroup.PUT("/settings", api.UpdateSiteSettings)

			apiGroup.POST("/upload", api.UploadImage)
			apiGroup.GET("/media", api.ListMedia)
		}
	}

	r.NoRoute(api.NotFound)

	return r, nil
}

// MetricsHandler 暴露 Prometheus 指标，供独立的监听地址使用。
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"formatDate": func(t interface{}) string {
			switch v := t.(type) {
			case time.Time:
				return formatDate(v)
			case *time.Time:
				if v == nil {
					return ""
				}
				return formatDate(*v)
			}
			return ""
		},
		"timeAgo": func(t time.Time) string {
			return formatRelativeTime(time.Now(), t)
		},
		"kb": func(n int64) string {
			return fmt.Sprintf("%.1f KB", float64(n)/1024)
		},
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January 2, 2006")
}

// formatRelativeTime 把时间转换为 "3 days ago" 形式，用于后台列表。
func formatRelativeTime(now, t time.Time) string {
	if t.IsZero() {
		return ""
	}
	diff := now.Sub(t)
	if diff < time.Minute {
		return "just now"
	}

	plural := func(n int, unit string) string {
		if n == 1 {
			return "1 " + unit + " ago"
		}
		return fmt.Sprintf("%d %ss ago", n, unit)
	}

	switch {
	case diff < time.Hour:
		return plural(int(diff/time.Minute), "minute")
	case diff < 24*time.Hour:
		return plural(int(diff/time.Hour), "hour")
	case diff < 30*24*time.Hour:
		return plural(int(diff/(24*time.Hour)), "day")
	case diff < 365*24*time.Hour:
		return plural(int(diff/(30*24*time.Hour)), "month")
	default:
		return plural(int(diff/(365*24*time.Hour)), "year")
	}
}
