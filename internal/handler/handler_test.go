package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/revanew/site/internal/db"
	"github.com/revanew/site/internal/handler"
	"github.com/revanew/site/internal/store"
)

var ginOnce sync.Once

// stubHTMLRender records the last template rendered instead of executing it.
type stubHTMLRender struct {
	mu   sync.Mutex
	name string
	data gin.H
}

type stubHTMLInstance struct {
	name string
	data interface{}
}

func (r *stubHTMLRender) Instance(name string, data interface{}) render.Render {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.name = name
	r.data, _ = data.(gin.H)
	return &stubHTMLInstance{name: name, data: data}
}

func (r *stubHTMLRender) last() (string, gin.H) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.name, r.data
}

func (r *stubHTMLInstance) Render(w http.ResponseWriter) error {
	_, err := w.Write([]byte("<!-- " + r.name + " -->"))
	return err
}

func (r *stubHTMLInstance) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}

type testEnv struct {
	gdb       *gorm.DB
	router    *gin.Engine
	render    *stubHTMLRender
	uploadDir string
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	ginOnce.Do(func() {
		gin.SetMode(gin.TestMode)
	})

	dsn := fmt.Sprintf("file:handler-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	if err := db.EnsureAdmin(gdb, "admin", "admin-pass"); err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}
	hashed, _ := db.HashPassword("viewer-pass")
	if err := gdb.Create(&db.User{Username: "viewer", Password: hashed, Role: db.RoleViewer}).Error; err != nil {
		t.Fatalf("failed to seed viewer: %v", err)
	}
	return gdb
}

func setupHandlerTest(t *testing.T) *testEnv {
	t.Helper()
	gdb := openTestDB(t)
	return newTestEnv(t, gdb, store.New(gdb, store.AccessService))
}

// newTestEnv registers the handlers the way the site router does, with a
// stub renderer in place of the embedded templates.
func newTestEnv(t *testing.T, gdb *gorm.DB, client *store.Client) *testEnv {
	t.Helper()

	env := &testEnv{gdb: gdb, render: &stubHTMLRender{}, uploadDir: t.TempDir()}
	api := handler.NewAPI(client, nil, handler.Options{
		UploadDir:      env.uploadDir,
		UploadURLPath:  "/uploads",
		MaxUploadBytes: 10 << 20,
		SiteBaseURL:    "https://rev-anew.example",
	})
	gate := api.Gate()

	r := gin.New()
	r.HTMLRender = env.render
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test-secret"))))

	r.GET("/healthz", api.HealthCheck)
	r.GET("/", api.ShowHome)
	r.GET("/about", api.ShowAbout)
	r.GET("/industries/:slug", api.ShowIndustry)
	r.GET("/case-studies", api.ListCaseStudies)
	r.GET("/case-studies/:slug", api.ShowCaseStudy)
	r.GET("/blog", api.ListBlogPosts)
	r.GET("/blog/:slug", api.ShowBlogPost)
	r.GET("/support", api.ListSupportArticles)
	r.GET("/careers", api.ListJobs)
	r.GET("/careers/:slug", api.ShowJob)

	r.GET("/admin/login", api.ShowLoginPage)
	r.POST("/admin/login", api.Login)
	r.POST("/admin/logout", api.Logout)
	pages := r.Group("/admin", gate.RequireAdminPage())
	pages.GET("/dashboard", api.ShowDashboard)
	pages.GET("/pages/:id/edit", api.ShowPageEdit)
	pages.GET("/content/:kind", api.ShowContentList)

	apiGroup := r.Group("/admin/api", gate.RequireAdminAPI())
	apiGroup.GET("/pages", api.ListPages)
	apiGroup.POST("/pages", api.CreatePage)
	apiGroup.GET("/pages/:id", api.GetPage)
	apiGroup.PUT("/pages/:id", api.UpdatePage)
	apiGroup.DELETE("/pages/:id", api.DeletePage)
	apiGroup.POST("/pages/:id/sections", api.SaveSection)
	apiGroup.PUT("/sections/:sectionID/fields", api.ReplaceFields)
	apiGroup.POST("/blog-posts", api.CreateBlogPost)
	apiGroup.PUT("/blog-posts/:id", api.UpdateBlogPost)
	apiGroup.DELETE("/blog-posts/:id", api.DeleteBlogPost)
	apiGroup.POST("/case-studies", api.CreateCaseStudy)
	apiGroup.POST("/jobs", api.CreateJob)
	apiGroup.POST("/support-articles", api.CreateSupportArticle)
	apiGroup.POST("/categories", api.CreateCategory)
	apiGroup.PUT("/settings", api.UpdateSiteSettings)
	apiGroup.POST("/upload", api.UploadImage)
	apiGroup.GET("/media", api.ListMedia)
	r.NoRoute(api.NotFound)

	env.router = r
	return env
}

func (e *testEnv) do(req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	return e.do(httptest.NewRequest(http.MethodGet, path, nil), cookies...)
}

func (e *testEnv) sendJSON(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return e.do(req, cookies...)
}

func (e *testEnv) login(t *testing.T, username, password string) (*httptest.ResponseRecorder, *http.Cookie) {
	t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := e.do(req)
	for _, c := range w.Result().Cookies() {
		if c.Name == "test_session" {
			return w, c
		}
	}
	return w, nil
}

func (e *testEnv) adminCookie(t *testing.T) *http.Cookie {
	t.Helper()
	w, c := e.login(t, "admin", "admin-pass")
	if w.Code != http.StatusFound || c == nil {
		t.Fatalf("admin login failed: %d %s", w.Code, w.Body.String())
	}
	return c
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json %q: %v", w.Body.String(), err)
	}
	return payload
}

func newRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}
