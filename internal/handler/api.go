package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/revanew/site/internal/auth"
	"github.com/revanew/site/internal/service"
	"github.com/revanew/site/internal/store"
	"github.com/revanew/site/internal/view"
)

// Options configures NewAPI.
type Options struct {
	UploadDir      string
	UploadURLPath  string
	MaxUploadBytes int64
	SiteBaseURL    string
}

// API bundles shared dependencies for HTTP handlers. Public handlers only see
// services built on the anon client; admin handlers use the privileged ones.
type API struct {
	store    *store.Client
	log      *zap.SugaredLogger
	content  *service.ContentService
	settings *service.SiteSettingService
	users    *service.UserService
	gate     *auth.Gate

	public  editorial
	admin   editorial
	pages   *service.PageService
	taxa    *service.TaxonomyService
	media   *service.MediaService
	baseURL string
}

type editorial struct {
	blog    *service.BlogService
	cases   *service.CaseStudyService
	jobs    *service.JobService
	support *service.SupportService
}

func newEditorial(client *store.Client) editorial {
	return editorial{
		blog:    service.NewBlogService(client),
		cases:   service.NewCaseStudyService(client),
		jobs:    service.NewJobService(client),
		support: service.NewSupportService(client),
	}
}

const siteSettingsContextKey = "__site_settings"

// NewAPI constructs a handler set with shared services.
func NewAPI(client *store.Client, log *zap.SugaredLogger, opts Options) *API {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	privileged := client.Privileged()
	users := service.NewUserService(client)

	return &API{
		store:    client,
		log:      log,
		content:  service.NewContentService(client, log),
		settings: service.NewSiteSettingService(privileged),
		users:    users,
		gate:     auth.NewGate(users, log),
		public:   newEditorial(client),
		admin:    newEditorial(privileged),
		pages:    service.NewPageService(privileged),
		taxa:     service.NewTaxonomyService(privileged),
		media:    service.NewMediaService(privileged, log, opts.UploadDir, opts.UploadURLPath, opts.MaxUploadBytes),
		baseURL:  opts.SiteBaseURL,
	}
}

// Gate returns the admin gate guarding the admin routes.
func (a *API) Gate() *auth.Gate {
	return a.gate
}

func (a *API) siteSettings(c *gin.Context) service.SiteSettings {
	if cached, exists := c.Get(siteSettingsContextKey); exists {
		if settings, ok := cached.(service.SiteSettings); ok {
			return settings
		}
	}

	settings, err := a.settings.GetSettings(c.Request.Context())
	if err != nil && !errorsIsUnavailable(err) {
		a.log.Warnw("load site settings", "err", err)
	}

	c.Set(siteSettingsContextKey, settings)
	return settings
}

// renderHTML 在向模板渲染时自动附加站点设置与页面元信息。
func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	settings := a.siteSettings(c)

	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}

	if _, exists := payload["site"]; !exists {
		payload["site"] = settings
	}
	if _, exists := payload["meta"]; !exists {
		payload["meta"] = view.NewMetadata(settings.Tagline, settings.Tagline)
	}
	if meta, ok := payload["meta"].(view.Metadata); ok && meta.Canonical == "" {
		payload["meta"] = meta.WithCanonical(a.baseURL, c.Request.URL.Path)
	}
	if _, exists := payload["year"]; !exists {
		payload["year"] = time.Now().Year()
	}
	if user := auth.CurrentUser(c); user != nil {
		payload["currentUser"] = user.Username
	}
	payload["path"] = strings.TrimSuffix(c.Request.URL.Path, "/")

	c.HTML(status, template, payload)
}
