package handler

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/revanew/site/internal/service"
	"github.com/revanew/site/internal/view"
)

const blogPerPage = 9

// ShowHome renders "/" from the home sections, each falling back to its defaults.
func (a *API) ShowHome(c *gin.Context) {
	ctx := c.Request.Context()
	sections := a.content.ResolveSections(ctx, "/", view.HomeSections...)

	featured, err := a.public.cases.ListPublished(ctx, service.CaseStudyFilter{Page: 1, PerPage: 3})
	if err != nil {
		a.logReadError("list featured case studies", err)
	}

	settings := a.siteSettings(c)
	meta := view.NewMetadata(settings.Tagline, view.DefaultHero.Subheadline).
		WithPage(a.content.GetPage(ctx, "/"))
	a.renderHTML(c, http.StatusOK, "home.html", gin.H{
		"meta":     meta,
		"page":     view.NewHomePage(sections),
		"featured": featured.Items,
	})
}

// ShowAbout renders "/about".
func (a *API) ShowAbout(c *gin.Context) {
	content := a.content.GetPageContent(c.Request.Context(), "/about")
	meta := view.NewMetadata("About", "Who we are and how we work.")
	if content != nil {
		meta = meta.WithPage(&content.Page)
	}

	a.renderHTML(c, http.StatusOK, "about.html", gin.H{
		"meta": meta,
		"page": view.NewAboutPage(sectionMap(content)),
	})
}

// ShowIndustries renders the industries overview.
func (a *API) ShowIndustries(c *gin.Context) {
	content := a.content.GetPageContent(c.Request.Context(), "/industries")
	meta := view.NewMetadata("Industries", "Revenue operations playbooks by industry.")
	if content != nil {
		meta = meta.WithPage(&content.Page)
	}

	a.renderHTML(c, http.StatusOK, "industries.html", gin.H{
		"meta": meta,
		"page": view.NewIndustriesPage(sectionMap(content)),
	})
}

// ShowIndustry renders the CMS page at /industries/<slug>. Industries are
// only listed once their page is published.
func (a *API) ShowIndustry(c *gin.Context) {
	slug := service.NormalizeSlug(c.Param("slug"))
	if slug == "" {
		a.renderNotFound(c, view.KindIndustry)
		return
	}

	content := a.content.GetPageContent(c.Request.Context(), "/industries/"+slug)
	if content == nil {
		a.renderNotFound(c, view.KindIndustry)
		return
	}

	a.renderHTML(c, http.StatusOK, "industry.html", gin.H{
		"meta": view.NewMetadata(content.Page.Title, content.Page.MetaDescription).WithPage(&content.Page),
		"page": view.NewIndustryPage(content, slug),
	})
}

// ListCaseStudies renders published case studies, optionally filtered by ?industry=.
func (a *API) ListCaseStudies(c *gin.Context) {
	industry := strings.TrimSpace(c.Query("industry"))
	page := parsePositiveInt(c.DefaultQuery("page", "1"), 1)

	result, err := a.public.cases.ListPublished(c.Request.Context(), service.CaseStudyFilter{
		Industry: industry,
		Page:     page,
		PerPage:  blogPerPage,
	})
	if err != nil {
		a.logReadError("list case studies", err)
	}

	a.renderHTML(c, http.StatusOK, "case_studies.html", gin.H{
		"meta":       view.NewMetadata("Case Studies", "How revenue teams renewed their operations with REV-ANEW."),
		"items":      result.Items,
		"industry":   industry,
		"page":       result.Page,
		"totalPages": result.TotalPages,
		"hasMore":    result.Page < result.TotalPages,
	})
}

// ShowCaseStudy renders a published case study by slug.
func (a *API) ShowCaseStudy(c *gin.Context) {
	item, err := a.public.cases.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if !errors.Is(err, service.ErrCaseStudyNotFound) {
			a.logReadError("get case study", err)
		}
		a.renderNotFound(c, view.KindCaseStudy)
		return
	}

	body, ok := a.markdown(c, item.Content)
	if !ok {
		return
	}

	a.renderHTML(c, http.StatusOK, "case_study.html", gin.H{
		"meta": view.NewMetadata(item.Title, item.Summary).WithImage(item.CoverImage),
		"item": item,
		"body": body,
	})
}

// ListBlogPosts renders the paginated blog index.
func (a *API) ListBlogPosts(c *gin.Context) {
	page := parsePositiveInt(c.DefaultQuery("page", "1"), 1)

	result, err := a.public.blog.ListPublished(c.Request.Context(), page, blogPerPage)
	if err != nil {
		a.logReadError("list blog posts", err)
	}

	a.renderHTML(c, http.StatusOK, "blog.html", gin.H{
		"meta":       view.NewMetadata("Blog", "Field notes on CRM, pipeline and revenue operations."),
		"items":      result.Items,
		"page":       result.Page,
		"totalPages": result.TotalPages,
		"hasMore":    result.Page < result.TotalPages,
	})
}

// ShowBlogPost renders a published post by slug.
func (a *API) ShowBlogPost(c *gin.Context) {
	post, err := a.public.blog.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if !errors.Is(err, service.ErrBlogPostNotFound) {
			a.logReadError("get blog post", err)
		}
		a.renderNotFound(c, view.KindBlogPost)
		return
	}

	body, ok := a.markdown(c, post.Content)
	if !ok {
		return
	}

	a.renderHTML(c, http.StatusOK, "blog_post.html", gin.H{
		"meta": view.NewMetadata(post.Title, post.Excerpt).WithImage(post.CoverImage),
		"item": post,
		"body": body,
	})
}

// ListSupportArticles renders the help center, optionally searched with ?q=.
func (a *API) ListSupportArticles(c *gin.Context) {
	search := strings.TrimSpace(c.Query("q"))
	ctx := c.Request.Context()

	articles, err := a.public.support.ListPublished(ctx, search)
	if err != nil {
		a.logReadError("list support articles", err)
	}

	a.renderHTML(c, http.StatusOK, "support.html", gin.H{
		"meta":     view.NewMetadata("Support", "Answers to common questions about working with REV-ANEW."),
		"items":    articles,
		"search":   search,
		"contact":  view.NewContact(a.content.GetSectionContent(ctx, "/support", view.SectionContact)),
		"hasQuery": search != "",
	})
}

// ShowSupportArticle renders a published support article by slug.
func (a *API) ShowSupportArticle(c *gin.Context) {
	article, err := a.public.support.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if !errors.Is(err, service.ErrSupportArticleNotFound) {
			a.logReadError("get support article", err)
		}
		a.renderNotFound(c, view.KindArticle)
		return
	}

	body, ok := a.markdown(c, article.Content)
	if !ok {
		return
	}

	a.renderHTML(c, http.StatusOK, "support_article.html", gin.H{
		"meta": view.NewMetadata(article.Title, article.Summary),
		"item": article,
		"body": body,
	})
}

// ListJobs renders the open positions.
func (a *API) ListJobs(c *gin.Context) {
	ctx := c.Request.Context()
	jobs, err := a.public.jobs.ListActive(ctx)
	if err != nil {
		a.logReadError("list job postings", err)
	}

	a.renderHTML(c, http.StatusOK, "careers.html", gin.H{
		"meta":  view.NewMetadata("Careers", "Join the team renewing how companies grow revenue."),
		"hero":  view.Hero{Headline: "Careers at REV-ANEW", Subheadline: "Small team, senior work, real ownership.", Visible: true}.Apply(a.content.GetSectionContent(ctx, "/careers", view.SectionHero)),
		"items": jobs,
	})
}

// ShowJob renders an active job posting by slug.
func (a *API) ShowJob(c *gin.Context) {
	job, err := a.public.jobs.GetActiveBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if !errors.Is(err, service.ErrJobPostingNotFound) {
			a.logReadError("get job posting", err)
		}
		a.renderNotFound(c, view.KindJobPosting)
		return
	}

	description, ok := a.markdown(c, job.Description)
	if !ok {
		return
	}
	requirements, ok := a.markdown(c, job.Requirements)
	if !ok {
		return
	}

	a.renderHTML(c, http.StatusOK, "job.html", gin.H{
		"meta":         view.NewMetadata(job.Title, job.Department+" · "+job.Location),
		"item":         job,
		"description":  description,
		"requirements": requirements,
	})
}

// NotFound answers unmatched routes.
func (a *API) NotFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/admin/api/") {
		respondError(c, http.StatusNotFound, "not found")
		return
	}
	a.renderNotFound(c, view.KindPage)
}

func (a *API) renderNotFound(c *gin.Context, kind string) {
	a.renderHTML(c, http.StatusNotFound, "not_found.html", gin.H{
		"meta": view.NotFoundMetadata(kind),
		"kind": kind,
	})
}

func (a *API) markdown(c *gin.Context, content string) (template.HTML, bool) {
	rendered, err := view.RenderMarkdown(content)
	if err != nil {
		a.log.Errorw("render markdown", "path", c.Request.URL.Path, "err", err)
		a.renderHTML(c, http.StatusInternalServerError, "not_found.html", gin.H{
			"meta":  view.NewMetadata("Something went wrong", ""),
			"error": "Failed to render this page.",
		})
		return "", false
	}
	return rendered, true
}

// logReadError 记录读取失败；未配置存储时只在 debug 级别输出。
func (a *API) logReadError(msg string, err error) {
	if errorsIsUnavailable(err) {
		a.log.Debugw(msg, "err", err)
		return
	}
	a.log.Errorw(msg, "err", err)
}

func sectionMap(content *service.PageContent) map[string]*service.SectionContent {
	sections := map[string]*service.SectionContent{}
	if content == nil {
		return sections
	}
	for _, section := range content.Sections {
		sections[section.Key()] = section
	}
	return sections
}
