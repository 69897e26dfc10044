package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/revanew/site/internal/config"
	"github.com/revanew/site/internal/db"
	"github.com/revanew/site/internal/logger"
	"github.com/revanew/site/internal/service"
	"github.com/revanew/site/internal/store"
)

const seedActor = "seed"

// 演示数据生成器
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logr, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}

	client, err := store.Open(cfg.Store, logr)
	if err != nil {
		log.Fatalf("open content store: %v", err)
	}
	defer client.Close()

	fmt.Println("seeding demo content...")
	summary, err := seed(context.Background(), client.Privileged())
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	fmt.Printf("done: %d pages, %d blog posts, %d case studies, %d jobs, %d support articles\n",
		summary.pages, summary.posts, summary.cases, summary.jobs, summary.articles)
}

type seedSummary struct {
	pages, posts, cases, jobs, articles int
}

// seed creates demo records through the services. Records whose route or
// slug already exists are skipped, so running it twice is harmless.
func seed(ctx context.Context, client *store.Client) (seedSummary, error) {
	var summary seedSummary

	gdb, err := client.Write(ctx)
	if err != nil {
		return summary, err
	}

	var pageCount int64
	if err := gdb.Model(&db.Page{}).Count(&pageCount).Error; err != nil {
		return summary, err
	}
	if pageCount > 0 {
		fmt.Println("pages already exist, skipping demo content")
		return summary, nil
	}

	taxa := service.NewTaxonomyService(client)
	insights, err := taxa.CreateCategory(ctx, "Insights", "")
	if err != nil {
		return summary, err
	}
	onboarding, err := taxa.CreateCategory(ctx, "Getting started", "")
	if err != nil {
		return summary, err
	}
	author, err := taxa.CreateAuthor(ctx, service.AuthorInput{Name: "Morgan Lee", Title: "Principal Consultant"})
	if err != nil {
		return summary, err
	}

	if summary.pages, err = seedPages(ctx, client); err != nil {
		return summary, fmt.Errorf("pages: %w", err)
	}
	if summary.posts, err = seedBlog(ctx, client, insights.ID, author.ID); err != nil {
		return summary, fmt.Errorf("blog: %w", err)
	}
	if summary.cases, err = seedCaseStudies(ctx, client, author.ID); err != nil {
		return summary, fmt.Errorf("case studies: %w", err)
	}
	if summary.jobs, err = seedJobs(ctx, client); err != nil {
		return summary, fmt.Errorf("jobs: %w", err)
	}
	if summary.articles, err = seedSupport(ctx, client, onboarding.ID); err != nil {
		return summary, fmt.Errorf("support: %w", err)
	}
	return summary, nil
}

type seedSection struct {
	key    string
	order  int
	fields map[string]string
}

type seedPage struct {
	route, title, description string
	sections                  []seedSection
}

var demoPages = []seedPage{
	{
		route: "/", title: "Revenue operations consulting", description: "REV-ANEW renews the systems behind your revenue.",
		sections: []seedSection{
			{key: "hero", order: 1, fields: map[string]string{"headline": "Grow Faster", "subheadline": "CRM, data and process work that shows up in next quarter's number."}},
			{key: "stats", order: 2, fields: map[string]string{"stat_1_value": "150+", "stat_1_label": "Revenue teams served"}},
		},
	},
	{
		route: "/about", title: "About us", description: "Operators who have carried a quota.",
		sections: []seedSection{
			{key: "intro", order: 1, fields: map[string]string{"heading": "Founded by operators", "body": "We started REV-ANEW after a decade of **running** RevOps in-house."}},
		},
	},
	{
		route: "/industries/saas", title: "SaaS", description: "Revenue operations for software companies.",
		sections: []seedSection{
			{key: "hero", order: 1, fields: map[string]string{"headline": "RevOps for SaaS", "subheadline": "Usage, pipeline and renewals in one model."}},
		},
	},
}

func seedPages(ctx context.Context, client *store.Client) (int, error) {
	pages := service.NewPageService(client)
	created := 0
	for _, demo := range demoPages {
		page, err := pages.Create(ctx, service.PageInput{
			Route:           demo.route,
			Title:           demo.title,
			MetaDescription: demo.description,
			Status:          db.StatusPublished,
		}, seedActor)
		if err != nil {
			return created, err
		}
		for _, s := range demo.sections {
			section, err := pages.SaveSection(ctx, page.ID, service.SectionInput{
				SectionKey:   s.key,
				SectionType:  s.key,
				DisplayOrder: s.order,
				Status:       db.StatusPublished,
			}, seedActor)
			if err != nil {
				return created, err
			}
			inputs := make([]service.FieldInput, 0, len(s.fields))
			for key, value := range s.fields {
				value := value
				fieldType := string(db.FieldText)
				if key == "body" {
					fieldType = string(db.FieldRichText)
				}
				inputs = append(inputs, service.FieldInput{FieldKey: key, FieldType: fieldType, FieldValue: &value})
			}
			if _, err := pages.ReplaceFields(ctx, section.ID, inputs, seedActor); err != nil {
				return created, err
			}
		}
		created++
	}
	return created, nil
}

func seedBlog(ctx context.Context, client *store.Client, categoryID, authorID uint) (int, error) {
	blog := service.NewBlogService(client)
	posts := []service.BlogPostInput{
		{Title: "Five signs your CRM needs a reset", Slug: "crm-reset-signs", Content: "## Duplicate accounts\nIf reps keep creating the same account twice, the system is working against them.", Status: db.StatusPublished},
		{Title: "Forecasting without the spreadsheet", Slug: "forecasting-without-spreadsheets", Content: "Most forecast calls start with an export. They should not.", Status: db.StatusPublished},
		{Title: "Draft: territory planning checklist", Slug: "territory-planning-checklist", Content: "Work in progress.", Status: db.StatusDraft},
	}
	return createAll(posts, func(input service.BlogPostInput) error {
		input.CategoryID = &categoryID
		input.AuthorID = &authorID
		_, err := blog.Create(ctx, input, seedActor)
		return err
	})
}

func seedCaseStudies(ctx context.Context, client *store.Client, authorID uint) (int, error) {
	cases := service.NewCaseStudyService(client)
	items := []service.CaseStudyInput{
		{
			Title: "Northwind consolidates three CRMs into one", Slug: "northwind-crm-consolidation",
			ClientName: "Northwind Logistics", Industry: "Manufacturing",
			Summary:   "A single pipeline view across three regional sales teams.",
			Challenge: "Three CRMs, three definitions of a qualified opportunity.",
			Solution:  "One Salesforce org with shared stages and automated handoffs.",
			Results:   "Forecast accuracy within 5% for four straight quarters.",
			Status:    db.StatusPublished,
		},
		{
			Title: "Contoso cuts lead response time to minutes", Slug: "contoso-lead-routing",
			ClientName: "Contoso Health", Industry: "Healthcare",
			Summary: "Routing rules that send every inbound lead to the right rep.",
			Status:  db.StatusPublished,
		},
	}
	return createAll(items, func(input service.CaseStudyInput) error {
		input.AuthorID = &authorID
		_, err := cases.Create(ctx, input, seedActor)
		return err
	})
}

func seedJobs(ctx context.Context, client *store.Client) (int, error) {
	jobs := service.NewJobService(client)
	items := []service.JobPostingInput{
		{Title: "Senior Salesforce Consultant", Slug: "senior-salesforce-consultant", Department: "Delivery", Location: "Remote (US)", EmploymentType: "Full-time", Description: "Lead CRM implementations end to end.", ApplyURL: "mailto:careers@rev-anew.com", Status: db.JobStatusActive},
		{Title: "Revenue Analyst", Slug: "revenue-analyst", Department: "Analytics", Location: "Austin, TX", EmploymentType: "Full-time", Description: "Build the dashboards our clients run their business on.", ApplyURL: "mailto:careers@rev-anew.com", Status: db.JobStatusActive},
	}
	return createAll(items, func(input service.JobPostingInput) error {
		_, err := jobs.Create(ctx, input, seedActor)
		return err
	})
}

func seedSupport(ctx context.Context, client *store.Client, categoryID uint) (int, error) {
	support := service.NewSupportService(client)
	items := []service.SupportArticleInput{
		{Title: "What happens in the first week", Slug: "first-week", Summary: "Kickoff, access and discovery.", Content: "We start with a kickoff call and a review of your current CRM.", DisplayOrder: 1, Status: db.StatusPublished},
		{Title: "Granting sandbox access", Slug: "sandbox-access", Summary: "How to invite our team to a sandbox.", Content: "Create a user with the System Administrator profile in a full sandbox.", DisplayOrder: 2, Status: db.StatusPublished},
	}
	return createAll(items, func(input service.SupportArticleInput) error {
		input.CategoryID = &categoryID
		_, err := support.Create(ctx, input, seedActor)
		return err
	})
}

func createAll[T any](items []T, create func(T) error) (int, error) {
	created := 0
	var errs []error
	for _, item := range items {
		if err := create(item); err != nil {
			errs = append(errs, err)
			continue
		}
		created++
	}
	return created, errors.Join(errs...)
}
