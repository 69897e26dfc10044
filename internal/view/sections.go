package view

import (
	"fmt"
	"html/template"

	"github.com/revanew/site/internal/service"
)

// Section keys the public pages ask for.
const (
	SectionHero        = "hero"
	SectionIntro       = "intro"
	SectionServices    = "services"
	SectionStats       = "stats"
	SectionTestimonial = "testimonial"
	SectionCTA         = "cta"
	SectionIndustries  = "industries"
	SectionContact     = "contact"
)

// 每个组件都带有内置默认值，Apply 只替换 CMS 中有值的字段。

// Hero is the banner at the top of a page.
type Hero struct {
	Headline        string
	Subheadline     string
	CTAText         string
	CTALink         string
	SecondaryText   string
	SecondaryLink   string
	BackgroundImage string
	Visible         bool
}

// DefaultHero is the home page banner.
var DefaultHero = Hero{
	Headline:        "Revenue operations, renewed.",
	Subheadline:     "REV-ANEW aligns your CRM, data and go-to-market teams so every quarter starts from a clean pipeline.",
	CTAText:         "Book a consultation",
	CTALink:         "/support#contact",
	SecondaryText:   "See our work",
	SecondaryLink:   "/case-studies",
	BackgroundImage: "/static/img/hero.svg",
	Visible:         true,
}

// NewHero applies sc over DefaultHero.
func NewHero(sc *service.SectionContent) Hero {
	return DefaultHero.Apply(sc)
}

// Apply returns h with every field present in sc substituted.
func (h Hero) Apply(sc *service.SectionContent) Hero {
	if sc == nil {
		return h
	}
	h.Headline = sc.Text("headline", h.Headline)
	h.Subheadline = sc.Text("subheadline", h.Subheadline)
	h.CTAText = sc.Text("cta_text", h.CTAText)
	h.CTALink = sc.Text("cta_link", h.CTALink)
	h.SecondaryText = sc.Text("secondary_cta_text", h.SecondaryText)
	h.SecondaryLink = sc.Text("secondary_cta_link", h.SecondaryLink)
	h.BackgroundImage = sc.Text("background_image", h.BackgroundImage)
	h.Visible = sc.Bool("visible", h.Visible)
	return h
}

// Intro is a heading followed by a body of copy.
type Intro struct {
	Eyebrow string
	Heading string
	Body    template.HTML
	Image   string
}

// DefaultIntro introduces the company.
var DefaultIntro = Intro{
	Eyebrow: "Who we are",
	Heading: "Operators first, consultants second",
	Body:    "We have run sales, marketing and customer success operations ourselves. We build the systems we wish we had been handed.",
}

// NewIntro applies sc over DefaultIntro.
func NewIntro(sc *service.SectionContent) Intro {
	return DefaultIntro.Apply(sc)
}

// Apply returns i with every field present in sc substituted.
func (i Intro) Apply(sc *service.SectionContent) Intro {
	if sc == nil {
		return i
	}
	i.Eyebrow = sc.Text("eyebrow", i.Eyebrow)
	i.Heading = sc.Text("heading", i.Heading)
	i.Body = richText(sc, "body", i.Body)
	i.Image = sc.Text("image", i.Image)
	return i
}

// ServiceItem is one card of the services grid.
type ServiceItem struct {
	Title       string
	Description string
	Icon        string
	Link        string
}

// IconSVG resolves the card icon.
func (s ServiceItem) IconSVG() template.HTML {
	return template.HTML(IconSVG(s.Icon))
}

// Services is a grid of offerings. Item fields are addressed as
// service_<n>_title, service_<n>_description, service_<n>_icon and service_<n>_link.
type Services struct {
	Heading    string
	Subheading string
	Items      []ServiceItem
}

// DefaultServices lists the core practice areas.
var DefaultServices = Services{
	Heading:    "What we do",
	Subheading: "Four practices, one operating model.",
	Items: []ServiceItem{
		{Title: "CRM implementation", Description: "Salesforce and HubSpot rollouts designed around how your team actually sells.", Icon: "workflow", Link: "/case-studies"},
		{Title: "Revenue analytics", Description: "One definition of pipeline, forecast and churn that finance and sales both trust.", Icon: "chart", Link: "/case-studies"},
		{Title: "Process design", Description: "Lead routing, handoffs and SLAs mapped end to end and then automated.", Icon: "users", Link: "/case-studies"},
		{Title: "Data governance", Description: "Deduplication, enrichment and permission models that keep the system clean.", Icon: "shield", Link: "/case-studies"},
	},
}

// NewServices applies sc over DefaultServices.
func NewServices(sc *service.SectionContent) Services {
	return DefaultServices.Apply(sc)
}

// Apply returns s with every field present in sc substituted.
func (s Services) Apply(sc *service.SectionContent) Services {
	s.Items = append([]ServiceItem(nil), s.Items...)
	if sc == nil {
		return s
	}
	s.Heading = sc.Text("heading", s.Heading)
	s.Subheading = sc.Text("subheading", s.Subheading)
	for i := range s.Items {
		n := i + 1
		s.Items[i].Title = sc.Text(itemKey("service", n, "title"), s.Items[i].Title)
		s.Items[i].Description = sc.Text(itemKey("service", n, "description"), s.Items[i].Description)
		s.Items[i].Icon = sc.Text(itemKey("service", n, "icon"), s.Items[i].Icon)
		s.Items[i].Link = sc.Text(itemKey("service", n, "link"), s.Items[i].Link)
	}
	return s
}

// Stat is a single figure with its label.
type Stat struct {
	Value string
	Label string
}

// Stats is a row of headline numbers, addressed as stat_<n>_value and stat_<n>_label.
type Stats struct {
	Heading string
	Items   []Stat
}

// DefaultStats shows the track record.
var DefaultStats = Stats{
	Heading: "Results our clients keep",
	Items: []Stat{
		{Value: "120+", Label: "CRM rollouts delivered"},
		{Value: "32%", Label: "Average lift in win rate"},
		{Value: "9 wks", Label: "Median time to go-live"},
		{Value: "98%", Label: "Client retention"},
	},
}

// NewStats applies sc over DefaultStats.
func NewStats(sc *service.SectionContent) Stats {
	return DefaultStats.Apply(sc)
}

// Apply returns s with every field present in sc substituted.
func (s Stats) Apply(sc *service.SectionContent) Stats {
	s.Items = append([]Stat(nil), s.Items...)
	if sc == nil {
		return s
	}
	s.Heading = sc.Text("heading", s.Heading)
	for i := range s.Items {
		n := i + 1
		s.Items[i].Value = sc.Text(itemKey("stat", n, "value"), s.Items[i].Value)
		s.Items[i].Label = sc.Text(itemKey("stat", n, "label"), s.Items[i].Label)
	}
	return s
}

// Testimonial is a client quote.
type Testimonial struct {
	Quote   string
	Author  string
	Role    string
	Company string
	Avatar  string
}

// DefaultTestimonial is shown until a quote is entered in the CMS.
var DefaultTestimonial = Testimonial{
	Quote:   "REV-ANEW untangled five years of CRM debt in one quarter. Our forecast call went from an argument to a formality.",
	Author:  "Dana Whitfield",
	Role:    "VP Revenue Operations",
	Company: "Northwind Logistics",
}

// NewTestimonial applies sc over DefaultTestimonial.
func NewTestimonial(sc *service.SectionContent) Testimonial {
	return DefaultTestimonial.Apply(sc)
}

// Apply returns t with every field present in sc substituted.
func (t Testimonial) Apply(sc *service.SectionContent) Testimonial {
	if sc == nil {
		return t
	}
	t.Quote = sc.Text("quote", t.Quote)
	t.Author = sc.Text("author", t.Author)
	t.Role = sc.Text("role", t.Role)
	t.Company = sc.Text("company", t.Company)
	t.Avatar = sc.Text("avatar", t.Avatar)
	return t
}

// CTA is the closing call to action.
type CTA struct {
	Heading    string
	Body       string
	ButtonText string
	ButtonLink string
	Visible    bool
}

// DefaultCTA closes most pages.
var DefaultCTA = CTA{
	Heading:    "Ready to renew your revenue engine?",
	Body:       "Tell us where the pipeline leaks. We will show you how to fix it.",
	ButtonText: "Talk to us",
	ButtonLink: "/support#contact",
	Visible:    true,
}

// NewCTA applies sc over DefaultCTA.
func NewCTA(sc *service.SectionContent) CTA {
	return DefaultCTA.Apply(sc)
}

// Apply returns c with every field present in sc substituted.
func (c CTA) Apply(sc *service.SectionContent) CTA {
	if sc == nil {
		return c
	}
	c.Heading = sc.Text("heading", c.Heading)
	c.Body = sc.Text("body", c.Body)
	c.ButtonText = sc.Text("button_text", c.ButtonText)
	c.ButtonLink = sc.Text("button_link", c.ButtonLink)
	c.Visible = sc.Bool("visible", c.Visible)
	return c
}

// Industry is one vertical the company serves.
type Industry struct {
	Name    string
	Summary string
	Slug    string
	Image   string
}

// Link is the industry detail path.
func (i Industry) Link() string {
	return "/industries/" + i.Slug
}

// IndustryList is addressed as industry_<n>_name, industry_<n>_summary,
// industry_<n>_slug and industry_<n>_image.
type IndustryList struct {
	Heading    string
	Subheading string
	Items      []Industry
}

// DefaultIndustryList covers the verticals with dedicated pages.
var DefaultIndustryList = IndustryList{
	Heading:    "Industries we serve",
	Subheading: "Playbooks tuned to how each market buys.",
	Items: []Industry{
		{Name: "SaaS", Summary: "Product-led and sales-led motions on one CRM.", Slug: "saas"},
		{Name: "Manufacturing", Summary: "Distributor pipelines and quote-to-cash visibility.", Slug: "manufacturing"},
		{Name: "Financial services", Summary: "Compliant relationship management for advisors and bankers.", Slug: "financial-services"},
		{Name: "Healthcare", Summary: "Referral tracking and account planning for provider networks.", Slug: "healthcare"},
	},
}

// NewIndustryList applies sc over DefaultIndustryList.
func NewIndustryList(sc *service.SectionContent) IndustryList {
	return DefaultIndustryList.Apply(sc)
}

// Apply returns l with every field present in sc substituted.
func (l IndustryList) Apply(sc *service.SectionContent) IndustryList {
	l.Items = append([]Industry(nil), l.Items...)
	if sc == nil {
		return l
	}
	l.Heading = sc.Text("heading", l.Heading)
	l.Subheading = sc.Text("subheading", l.Subheading)
	for i := range l.Items {
		n := i + 1
		l.Items[i].Name = sc.Text(itemKey("industry", n, "name"), l.Items[i].Name)
		l.Items[i].Summary = sc.Text(itemKey("industry", n, "summary"), l.Items[i].Summary)
		l.Items[i].Slug = service.NormalizeSlug(sc.Text(itemKey("industry", n, "slug"), l.Items[i].Slug))
		l.Items[i].Image = sc.Text(itemKey("industry", n, "image"), l.Items[i].Image)
	}
	return l
}

// Contact is the contact block.
type Contact struct {
	Heading  string
	Body     string
	Email    string
	Phone    string
	Address  string
	ShowForm bool
}

// DefaultContact is shown on the about and support pages.
var DefaultContact = Contact{
	Heading:  "Get in touch",
	Body:     "We reply to every message within one business day.",
	Email:    "hello@rev-anew.com",
	Phone:    "+1 (555) 010-2024",
	Address:  "Austin, Texas",
	ShowForm: true,
}

// NewContact applies sc over DefaultContact.
func NewContact(sc *service.SectionContent) Contact {
	return DefaultContact.Apply(sc)
}

// Apply returns c with every field present in sc substituted.
func (c Contact) Apply(sc *service.SectionContent) Contact {
	if sc == nil {
		return c
	}
	c.Heading = sc.Text("heading", c.Heading)
	c.Body = sc.Text("body", c.Body)
	c.Email = sc.Text("email", c.Email)
	c.Phone = sc.Text("phone", c.Phone)
	c.Address = sc.Text("address", c.Address)
	c.ShowForm = sc.Bool("show_form", c.ShowForm)
	return c
}

// EmailIcon and PhoneIcon are used by the contact template.
func (c Contact) EmailIcon() template.HTML { return template.HTML(IconSVG("email")) }
func (c Contact) PhoneIcon() template.HTML { return template.HTML(IconSVG("phone")) }

func itemKey(prefix string, n int, field string) string {
	return fmt.Sprintf("%s_%d_%s", prefix, n, field)
}
