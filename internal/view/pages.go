package view

import "github.com/revanew/site/internal/service"

// HomeSections lists the section keys rendered on "/".
var HomeSections = []string{SectionHero, SectionIntro, SectionServices, SectionStats, SectionTestimonial, SectionCTA}

// HomePage is the view model of the home page.
type HomePage struct {
	Hero        Hero
	Intro       Intro
	Services    Services
	Stats       Stats
	Testimonial Testimonial
	CTA         CTA
}

// NewHomePage builds the home page from resolved sections. Missing keys keep defaults.
func NewHomePage(sections map[string]*service.SectionContent) HomePage {
	return HomePage{
		Hero:        NewHero(sections[SectionHero]),
		Intro:       NewIntro(sections[SectionIntro]),
		Services:    NewServices(sections[SectionServices]),
		Stats:       NewStats(sections[SectionStats]),
		Testimonial: NewTestimonial(sections[SectionTestimonial]),
		CTA:         NewCTA(sections[SectionCTA]),
	}
}

// AboutSections lists the section keys rendered on "/about".
var AboutSections = []string{SectionHero, SectionIntro, SectionStats, SectionTestimonial, SectionContact}

var aboutHero = Hero{
	Headline:    "About REV-ANEW",
	Subheadline: "A revenue operations firm built by people who have carried a quota.",
	CTAText:     "Meet the team",
	CTALink:     "/careers",
	Visible:     true,
}

// AboutPage is the view model of "/about".
type AboutPage struct {
	Hero        Hero
	Intro       Intro
	Stats       Stats
	Testimonial Testimonial
	Contact     Contact
}

// NewAboutPage builds the about page from resolved sections.
func NewAboutPage(sections map[string]*service.SectionContent) AboutPage {
	return AboutPage{
		Hero:        aboutHero.Apply(sections[SectionHero]),
		Intro:       NewIntro(sections[SectionIntro]),
		Stats:       NewStats(sections[SectionStats]),
		Testimonial: NewTestimonial(sections[SectionTestimonial]),
		Contact:     NewContact(sections[SectionContact]),
	}
}

// IndustriesSections lists the section keys rendered on "/industries".
var IndustriesSections = []string{SectionHero, SectionIndustries, SectionCTA}

var industriesHero = Hero{
	Headline:    "Built for your market",
	Subheadline: "Every industry sells differently. Our playbooks start from that.",
	CTAText:     "Browse case studies",
	CTALink:     "/case-studies",
	Visible:     true,
}

// IndustriesPage is the view model of "/industries".
type IndustriesPage struct {
	Hero       Hero
	Industries IndustryList
	CTA        CTA
}

// NewIndustriesPage builds the industries overview.
func NewIndustriesPage(sections map[string]*service.SectionContent) IndustriesPage {
	return IndustriesPage{
		Hero:       industriesHero.Apply(sections[SectionHero]),
		Industries: NewIndustryList(sections[SectionIndustries]),
		CTA:        NewCTA(sections[SectionCTA]),
	}
}

// IndustryPage is a CMS page under /industries/<slug>.
type IndustryPage struct {
	Hero     Hero
	Intro    Intro
	Services Services
	CTA      CTA
}

// NewIndustryPage builds an industry detail page. The hero headline falls back
// to the industry name from the default list, then to the page title.
func NewIndustryPage(content *service.PageContent, slug string) IndustryPage {
	hero := Hero{CTAText: DefaultCTA.ButtonText, CTALink: DefaultCTA.ButtonLink, Visible: true}
	for _, industry := range DefaultIndustryList.Items {
		if industry.Slug == slug {
			hero.Headline = industry.Name
			hero.Subheadline = industry.Summary
		}
	}
	if content != nil && hero.Headline == "" {
		hero.Headline = content.Page.Title
	}
	return IndustryPage{
		Hero:     hero.Apply(content.Section(SectionHero)),
		Intro:    NewIntro(content.Section(SectionIntro)),
		Services: NewServices(content.Section(SectionServices)),
		CTA:      NewCTA(content.Section(SectionCTA)),
	}
}
