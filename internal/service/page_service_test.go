package service

import (
	"context"
	"errors"
	"testing"

	"github.com/revanew/site/internal/db"
	"github.com/revanew/site/internal/store"
)

func TestPageServiceCreateNormalizesInput(t *testing.T) {
	_, client := setupServiceTestDB(t)
	svc := NewPageService(client)

	page, err := svc.Create(context.Background(), PageInput{Route: "about/", Title: "  About  "}, "admin")
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	if page.Route != "/about" || page.Title != "About" {
		t.Fatalf("unexpected page %q %q", page.Route, page.Title)
	}
	if page.Status != db.StatusDraft {
		t.Fatalf("expected draft default, got %q", page.Status)
	}
	if page.CreatedBy != "admin" || page.UpdatedBy != "admin" {
		t.Fatalf("expected actor recorded, got %q/%q", page.CreatedBy, page.UpdatedBy)
	}
}

func TestPageServiceCreateValidates(t *testing.T) {
	_, client := setupServiceTestDB(t)
	svc := NewPageService(client)
	ctx := context.Background()

	cases := []struct {
		name  string
		input PageInput
		want  error
	}{
		{"missing route", PageInput{Title: "x"}, ErrRouteRequired},
		{"missing title", PageInput{Route: "/x"}, ErrTitleRequired},
		{"bad status", PageInput{Route: "/x", Title: "x", Status: "archived"}, ErrStatusInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tc.input, "admin"); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestPageServiceSaveSectionUpserts(t *testing.T) {
	_, client := setupServiceTestDB(t)
	svc := NewPageService(client)
	ctx := context.Background()

	page, err := svc.Create(ctx, PageInput{Route: "/", Title: "Home", Status: "published"}, "admin")
	if err != nil {
		t.Fatalf("create page: %v", err)
	}

	first, err := svc.SaveSection(ctx, page.ID, SectionInput{SectionKey: "hero", DisplayOrder: 1}, "admin")
	if err != nil {
		t.Fatalf("save section: %v", err)
	}
	second, err := svc.SaveSection(ctx, page.ID, SectionInput{SectionKey: "hero", DisplayOrder: 3, Status: "published"}, "editor")
	if err != nil {
		t.Fatalf("save section again: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected same section, got %d and %d", first.ID, second.ID)
	}
	if second.DisplayOrder != 3 || second.Status != db.StatusPublished || second.UpdatedBy != "editor" {
		t.Fatalf("section not updated: %+v", second)
	}

	if _, err := svc.SaveSection(ctx, 999, SectionInput{SectionKey: "hero"}, "admin"); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}
	if _, err := svc.SaveSection(ctx, page.ID, SectionInput{}, "admin"); !errors.Is(err, ErrSectionKeyRequired) {
		t.Fatalf("expected ErrSectionKeyRequired, got %v", err)
	}
}

func TestPageServiceReplaceFields(t *testing.T) {
	gdb, client := setupServiceTestDB(t)
	svc := NewPageService(client)
	ctx := context.Background()

	section := seedSection(t, gdb, "/", db.StatusPublished, "hero", db.StatusPublished,
		db.ContentField{FieldKey: "old", FieldType: db.FieldText, FieldValue: strPtr("stale")},
	)

	fields, err := svc.ReplaceFields(ctx, section.ID, []FieldInput{
		{FieldKey: "headline", FieldValue: strPtr("Grow Faster")},
		{FieldKey: "visible", FieldType: "BOOLEAN", FieldValue: strPtr("true")},
	}, "admin")
	if err != nil {
		t.Fatalf("replace fields: %v", err)
	}
	if len(fields) != 2 || fields[0].FieldType != db.FieldText || fields[1].FieldType != db.FieldBoolean {
		t.Fatalf("unexpected fields %+v", fields)
	}

	var count int64
	gdb.Model(&db.ContentField{}).Where("section_id = ?", section.ID).Count(&count)
	if count != 2 {
		t.Fatalf("expected old field set replaced, have %d rows", count)
	}
}

func TestPageServiceReplaceFieldsRejectsBadSets(t *testing.T) {
	gdb, client := setupServiceTestDB(t)
	svc := NewPageService(client)
	ctx := context.Background()

	section := seedSection(t, gdb, "/", db.StatusPublished, "hero", db.StatusPublished,
		db.ContentField{FieldKey: "headline", FieldType: db.FieldText, FieldValue: strPtr("keep")},
	)

	cases := []struct {
		name   string
		inputs []FieldInput
		want   error
	}{
		{"duplicate key", []FieldInput{{FieldKey: "a"}, {FieldKey: "a"}}, ErrDuplicateFieldKey},
		{"unknown type", []FieldInput{{FieldKey: "a", FieldType: "video"}}, ErrFieldTypeInvalid},
		{"blank key", []FieldInput{{FieldKey: " "}}, ErrFieldKeyRequired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.ReplaceFields(ctx, section.ID, tc.inputs, "admin"); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	sc := NewContentService(client, nil).GetSectionContent(ctx, "/", "hero")
	if got := sc.Text("headline", ""); got != "keep" {
		t.Fatalf("rejected set must leave fields untouched, got %q", got)
	}

	if _, err := svc.ReplaceFields(ctx, 999, nil, "admin"); !errors.Is(err, ErrSectionNotFound) {
		t.Fatalf("expected ErrSectionNotFound, got %v", err)
	}
}

func TestPageServiceDeleteCascades(t *testing.T) {
	gdb, client := setupServiceTestDB(t)
	svc := NewPageService(client)
	ctx := context.Background()

	section := seedSection(t, gdb, "/about", db.StatusPublished, "intro", db.StatusPublished,
		db.ContentField{FieldKey: "heading", FieldType: db.FieldText},
	)

	if err := svc.Delete(ctx, section.PageID); err != nil {
		t.Fatalf("delete page: %v", err)
	}
	var sections, fields int64
	gdb.Model(&db.Section{}).Count(&sections)
	gdb.Model(&db.ContentField{}).Count(&fields)
	if sections != 0 || fields != 0 {
		t.Fatalf("expected cascade, have %d sections %d fields", sections, fields)
	}
	if err := svc.Delete(ctx, section.PageID); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}
}

func TestPageServiceGetIncludesDrafts(t *testing.T) {
	gdb, client := setupServiceTestDB(t)
	seedSection(t, gdb, "/careers", db.StatusDraft, "hero", db.StatusDraft,
		db.ContentField{FieldKey: "headline", FieldType: db.FieldText, FieldValue: strPtr("Join us")},
	)
	var page db.Page
	gdb.Where("route = ?", "/careers").First(&page)

	got, err := NewPageService(client).Get(context.Background(), page.ID)
	if err != nil {
		t.Fatalf("get page: %v", err)
	}
	if len(got.Sections) != 1 || len(got.Sections[0].Fields) != 1 {
		t.Fatalf("expected draft section with fields, got %+v", got.Sections)
	}
}

func TestPageServiceWritesNeedServiceAccess(t *testing.T) {
	gdb, _ := setupServiceTestDB(t)
	svc := NewPageService(store.New(gdb, store.AccessPublic))

	if _, err := svc.Create(context.Background(), PageInput{Route: "/x", Title: "x"}, "admin"); !errors.Is(err, store.ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly, got %v", err)
	}
}
