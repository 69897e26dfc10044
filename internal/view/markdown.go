package view

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/revanew/site/internal/db"
	"github.com/revanew/site/internal/service"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// RenderMarkdown converts markdown into sanitized HTML.
func RenderMarkdown(content string) (template.HTML, error) {
	if strings.TrimSpace(content) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes())), nil
}

// richText renders a field as HTML. richtext fields go through markdown,
// anything else is escaped; a missing field or a failed render keeps fallback.
func richText(sc *service.SectionContent, key string, fallback template.HTML) template.HTML {
	value, ok := sc.Value(key)
	if !ok {
		return fallback
	}
	field, _ := sc.Field(key)
	if field.FieldType != db.FieldRichText {
		return template.HTML(template.HTMLEscapeString(value))
	}
	rendered, err := RenderMarkdown(value)
	if err != nil {
		return fallback
	}
	return rendered
}
