package db

// Publication states shared by pages, sections and editorial records.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Job posting states. Only active postings are listed publicly.
const (
	JobStatusDraft  = "draft"
	JobStatusActive = "active"
	JobStatusClosed = "closed"
)

// Roles recognised by the admin gate.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

// FieldType enumerates the value kinds a content field may hold.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldRichText FieldType = "richtext"
	FieldImage    FieldType = "image"
	FieldURL      FieldType = "url"
	FieldBoolean  FieldType = "boolean"
)

// FieldTypes lists every accepted field type in display order.
var FieldTypes = []FieldType{FieldText, FieldTextarea, FieldRichText, FieldImage, FieldURL, FieldBoolean}

// Valid reports whether t is one of the fixed field types.
func (t FieldType) Valid() bool {
	for _, known := range FieldTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ValidEditorialStatus reports whether s is draft or published.
func ValidEditorialStatus(s string) bool {
	return s == StatusDraft || s == StatusPublished
}

// ValidJobStatus reports whether s is a job posting state.
func ValidJobStatus(s string) bool {
	return s == JobStatusDraft || s == JobStatusActive || s == JobStatusClosed
}
