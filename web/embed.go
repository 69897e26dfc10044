// Package web embeds the HTML templates and static assets.
package web

import "embed"

// Templates holds every page template; each file defines templates named after it.
//
//go:embed template
var Templates embed.FS

// Static holds css, js and images served under /static.
//
//go:embed static
var Static embed.FS
