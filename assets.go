// Package portal provides embedded assets for production builds.
package portal

import "embed"

// In dev mode (IsDev=true), templates and static files are read from disk for hot reloading.
// Otherwise they are served from these embedded filesystems.

//go:embed all:web/static
var StaticFS embed.FS

//go:embed all:web/templates
var TemplateFS embed.FS
