// Package public embeds the storefront's static assets.
package public

import (
	"embed"
	"io/fs"
)

//go:embed static/*
var assets embed.FS

// StaticFS exposes the asset tree rooted at static/ for the file server.
func StaticFS() (fs.FS, error) {
	return fs.Sub(assets, "static")
}
