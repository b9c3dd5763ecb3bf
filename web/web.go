// Package web embeds the Mergington High School landing page.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var staticFiles embed.FS

// Static returns the landing page assets rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		// the embed pattern guarantees the directory exists
		panic(err)
	}
	return sub
}
