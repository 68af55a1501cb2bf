// Package web embeds the browser front end served at the site root.
package web

import (
	"embed"
	"io/fs"
)

//go:embed public
var public embed.FS

// Assets returns the front end files rooted at public/.
func Assets() fs.FS {
	sub, err := fs.Sub(public, "public")
	if err != nil {
		panic(err)
	}
	return sub
}
