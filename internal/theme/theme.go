// Package theme embeds the default layouts and the terminal stylesheet.
package theme

import (
	"embed"
	"io/fs"
)

//go:embed layouts static
var files embed.FS

// Layouts holds base.html, partials/*.html and one template per page kind.
func Layouts() fs.FS {
	sub, err := fs.Sub(files, "layouts")
	if err != nil {
		panic(err)
	}
	return sub
}

// Static holds the assets copied verbatim into the output directory.
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
