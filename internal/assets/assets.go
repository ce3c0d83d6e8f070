// Package assets embeds the files served under /static.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed static
var staticFS embed.FS

// FS returns the static directory as the root of a file system.
func FS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// "static" is embedded at compile time; Sub only fails on an invalid path.
		panic(err)
	}
	return sub
}
