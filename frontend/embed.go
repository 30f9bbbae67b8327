package frontend

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
)

//go:embed all:dist
var dist embed.FS

// requiredAssets must all exist for the embedded dashboard to be usable
var requiredAssets = []string{"index.html", "app.js", "style.css"}

// Assets returns the embedded dashboard page and scripts
func Assets() (http.FileSystem, error) {
	sub, err := fs.Sub(dist, "dist")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open embedded dashboard assets")
	}

	for _, name := range requiredAssets {
		if _, err := fs.Stat(sub, name); err != nil {
			return nil, goerr.Wrap(err, "embedded dashboard asset is missing", goerr.V("name", name))
		}
	}

	return http.FS(sub), nil
}
