package staticize

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/felixge/httpsnoop"
	"github.com/gorilla/mux"
)

// PreviewRouter serves the converted pages under pathPrefix.  Converted
// pages point one level above the output root for their assets, so the
// asset folders are served from assetRoot at the top of the URL space.
func PreviewRouter(destRoot, assetRoot, pathPrefix string, folders []string) *mux.Router {
	if pathPrefix == "" {
		pathPrefix = "/"
	}
	if !strings.HasSuffix(pathPrefix, "/") {
		pathPrefix += "/"
	}
	router := mux.NewRouter()
	if assetRoot != "" {
		for _, folder := range folders {
			path := "/" + folder + "/"
			router.PathPrefix(path).Handler(http.FileServer(http.Dir(assetRoot)))
		}
	}
	router.PathPrefix(pathPrefix).Handler(
		http.StripPrefix(pathPrefix, http.FileServer(http.Dir(destRoot))))
	return router
}

// WithLogger logs status and latency of every request.
func WithLogger(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		m := httpsnoop.CaptureMetrics(handler, writer, request)
		slog.Info("http", "code", m.Code, "duration", m.Duration, "path", request.URL.Path)
	})
}

// AssetFolders lists the distinct asset folders of the configured rules.
func (c *Config) AssetFolders() (out []string) {
	seen := map[string]bool{}
	for _, r := range c.Assets {
		if !seen[r.Folder] {
			seen[r.Folder] = true
			out = append(out, r.Folder)
		}
	}
	return
}
