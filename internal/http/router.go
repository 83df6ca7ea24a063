package http

import (
	"io/fs"
	nethttp "net/http"

	"github.com/gorilla/mux"

	"richli-site/internal/handlers"
	"richli-site/internal/monitoring"
	"richli-site/internal/views"
	"richli-site/static"
)

// NewRouter wires the page, health, metrics and static routes
func NewRouter(pageHandler *handlers.PageHandler, healthHandler *handlers.HealthHandler, metrics *monitoring.Metrics, metricsEnabled bool) *mux.Router {
	r := mux.NewRouter()

	// Pages
	r.HandleFunc("/", pageHandler.Home).Methods(nethttp.MethodGet, nethttp.MethodHead)
	r.HandleFunc(views.ImpressumPath, pageHandler.Impressum).Methods(nethttp.MethodGet, nethttp.MethodHead)

	// Static files
	r.PathPrefix("/static/").Handler(nethttp.StripPrefix("/static/", staticFiles())).Methods(nethttp.MethodGet, nethttp.MethodHead)
	r.Handle("/robots.txt", nethttp.FileServer(nethttp.FS(static.FS))).Methods(nethttp.MethodGet, nethttp.MethodHead)

	// Operations
	r.HandleFunc("/health", healthHandler.Health).Methods(nethttp.MethodGet)
	if metricsEnabled {
		r.Handle("/metrics", metrics.Handler()).Methods(nethttp.MethodGet)
	}

	r.NotFoundHandler = nethttp.HandlerFunc(pageHandler.NotFound)
	return r
}

// staticFiles serves the embedded assets with a long cache lifetime and no
// directory listings.
func staticFiles() nethttp.Handler {
	files := nethttp.FileServer(nethttp.FS(static.FS))
	return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.URL.Path == "" || r.URL.Path[len(r.URL.Path)-1] == '/' {
			nethttp.NotFound(w, r)
			return
		}
		if info, err := fs.Stat(static.FS, r.URL.Path); err != nil || info.IsDir() {
			nethttp.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "public, max-age=86400")
		files.ServeHTTP(w, r)
	})
}
