package web

import (
	"io/fs"
	"net/http"
)

// RegisterRoutes registers the browser client routes on the provided mux.
// The page is served at /app/ so the API can keep GET / for the record list.
func RegisterRoutes(mux *http.ServeMux) {
	staticFS, _ := fs.Sub(StaticFS, "static")
	fileServer := http.StripPrefix("/app/", http.FileServerFS(staticFS))

	mux.Handle("GET /app/", noCache(fileServer))
	mux.Handle("GET /app", http.RedirectHandler("/app/", http.StatusMovedPermanently))
}

// noCache keeps browsers from holding a stale app.js across server upgrades.
func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		next.ServeHTTP(w, r)
	})
}
