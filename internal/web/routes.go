package web

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/veriface/veriface/internal/faceauth"
	"github.com/veriface/veriface/internal/web/handlers"
	"github.com/veriface/veriface/internal/web/static"
)

func (s *Server) setupRoutes(client *faceauth.Client) {
	flowsHandler := handlers.NewFlowsHandler(client, s.sessionManager)

	// Health check (no session required)
	s.router.Get("/api/v1/health", handlers.HealthCheck)
	s.router.Get("/api/v1/config", handlers.ClientConfig(s.config))

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/login", flowsHandler.Login)
		r.Post("/register", flowsHandler.Register)
		r.Get("/session", flowsHandler.Session)
		r.Post("/logout", flowsHandler.Logout)
	})

	// Serve the embedded capture page.
	s.router.Get("/*", s.servePage)
}

// servePage serves the embedded capture page assets, falling back to
// index.html so the page handles its own views.
func (s *Server) servePage(w http.ResponseWriter, r *http.Request) {
	if !static.HasDist() {
		http.Error(w, "capture page assets not embedded", http.StatusNotFound)
		return
	}

	fs := static.GetFileSystem()
	path := r.URL.Path
	if path == "/" {
		path = "/index.html"
	}

	f, err := fs.Open(path)
	if err != nil {
		// Unknown path: serve the page itself.
		path = "/index.html"
		f, err = fs.Open(path)
		if err != nil {
			http.NotFound(w, r)
			return
		}
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil || stat.IsDir() {
		http.NotFound(w, r)
		return
	}

	contentType := "application/octet-stream"
	switch {
	case strings.HasSuffix(path, ".html"):
		contentType = "text/html; charset=utf-8"
	case strings.HasSuffix(path, ".js"):
		contentType = "application/javascript"
	case strings.HasSuffix(path, ".css"):
		contentType = "text/css"
	case strings.HasSuffix(path, ".svg"):
		contentType = "image/svg+xml"
	}

	w.Header().Set("Content-Type", contentType)
	http.ServeContent(w, r, path, stat.ModTime(), f)
}
