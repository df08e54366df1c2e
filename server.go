package main

import (
	"embed"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/cardfeed/internal/article"
	"github.com/SergeyParamoshkin/cardfeed/internal/errresponse"
)

//go:embed web
var embededFiles embed.FS

// Web returns the single page app files.
func Web() fs.FS {
	fsys, err := fs.Sub(embededFiles, "web")
	if err != nil {
		panic(err)
	}

	return fsys
}

// Router wires the API and the single page app.
func (a *App) Router(store article.Store) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(article.Logger(a.sugarLogger))
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if a.metrics != nil {
		r.Use(a.metrics.Middleware)
	}

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte("pong"))
		if err != nil {
			a.sugarLogger.Errorw(err.Error())
		}
	})

	// a nil *Metrics must not reach the API as a non-nil Recorder
	var recorder article.Recorder
	if a.metrics != nil {
		recorder = a.metrics
	}

	api := article.NewAPI(store, a.sugarLogger, recorder)
	r.Mount("/api/articles", api.Routes())
	r.HandleFunc("/api/*", api.NotFound)

	// everything else belongs to the frontend
	FileServer(r, "/", Web())

	return r
}

// DiagRouter serves metrics and the health probe on the diag address.
func (a *App) DiagRouter(metricsHandler http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if a.store == nil {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)

			return
		}

		if _, err := a.store.List(r.Context()); err != nil {
			a.sugarLogger.Errorw("health check", "error", err)
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, &errresponse.ErrResponse{ErrorText: "store unavailable"})

			return
		}

		render.JSON(w, r, render.M{"ok": true})
	})

	return r
}

// FileServer serves root under path. Paths that do not name a file get
// index.html so the frontend can route them itself.
func FileServer(r chi.Router, path string, root fs.FS) {
	if strings.ContainsAny(path, "{}*") {
		panic("FileServer does not permit any URL parameters.")
	}

	if path != "/" && path[len(path)-1] != '/' {
		r.Get(path, http.RedirectHandler(path+"/", http.StatusMovedPermanently).ServeHTTP)
		path += "/"
	}
	path += "*"

	files := http.FileServer(http.FS(root))

	r.Get(path, func(w http.ResponseWriter, r *http.Request) {
		rctx := chi.RouteContext(r.Context())
		pathPrefix := strings.TrimSuffix(rctx.RoutePattern(), "/*")
		name := strings.TrimPrefix(cleanPath(strings.TrimPrefix(r.URL.Path, pathPrefix)), "/")

		if name == "" || !isFile(root, name) {
			serveIndex(w, r, root)

			return
		}

		http.StripPrefix(pathPrefix, files).ServeHTTP(w, r)
	})
}

func cleanPath(p string) string {
	if p == "" {
		return "/"
	}

	return path.Clean("/" + p)
}

func isFile(root fs.FS, name string) bool {
	info, err := fs.Stat(root, name)

	return err == nil && !info.IsDir()
}

func serveIndex(w http.ResponseWriter, r *http.Request, root fs.FS) {
	index, err := fs.ReadFile(root, "index.html")
	if err != nil {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(index)
}
