// Package server exposes the rendered site over HTTP.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/kelhaddad/folio/internal/app"
	"github.com/kelhaddad/folio/internal/render"
)

// Config holds server configuration.
type Config struct {
	Port     int
	DataDir  string // directory serving /assets/*
	AllowAll bool   // allow all CORS origins (dev mode)
}

// Server wires the application state to an HTTP surface.
type Server struct {
	cfg        Config
	app        *app.App
	hub        *Hub
	router     chi.Router
	httpServer *http.Server
}

// New creates a server around the given application state.
func New(cfg Config, a *app.App) *Server {
	s := &Server{
		cfg: cfg,
		app: a,
		hub: NewHub(),
	}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/", s.handleHome)
	r.Get("/posts", s.handlePosts)
	r.Get("/posts/{id}", s.handlePostDetail)
	r.Get("/back", s.handleBack)

	r.Get("/api/posts", s.handleAPIPosts)
	r.Get("/ws", s.handleWebSocket)

	r.Get("/static/style.css", s.handleStatic("text/css; charset=utf-8", render.StyleCSS))
	r.Get("/static/site.js", s.handleStatic("application/javascript; charset=utf-8", render.SiteJS))

	// The prober resolves local sources under DataDir and emits their
	// path-rooted URLs, so /assets/x must map to DataDir/assets/x.
	assets := http.StripPrefix("/assets/", http.FileServer(http.Dir(filepath.Join(s.cfg.DataDir, "assets"))))
	r.Get("/assets/*", assets.ServeHTTP)

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Hub returns the live-reload hub so the watcher can broadcast.
func (s *Server) Hub() *Hub { return s.hub }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("folio listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.CloseAll()
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
