// ForkFinder - Group Restaurant Decision Engine
// Copyright 2026 MrDuise
// SPDX-License-Identifier: MIT
// https://github.com/MrDuise/ForkFinder

package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrDuise/ForkFinder/internal/config"
	"github.com/MrDuise/ForkFinder/internal/middleware"
)

// Server wraps the HTTP listener and route table.
type Server struct {
	httpServer *http.Server
}

// NewServer assembles the router and returns a server bound to the
// configured address.
func NewServer(cfg *config.ServerConfig, handler *Handler) *Server {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.PrometheusMetrics)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respond(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/search", handler.searchRestaurants)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", handler.createSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", handler.getSession)
				r.Put("/", handler.updateSession)
				r.Delete("/", handler.deleteSession)
				r.Post("/join", handler.joinSession)
				r.Post("/votes", handler.voteSession)
				r.Get("/restaurants", handler.sessionRestaurants)
			})
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// Start blocks until the listener fails or is shut down.
func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}
