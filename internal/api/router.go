// Inkwell - Content Publishing and Community API
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-api/inkwell

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/inkwell-api/inkwell/internal/authz"
	"github.com/inkwell-api/inkwell/internal/middleware"
)

// Router builds the chi router with the full middleware stack and route
// table. Every content route passes through the identity resolver and the
// enforcement gates appropriate to its operation; the gates are the only
// place authorization decisions are made.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.SecurityHeaders)

	if len(s.cfg.Security.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.cfg.Security.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	if !s.cfg.Security.RateLimitDisabled {
		r.Use(httprate.LimitByIP(s.cfg.Security.RateLimitReqs, s.cfg.Security.RateLimitWindow))
	}

	r.Use(middleware.PrometheusMetrics)
	r.Use(s.resolver.ResolveIdentity)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				if !s.cfg.Security.RateLimitDisabled && s.cfg.Security.LoginRateLimitReqs > 0 {
					r.Use(httprate.LimitByIP(s.cfg.Security.LoginRateLimitReqs, s.cfg.Security.LoginRateLimitWindow))
				}
				r.Post("/login", s.handleLogin)
			})
			r.With(s.gates.RequireAuth).Post("/logout", s.handleLogout)
		})

		r.Get("/authz/permissions", authz.HandleEffectivePermissions)

		r.Route("/articles", func(r chi.Router) {
			r.With(s.gates.RequirePermission(authz.CapGetArticles)).
				Get("/", s.handleListArticles)
			r.With(s.gates.RequireAuth, s.gates.RequirePermission(authz.CapCreateArticles)).
				Post("/", s.handleCreateArticle)

			r.Route("/{articleID}", func(r chi.Router) {
				r.With(s.gates.RequirePermission(authz.CapGetArticles)).
					Get("/", s.handleGetArticle)
				r.With(
					s.gates.RequireAuth,
					s.gates.RequirePermission(authz.CapUpdateArticles),
					s.gates.RequireCanModify(s.articleOwner),
				).Put("/", s.handleUpdateArticle)
				r.With(s.gates.ForbidHardDelete).Delete("/", s.handleRefusedDelete)

				r.With(s.gates.RequirePermission(authz.CapGetComments)).
					Get("/comments", s.handleListComments)
				r.With(s.gates.RequireAuth, s.gates.RequirePermission(authz.CapCreateComments)).
					Post("/comments", s.handleCreateComment)

				r.With(s.gates.RequirePermission(authz.CapGetLikes)).
					Get("/likes", s.handleListLikes)
				r.With(s.gates.RequireAuth, s.gates.RequirePermission(authz.CapUpdateLikes)).
					Put("/like", s.handleSetLike)
				r.With(s.gates.ForbidHardDelete).Delete("/like", s.handleRefusedDelete)
			})
		})

		r.Route("/comments/{commentID}", func(r chi.Router) {
			r.With(
				s.gates.RequireAuth,
				s.gates.RequirePermission(authz.CapUpdateComments),
				s.gates.RequireOwnership(s.commentOwner),
			).Put("/", s.handleUpdateComment)
			r.With(s.gates.ForbidHardDelete).Delete("/", s.handleRefusedDelete)
		})

		r.Route("/profiles", func(r chi.Router) {
			r.With(s.gates.RequireAuth, s.gates.RequirePermission(authz.CapGetAllProfiles)).
				Get("/", s.handleListProfiles)

			r.Route("/{userID}", func(r chi.Router) {
				r.With(
					s.gates.RequireAuth,
					s.gates.RequirePermission(authz.CapGetOwnProfile),
					s.gates.RequireOwnProfileOrAdmin("userID"),
				).Get("/", s.handleGetProfile)
				r.With(
					s.gates.RequireAuth,
					s.gates.RequirePermission(authz.CapUpdateOwnProfile),
					s.gates.RequireOwnProfileOrAdmin("userID"),
				).Put("/", s.handleUpdateProfile)
				r.With(s.gates.ForbidHardDelete).Delete("/", s.handleRefusedDelete)
			})
		})
	})

	return r
}

// articleOwner resolves the owner id of the article addressed by the route.
// Deleted articles still resolve so their owner can restore them.
func (s *Server) articleOwner(r *http.Request) (string, bool, error) {
	id := chi.URLParam(r, "articleID")
	owner, ok := s.store.ArticleOwner(id)
	return owner, ok, nil
}

// commentOwner resolves the owner id of the comment addressed by the route.
func (s *Server) commentOwner(r *http.Request) (string, bool, error) {
	id := chi.URLParam(r, "commentID")
	owner, ok := s.store.CommentOwner(id)
	return owner, ok, nil
}
