// Inkwell - Content Publishing and Community API
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-api/inkwell

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-api/inkwell/internal/authz"
	"github.com/inkwell-api/inkwell/internal/logging"
	"github.com/inkwell-api/inkwell/internal/metrics"
	"github.com/inkwell-api/inkwell/internal/models"
)

func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	articles := s.store.ListArticles()
	metrics.RecordContentOperation("article", "list")
	respondSuccess(w, r, http.StatusOK, articles)
}

func (s *Server) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "articleID")
	article, ok := s.store.GetArticle(id, false)
	if !ok {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "article not found", nil)
		return
	}
	metrics.RecordContentOperation("article", "get")
	respondSuccess(w, r, http.StatusOK, article)
}

func (s *Server) handleCreateArticle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateArticleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	// RequireAuth guarantees an actor is present on this route.
	actor := authz.ActorFromContext(r.Context())
	article := s.store.CreateArticle(actor.ID, req.Title, req.Body)

	metrics.RecordContentOperation("article", "create")
	logging.Ctx(r.Context()).Info().
		Str("article_id", article.ID).
		Str("author_id", actor.ID).
		Msg("Article created")

	respondSuccess(w, r, http.StatusCreated, article)
}

// handleUpdateArticle applies a partial update. Soft deletion travels through
// this same operation via the deleted flag; there is no other way to remove
// an article.
func (s *Server) handleUpdateArticle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateArticleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "articleID")
	article, ok := s.store.UpdateArticle(id, req)
	if !ok {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "article not found", nil)
		return
	}

	operation := "update"
	if req.Deleted {
		operation = "soft_delete"
	}
	metrics.RecordContentOperation("article", operation)
	logging.Ctx(r.Context()).Info().
		Str("article_id", id).
		Str("operation", operation).
		Msg("Article updated")

	respondSuccess(w, r, http.StatusOK, article)
}

// handleRefusedDelete is mounted behind ForbidHardDelete and is unreachable:
// the gate denies every request before the handler runs. It exists so the
// route is registered and the refusal is explicit rather than a 404 or 405.
func (s *Server) handleRefusedDelete(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusForbidden, string(authz.CodeForbidden), "delete operations are not supported", nil)
}
