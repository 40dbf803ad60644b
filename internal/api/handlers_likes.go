// Inkwell - Content Publishing and Community API
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-api/inkwell

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-api/inkwell/internal/authz"
	"github.com/inkwell-api/inkwell/internal/metrics"
	"github.com/inkwell-api/inkwell/internal/models"
)

// likeSummary is the GET /articles/{id}/likes payload. Individual likes are
// not enumerated; only the count and the caller's own state are exposed.
type likeSummary struct {
	ArticleID string `json:"article_id"`
	Count     int    `json:"count"`
	Liked     bool   `json:"liked"`
}

func (s *Server) handleListLikes(w http.ResponseWriter, r *http.Request) {
	articleID := chi.URLParam(r, "articleID")
	if _, ok := s.store.GetArticle(articleID, false); !ok {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "article not found", nil)
		return
	}

	summary := likeSummary{
		ArticleID: articleID,
		Count:     s.store.CountLikes(articleID),
	}
	if actor := authz.ActorFromContext(r.Context()); actor != nil {
		_, summary.Liked = s.store.GetLike(articleID, actor.ID)
	}

	metrics.RecordContentOperation("like", "list")
	respondSuccess(w, r, http.StatusOK, summary)
}

// handleSetLike records or clears the caller's like. Clearing is a soft
// delete; a repeated like restores the same record, so at most one like
// exists per (article, user) pair.
func (s *Server) handleSetLike(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateLikeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	articleID := chi.URLParam(r, "articleID")
	actor := authz.ActorFromContext(r.Context())

	like, ok := s.store.SetLike(articleID, actor.ID, req.Liked)
	if !ok {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "article not found", nil)
		return
	}

	operation := "like"
	if !req.Liked {
		operation = "unlike"
	}
	metrics.RecordContentOperation("like", operation)

	respondSuccess(w, r, http.StatusOK, like)
}
