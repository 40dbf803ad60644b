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

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	articleID := chi.URLParam(r, "articleID")
	if _, ok := s.store.GetArticle(articleID, false); !ok {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "article not found", nil)
		return
	}

	comments := s.store.ListComments(articleID)
	metrics.RecordContentOperation("comment", "list")
	respondSuccess(w, r, http.StatusOK, comments)
}

func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCommentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	articleID := chi.URLParam(r, "articleID")
	actor := authz.ActorFromContext(r.Context())

	comment, ok := s.store.CreateComment(articleID, actor.ID, req.Body)
	if !ok {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "article not found", nil)
		return
	}

	metrics.RecordContentOperation("comment", "create")
	logging.Ctx(r.Context()).Info().
		Str("comment_id", comment.ID).
		Str("article_id", articleID).
		Str("author_id", actor.ID).
		Msg("Comment created")

	respondSuccess(w, r, http.StatusCreated, comment)
}

// handleUpdateComment applies a partial update. The route's ownership gate
// is strict: only the comment's author reaches this handler, administrators
// included get no override.
func (s *Server) handleUpdateComment(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateCommentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "commentID")
	comment, ok := s.store.UpdateComment(id, req)
	if !ok {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "comment not found", nil)
		return
	}

	operation := "update"
	if req.Deleted {
		operation = "soft_delete"
	}
	metrics.RecordContentOperation("comment", operation)
	logging.Ctx(r.Context()).Info().
		Str("comment_id", id).
		Str("operation", operation).
		Msg("Comment updated")

	respondSuccess(w, r, http.StatusOK, comment)
}
