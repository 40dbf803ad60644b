// Inkwell - Content Publishing and Community API
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-api/inkwell

package models

// LoginRequest is the /auth/login payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginResponse is the /auth/login success payload.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
}

// CreateArticleRequest is the POST /articles payload.
type CreateArticleRequest struct {
	Title string `json:"title" validate:"required,min=3,max=200"`
	Body  string `json:"body" validate:"required,min=1,max=100000"`
}

// UpdateArticleRequest is the PUT /articles/{id} payload. A true Deleted
// flag soft-deletes the article (the only sanctioned form of deletion).
type UpdateArticleRequest struct {
	Title   *string `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Body    *string `json:"body,omitempty" validate:"omitempty,min=1,max=100000"`
	Deleted bool    `json:"deleted,omitempty"`
}

// CreateCommentRequest is the POST /articles/{id}/comments payload.
type CreateCommentRequest struct {
	Body string `json:"body" validate:"required,min=1,max=10000"`
}

// UpdateCommentRequest is the PUT /comments/{id} payload.
type UpdateCommentRequest struct {
	Body    *string `json:"body,omitempty" validate:"omitempty,min=1,max=10000"`
	Deleted bool    `json:"deleted,omitempty"`
}

// UpdateLikeRequest is the PUT /articles/{id}/like payload. Liked=false
// soft-deletes the like, Liked=true restores it.
type UpdateLikeRequest struct {
	Liked bool `json:"liked"`
}

// UpdateProfileRequest is the PUT /profiles/{userID} payload.
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name,omitempty" validate:"omitempty,min=1,max=100"`
	Bio         *string `json:"bio,omitempty" validate:"omitempty,max=2000"`
	Deleted     bool    `json:"deleted,omitempty"`
}
