// Inkwell - Content Publishing and Community API
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-api/inkwell

// Package models defines the data structures shared across Inkwell's HTTP
// layer and storage: content resources (articles, comments, likes,
// profiles), request payloads, and the standardized API response envelope.
//
// Hard deletes do not exist in this data model. Every resource carries a
// DeletedAt marker; deletion is an update that sets it (soft delete).
package models

import (
	"time"
)

// Article is a published piece of content. AuthorID is the owner id
// consulted by ownership checks.
type Article struct {
	ID        string     `json:"id"`
	AuthorID  string     `json:"author_id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// IsDeleted reports whether the article has been soft-deleted.
func (a *Article) IsDeleted() bool { return a.DeletedAt != nil }

// Comment is a reader response attached to one article.
type Comment struct {
	ID        string     `json:"id"`
	ArticleID string     `json:"article_id"`
	AuthorID  string     `json:"author_id"`
	Body      string     `json:"body"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// IsDeleted reports whether the comment has been soft-deleted.
func (c *Comment) IsDeleted() bool { return c.DeletedAt != nil }

// Like marks one user's reaction to one article. At most one like exists
// per (article, user) pair; "unliking" soft-deletes it.
type Like struct {
	ID        string     `json:"id"`
	ArticleID string     `json:"article_id"`
	UserID    string     `json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// IsDeleted reports whether the like has been soft-deleted.
func (l *Like) IsDeleted() bool { return l.DeletedAt != nil }

// Profile is the public account record keyed by user id.
type Profile struct {
	UserID      string     `json:"user_id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	Bio         string     `json:"bio,omitempty"`
	Role        string     `json:"role"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// IsDeleted reports whether the profile has been soft-deleted.
func (p *Profile) IsDeleted() bool { return p.DeletedAt != nil }
