// Inkwell - Content Publishing and Community API
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-api/inkwell

// Package store provides the in-process content store for articles,
// comments, likes, and profiles. All mutation is soft-delete only: nothing
// is ever removed from the maps, deletion sets the DeletedAt marker.
//
// The store is safe for concurrent use. Reads return copies; callers never
// hold references into the store's internal state.
package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-api/inkwell/internal/models"
)

// Store holds all content in memory behind one lock. Ownership lookups
// (ArticleOwner, CommentOwner) are cheap map reads so authorization gates
// can fetch just the owner id without copying the resource.
type Store struct {
	mu       sync.RWMutex
	articles map[string]*models.Article
	comments map[string]*models.Comment
	likes    map[string]*models.Like // keyed by articleID + "/" + userID
	profiles map[string]*models.Profile
}

// New creates an empty store.
func New() *Store {
	return &Store{
		articles: make(map[string]*models.Article),
		comments: make(map[string]*models.Comment),
		likes:    make(map[string]*models.Like),
		profiles: make(map[string]*models.Profile),
	}
}

func likeKey(articleID, userID string) string {
	return articleID + "/" + userID
}

// --- Articles ---

// CreateArticle stores a new article owned by authorID.
func (s *Store) CreateArticle(authorID, title, body string) models.Article {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	article := &models.Article{
		ID:        uuid.New().String(),
		AuthorID:  authorID,
		Title:     title,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.articles[article.ID] = article
	return *article
}

// GetArticle returns an article by id. Soft-deleted articles report found
// only when includeDeleted is set.
func (s *Store) GetArticle(id string, includeDeleted bool) (models.Article, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	article, ok := s.articles[id]
	if !ok || (article.IsDeleted() && !includeDeleted) {
		return models.Article{}, false
	}
	return *article, true
}

// ListArticles returns all non-deleted articles, newest first.
func (s *Store) ListArticles() []models.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()

	articles := make([]models.Article, 0, len(s.articles))
	for _, a := range s.articles {
		if !a.IsDeleted() {
			articles = append(articles, *a)
		}
	}
	sort.Slice(articles, func(i, j int) bool {
		return articles[i].CreatedAt.After(articles[j].CreatedAt)
	})
	return articles
}

// ArticleOwner returns the owner id of an article without copying it.
// Soft-deleted articles still resolve so their owner can restore them.
func (s *Store) ArticleOwner(id string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	article, ok := s.articles[id]
	if !ok {
		return "", false
	}
	return article.AuthorID, true
}

// UpdateArticle applies a partial update. A set Deleted flag soft-deletes;
// field updates on a deleted article restore it.
func (s *Store) UpdateArticle(id string, req models.UpdateArticleRequest) (models.Article, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	article, ok := s.articles[id]
	if !ok {
		return models.Article{}, false
	}

	if req.Title != nil {
		article.Title = *req.Title
	}
	if req.Body != nil {
		article.Body = *req.Body
	}

	now := time.Now().UTC()
	if req.Deleted {
		article.DeletedAt = &now
	} else if req.Title != nil || req.Body != nil {
		article.DeletedAt = nil
	}
	article.UpdatedAt = now

	return *article, true
}

// --- Comments ---

// CreateComment stores a new comment on an article.
func (s *Store) CreateComment(articleID, authorID, body string) (models.Comment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	article, ok := s.articles[articleID]
	if !ok || article.IsDeleted() {
		return models.Comment{}, false
	}

	now := time.Now().UTC()
	comment := &models.Comment{
		ID:        uuid.New().String(),
		ArticleID: articleID,
		AuthorID:  authorID,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.comments[comment.ID] = comment
	return *comment, true
}

// GetComment returns a non-deleted comment by id.
func (s *Store) GetComment(id string) (models.Comment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comment, ok := s.comments[id]
	if !ok || comment.IsDeleted() {
		return models.Comment{}, false
	}
	return *comment, true
}

// ListComments returns all non-deleted comments on an article, oldest
// first.
func (s *Store) ListComments(articleID string) []models.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comments := make([]models.Comment, 0)
	for _, c := range s.comments {
		if c.ArticleID == articleID && !c.IsDeleted() {
			comments = append(comments, *c)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments
}

// CommentOwner returns the owner id of a comment.
func (s *Store) CommentOwner(id string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comment, ok := s.comments[id]
	if !ok {
		return "", false
	}
	return comment.AuthorID, true
}

// UpdateComment applies a partial update with the same soft-delete
// semantics as UpdateArticle.
func (s *Store) UpdateComment(id string, req models.UpdateCommentRequest) (models.Comment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment, ok := s.comments[id]
	if !ok {
		return models.Comment{}, false
	}

	if req.Body != nil {
		comment.Body = *req.Body
	}

	now := time.Now().UTC()
	if req.Deleted {
		comment.DeletedAt = &now
	} else if req.Body != nil {
		comment.DeletedAt = nil
	}
	comment.UpdatedAt = now

	return *comment, true
}

// --- Likes ---

// SetLike records or clears a user's like on an article. Clearing is a
// soft delete; re-liking restores the same record.
func (s *Store) SetLike(articleID, userID string, liked bool) (models.Like, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	article, ok := s.articles[articleID]
	if !ok || article.IsDeleted() {
		return models.Like{}, false
	}

	now := time.Now().UTC()
	key := likeKey(articleID, userID)
	like, exists := s.likes[key]
	if !exists {
		like = &models.Like{
			ID:        uuid.New().String(),
			ArticleID: articleID,
			UserID:    userID,
			CreatedAt: now,
		}
		s.likes[key] = like
	}

	if liked {
		like.DeletedAt = nil
	} else {
		like.DeletedAt = &now
	}
	like.UpdatedAt = now

	return *like, true
}

// GetLike returns a user's active like on an article, if any.
func (s *Store) GetLike(articleID, userID string) (models.Like, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	like, ok := s.likes[likeKey(articleID, userID)]
	if !ok || like.IsDeleted() {
		return models.Like{}, false
	}
	return *like, true
}

// CountLikes returns the number of active likes on an article.
func (s *Store) CountLikes(articleID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, like := range s.likes {
		if like.ArticleID == articleID && !like.IsDeleted() {
			count++
		}
	}
	return count
}

// --- Profiles ---

// UpsertProfile creates or replaces a profile record. Used at startup to
// seed profiles for the configured credential table.
func (s *Store) UpsertProfile(profile models.Profile) models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	existing, ok := s.profiles[profile.UserID]
	if ok {
		profile.CreatedAt = existing.CreatedAt
	} else {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	stored := profile
	s.profiles[profile.UserID] = &stored
	return stored
}

// GetProfile returns a non-deleted profile by user id.
func (s *Store) GetProfile(userID string) (models.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[userID]
	if !ok || profile.IsDeleted() {
		return models.Profile{}, false
	}
	return *profile, true
}

// ListProfiles returns all non-deleted profiles, ordered by user id.
func (s *Store) ListProfiles() []models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profiles := make([]models.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		if !p.IsDeleted() {
			profiles = append(profiles, *p)
		}
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].UserID < profiles[j].UserID
	})
	return profiles
}

// UpdateProfile applies a partial update with soft-delete semantics.
func (s *Store) UpdateProfile(userID string, req models.UpdateProfileRequest) (models.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[userID]
	if !ok {
		return models.Profile{}, false
	}

	if req.DisplayName != nil {
		profile.DisplayName = *req.DisplayName
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}

	now := time.Now().UTC()
	if req.Deleted {
		profile.DeletedAt = &now
	} else if req.DisplayName != nil || req.Bio != nil {
		profile.DeletedAt = nil
	}
	profile.UpdatedAt = now

	return *profile, true
}
