// Inkwell - Content Publishing and Community API
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-api/inkwell

package store

import (
	"testing"

	"github.com/inkwell-api/inkwell/internal/models"
)

func strPtr(s string) *string { return &s }

func TestArticleLifecycle(t *testing.T) {
	s := New()

	article := s.CreateArticle("user-1", "Title", "Body")
	if article.ID == "" || article.AuthorID != "user-1" {
		t.Fatalf("CreateArticle() = %+v", article)
	}

	got, ok := s.GetArticle(article.ID, false)
	if !ok || got.Title != "Title" {
		t.Fatalf("GetArticle() = (%+v, %v)", got, ok)
	}

	owner, ok := s.ArticleOwner(article.ID)
	if !ok || owner != "user-1" {
		t.Errorf("ArticleOwner() = (%q, %v), want user-1", owner, ok)
	}

	updated, ok := s.UpdateArticle(article.ID, models.UpdateArticleRequest{Title: strPtr("New Title")})
	if !ok || updated.Title != "New Title" || updated.Body != "Body" {
		t.Fatalf("UpdateArticle() = (%+v, %v)", updated, ok)
	}

	// Soft delete hides the article but keeps the record.
	deleted, ok := s.UpdateArticle(article.ID, models.UpdateArticleRequest{Deleted: true})
	if !ok || deleted.DeletedAt == nil {
		t.Fatalf("soft delete: (%+v, %v)", deleted, ok)
	}
	if _, ok := s.GetArticle(article.ID, false); ok {
		t.Error("deleted article still visible")
	}
	if _, ok := s.GetArticle(article.ID, true); !ok {
		t.Error("deleted article gone from store, want retained record")
	}
	if _, ok := s.ArticleOwner(article.ID); !ok {
		t.Error("deleted article lost its owner")
	}

	// A field update restores the article.
	restored, ok := s.UpdateArticle(article.ID, models.UpdateArticleRequest{Body: strPtr("Back")})
	if !ok || restored.DeletedAt != nil {
		t.Fatalf("restore: (%+v, %v)", restored, ok)
	}
}

func TestListArticlesExcludesDeleted(t *testing.T) {
	s := New()

	a1 := s.CreateArticle("user-1", "First", "x")
	s.CreateArticle("user-1", "Second", "x")
	s.UpdateArticle(a1.ID, models.UpdateArticleRequest{Deleted: true})

	articles := s.ListArticles()
	if len(articles) != 1 || articles[0].Title != "Second" {
		t.Errorf("ListArticles() = %+v, want only Second", articles)
	}
}

func TestCommentLifecycle(t *testing.T) {
	s := New()
	article := s.CreateArticle("author-1", "Title", "Body")

	comment, ok := s.CreateComment(article.ID, "reader-1", "Nice")
	if !ok || comment.AuthorID != "reader-1" {
		t.Fatalf("CreateComment() = (%+v, %v)", comment, ok)
	}

	if _, ok := s.CreateComment("no-such-article", "reader-1", "Nice"); ok {
		t.Error("CreateComment() on missing article succeeded")
	}

	owner, ok := s.CommentOwner(comment.ID)
	if !ok || owner != "reader-1" {
		t.Errorf("CommentOwner() = (%q, %v)", owner, ok)
	}

	updated, ok := s.UpdateComment(comment.ID, models.UpdateCommentRequest{Body: strPtr("Edited")})
	if !ok || updated.Body != "Edited" {
		t.Fatalf("UpdateComment() = (%+v, %v)", updated, ok)
	}

	if _, ok := s.UpdateComment(comment.ID, models.UpdateCommentRequest{Deleted: true}); !ok {
		t.Fatal("soft delete failed")
	}
	if _, ok := s.GetComment(comment.ID); ok {
		t.Error("deleted comment still visible")
	}

	comments := s.ListComments(article.ID)
	if len(comments) != 0 {
		t.Errorf("ListComments() = %+v, want empty after delete", comments)
	}
}

func TestLikeToggle(t *testing.T) {
	s := New()
	article := s.CreateArticle("author-1", "Title", "Body")

	like, ok := s.SetLike(article.ID, "reader-1", true)
	if !ok || like.IsDeleted() {
		t.Fatalf("SetLike(true) = (%+v, %v)", like, ok)
	}
	if s.CountLikes(article.ID) != 1 {
		t.Errorf("CountLikes() = %d, want 1", s.CountLikes(article.ID))
	}

	// Unlike soft-deletes, re-like restores the same record.
	unliked, ok := s.SetLike(article.ID, "reader-1", false)
	if !ok || !unliked.IsDeleted() {
		t.Fatalf("SetLike(false) = (%+v, %v)", unliked, ok)
	}
	if s.CountLikes(article.ID) != 0 {
		t.Errorf("CountLikes() after unlike = %d, want 0", s.CountLikes(article.ID))
	}
	if _, ok := s.GetLike(article.ID, "reader-1"); ok {
		t.Error("unliked record still reported active")
	}

	reliked, ok := s.SetLike(article.ID, "reader-1", true)
	if !ok || reliked.IsDeleted() {
		t.Fatalf("re-like = (%+v, %v)", reliked, ok)
	}
	if reliked.ID != like.ID {
		t.Errorf("re-like created a new record %q, want reuse of %q", reliked.ID, like.ID)
	}

	// One like per article/user pair.
	s.SetLike(article.ID, "reader-1", true)
	if s.CountLikes(article.ID) != 1 {
		t.Errorf("CountLikes() = %d, want 1 after duplicate like", s.CountLikes(article.ID))
	}
}

func TestProfileLifecycle(t *testing.T) {
	s := New()

	s.UpsertProfile(models.Profile{UserID: "user-1", Email: "a@example.com", DisplayName: "Alice", Role: "author"})
	s.UpsertProfile(models.Profile{UserID: "user-2", Email: "b@example.com", DisplayName: "Bob", Role: "reader"})

	profile, ok := s.GetProfile("user-1")
	if !ok || profile.DisplayName != "Alice" {
		t.Fatalf("GetProfile() = (%+v, %v)", profile, ok)
	}

	updated, ok := s.UpdateProfile("user-1", models.UpdateProfileRequest{Bio: strPtr("Writes things")})
	if !ok || updated.Bio != "Writes things" {
		t.Fatalf("UpdateProfile() = (%+v, %v)", updated, ok)
	}

	profiles := s.ListProfiles()
	if len(profiles) != 2 || profiles[0].UserID != "user-1" {
		t.Errorf("ListProfiles() = %+v, want user-1 then user-2", profiles)
	}

	if _, ok := s.UpdateProfile("user-2", models.UpdateProfileRequest{Deleted: true}); !ok {
		t.Fatal("profile soft delete failed")
	}
	if _, ok := s.GetProfile("user-2"); ok {
		t.Error("deleted profile still visible")
	}
	if len(s.ListProfiles()) != 1 {
		t.Error("deleted profile still listed")
	}
}
