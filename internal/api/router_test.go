// Inkwell - Content Publishing and Community API
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-api/inkwell

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell-api/inkwell/internal/auth"
	"github.com/inkwell-api/inkwell/internal/config"
	"github.com/inkwell-api/inkwell/internal/models"
	"github.com/inkwell-api/inkwell/internal/store"
)

const testJWTSecret = "test-secret-0123456789abcdef-0123456789abcdef"

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse-battery"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt hash: %v", err)
	}

	return &config.Config{
		Server: config.ServerConfig{
			Host:        "127.0.0.1",
			Port:        8080,
			Environment: "development",
		},
		Security: config.SecurityConfig{
			AuthMode:               "jwt",
			JWTSecret:              testJWTSecret,
			TokenTTL:               time.Hour,
			RevocationStore:        "memory",
			RevocationCheckTimeout: time.Second,
			RateLimitDisabled:      true,
			Users: []config.UserCredential{
				{ID: "user-reader", Username: "rhea", Email: "rhea@example.com", PasswordHash: string(hash), Role: "reader"},
				{ID: "user-author", Username: "arlo", Email: "arlo@example.com", PasswordHash: string(hash), Role: "author"},
				{ID: "user-author-2", Username: "beck", Email: "beck@example.com", PasswordHash: string(hash), Role: "author"},
				{ID: "user-admin", Username: "ada", Email: "ada@example.com", PasswordHash: string(hash), Role: "admin"},
			},
		},
		API: config.APIConfig{DefaultPageSize: 20, MaxPageSize: 100},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := testConfig(t)
	tokens, err := auth.NewTokenManager(&cfg.Security, auth.NewMemoryRevocationStore())
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	return NewServer(cfg, store.New(), tokens, nil)
}

func tokenFor(t *testing.T, s *Server, userID, email, role string) string {
	t.Helper()

	token, err := s.tokens.IssueToken(userID, email, role)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	return token
}

func doJSON(t *testing.T, handler http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) models.APIResponse {
	t.Helper()

	var resp models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode envelope: %v (body %q)", err, rec.Body.String())
	}
	return resp
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	resp := decodeEnvelope(t, rec)
	if resp.Error == nil {
		t.Fatalf("expected error envelope, got %q", rec.Body.String())
	}
	return resp.Error.Code
}

func TestAnonymousCanListArticles(t *testing.T) {
	s := newTestServer(t)
	s.store.CreateArticle("user-author", "First Post", "Hello.")
	router := s.Router()

	rec := doJSON(t, router, http.MethodGet, "/api/v1/articles", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %q)", rec.Code, rec.Body.String())
	}
}

func TestAnonymousCreateArticleGetsMissingToken(t *testing.T) {
	s := newTestServer(t)
	router := s.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/articles",
		"", `{"title":"Drafted","body":"text"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if code := errorCode(t, rec); code != "MISSING_TOKEN" {
		t.Fatalf("code = %q, want MISSING_TOKEN", code)
	}
}

func TestGarbageTokenGetsInvalidToken(t *testing.T) {
	s := newTestServer(t)
	router := s.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/articles",
		"not-a-jwt", `{"title":"Drafted","body":"text"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if code := errorCode(t, rec); code != "INVALID_TOKEN" {
		t.Fatalf("code = %q, want INVALID_TOKEN", code)
	}
}

func TestReaderCannotCreateArticle(t *testing.T) {
	s := newTestServer(t)
	router := s.Router()
	token := tokenFor(t, s, "user-reader", "rhea@example.com", "reader")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/articles",
		token, `{"title":"Drafted","body":"text"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	if resp.Error.Code != "INSUFFICIENT_PERMISSIONS" {
		t.Fatalf("code = %q, want INSUFFICIENT_PERMISSIONS", resp.Error.Code)
	}
	if resp.Error.UserRole != "reader" {
		t.Fatalf("userRole = %q, want reader", resp.Error.UserRole)
	}
}

func TestAuthorCreatesAndUpdatesOwnArticle(t *testing.T) {
	s := newTestServer(t)
	router := s.Router()
	token := tokenFor(t, s, "user-author", "arlo@example.com", "author")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/articles",
		token, `{"title":"Field Notes","body":"First draft."}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201 (body %q)", rec.Code, rec.Body.String())
	}

	var created struct {
		Data models.Article `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created article: %v", err)
	}
	if created.Data.AuthorID != "user-author" {
		t.Fatalf("author_id = %q, want user-author", created.Data.AuthorID)
	}

	rec = doJSON(t, router, http.MethodPut, "/api/v1/articles/"+created.Data.ID,
		token, `{"body":"Second draft."}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, want 200 (body %q)", rec.Code, rec.Body.String())
	}
}

func TestAuthorCannotUpdateOthersArticle(t *testing.T) {
	s := newTestServer(t)
	article := s.store.CreateArticle("user-author", "Field Notes", "Draft.")
	router := s.Router()
	token := tokenFor(t, s, "user-author-2", "beck@example.com", "author")

	rec := doJSON(t, router, http.MethodPut, "/api/v1/articles/"+article.ID,
		token, `{"body":"Hijacked."}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if code := errorCode(t, rec); code != "FORBIDDEN" {
		t.Fatalf("code = %q, want FORBIDDEN", code)
	}
}

func TestAdminCanUpdateOthersArticle(t *testing.T) {
	s := newTestServer(t)
	article := s.store.CreateArticle("user-author", "Field Notes", "Draft.")
	router := s.Router()
	token := tokenFor(t, s, "user-admin", "ada@example.com", "admin")

	rec := doJSON(t, router, http.MethodPut, "/api/v1/articles/"+article.ID,
		token, `{"title":"Field Notes (edited)"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %q)", rec.Code, rec.Body.String())
	}
}

func TestSoftDeleteThroughUpdateHidesArticle(t *testing.T) {
	s := newTestServer(t)
	article := s.store.CreateArticle("user-author", "Ephemeral", "Gone soon.")
	router := s.Router()
	token := tokenFor(t, s, "user-author", "arlo@example.com", "author")

	rec := doJSON(t, router, http.MethodPut, "/api/v1/articles/"+article.ID,
		token, `{"deleted":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("soft delete status = %d, want 200", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/articles/"+article.ID, "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", rec.Code)
	}

	// The owner restores it with a field update.
	rec = doJSON(t, router, http.MethodPut, "/api/v1/articles/"+article.ID,
		token, `{"body":"Back again."}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("restore status = %d, want 200", rec.Code)
	}
	rec = doJSON(t, router, http.MethodGet, "/api/v1/articles/"+article.ID, "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get after restore status = %d, want 200", rec.Code)
	}
}

func TestReaderCanCommentButNotEditOthersComment(t *testing.T) {
	s := newTestServer(t)
	article := s.store.CreateArticle("user-author", "Field Notes", "Draft.")
	router := s.Router()
	token := tokenFor(t, s, "user-reader", "rhea@example.com", "reader")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/articles/"+article.ID+"/comments",
		token, `{"body":"Great read."}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create comment status = %d, want 201 (body %q)", rec.Code, rec.Body.String())
	}

	other, ok := s.store.CreateComment(article.ID, "user-author", "Thanks!")
	if !ok {
		t.Fatal("seed comment failed")
	}

	rec = doJSON(t, router, http.MethodPut, "/api/v1/comments/"+other.ID,
		token, `{"body":"Edited by someone else."}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if code := errorCode(t, rec); code != "FORBIDDEN" {
		t.Fatalf("code = %q, want FORBIDDEN", code)
	}
}

func TestAdminGetsNoOverrideOnCommentOwnership(t *testing.T) {
	s := newTestServer(t)
	article := s.store.CreateArticle("user-author", "Field Notes", "Draft.")
	comment, ok := s.store.CreateComment(article.ID, "user-reader", "A comment.")
	if !ok {
		t.Fatal("seed comment failed")
	}
	router := s.Router()
	token := tokenFor(t, s, "user-admin", "ada@example.com", "admin")

	rec := doJSON(t, router, http.MethodPut, "/api/v1/comments/"+comment.ID,
		token, `{"body":"Admin edit."}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if code := errorCode(t, rec); code != "FORBIDDEN" {
		t.Fatalf("code = %q, want FORBIDDEN", code)
	}
}

func TestDeleteRoutesAreCategoricallyRefused(t *testing.T) {
	s := newTestServer(t)
	article := s.store.CreateArticle("user-author", "Field Notes", "Draft.")
	comment, _ := s.store.CreateComment(article.ID, "user-reader", "A comment.")
	router := s.Router()

	paths := []string{
		"/api/v1/articles/" + article.ID,
		"/api/v1/articles/" + article.ID + "/like",
		"/api/v1/comments/" + comment.ID,
		"/api/v1/profiles/user-author",
	}

	tokens := map[string]string{
		"anonymous": "",
		"owner":     tokenFor(t, s, "user-author", "arlo@example.com", "author"),
		"admin":     tokenFor(t, s, "user-admin", "ada@example.com", "admin"),
	}

	for who, token := range tokens {
		for _, path := range paths {
			rec := doJSON(t, router, http.MethodDelete, path, token, "")
			if rec.Code != http.StatusForbidden {
				t.Errorf("%s DELETE %s: status = %d, want 403", who, path, rec.Code)
				continue
			}
			if code := errorCode(t, rec); code != "FORBIDDEN" {
				t.Errorf("%s DELETE %s: code = %q, want FORBIDDEN", who, path, code)
			}
		}
	}
}

func TestLikeToggleRoundTrip(t *testing.T) {
	s := newTestServer(t)
	article := s.store.CreateArticle("user-author", "Field Notes", "Draft.")
	router := s.Router()
	token := tokenFor(t, s, "user-reader", "rhea@example.com", "reader")

	rec := doJSON(t, router, http.MethodPut, "/api/v1/articles/"+article.ID+"/like",
		token, `{"liked":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("like status = %d, want 200 (body %q)", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/articles/"+article.ID+"/likes", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("likes status = %d, want 200", rec.Code)
	}
	var summary struct {
		Data likeSummary `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode likes: %v", err)
	}
	if summary.Data.Count != 1 || !summary.Data.Liked {
		t.Fatalf("summary = %+v, want count 1 liked true", summary.Data)
	}

	rec = doJSON(t, router, http.MethodPut, "/api/v1/articles/"+article.ID+"/like",
		token, `{"liked":false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("unlike status = %d, want 200", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/articles/"+article.ID+"/likes", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("likes status = %d, want 200", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode likes: %v", err)
	}
	if summary.Data.Count != 0 {
		t.Fatalf("count after unlike = %d, want 0", summary.Data.Count)
	}
}

func TestProfileAccessRules(t *testing.T) {
	s := newTestServer(t)
	router := s.Router()

	reader := tokenFor(t, s, "user-reader", "rhea@example.com", "reader")
	admin := tokenFor(t, s, "user-admin", "ada@example.com", "admin")

	// Own profile is readable and writable.
	rec := doJSON(t, router, http.MethodGet, "/api/v1/profiles/user-reader", reader, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("own profile GET status = %d, want 200 (body %q)", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, router, http.MethodPut, "/api/v1/profiles/user-reader",
		reader, `{"display_name":"Rhea R."}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("own profile PUT status = %d, want 200 (body %q)", rec.Code, rec.Body.String())
	}

	// Someone else's profile is not.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/profiles/user-admin", reader, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("other profile GET status = %d, want 403", rec.Code)
	}
	if code := errorCode(t, rec); code != "FORBIDDEN" {
		t.Fatalf("code = %q, want FORBIDDEN", code)
	}

	// Admins may read and modify any profile.
	rec = doJSON(t, router, http.MethodPut, "/api/v1/profiles/user-reader",
		admin, `{"bio":"Updated by an administrator."}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin profile PUT status = %d, want 200 (body %q)", rec.Code, rec.Body.String())
	}

	// The profile list is admin-only.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/profiles", reader, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("profiles list as reader status = %d, want 403", rec.Code)
	}
	rec = doJSON(t, router, http.MethodGet, "/api/v1/profiles", admin, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("profiles list as admin status = %d, want 200", rec.Code)
	}
}

func TestLoginLogoutRevokesToken(t *testing.T) {
	s := newTestServer(t)
	router := s.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login",
		"", `{"username":"arlo","password":"correct-horse-battery"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, want 200 (body %q)", rec.Code, rec.Body.String())
	}

	var login struct {
		Data models.LoginResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &login); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if login.Data.Token == "" || login.Data.Role != "author" {
		t.Fatalf("login = %+v, want token and author role", login.Data)
	}

	// The token works until logout.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/articles",
		login.Data.Token, `{"title":"Session Test","body":"text"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create with fresh token status = %d, want 201", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/logout", login.Data.Token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("logout status = %d, want 200 (body %q)", rec.Code, rec.Body.String())
	}

	// The revoked token now resolves as an invalid credential.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/articles",
		login.Data.Token, `{"title":"After Logout","body":"text"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("create after logout status = %d, want 401", rec.Code)
	}
	if code := errorCode(t, rec); code != "INVALID_TOKEN" {
		t.Fatalf("code = %q, want INVALID_TOKEN", code)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	s := newTestServer(t)
	router := s.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login",
		"", `{"username":"arlo","password":"wrong-password"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if code := errorCode(t, rec); code != "INVALID_CREDENTIALS" {
		t.Fatalf("code = %q, want INVALID_CREDENTIALS", code)
	}
}

func TestLoginValidationRejectsShortPassword(t *testing.T) {
	s := newTestServer(t)
	router := s.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login",
		"", `{"username":"arlo","password":"short"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if code := errorCode(t, rec); code != "VALIDATION_ERROR" {
		t.Fatalf("code = %q, want VALIDATION_ERROR", code)
	}
}

func TestEffectivePermissionsEndpoint(t *testing.T) {
	s := newTestServer(t)
	router := s.Router()

	var payload struct {
		Data struct {
			Role          string          `json:"role"`
			Authenticated bool            `json:"authenticated"`
			Permissions   map[string]bool `json:"permissions"`
		} `json:"data"`
	}

	rec := doJSON(t, router, http.MethodGet, "/api/v1/authz/permissions", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("anonymous status = %d, want 200", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode permissions: %v", err)
	}
	if payload.Data.Role != "guest" || payload.Data.Authenticated {
		t.Fatalf("anonymous payload = %+v, want guest unauthenticated", payload.Data)
	}
	if !payload.Data.Permissions["canGetArticles"] || payload.Data.Permissions["canCreateComments"] {
		t.Fatalf("guest permissions wrong: %+v", payload.Data.Permissions)
	}

	token := tokenFor(t, s, "user-author", "arlo@example.com", "author")
	rec = doJSON(t, router, http.MethodGet, "/api/v1/authz/permissions", token, "")
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode permissions: %v", err)
	}
	if payload.Data.Role != "author" || !payload.Data.Authenticated {
		t.Fatalf("author payload = %+v, want authenticated author", payload.Data)
	}
	if !payload.Data.Permissions["canCreateArticles"] || payload.Data.Permissions["canDeleteArticles"] {
		t.Fatalf("author permissions wrong: %+v", payload.Data.Permissions)
	}
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)
	router := s.Router()

	for _, path := range []string{"/healthz", "/readyz"} {
		rec := doJSON(t, router, http.MethodGet, path, "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s status = %d, want 200", path, rec.Code)
		}
	}
}
