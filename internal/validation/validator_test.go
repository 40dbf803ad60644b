// Inkwell - Content Publishing and Community API
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-api/inkwell

package validation

import (
	"strings"
	"testing"
)

type loginPayload struct {
	Username string `validate:"required,min=1,max=64"`
	Password string `validate:"required,min=8"`
}

type articlePayload struct {
	Title string `validate:"required,min=1,max=200"`
	Body  string `validate:"required"`
}

func TestValidateStructPasses(t *testing.T) {
	err := ValidateStruct(&loginPayload{Username: "alice", Password: "correct-horse"})
	if err != nil {
		t.Errorf("ValidateStruct() = %v, want nil", err)
	}
}

func TestValidateStructSingleFailure(t *testing.T) {
	err := ValidateStruct(&articlePayload{Title: "", Body: "content"})
	if err == nil {
		t.Fatal("ValidateStruct() = nil, want error for missing title")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if !strings.Contains(apiErr.Message, "Title is required") {
		t.Errorf("Message = %q, want mention of required Title", apiErr.Message)
	}
	if apiErr.Details["field"] != "Title" {
		t.Errorf("Details[field] = %v, want Title", apiErr.Details["field"])
	}
}

func TestValidateStructMultipleFailures(t *testing.T) {
	err := ValidateStruct(&loginPayload{Username: "", Password: "short"})
	if err == nil {
		t.Fatal("ValidateStruct() = nil, want errors")
	}
	if len(err.Errors()) != 2 {
		t.Fatalf("got %d errors, want 2", len(err.Errors()))
	}

	apiErr := err.ToAPIError()
	if !strings.Contains(apiErr.Message, "Username") || !strings.Contains(apiErr.Message, "Password") {
		t.Errorf("Message = %q, want both failing fields mentioned", apiErr.Message)
	}
	if _, ok := apiErr.Details["fields"]; !ok {
		t.Error("Details missing per-field breakdown")
	}
}

func TestTranslateMinMessage(t *testing.T) {
	err := ValidateStruct(&loginPayload{Username: "alice", Password: "short"})
	if err == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}

	msg := err.Errors()[0].Error()
	if !strings.Contains(msg, "at least 8 characters") {
		t.Errorf("message = %q, want character-count phrasing for string min", msg)
	}
}
