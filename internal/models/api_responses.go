// Inkwell - Content Publishing and Community API
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-api/inkwell

package models

import (
	"time"
)

// APIResponse is the standardized response wrapper used by all HTTP
// endpoints. It provides a consistent structure for both successful and
// error responses.
//
// Status field values:
//   - "success": request completed, see Data
//   - "error": request failed, see Error
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "INSUFFICIENT_PERMISSIONS",
//	    "message": "This operation requires author role or higher.",
//	    "requiredRole": "author",
//	    "userRole": "reader"
//	  },
//	  "metadata": {"timestamp": "2026-08-28T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	// Timestamp is the server time when the response was generated.
	Timestamp time.Time `json:"timestamp"`

	// RequestID echoes the X-Request-ID assigned to this request, when known.
	RequestID string `json:"request_id,omitempty"`
}

// APIError represents an error response with structured details.
//
// Common codes:
//   - VALIDATION_ERROR: invalid input parameters
//   - INVALID_REQUEST: malformed request body
//   - NOT_FOUND: resource does not exist
//   - INVALID_CREDENTIALS: login failure
//   - MISSING_TOKEN, INVALID_TOKEN: authentication denials (401)
//   - INSUFFICIENT_PERMISSIONS, FORBIDDEN: authorization denials (403)
//
// RequiredRole and UserRole are populated only for
// INSUFFICIENT_PERMISSIONS denials, reporting the role the operation
// requires versus the role the actor presented. This is intentional
// disclosure of the role hierarchy, not of resource contents.
type APIError struct {
	Code         string                 `json:"code"`
	Message      string                 `json:"message"`
	Details      map[string]interface{} `json:"details,omitempty"`
	RequiredRole string                 `json:"requiredRole,omitempty"`
	UserRole     string                 `json:"userRole,omitempty"`
}
