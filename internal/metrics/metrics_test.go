// Inkwell - Content Publishing and Community API
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-api/inkwell

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// gatherFamily returns the named metric family from the default registry.
func gatherFamily(t *testing.T, name string) *dto.MetricFamily {
	t.Helper()

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func counterValue(mf *dto.MetricFamily, labels map[string]string) float64 {
	if mf == nil {
		return 0
	}
outer:
	for _, m := range mf.GetMetric() {
		for _, lp := range m.GetLabel() {
			if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
				continue outer
			}
		}
		return m.GetCounter().GetValue()
	}
	return 0
}

func TestRecordAPIRequest(t *testing.T) {
	labels := map[string]string{
		"method":      "GET",
		"endpoint":    "/api/v1/articles",
		"status_code": "200",
	}
	before := counterValue(gatherFamily(t, "api_requests_total"), labels)

	RecordAPIRequest("GET", "/api/v1/articles", "200", 25*time.Millisecond)

	after := counterValue(gatherFamily(t, "api_requests_total"), labels)
	if after != before+1 {
		t.Errorf("api_requests_total = %v, want %v", after, before+1)
	}

	if mf := gatherFamily(t, "api_request_duration_seconds"); mf == nil {
		t.Error("api_request_duration_seconds not registered")
	}
}

func TestRecordLoginOutcomes(t *testing.T) {
	successBefore := counterValue(gatherFamily(t, "login_attempts_total"), map[string]string{"outcome": "success"})
	failureBefore := counterValue(gatherFamily(t, "login_attempts_total"), map[string]string{"outcome": "failure"})

	RecordLogin(true)
	RecordLogin(false)
	RecordLogin(false)

	mf := gatherFamily(t, "login_attempts_total")
	if got := counterValue(mf, map[string]string{"outcome": "success"}); got != successBefore+1 {
		t.Errorf("success count = %v, want %v", got, successBefore+1)
	}
	if got := counterValue(mf, map[string]string{"outcome": "failure"}); got != failureBefore+2 {
		t.Errorf("failure count = %v, want %v", got, failureBefore+2)
	}
}

func TestRecordContentOperation(t *testing.T) {
	labels := map[string]string{"resource": "article", "operation": "soft_delete"}
	before := counterValue(gatherFamily(t, "content_operations_total"), labels)

	RecordContentOperation("article", "soft_delete")

	after := counterValue(gatherFamily(t, "content_operations_total"), labels)
	if after != before+1 {
		t.Errorf("content_operations_total = %v, want %v", after, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	TrackActiveRequest(true)
	TrackActiveRequest(true)
	TrackActiveRequest(false)

	mf := gatherFamily(t, "api_active_requests")
	if mf == nil {
		t.Fatal("api_active_requests not registered")
	}
	// The gauge is shared package state; only verify it is being exported.
	if len(mf.GetMetric()) != 1 {
		t.Errorf("expected a single gauge series, got %d", len(mf.GetMetric()))
	}
}
