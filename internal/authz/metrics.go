// Inkwell - Content Publishing and Community API
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-api/inkwell

package authz

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DecisionsTotal counts gate evaluations by gate name and outcome
	// ("allowed" or "denied").
	DecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "authz_decisions_total",
			Help: "Total number of authorization gate decisions",
		},
		[]string{"gate", "outcome"},
	)

	// DenialsTotal counts denials by gate name, denial code, and the
	// denied actor's effective role.
	DenialsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "authz_denials_total",
			Help: "Total number of authorization denials",
		},
		[]string{"gate", "code", "role"},
	)
)

func recordAllowed(gate string) {
	DecisionsTotal.WithLabelValues(gate, "allowed").Inc()
}

func recordDenied(gate string, d Denial, role Role) {
	DecisionsTotal.WithLabelValues(gate, "denied").Inc()
	DenialsTotal.WithLabelValues(gate, string(d.Code), string(role)).Inc()
}
