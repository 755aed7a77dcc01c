package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SettingsReads counts reads of the global settings record by result (success|not_found|error).
	SettingsReads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "settingsd_settings_reads_total",
			Help: "Total number of global settings reads",
		},
		[]string{"result"},
	)

	// SettingsUpdates counts change requests by result (success|rejected|error).
	SettingsUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "settingsd_settings_updates_total",
			Help: "Total number of global settings change requests",
		},
		[]string{"result"},
	)

	// RoleChecks counts role evaluations on protected routes (allowed|denied).
	RoleChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "settingsd_role_checks_total",
			Help: "Total number of role checks",
		},
		[]string{"role", "result"},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "settingsd_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
