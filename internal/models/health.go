// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

package models

// HealthStatus is the payload of the aggregate health endpoint.
// Directory connectivity degrades the status but never fails the
// endpoint: the service keeps serving cached recommendations through a
// provider outage.
type HealthStatus struct {
	Status             string  `json:"status"`
	Version            string  `json:"version"`
	DirectoryConnected bool    `json:"directory_connected"`
	BreakerState       string  `json:"breaker_state,omitempty"`
	UptimeSeconds      float64 `json:"uptime_seconds"`
}
