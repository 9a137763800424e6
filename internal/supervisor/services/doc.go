// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

// Package services contains the suture.Service wrappers run under the
// supervisor tree: the HTTP server and the cache sweep janitor.
package services
