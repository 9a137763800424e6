// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

// Package models defines the shared data records that flow through the
// recommendation pipeline: crisis entities in, directory candidates through
// the ranking stages, and recommendation view records out. Every stage
// layers a new record on top of the previous one; nothing here is mutated
// in place after construction.
package models
