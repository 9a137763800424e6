// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

// Package main FeelGive Recommendation API
//
// @title FeelGive Recommendation API
// @version 1.0
// @description Crisis-response nonprofit recommendation engine. Given a described crisis, returns a ranked, explainable list of nonprofits to support.

// @contact.name GitHub Repository
// @contact.url https://github.com/hurakan/feelgive-sub000/issues

// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:8090
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Maintenance credential: "Bearer <static-token>" or "Bearer <maintenance-JWT>". Only required for cache invalidation.

// @tag.name Core
// @tag.description Health and readiness probes

// @tag.name Recommendations
// @tag.description Crisis-to-nonprofit recommendation pipeline

// @tag.name Cache
// @tag.description Cache observability and maintenance
package main
