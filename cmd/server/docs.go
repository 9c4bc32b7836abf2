// Curatus - Personalized Media Discovery and Catalog Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

// Package main provides the Curatus discovery server
//
// Curatus aggregates ranked media lists from upstream catalog services,
// enriches them with metadata, and serves personalized, paginated catalog
// rows through a Stremio-compatible addon protocol and an internal JSON API.
//
// @title Curatus API
// @version 1.0
// @description Personalized media discovery and catalog aggregation service
// @description
// @description ## Surfaces
// @description
// @description - **Discovery protocol**: manifest, catalog, meta and stream endpoints consumed by addon-capable media players
// @description - **Internal API**: interaction-event ingestion and the personalized feed, wrapped in a standard response envelope
// @description
// @description ## Rate Limiting
// @description
// @description Internal API endpoints are rate limited per IP address. Protocol endpoints are not.
// @description
// @description ## Error Responses
// @description
// @description Internal API errors follow this format:
// @description ```json
// @description {
// @description   "success": false,
// @description   "error": {
// @description     "code": "ERROR_CODE",
// @description     "message": "Human-readable error message",
// @description     "details": {}
// @description   }
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/curatus
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @BasePath /
package main
