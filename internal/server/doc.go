// Package server implements the HTTP API using the Echo framework.
//
// Routes: stateless analysis (/api/score, /api/conversation), session
// management (/api/sessions), live feed WebSocket (/ws/feed), health and
// metrics. Handlers split by concern: handlers_api.go, handlers_session.go,
// handlers_feed.go, handlers_health.go.
package server
