// Package log provides slog helpers for the gather CLI. The redacting
// handler masks API keys and auth-carrying headers so that debug logging of
// request configuration never leaks credentials into the console or log
// aggregation.
package log
