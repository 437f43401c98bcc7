// Package fetch provides the shared HTTP client used by every collector.
// It owns the cross-cutting request concerns: the fixed User-Agent, the
// per-request timeout, the response body size limit, and non-2xx handling.
package fetch
