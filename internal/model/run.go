package model

import (
	"encoding/json"
	"time"
)

// RunKind identifies which collector produced a Run.
type RunKind string

const (
	// RunNews is a news scraping run.
	RunNews RunKind = "news"

	// RunWeather is a weather collection run.
	RunWeather RunKind = "weather"

	// RunCrypto is a cryptocurrency price collection run.
	RunCrypto RunKind = "crypto"
)

// Run accumulates everything a single collection run produces. It is
// created by the command, threaded through the pipeline steps, and finally
// handed to the export writers and the history database.
//
// Only the slices matching the run's Kind are populated; the others stay
// empty. Collectors append records as they go and record per-item failures
// in Errors without aborting the run.
type Run struct {
	// Kind identifies the collector.
	Kind RunKind `json:"kind"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is when collection completed (before export).
	FinishedAt time.Time `json:"finished_at"`

	// CollectedAt is StartedAt in TimestampLayout format; stamped into the
	// detailed CSV artifacts as the collection metadata column.
	CollectedAt string `json:"collected_at"`

	// Articles holds scraped articles for news runs.
	Articles []Article `json:"articles,omitempty"`

	// Hourly and Daily hold weather observations for weather runs.
	Hourly []HourlyWeather `json:"hourly,omitempty"`
	Daily  []DailyWeather  `json:"daily,omitempty"`

	// Samples holds deduplicated, sorted price samples for crypto runs.
	Samples []PriceSample `json:"samples,omitempty"`

	// Alerts holds threshold classifications for crypto runs.
	Alerts []Alert `json:"alerts,omitempty"`

	// RawPayloads holds the raw upstream API responses keyed by source
	// (city name for weather, "prices" for crypto). Mirrored into the
	// *_raw.json artifacts.
	RawPayloads map[string]json.RawMessage `json:"raw_payloads,omitempty"`

	// Errors lists per-item failures encountered during collection.
	// A non-empty Errors does not fail the run; only zero collected
	// records does.
	Errors []string `json:"errors,omitempty"`

	// PerformedSteps lists the pipeline steps that ran, in order.
	PerformedSteps []string `json:"performed_steps,omitempty"`
}

// NewRun creates a Run of the given kind stamped with the current time.
func NewRun(kind RunKind) *Run {
	now := time.Now()
	return &Run{
		Kind:        kind,
		StartedAt:   now,
		CollectedAt: FormatTimestamp(now),
		RawPayloads: make(map[string]json.RawMessage),
	}
}

// AddError records a per-item failure message.
func (r *Run) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// AddRawPayload stores a raw upstream response under the given source key.
func (r *Run) AddRawPayload(source string, payload json.RawMessage) {
	if r.RawPayloads == nil {
		r.RawPayloads = make(map[string]json.RawMessage)
	}
	r.RawPayloads[source] = payload
}

// RecordCount returns the number of collected records for the run's kind.
// Raw payloads and alerts do not count; alerts derive from samples.
func (r *Run) RecordCount() int {
	switch r.Kind {
	case RunNews:
		return len(r.Articles)
	case RunWeather:
		return len(r.Hourly) + len(r.Daily)
	case RunCrypto:
		return len(r.Samples)
	default:
		return 0
	}
}

// Empty reports whether the run collected nothing. Empty runs produce no
// artifacts and make the command fail.
func (r *Run) Empty() bool {
	return r.RecordCount() == 0
}
