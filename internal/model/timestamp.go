package model

import "time"

// TimestampLayout is the wire format for all record timestamps.
// Second granularity, local time, matching the CSV/JSON artifacts.
// Deduplication keys compare these strings directly, so every component
// that stamps a record must use this layout.
const TimestampLayout = "2006-01-02 15:04:05"

// FormatTimestamp renders t in the shared record timestamp format.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
