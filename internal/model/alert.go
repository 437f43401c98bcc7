package model

// AlertLevel classifies a price sample against its configured bounds.
//
// Design decision: iota constants with a String() method rather than string
// constants, so comparisons and sorting are cheap while the CSV artifact
// still carries the canonical NORMAL/HIGH_ALERT/LOW_ALERT spelling.
type AlertLevel int

const (
	// AlertNormal means the price is within [low, high] inclusive.
	AlertNormal AlertLevel = iota

	// AlertHigh means the price is strictly above the high bound.
	AlertHigh

	// AlertLow means the price is strictly below the low bound.
	AlertLow
)

// String returns the canonical artifact spelling of the level.
func (l AlertLevel) String() string {
	switch l {
	case AlertNormal:
		return "NORMAL"
	case AlertHigh:
		return "HIGH_ALERT"
	case AlertLow:
		return "LOW_ALERT"
	default:
		return "UNKNOWN"
	}
}

// Alert is one classified price sample. Alerts are only produced for
// symbols that have configured bounds; samples for unconfigured symbols
// are never classified.
type Alert struct {
	// Time is the sample timestamp in TimestampLayout format.
	Time string `json:"time"`

	// Symbol is the short symbol label.
	Symbol string `json:"symbol"`

	// Price is the sampled price in USD.
	Price float64 `json:"price"`

	// Level is the classification outcome.
	Level AlertLevel `json:"-"`

	// LevelText is Level.String(), kept as a field so JSON artifacts carry
	// the spelled-out value without a custom marshaler.
	LevelText string `json:"alert_type"`

	// ThresholdLow is the configured low bound the sample was checked against.
	ThresholdLow float64 `json:"threshold_low"`

	// ThresholdHigh is the configured high bound.
	ThresholdHigh float64 `json:"threshold_high"`
}
