package model

import "sort"

// PriceSample is one (time, symbol, price) observation from a sampling round.
type PriceSample struct {
	// Time is the sampling timestamp in TimestampLayout format.
	// Second granularity; samples taken in the same second for the same
	// symbol are considered duplicates.
	Time string `json:"time"`

	// Symbol is the short symbol label ("BTC", "ETH", ...).
	Symbol string `json:"symbol"`

	// USDPrice is the price in US dollars.
	USDPrice float64 `json:"usd_price"`
}

// DedupeSamples returns samples with duplicate (Time, Symbol) pairs removed
// and the result sorted ascending by (Time, Symbol).
//
// For duplicates the first occurrence wins, matching append order: the
// earliest collected value for a given second is kept. The input slice is
// not modified.
func DedupeSamples(samples []PriceSample) []PriceSample {
	type key struct {
		time   string
		symbol string
	}

	seen := make(map[key]bool, len(samples))
	out := make([]PriceSample, 0, len(samples))
	for _, s := range samples {
		k := key{time: s.Time, symbol: s.Symbol}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].Symbol < out[j].Symbol
	})

	return out
}
