package model

import (
	"math"
	"sort"
)

// PriceStats summarizes the samples collected for one symbol within a run.
// Used by the markdown report and the console summary.
type PriceStats struct {
	// Symbol is the short symbol label.
	Symbol string

	// Count is the number of samples.
	Count int

	// First and Last are the chronologically first and last prices.
	First float64
	Last  float64

	// Min, Max and Mean are over all samples.
	Min  float64
	Max  float64
	Mean float64

	// Std is the sample standard deviation (0 for fewer than two samples).
	Std float64

	// Change and ChangePct are Last-First and its percentage of First.
	Change    float64
	ChangePct float64
}

// ComputePriceStats aggregates per-symbol statistics from samples.
// Samples must already be sorted by (Time, Symbol), which DedupeSamples
// guarantees; First/Last rely on that order.
func ComputePriceStats(samples []PriceSample) []PriceStats {
	bySymbol := make(map[string][]float64)
	for _, s := range samples {
		bySymbol[s.Symbol] = append(bySymbol[s.Symbol], s.USDPrice)
	}

	symbols := make([]string, 0, len(bySymbol))
	for sym := range bySymbol {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	stats := make([]PriceStats, 0, len(symbols))
	for _, sym := range symbols {
		prices := bySymbol[sym]
		st := PriceStats{
			Symbol: sym,
			Count:  len(prices),
			First:  prices[0],
			Last:   prices[len(prices)-1],
			Min:    prices[0],
			Max:    prices[0],
		}

		var sum float64
		for _, p := range prices {
			sum += p
			st.Min = math.Min(st.Min, p)
			st.Max = math.Max(st.Max, p)
		}
		st.Mean = sum / float64(len(prices))

		if len(prices) > 1 {
			var sq float64
			for _, p := range prices {
				d := p - st.Mean
				sq += d * d
			}
			st.Std = math.Sqrt(sq / float64(len(prices)-1))
		}

		st.Change = st.Last - st.First
		if st.First != 0 {
			st.ChangePct = st.Change / st.First * 100
		}

		stats = append(stats, st)
	}

	return stats
}
