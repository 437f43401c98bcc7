package weather

import "math"

// compassNames are the 16-point compass labels, clockwise from north.
var compassNames = [16]string{
	"N", "NNE", "NE", "ENE",
	"E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW",
	"W", "WNW", "NW", "NNW",
}

// WindIndex blends wind speed and gusts into a 0-100 score.
// 50 km/h of blended wind maps to 100. The result is rounded to one
// decimal before clipping, so a blend just past the scale still reads
// exactly 100.
func WindIndex(speedKmh, gustsKmh float64) float64 {
	blended := speedKmh*0.7 + gustsKmh*0.3
	score := math.Round(blended/50*100*10) / 10
	return math.Min(math.Max(score, 0), 100)
}

// CompassName maps a direction in degrees to its 16-point compass label.
// Each sector is 22.5 degrees wide, centered on the label's heading, so
// 355 degrees is "N" and 100 degrees is "E".
func CompassName(deg float64) string {
	sector := int(math.Round(deg/22.5)) % 16
	if sector < 0 {
		sector += 16
	}
	return compassNames[sector]
}
