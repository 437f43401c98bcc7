// Package model defines the data structures shared across collectors:
// scraped articles, weather observations, price samples, threshold alerts,
// and the Run accumulator that pipeline steps populate.
//
// All records are flat and append-only. A record is constructed once by a
// collector, appended to the current Run, and serialized at the end of the
// run; nothing mutates a record after construction.
package model
