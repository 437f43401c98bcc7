// Package config holds runtime configuration for the gather CLI: documented
// defaults, the flat Config struct populated from flags, the .gather sources
// file (cities, symbols and thresholds, news categories), and validation.
//
// The sources file exists so that what used to be hard-coded collection
// targets are explicit structured values that tests and users can replace.
package config
