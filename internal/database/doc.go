// Package database provides SQLite-backed storage for collection run
// history. Each finished run is persisted with its records so later
// commands can compare runs without re-collecting.
package database
