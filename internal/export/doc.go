// Package export writes the artifacts of a collection run: CSV files,
// JSON dumps, a markdown report, and the console summary. Every writer
// implements the same Write(run) interface so the export pipeline step can
// fan out over them.
package export
