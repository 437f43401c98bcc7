// Package pipeline executes the stages of a collection run in sequence.
//
// A run flows through three stages: collection (scrape or fetch records),
// export (write artifacts), and history (persist to the local database).
// Each stage is a Step that receives the accumulated run and can modify it.
//
// Design decision: We use a pipeline pattern instead of direct function calls
// because:
// 1. It allows easy addition/removal of steps without modifying core logic
// 2. It provides consistent error handling and logging across steps
// 3. It supports cancellation via context for long-running collections
package pipeline
