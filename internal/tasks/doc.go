// Package tasks orchestrates the summarization pipeline with real-time progress reporting.
//
// # Core Operations
//
//  1. [SummaryEngine.Summarize] : one URL through the pipeline
//     - Serves a live cached summary when one exists
//     - Fetches and extracts the article
//     - Asks the configured model for a summary
//     - Stores the result in the cache (failures are logged, not returned)
//
//  2. [SummaryEngine.Warm] : many URLs through a rate-limited worker pool
//
//  3. [SummaryEngine.Prune] : expired cache entries removed, run on a schedule by [Pruner]
//
// # Progress Reporting
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data.
// Updates use select with default to prevent blocking.
package tasks
