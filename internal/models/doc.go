// Package models defines the data exchanged between the skim client, the summarization service, and its cache.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): wire shapes of the summarization API
//   - [SummaryRequest] : body of POST /summarize
//   - [SummaryResult] : successful response body
//   - [ErrorBody] : failure response body, carrying a user facing message
//   - [Article] : text extracted from a fetched web page
//
// 2. Persistent Entities: database-backed models with lifecycle management
//   - [CachedSummary] : a summary stored by the service, keyed by article URL
//
// Persistent entities implement the [Model] interface providing ID, timestamps and validation.
// The [Repository] interface defines standard CRUD operations for database access.
package models
