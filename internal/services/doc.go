// Package services implements the HTTP client side of the summarization API.
//
// # Service Interface
//
// [Service] is the boundary the interaction controller depends on. [SummaryService] implements it
// on top of [APIService], a thin JSON-over-HTTP helper rooted at a configured base URL.
//
// # Wire Format
//
//	POST {base}/summarize   {"url": "..."}  → 2xx {"summary": "..."} | non-2xx {"message": "..."}
//	GET  {base}/            → 2xx {"message": "..."}
//
// # Error Handling
//
// Errors come in two shapes so callers can classify them:
//   - [*ServiceError] : the round trip completed with a non-2xx status; Message holds the body's message, if any
//   - [shared.ErrAPIRequest] : the request could not complete or the 2xx body was unusable
//
// No retries are performed. A transport timeout, when configured, surfaces as [shared.ErrAPIRequest] also matching [shared.ErrTimeout].
package services
