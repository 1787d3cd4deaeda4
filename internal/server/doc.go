// Package server is the HTTP side of skim: the summarization service run by `skim serve`.
//
// Endpoints:
//
//   - GET / : {"message": "Welcome to skim summarization API"}, used by `skim health`
//   - POST /summarize : {"url"} in, {"summary"} out
//
// Every error body is {"message"} so clients can show it verbatim. Fetch problems are 400,
// model failures 500, and throttled clients get 429.
//
// [BasicRouter] sits on [http.ServeMux]. [Handler] implementations carry their own route list;
// plain handlers registered with [BasicRouter.Handle] are method-filtered. Middleware run in the
// order they are added: request id, logging, panic recovery, then the per-address token bucket.
// CORS wraps the whole router so preflight requests never reach method filtering.
package server
