// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation protecting the compaction, history and
//     validation routes.
//   - rayid: a request id per incoming request, stored in locals for
//     logger.WithRayID and echoed in the X-Ray-ID response header.
//
// Register rayid first so every later handler can log with the id.
package middleware
