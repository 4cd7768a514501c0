// Package errs defines the error shapes returned to API clients.
//
// Two families live here:
//   - HTTPError, the JSON envelope used for system failures (unknown route,
//     database outage, unexpected panics).
//   - ResourceError, the closed set of outcomes of a resource operation
//     (validation, not found, id mismatch, insert failure), rendered as a
//     plain string or a JSON array of messages.
package errs
