// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns
// such as request logging, CORS, rate limiting, tracing,
// panic recovery and the rendering of handler errors.
package middleware
