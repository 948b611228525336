// Package middleware holds the global and route-level echo middleware:
// request ids, the request-scoped logger, New Relic tracing, bearer
// authentication, request logging, CORS, panic recovery and the global
// error handler.
package middleware
