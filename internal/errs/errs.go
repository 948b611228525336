// Package errs defines the error shapes the API sends to clients.
//
// Every failure a handler can produce ends up as an *HTTPError: field-level
// validation problems, not-found lookups, authentication failures and the
// silent access denial used for memories the caller does not own.
package errs
