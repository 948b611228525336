// Package handler binds HTTP requests to services.
//
// Typed endpoints go through Handle or HandleNoContent, which bind and
// validate the payload, call the service and write the response. Errors are
// returned untouched; the global error handler renders them.
package handler
