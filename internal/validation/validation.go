// Package validation binds request payloads and reports rule violations as
// per-field errors keyed by the JSON name the client sent.
//
// Rules live in validator struct tags on the payload types. Lenient input
// types such as CoercedBool live here too.
package validation
