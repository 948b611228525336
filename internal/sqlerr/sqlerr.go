// Package sqlerr turns database driver errors into API errors.
//
// Constraint violations become 400s with generated codes such as
// MEMORY_ALREADY_EXISTS, missing rows become 404s, and everything else is a
// generic 500 so no SQL detail reaches the client.
package sqlerr
