// Package model holds the entities persisted by the repository layer and the
// request payloads the handlers bind and validate.
//
// Each resource lives in its own sub-package (model/memory).
package model
