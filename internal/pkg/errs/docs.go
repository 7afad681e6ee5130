// Package errs defines the error types shared by the dispatch engine.
//
// Every typed error unwraps to one sentinel, so adapters classify failures
// with errors.Is and never inspect messages:
//
//	ErrValueIsRequired, ErrValueIsInvalid, ErrValueIsOutOfRange  -> 400
//	ErrObjectNotFound                                            -> 404
//	ErrConflict (execution lock held)                            -> 409
//
// Constructors come in pairs, with and without a cause. The cause is part
// of the message but not of the error chain.
package errs
