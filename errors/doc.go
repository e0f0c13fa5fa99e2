// Package errors provides structured error types for the textcodec library.
//
// Errors are categorized by Phase (which operation was running) and Kind
// (what went wrong). The Error type carries the offending code unit, the
// input position at which it was consumed, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindInvalidLeadByte).
//		Encoding("utf-8").
//		Position(12).
//		Unit(0xF9).
//		Detail("lead byte 0xF9 is not a valid sequence start").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidLeadByte("utf-8", 12, 0xF9)
//	err := errors.UnexpectedEnd("utf-16le", 7)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
