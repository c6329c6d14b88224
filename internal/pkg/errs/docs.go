// Package errs provides the error taxonomy shared by the dispatch engine.
//
// Every error type follows the same shape:
//   - a sentinel (ErrValueIsRequired, ErrConflict, ...) used with errors.Is
//   - a struct carrying details (ParamName, Cause, ...)
//   - constructors with and without a cause
//   - Error() for the message and Unwrap() returning the sentinel
//
// The sentinels group into four categories that callers map to responses:
//
//	validation  ErrValueIsRequired, ErrValueIsInvalid, ErrValueIsOutOfRange
//	conflict    ErrConflict, ErrVersionIsInvalid
//	not found   ErrObjectNotFound
//	upstream    ErrUpstream
package errs
