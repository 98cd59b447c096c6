// Package errs defines the sentinel errors returned throughout elucidator.
//
// Most fallible operations return one of these values, directly or wrapped
// via fmt.Errorf("%w: ...", errs.ErrXxx, ...), so callers can recover the
// underlying kind with errors.Is regardless of how much context was layered
// on top. Errors from codec.Encode's value checks and from the compression
// codecs wrap none of these sentinels.
package errs

import "errors"

// Parser errors (§4.1). Each carries a byte offset and offending lexeme via
// spec.ParseError, which wraps one of these.
var (
	ErrUnexpectedChar         = errors.New("unexpected character")
	ErrUnexpectedEof          = errors.New("unexpected end of input")
	ErrInvalidIdent           = errors.New("invalid identifier")
	ErrUnknownDtype           = errors.New("unknown data type")
	ErrStringAsArray          = errors.New("string type cannot be an array")
	ErrZeroOrNegativeArrayLen = errors.New("fixed array length must be greater than zero")
	ErrDuplicateMember        = errors.New("duplicate member identifier")
	ErrTrailingGarbage        = errors.New("trailing input after specification")
	ErrDesignationMismatch    = errors.New("designation does not match specification")
)

// Registry errors (§4.3).
var (
	ErrDuplicateDesignation = errors.New("designation already registered")
	ErrUnknownDesignation   = errors.New("unknown designation")
)

// Index/session errors (§4.4, §4.5).
var (
	ErrUnknownSession     = errors.New("unknown session handle")
	ErrInvalidBoundingBox = errors.New("invalid bounding box")
	ErrInvalidEpsilon     = errors.New("invalid epsilon")
	ErrInvalidBlobLength  = errors.New("invalid blob length for designation")
)

// Codec errors (§4.2).
var (
	ErrTruncatedBlob = errors.New("blob truncated before decode completed")
	ErrTrailingBytes = errors.New("blob has trailing bytes after decode")
)

// Runtime errors (§7).
var (
	ErrPoisonedState = errors.New("handle table poisoned by a prior panic")
	ErrOutOfMemory   = errors.New("out of memory")
)
