package handle

import (
	"errors"

	"github.com/sandialabs/elucidator-go/errs"
)

// Status is the ABI-stable numeric status code every fallible Table/abi
// operation maps its error to, per §6/§7. OK is always zero so a caller
// can treat "no error" as a falsy check.
type Status uint32

const (
	StatusOK Status = iota

	// Parser errors (§4.1).
	StatusUnexpectedChar
	StatusUnexpectedEof
	StatusInvalidIdent
	StatusUnknownDtype
	StatusStringAsArray
	StatusZeroOrNegativeArrayLen
	StatusDuplicateMember
	StatusTrailingGarbage
	StatusDesignationMismatch

	// Registry errors (§4.3).
	StatusDuplicateDesignation
	StatusUnknownDesignation

	// Index/session errors (§4.4, §4.5).
	StatusUnknownSession
	StatusInvalidBoundingBox
	StatusInvalidEpsilon
	StatusInvalidBlobLength

	// Codec errors (§4.2).
	StatusTruncatedBlob
	StatusTrailingBytes

	// Runtime errors (§7).
	StatusPoisonedState
	StatusOutOfMemory

	// StatusUnknown covers any error that doesn't match a known sentinel,
	// such as codec.Encode's value-type errors and errors from the
	// compression codecs.
	StatusUnknown
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusUnexpectedChar:
		return "UNEXPECTED_CHAR"
	case StatusUnexpectedEof:
		return "UNEXPECTED_EOF"
	case StatusInvalidIdent:
		return "INVALID_IDENT"
	case StatusUnknownDtype:
		return "UNKNOWN_DTYPE"
	case StatusStringAsArray:
		return "STRING_AS_ARRAY"
	case StatusZeroOrNegativeArrayLen:
		return "ZERO_OR_NEGATIVE_ARRAY_LEN"
	case StatusDuplicateMember:
		return "DUPLICATE_MEMBER"
	case StatusTrailingGarbage:
		return "TRAILING_GARBAGE"
	case StatusDesignationMismatch:
		return "DESIGNATION_MISMATCH"
	case StatusDuplicateDesignation:
		return "DUPLICATE_DESIGNATION"
	case StatusUnknownDesignation:
		return "UNKNOWN_DESIGNATION"
	case StatusUnknownSession:
		return "UNKNOWN_SESSION"
	case StatusInvalidBoundingBox:
		return "INVALID_BOUNDING_BOX"
	case StatusInvalidEpsilon:
		return "INVALID_EPSILON"
	case StatusInvalidBlobLength:
		return "INVALID_BLOB_LENGTH"
	case StatusTruncatedBlob:
		return "TRUNCATED_BLOB"
	case StatusTrailingBytes:
		return "TRAILING_BYTES"
	case StatusPoisonedState:
		return "POISONED_STATE"
	case StatusOutOfMemory:
		return "OUT_OF_MEMORY"
	default:
		return "UNKNOWN"
	}
}

// sentinelStatus pairs each errs sentinel with its ABI status code. Order
// doesn't matter; StatusOf does a linear errors.Is scan since the set is
// small and fixed.
var sentinelStatus = []struct {
	err    error
	status Status
}{
	{errs.ErrUnexpectedChar, StatusUnexpectedChar},
	{errs.ErrUnexpectedEof, StatusUnexpectedEof},
	{errs.ErrInvalidIdent, StatusInvalidIdent},
	{errs.ErrUnknownDtype, StatusUnknownDtype},
	{errs.ErrStringAsArray, StatusStringAsArray},
	{errs.ErrZeroOrNegativeArrayLen, StatusZeroOrNegativeArrayLen},
	{errs.ErrDuplicateMember, StatusDuplicateMember},
	{errs.ErrTrailingGarbage, StatusTrailingGarbage},
	{errs.ErrDesignationMismatch, StatusDesignationMismatch},
	{errs.ErrDuplicateDesignation, StatusDuplicateDesignation},
	{errs.ErrUnknownDesignation, StatusUnknownDesignation},
	{errs.ErrUnknownSession, StatusUnknownSession},
	{errs.ErrInvalidBoundingBox, StatusInvalidBoundingBox},
	{errs.ErrInvalidEpsilon, StatusInvalidEpsilon},
	{errs.ErrInvalidBlobLength, StatusInvalidBlobLength},
	{errs.ErrTruncatedBlob, StatusTruncatedBlob},
	{errs.ErrTrailingBytes, StatusTrailingBytes},
	{errs.ErrPoisonedState, StatusPoisonedState},
	{errs.ErrOutOfMemory, StatusOutOfMemory},
}

// StatusOf maps err to its ABI status code via errors.Is against each
// known sentinel, since callers wrap sentinels with fmt.Errorf("%w: ...")
// throughout. A nil err maps to StatusOK; an unrecognized error maps to
// StatusUnknown rather than panicking.
func StatusOf(err error) Status {
	if err == nil {
		return StatusOK
	}

	for _, entry := range sentinelStatus {
		if errors.Is(err, entry.err) {
			return entry.status
		}
	}

	return StatusUnknown
}
