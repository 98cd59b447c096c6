// Package abi is the Go-side shape of the C-ABI-stable foreign interface
// described in §6: fixed-size handle structs, a status enum, and the
// exported entry points a cgo shim would bind to. No //export directives
// or cgo preamble are included here — the foreign-language bindings
// themselves are out of scope; this package is the contract they bind to.
package abi

import "github.com/sandialabs/elucidator-go/handle"

// SessionHandle is an opaque, caller-allocated 4-byte reference to a live
// session.Session in the process-wide table.
type SessionHandle struct {
	ID uint32
}

// ErrorHandle is an opaque, caller-allocated 4-byte reference to a
// recorded handle.ErrorInfo.
type ErrorHandle struct {
	ID uint32
}

// DesignationHandle is an opaque, caller-allocated 4-byte reference to a
// designation. No function in this package takes or returns one yet;
// PrintDesignation takes the designation name as a string.
type DesignationHandle struct {
	ID uint32
}

// Status re-exports handle.Status under the ABI package so callers never
// need to import handle directly.
type Status = handle.Status

const (
	StatusOK                     = handle.StatusOK
	StatusUnexpectedChar         = handle.StatusUnexpectedChar
	StatusUnexpectedEof          = handle.StatusUnexpectedEof
	StatusInvalidIdent           = handle.StatusInvalidIdent
	StatusUnknownDtype           = handle.StatusUnknownDtype
	StatusStringAsArray          = handle.StatusStringAsArray
	StatusZeroOrNegativeArrayLen = handle.StatusZeroOrNegativeArrayLen
	StatusDuplicateMember        = handle.StatusDuplicateMember
	StatusTrailingGarbage        = handle.StatusTrailingGarbage
	StatusDesignationMismatch    = handle.StatusDesignationMismatch
	StatusDuplicateDesignation   = handle.StatusDuplicateDesignation
	StatusUnknownDesignation     = handle.StatusUnknownDesignation
	StatusUnknownSession         = handle.StatusUnknownSession
	StatusInvalidBoundingBox     = handle.StatusInvalidBoundingBox
	StatusInvalidEpsilon         = handle.StatusInvalidEpsilon
	StatusInvalidBlobLength      = handle.StatusInvalidBlobLength
	StatusTruncatedBlob          = handle.StatusTruncatedBlob
	StatusTrailingBytes          = handle.StatusTrailingBytes
	StatusPoisonedState          = handle.StatusPoisonedState
	StatusOutOfMemory            = handle.StatusOutOfMemory
	StatusUnknown                = handle.StatusUnknown
)

// Backend mirrors session.Backend for the ABI surface, so callers never
// need to import the session package directly.
type Backend uint8

const (
	BackendBulkScan Backend = iota
	BackendRTree
)

// Point is the four-f64-field value struct exchanged across the boundary,
// field order x, y, z, t per §6.
type Point struct {
	X, Y, Z, T float64
}

// BoundingBox is the two-Point value struct exchanged across the boundary.
type BoundingBox struct {
	Min, Max Point
}

// BufNode is a singly linked list node owning one byte buffer, matching
// the `BufNode { u8* p; u64 n; BufNode* next; }` C layout. P and N describe
// a buffer owned by this node; Next is nil at the list's tail.
type BufNode struct {
	P    []byte
	N    uint64
	Next *BufNode
}

// newBufList builds a BufNode chain from blobs, in order. Returns nil for
// an empty input, matching "empty result is a success with an empty list".
func newBufList(blobs [][]byte) *BufNode {
	var head, tail *BufNode

	for _, b := range blobs {
		node := &BufNode{P: b, N: uint64(len(b))}
		if head == nil {
			head = node
		} else {
			tail.Next = node
		}

		tail = node
	}

	return head
}

// FreeBufNodes walks n's linked list, releasing each node. In Go there is
// no manual free; this exists so the ABI surface matches §5's "free
// routine walks the linked list, releasing each node's byte buffer and the
// node itself" contract for a future cgo shim, where FreeBufNodes would be
// the //export entry point the foreign caller invokes. Safe to call with a
// nil head or a list that has already been freed once (idempotent, since
// it's pure pointer traversal with no external resource to double-release)
// — per §5, double-free beyond that is still the caller's responsibility,
// since Go's garbage collector, not this function, is what actually
// reclaims memory.
func FreeBufNodes(n *BufNode) {
	for n != nil {
		next := n.Next
		n.P = nil
		n.Next = nil
		n = next
	}
}
