package abi

import (
	"fmt"

	"github.com/sandialabs/elucidator-go/geom"
	"github.com/sandialabs/elucidator-go/handle"
	"github.com/sandialabs/elucidator-go/internal/hash"
	"github.com/sandialabs/elucidator-go/session"
)

// table and errTable are the single process-wide instances every exported
// function dispatches through, per §4.6 ("a process-wide mapping from
// u32 -> owned session").
var (
	table    = handle.New()
	errTable = handle.NewErrorTable()
)

// recordErr stores err in the process-wide error table and returns its
// handle plus status code. Call sites return (zero value, ErrorHandle,
// Status) on failure; a zero ErrorHandle paired with StatusOK means no
// error was recorded.
func recordErr(err error) (ErrorHandle, Status) {
	if err == nil {
		return ErrorHandle{}, StatusOK
	}

	return ErrorHandle{ID: errTable.Record(err)}, handle.StatusOf(err)
}

// GetErrorString returns the message recorded under eh, transferring a
// fresh copy to the caller, per §4.6's "get_error_string... returns a
// freshly allocated string transferring ownership to the caller."
func GetErrorString(eh ErrorHandle) (string, bool) {
	return errTable.String(eh.ID)
}

// NewSession creates a session using the given backend and returns its
// handle.
func NewSession(backend Backend) (SessionHandle, ErrorHandle, Status) {
	var opt session.Option
	if backend == BackendRTree {
		opt = session.WithBackend(session.BackendRTree)
	} else {
		opt = session.WithBackend(session.BackendBulkScan)
	}

	id, err := table.Create(opt)
	if err != nil {
		eh, st := recordErr(err)
		return SessionHandle{}, eh, st
	}

	return SessionHandle{ID: id}, ErrorHandle{}, StatusOK
}

// ReleaseSession releases sh. Releasing an already-released or unknown
// handle fails with StatusUnknownSession (see handle.Table.Release).
func ReleaseSession(sh SessionHandle) (ErrorHandle, Status) {
	if err := table.Release(sh.ID); err != nil {
		return recordErr(err)
	}

	return ErrorHandle{}, StatusOK
}

// AddSpecToSession parses specText and registers it under designation in
// the session named by sh.
func AddSpecToSession(sh SessionHandle, designation, specText string) (ErrorHandle, Status) {
	s, err := table.Lookup(sh.ID)
	if err != nil {
		return recordErr(err)
	}

	if err := s.AddSpec(designation, specText); err != nil {
		return recordErr(err)
	}

	return ErrorHandle{}, StatusOK
}

// InsertMetadataInSession stores blob under bbox and designation in the
// session named by sh.
func InsertMetadataInSession(sh SessionHandle, bbox BoundingBox, designation string, blob []byte) (ErrorHandle, Status) {
	s, err := table.Lookup(sh.ID)
	if err != nil {
		return recordErr(err)
	}

	gbbox, err := toGeomBBox(bbox)
	if err != nil {
		return recordErr(err)
	}

	if err := s.InsertMetadata(gbbox, designation, blob); err != nil {
		return recordErr(err)
	}

	return ErrorHandle{}, StatusOK
}

// GetMetadataInBB queries the session named by sh and returns a linked
// list of owned buffers; the caller must release it via FreeBufNodes.
func GetMetadataInBB(sh SessionHandle, bbox BoundingBox, designation string, epsilon float64) (*BufNode, ErrorHandle, Status) {
	s, err := table.Lookup(sh.ID)
	if err != nil {
		eh, st := recordErr(err)
		return nil, eh, st
	}

	gbbox, err := toGeomBBox(bbox)
	if err != nil {
		eh, st := recordErr(err)
		return nil, eh, st
	}

	blobs, err := s.QueryMetadata(gbbox, designation, epsilon)
	if err != nil {
		eh, st := recordErr(err)
		return nil, eh, st
	}

	return newBufList(blobs), ErrorHandle{}, StatusOK
}

func toGeomBBox(b BoundingBox) (geom.BoundingBox, error) {
	min := geom.Point{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z, T: b.Min.T}
	max := geom.Point{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z, T: b.Max.T}

	return geom.NewBoundingBox(min, max)
}

// PrintSession returns a debug string summarizing the session named by
// sh: its backend's entry count and an xxHash64 fingerprint of each
// registered designation's name, for log correlation without dumping raw
// specification text.
func PrintSession(sh SessionHandle) (string, ErrorHandle, Status) {
	s, err := table.Lookup(sh.ID)
	if err != nil {
		eh, st := recordErr(err)
		return "", eh, st
	}

	out := fmt.Sprintf("session(handle=%d, entries=%d, designations=[", sh.ID, s.Len())

	first := true
	for name := range s.Registry().Iter() {
		if !first {
			out += ", "
		}

		out += fmt.Sprintf("%s#%016x", name, hash.ID(name))
		first = false
	}

	out += "])"

	return out, ErrorHandle{}, StatusOK
}

// PrintDesignation returns a debug string summarizing one registered
// designation's member layout.
func PrintDesignation(sh SessionHandle, designation string) (string, ErrorHandle, Status) {
	s, err := table.Lookup(sh.ID)
	if err != nil {
		eh, st := recordErr(err)
		return "", eh, st
	}

	spec, err := s.Registry().Get(designation)
	if err != nil {
		eh, st := recordErr(err)
		return "", eh, st
	}

	out := fmt.Sprintf("designation(%s, min_size=%d, members=[", designation, spec.MinSize())

	for i, m := range spec.Members {
		if i > 0 {
			out += ", "
		}

		out += fmt.Sprintf("%s:%s/%s", m.Name, m.Type, m.Array.Kind)
	}

	out += "])"

	return out, ErrorHandle{}, StatusOK
}
