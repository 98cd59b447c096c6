package spec

import "fmt"

// DataType is the closed set of atomic wire types a member may declare.
type DataType uint8

const (
	U8 DataType = iota
	U16
	U32
	U64
	I8
	I16
	I32
	I64
	F32
	F64
	String
)

// typeNames is indexed by DataType and doubles as the canonical parse
// table: dtypeByName is built from it in the parser.
var typeNames = [...]string{
	U8: "u8", U16: "u16", U32: "u32", U64: "u64",
	I8: "i8", I16: "i16", I32: "i32", I64: "i64",
	F32: "f32", F64: "f64",
	String: "string",
}

func (d DataType) String() string {
	if int(d) < len(typeNames) {
		return typeNames[d]
	}

	return fmt.Sprintf("DataType(%d)", uint8(d))
}

// StaticSize returns the fixed, on-wire size in bytes of one scalar
// instance of d, or 0 for String (which has no static size — see
// ArrayForm and the codec package for its length-prefixed wire form).
func (d DataType) StaticSize() int {
	switch d {
	case U8, I8:
		return 1
	case U16, I16:
		return 2
	case U32, I32, F32:
		return 4
	case U64, I64, F64:
		return 8
	default:
		return 0
	}
}

// ArrayKind distinguishes the three shapes a member's dtype may take.
type ArrayKind uint8

const (
	Scalar ArrayKind = iota
	Fixed
	Dynamic
)

func (k ArrayKind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Fixed:
		return "fixed"
	case Dynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

// ArrayForm describes whether a member is a bare scalar, a fixed-length
// array, or a dynamically-sized (length-prefixed) array.
type ArrayForm struct {
	Kind ArrayKind
	Len  int // valid only when Kind == Fixed; always > 0
}

// MemberSpec is one named, typed field within a Specification.
type MemberSpec struct {
	Name  string
	Type  DataType
	Array ArrayForm
}

// IsArray reports whether m has any array wrapping (Fixed or Dynamic).
func (m MemberSpec) IsArray() bool {
	return m.Array.Kind != Scalar
}

// Specification is a designation plus its ordered, typed member list.
//
// Once returned by Parse, a Specification is immutable: nothing in this
// package mutates a Specification's Members, Designation, or Context after
// construction.
type Specification struct {
	Designation string
	Members     []MemberSpec
	Context     string // opaque prose, never consulted by the codec
}

// MinSize returns the minimum valid blob length for s: the sum of scalar
// static sizes, n*size for fixed arrays, and 8 bytes (the u64 length
// prefix) for every dynamic component (dynamic array or String).
func (s *Specification) MinSize() int {
	total := 0
	for _, m := range s.Members {
		total += m.minSize()
	}

	return total
}

func (m MemberSpec) minSize() int {
	scalarSize := m.Type.StaticSize()
	switch m.Array.Kind {
	case Scalar:
		if m.Type == String {
			return 8 // u64 length prefix, zero bytes of content minimum
		}

		return scalarSize
	case Fixed:
		return m.Array.Len * scalarSize
	case Dynamic:
		return 8 // u64 count prefix, zero elements minimum
	default:
		return 0
	}
}

// Member looks up a member by name, returning false if absent.
func (s *Specification) Member(name string) (MemberSpec, bool) {
	for _, m := range s.Members {
		if m.Name == name {
			return m, true
		}
	}

	return MemberSpec{}, false
}
