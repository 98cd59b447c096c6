package spec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sandialabs/elucidator-go/errs"
)

func TestParse_Scalar(t *testing.T) {
	s, err := Parse("imu_sample(timestamp:u64,accel_x:f32,accel_y:f32,accel_z:f32);")
	require.NoError(t, err)
	require.Equal(t, "imu_sample", s.Designation)
	require.Len(t, s.Members, 4)
	require.Equal(t, MemberSpec{Name: "timestamp", Type: U64, Array: ArrayForm{Kind: Scalar}}, s.Members[0])
	require.Equal(t, MemberSpec{Name: "accel_x", Type: F32, Array: ArrayForm{Kind: Scalar}}, s.Members[1])
}

func TestParse_NoTrailingSemicolon(t *testing.T) {
	s, err := Parse("point(x:f64,y:f64)")
	require.NoError(t, err)
	require.Equal(t, "point", s.Designation)
}

func TestParse_FixedArray(t *testing.T) {
	s, err := Parse("matrix(cell:f64[9])")
	require.NoError(t, err)
	require.Equal(t, ArrayForm{Kind: Fixed, Len: 9}, s.Members[0].Array)
}

func TestParse_DynamicArray(t *testing.T) {
	s, err := Parse("frame(payload:u8[])")
	require.NoError(t, err)
	require.Equal(t, ArrayForm{Kind: Dynamic}, s.Members[0].Array)
	require.True(t, s.Members[0].IsArray())
}

func TestParse_StringMember(t *testing.T) {
	s, err := Parse("label(name:string)")
	require.NoError(t, err)
	require.Equal(t, String, s.Members[0].Type)
}

func TestParse_Context(t *testing.T) {
	s, err := Parse("point(x:f64,y:f64)(captured by the onboard survey rig)")
	require.NoError(t, err)
	require.Equal(t, "captured by the onboard survey rig", s.Context)
}

func TestParse_EmptyMemberList(t *testing.T) {
	s, err := Parse("marker()")
	require.NoError(t, err)
	require.Empty(t, s.Members)
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name     string
		src      string
		sentinel error
	}{
		{"unexpected char", "point(x:f64,y:f64)#", errs.ErrTrailingGarbage},
		{"string array", "bad(name:string[])", errs.ErrStringAsArray},
		{"zero array len", "bad(cell:f64[0])", errs.ErrZeroOrNegativeArrayLen},
		{"unknown dtype", "bad(x:decimal128)", errs.ErrUnknownDtype},
		{"duplicate member", "bad(x:f64,x:f64)", errs.ErrDuplicateMember},
		{"missing paren", "bad(x:f64", errs.ErrUnexpectedEof},
		{"invalid ident", "123(x:f64)", errs.ErrInvalidIdent},
		{"underscore-leading designation", "_foo(bar:u32)", errs.ErrInvalidIdent},
		{"underscore-leading member", "foo(_bar:u32)", errs.ErrInvalidIdent},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.src)
			require.Error(t, err)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			require.ErrorIs(t, err, tc.sentinel)
		})
	}
}

func TestParseMembers_Reduced(t *testing.T) {
	members, err := ParseMembers("lat:f64,lon:f64,alt:f32")
	require.NoError(t, err)
	require.Len(t, members, 3)
	require.Equal(t, "lat", members[0].Name)
}

func TestParseMembers_TrailingGarbage(t *testing.T) {
	_, err := ParseMembers("lat:f64 garbage")
	require.ErrorIs(t, err, errs.ErrTrailingGarbage)
}

func TestSpecification_MinSize(t *testing.T) {
	s, err := Parse("mix(a:u8,b:u64,c:f64[2],d:string,e:u32[])")
	require.NoError(t, err)
	// a:1 + b:8 + c:16 + d:8(len prefix) + e:8(count prefix) = 41
	require.Equal(t, 41, s.MinSize())
}

func TestSpecification_Member(t *testing.T) {
	s, err := Parse("point(x:f64,y:f64)")
	require.NoError(t, err)

	m, ok := s.Member("x")
	require.True(t, ok)
	require.Equal(t, F64, m.Type)

	_, ok = s.Member("z")
	require.False(t, ok)
}

func TestDataType_String(t *testing.T) {
	require.Equal(t, "u64", U64.String())
	require.Equal(t, "string", String.String())
}
