package encoding

import (
	"reflect"
	"testing"
	"unsafe"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type (
	obj uintptr
	sel uintptr

	point struct{ X, Y float64 }
	node  struct {
		Next *node
		V    int32
	}
)

func (obj) ObjCType() string { return "@" }
func (sel) ObjCType() string { return ":" }

func typeOf[T any]() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }

func TestOf(t *testing.T) {
	cases := []struct {
		typ  reflect.Type
		want string
	}{
		{nil, "v"},
		{typeOf[bool](), "B"},
		{typeOf[int8](), "c"},
		{typeOf[uint16](), "S"},
		{typeOf[int32](), "i"},
		{typeOf[uint64](), "Q"},
		{typeOf[float32](), "f"},
		{typeOf[float64](), "d"},
		{typeOf[*int8](), "*"},
		{typeOf[unsafe.Pointer](), "^v"},
		{typeOf[obj](), "@"},
		{typeOf[sel](), ":"},
		{typeOf[*obj](), "^@"},
		{typeOf[**obj](), "^^@"},
		{typeOf[[2]obj](), "[2@]"},
		{typeOf[point](), "{point=dd}"},
		{typeOf[*point](), "^{point=dd}"},
		{typeOf[[4]uint8](), "[4C]"},
		{typeOf[struct{ A, B int32 }](), "{?=ii}"},
		{typeOf[node](), "{node=^{node}i}"},
		{typeOf[**int32](), "^^i"},
	}
	for _, c := range cases {
		got, err := Of(c.typ)
		require.NoError(t, err)
		require.Equal(t, c.want, got, "%v", c.typ)
	}

	for _, typ := range []reflect.Type{
		typeOf[string](),
		typeOf[[]int](),
		typeOf[map[int]int](),
		typeOf[struct{ S string }](),
	} {
		_, err := Of(typ)
		require.ErrorIs(t, err, ErrNoEncoding, typ.String())
	}
}

func TestFunc(t *testing.T) {
	got, err := Func(typeOf[func(obj, sel) obj]())
	require.NoError(t, err)
	require.Equal(t, "@@:", got)

	got, err = Func(typeOf[func(obj, sel, int32, point)]())
	require.NoError(t, err)
	require.Equal(t, "v@:i{point=dd}", got)

	// NSError ** out-parameter
	got, err = Func(typeOf[func(obj, sel, *obj) bool]())
	require.NoError(t, err)
	require.Equal(t, "B@:^@", got)

	_, err = Func(typeOf[func(obj, sel) (obj, error)]())
	require.ErrorIs(t, err, ErrNoEncoding)

	_, err = Func(typeOf[func(obj, sel, ...int32)]())
	require.ErrorIs(t, err, ErrNoEncoding)

	_, err = Func(typeOf[int]())
	require.ErrorIs(t, err, ErrNoEncoding)
}

func TestParseMethodEncoding(t *testing.T) {
	types, err := Parse("v24@0:8@16")
	require.NoError(t, err)
	want := []Type{{Code: 'v'}, {Code: '@'}, {Code: ':'}, {Code: '@'}}
	require.Empty(t, cmp.Diff(want, types))

	types, err = Parse(`@"NSString"16@0:8`)
	require.NoError(t, err)
	require.Len(t, types, 3)
	require.Equal(t, "NSString", types[0].Name)
	require.True(t, types[0].IsObject())

	sig, err := ParseSignature("c24@0:8:16")
	require.NoError(t, err)
	require.Equal(t, byte('c'), sig.Return.Code)
	require.Len(t, sig.Args, 3)
	require.Equal(t, "c@::", sig.String())

	_, err = ParseSignature("v@")
	require.Error(t, err)
}

func TestParseAggregates(t *testing.T) {
	rect, err := ParseOne("{CGRect={CGPoint=dd}{CGSize=dd}}")
	require.NoError(t, err)
	want := Type{
		Code: '{',
		Name: "CGRect",
		Fields: []Field{
			{Type: Type{Code: '{', Name: "CGPoint", Fields: []Field{{Type: Type{Code: 'd'}}, {Type: Type{Code: 'd'}}}}},
			{Type: Type{Code: '{', Name: "CGSize", Fields: []Field{{Type: Type{Code: 'd'}}, {Type: Type{Code: 'd'}}}}},
		},
	}
	if diff := cmp.Diff(want, rect); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	size, ok := rect.Size()
	require.True(t, ok)
	require.EqualValues(t, 32, size)

	opaque, err := ParseOne("^{__CFString=}")
	require.NoError(t, err)
	require.Equal(t, byte('^'), opaque.Code)
	require.Equal(t, "__CFString", opaque.Elem.Name)
	require.NotNil(t, opaque.Elem.Fields)
	require.Empty(t, opaque.Elem.Fields)

	named, err := ParseOne(`{pair="first"i"second"c}`)
	require.NoError(t, err)
	require.Equal(t, "first", named.Fields[0].Name)
	size, ok = named.Size()
	require.True(t, ok)
	require.EqualValues(t, 8, size)
	align, ok := named.Align()
	require.True(t, ok)
	require.EqualValues(t, 4, align)

	u, err := ParseOne("(value=icd)")
	require.NoError(t, err)
	size, ok = u.Size()
	require.True(t, ok)
	require.EqualValues(t, 8, size)

	arr, err := ParseOne("[12^f]")
	require.NoError(t, err)
	require.Equal(t, 12, arr.Len)
	require.Equal(t, byte('f'), arr.Elem.Elem.Code)

	bits, err := ParseOne("b5")
	require.NoError(t, err)
	_, ok = bits.Size()
	require.False(t, ok)
}

func TestParseRoundTrip(t *testing.T) {
	for _, s := range []string{
		"v", "@", "#", ":", "*", "r*", "^v", "^^i", "@?", `@"NSObject"`,
		"{CGPoint=dd}", "{?=ii}", "{opaque}", "^{node=^{node}i}", "[4C]",
		`{pair="first"i"second"c}`, "(value=icd)", "b3", "Vv", "rn^{x=}",
	} {
		typ, err := ParseOne(s)
		require.NoError(t, err, s)
		require.Equal(t, s, typ.String())
	}
}

func TestParseBlock(t *testing.T) {
	types, err := Parse(`v24@0:8@?<v@?@>16`)
	require.NoError(t, err)
	require.Len(t, types, 4)
	require.Equal(t, "?", types[3].Name)

	types, err = Parse(`v32@0:8@?<v@?<v@?@>q>16q24`)
	require.NoError(t, err)
	require.Len(t, types, 5)
	require.Equal(t, "?", types[3].Name)
	require.Equal(t, byte('q'), types[4].Code)
}

func TestParseErrors(t *testing.T) {
	for _, s := range []string{
		"", "{abc", "[3", "[x]", "x", "^", `@"NS`, "{a=i", "b",
		"[-3i]", "b-1", "[99999999999999999999i]", "b99999999999",
		"@?<v@?<v@?>", "@?<v",
	} {
		_, err := ParseOne(s)
		require.Error(t, err, s)
	}
	_, err := ParseOne("ii")
	require.Error(t, err)

	huge, err := ParseOne("[2147483647[2147483647[2147483647d]]]")
	require.NoError(t, err)
	_, ok := huge.Size()
	require.False(t, ok)
}

func TestEncodingParsesBack(t *testing.T) {
	for _, typ := range []reflect.Type{typeOf[point](), typeOf[node](), typeOf[[2]point]()} {
		s := MustOf(typ)
		parsed, err := ParseOne(s)
		require.NoError(t, err, s)
		require.Equal(t, s, parsed.String())
		if parsed.Code != '{' || typ.Kind() != reflect.Struct {
			continue
		}
		size, ok := parsed.Size()
		require.True(t, ok)
		require.Equal(t, typ.Size(), size)
	}
}
