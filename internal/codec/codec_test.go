package codec

import (
	"errors"
	"fmt"
	"testing"
	"testing/quick"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSentinelIdempotence(t *testing.T) {
	s := NewSentinel(uint32(0xFFFFFFFF))
	f := func(raw uint32) bool {
		return s.Encode(s.Decode(raw)) == raw
	}
	require.NoError(t, quick.Check(f, nil))
	assert.False(t, s.Decode(0xFFFFFFFF).IsSome())
	assert.Equal(t, uint32(0xFFFFFFFF), s.Encode(None[uint32]()))
	assert.Equal(t, Some(uint32(0)), s.Decode(0))
}

func TestSentinelsArePerField(t *testing.T) {
	zero := NewSentinel(uint32(0))
	ones := NewSentinel(uint32(0xFFFFFFFF))
	assert.False(t, zero.Decode(0).IsSome())
	assert.True(t, ones.Decode(0).IsSome())
	assert.Equal(t, uint32(0), zero.Reserved())
}

func TestFlagsTotality(t *testing.T) {
	flags := NewFlags("TestFlags", uint8(1), uint8(2), uint8(8))
	f := func(raw uint8) bool {
		v, err := flags.Validate(raw)
		if raw&^uint8(11) == 0 {
			return err == nil && v == raw
		}
		var bits UnrecognizedBitsError
		return errors.As(err, &bits) && bits.Raw == uint64(raw) && bits.Type == "TestFlags"
	}
	require.NoError(t, quick.Check(f, nil))
	assert.Equal(t, uint8(11), flags.Known())
	assert.Equal(t, uint8(9), Join(uint8(1), uint8(8)))
	assert.Equal(t, uint8(0), Join[uint8]())
}

func TestEnumValidate(t *testing.T) {
	e := NewEnum("Color", uint32(0), uint32(1))
	v, err := e.Validate(1)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), v)

	_, err = e.Validate(5)
	assert.Equal(t, UnexpectedVariantError{Type: "Color", Tag: 5}, err)
}

func TestUnionNeverReadsUnselectedArm(t *testing.T) {
	poisoned := func(storage []byte) (string, error) {
		t.Fatalf("arm read storage it was not selected for")
		return "", nil
	}
	u := NewUnion("Test", map[uint16]Arm[string]{
		1: func(storage []byte) (string, error) { return string(storage), nil },
		2: poisoned,
	})

	v, err := u.Decode(Tag(uint16(1), []byte("hi")))
	require.NoError(t, err)
	assert.Equal(t, "hi", v)

	_, err = u.Decode(Tag(uint16(9), []byte("hi")))
	var variant UnexpectedVariantError
	require.ErrorAs(t, err, &variant)
	assert.Equal(t, uint32(9), variant.Tag)
	assert.True(t, u.Accepts(2))
	assert.False(t, u.Accepts(9))
}

func TestTagCopiesStorage(t *testing.T) {
	raw := []byte("ab")
	tagged := Tag(uint8(1), raw)
	raw[0] = 'z'
	u := NewUnion("Copy", map[uint8]Arm[string]{
		1: func(storage []byte) (string, error) { return string(storage), nil },
	})
	v, err := u.Decode(tagged)
	require.NoError(t, err)
	assert.Equal(t, "ab", v)
	assert.Equal(t, uint8(1), tagged.Discriminant())
}

func TestSelectorFallback(t *testing.T) {
	calls := map[string]int{}
	s := NewSelector("Mode", map[uint32]Shape[string]{
		3: func([]byte) (string, error) {
			calls["three"]++
			return "three", nil
		},
		1: func([]byte) (string, error) {
			calls["one"]++
			return "one", nil
		},
	})
	assert.Equal(t, uint32(1), s.Fallback())
	assert.True(t, s.Known(3))
	assert.False(t, s.Known(2))

	v, err := s.Select(3, nil)
	require.NoError(t, err)
	assert.Equal(t, "three", v)

	v, err = s.Select(2, nil)
	require.NoError(t, err)
	assert.Equal(t, "one", v)
	assert.Equal(t, map[string]int{"three": 1, "one": 1}, calls)
}

func TestMapCountedFailFast(t *testing.T) {
	var seen []int
	decode := func(r int) (int, error) {
		seen = append(seen, r)
		if r < 0 {
			return 0, UnexpectedVariantError{Type: "Elem", Tag: uint32(-r)}
		}
		return r * 2, nil
	}
	out, err := MapCounted([]int{1, 2, -7, 4, -9}, 5, decode)
	assert.Nil(t, out)
	var elem ElementError
	require.ErrorAs(t, err, &elem)
	assert.Equal(t, 2, elem.Index)
	assert.ErrorIs(t, err, ErrUnexpectedVariant)
	assert.Equal(t, []int{1, 2, -7}, seen)
}

func TestMapCountedBounds(t *testing.T) {
	elems := []int{1, 2, 3}
	out, err := MapCounted(elems, 2, Infallible(func(r int) string { return fmt.Sprint(r) }))
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, out)

	empty, err := MapCounted(elems, 0, Infallible(func(r int) int { return r }))
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = MapCounted(elems, 4, Infallible(func(r int) int { return r }))
	assert.ErrorIs(t, err, ErrInvalidValue)
	_, err = MapCounted(elems, -1, Infallible(func(r int) int { return r }))
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestKindOf(t *testing.T) {
	cases := map[error]Kind{
		nil:                                       KindUnknown,
		errors.New("other"):                       KindUnknown,
		InvalidEncodingError{Offset: 1}:           KindInvalidEncoding,
		ValueTooLargeError{MaxLen: 1}:             KindValueTooLarge,
		InvalidValueError{Reason: "x"}:            KindInvalidValue,
		UnexpectedVariantError{Type: "T", Tag: 1}: KindUnexpectedVariant,
		UnrecognizedBitsError{Type: "T", Raw: 1}:  KindUnrecognizedBits,
		FieldUnavailableError{Code: 3}:            KindFieldUnavailable,
	}
	for err, want := range cases {
		assert.Equal(t, want, KindOf(err), "%v", err)
		if err != nil {
			wrapped := Field("Rec", "f", ElementError{Index: 0, Err: err})
			assert.Equal(t, want, KindOf(wrapped), "wrapped %v", err)
		}
	}
	assert.Nil(t, Field("Rec", "f", nil))
}

func TestCheckReturnCode(t *testing.T) {
	require.NoError(t, Check(ReturnSuccess))
	err := Check(ReturnNotSupported)
	assert.ErrorIs(t, err, ErrFieldUnavailable)
	assert.Equal(t, "not_supported", ReturnNotSupported.String())
	assert.Equal(t, "return_1234", ReturnCode(1234).String())
}

type optionHolder struct {
	A Option[uint32] `json:"a" yaml:"a"`
	B Option[uint32] `json:"b" yaml:"b"`
}

func TestOptionEncoding(t *testing.T) {
	in := optionHolder{A: Some(uint32(5))}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":5,"b":null}`, string(data))

	var out optionHolder
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)

	y, err := yaml.Marshal(in)
	require.NoError(t, err)
	assert.YAMLEq(t, "a: 5\nb: null\n", string(y))

	assert.Equal(t, "none", None[int]().String())
	assert.Equal(t, "5", Some(5).String())
	assert.Equal(t, 7, None[int]().Or(7))
}
