package codec

import "fmt"

// MapCounted decodes the first count elements of a fixed-capacity array.
// capacity is len(elems). Decoding is all-or-nothing: the first failing
// element aborts with an ElementError and no partial result is returned.
func MapCounted[R, T any](elems []R, count int, decode func(R) (T, error)) ([]T, error) {
	if count < 0 || count > len(elems) {
		return nil, InvalidValueError{
			Reason: fmt.Sprintf("count %d outside capacity %d", count, len(elems)),
		}
	}
	out := make([]T, 0, count)
	for i, raw := range elems[:count] {
		v, err := decode(raw)
		if err != nil {
			return nil, ElementError{Index: i, Err: err}
		}
		out = append(out, v)
	}
	return out, nil
}

// Infallible adapts a conversion that cannot fail for use with MapCounted.
func Infallible[R, T any](conv func(R) T) func(R) (T, error) {
	return func(r R) (T, error) { return conv(r), nil }
}
