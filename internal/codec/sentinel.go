package codec

// Unsigned is the set of raw integer widths used by fixed-layout records.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Sentinel maps one field's reserved "not available" value to absence.
// Each field declares its own; there is no shared constant across widths.
type Sentinel[T comparable] struct {
	none T
}

// NewSentinel binds the reserved value for a single field.
func NewSentinel[T comparable](none T) Sentinel[T] {
	return Sentinel[T]{none: none}
}

// Decode yields absent when raw equals the sentinel and present(raw) otherwise.
func (s Sentinel[T]) Decode(raw T) Option[T] {
	if raw == s.none {
		return None[T]()
	}
	return Some(raw)
}

// Encode substitutes the sentinel for an absent value.
func (s Sentinel[T]) Encode(v Option[T]) T {
	if raw, ok := v.Get(); ok {
		return raw
	}
	return s.none
}

// Reserved returns the sentinel value.
func (s Sentinel[T]) Reserved() T { return s.none }
