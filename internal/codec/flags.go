package codec

// Flags validates raw bit patterns against a closed set of known bits.
type Flags[T Unsigned] struct {
	name  string
	known T
}

// NewFlags declares the known bits of a flag set.
func NewFlags[T Unsigned](name string, known ...T) Flags[T] {
	return Flags[T]{name: name, known: Join(known...)}
}

// Known returns the union of every known bit.
func (f Flags[T]) Known() T { return f.known }

// Validate accepts raw only when every set bit is known.
func (f Flags[T]) Validate(raw T) (T, error) {
	if extra := raw &^ f.known; extra != 0 {
		return 0, UnrecognizedBitsError{Type: f.name, Raw: uint64(raw)}
	}
	return raw, nil
}

// Join ORs flags together. It cannot fail.
func Join[T Unsigned](flags ...T) T {
	var out T
	for _, f := range flags {
		out |= f
	}
	return out
}
