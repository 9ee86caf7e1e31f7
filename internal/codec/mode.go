package codec

import (
	"slices"

	"github.com/rs/zerolog/log"
)

// Shape reads one payload layout from storage shared by every mode.
type Shape[T any] func(storage []byte) (T, error)

// Selector decodes storage whose layout is chosen by a sibling mode field
// rather than a tag embedded in the storage.
//
// Undocumented modes decode with the shape of the lowest-numbered known mode
// instead of failing. Each fallback is logged at debug.
type Selector[M Discriminant, T any] struct {
	name     string
	shapes   map[M]Shape[T]
	fallback M
}

// NewSelector declares the known modes. At least one shape is required.
func NewSelector[M Discriminant, T any](name string, shapes map[M]Shape[T]) *Selector[M, T] {
	if len(shapes) == 0 {
		panic("codec: selector " + name + " needs at least one shape")
	}
	owned := make(map[M]Shape[T], len(shapes))
	modes := make([]M, 0, len(shapes))
	for m, s := range shapes {
		owned[m] = s
		modes = append(modes, m)
	}
	return &Selector[M, T]{name: name, shapes: owned, fallback: slices.Min(modes)}
}

// Known reports whether mode is documented.
func (s *Selector[M, T]) Known(mode M) bool {
	_, ok := s.shapes[mode]
	return ok
}

// Fallback returns the mode whose shape undocumented modes decode with.
func (s *Selector[M, T]) Fallback() M { return s.fallback }

// Select branches on mode before reading storage.
func (s *Selector[M, T]) Select(mode M, storage []byte) (T, error) {
	shape, ok := s.shapes[mode]
	if !ok {
		log.Debug().
			Str("selector", s.name).
			Uint32("mode", uint32(mode)).
			Uint32("fallback", uint32(s.fallback)).
			Msg("codec.Selector undocumented mode, using fallback shape")
		shape = s.shapes[s.fallback]
	}
	return shape(storage)
}
