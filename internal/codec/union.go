package codec

import "github.com/rs/zerolog/log"

// Discriminant is the set of raw tag widths used to select union arms.
type Discriminant interface {
	~uint8 | ~uint16 | ~uint32
}

// Tagged pairs a discriminant with the union storage it governs. The storage
// is copied on construction and is only reachable through Union.Decode, after
// the discriminant has been matched to an arm.
type Tagged[K Discriminant] struct {
	tag     K
	storage []byte
}

// Tag builds a Tagged value from a discriminant and raw union storage.
func Tag[K Discriminant](tag K, storage []byte) Tagged[K] {
	owned := make([]byte, len(storage))
	copy(owned, storage)
	return Tagged[K]{tag: tag, storage: owned}
}

// Discriminant returns the tag without exposing the storage.
func (t Tagged[K]) Discriminant() K { return t.tag }

// Arm reads one union variant from storage. It is only called with storage
// whose discriminant selected it.
type Arm[T any] func(storage []byte) (T, error)

// Union decodes tagged storage into a closed set of domain variants.
type Union[K Discriminant, T any] struct {
	name string
	arms map[K]Arm[T]
}

// NewUnion declares a union's arms. The arm table is copied.
func NewUnion[K Discriminant, T any](name string, arms map[K]Arm[T]) *Union[K, T] {
	owned := make(map[K]Arm[T], len(arms))
	for k, a := range arms {
		owned[k] = a
	}
	return &Union[K, T]{name: name, arms: owned}
}

// Decode validates the discriminant and only then reads the selected arm.
func (u *Union[K, T]) Decode(t Tagged[K]) (T, error) {
	arm, ok := u.arms[t.tag]
	if !ok {
		var zero T
		log.Debug().Str("union", u.name).Uint32("tag", uint32(t.tag)).Msg("codec.Union rejected discriminant")
		return zero, UnexpectedVariantError{Type: u.name, Tag: uint32(t.tag)}
	}
	return arm(t.storage)
}

// Accepts reports whether tag selects a known arm.
func (u *Union[K, T]) Accepts(tag K) bool {
	_, ok := u.arms[tag]
	return ok
}
