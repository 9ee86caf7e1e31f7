package codec

// Enum validates raw enumerated scalars against the values the source
// documents. It is the payload-free case of Union.
type Enum[K Discriminant] struct {
	name  string
	known map[K]struct{}
}

// NewEnum declares the known values of an enumeration.
func NewEnum[K Discriminant](name string, known ...K) Enum[K] {
	set := make(map[K]struct{}, len(known))
	for _, k := range known {
		set[k] = struct{}{}
	}
	return Enum[K]{name: name, known: set}
}

// Validate returns raw when it is a known value.
func (e Enum[K]) Validate(raw K) (K, error) {
	if _, ok := e.known[raw]; !ok {
		return 0, UnexpectedVariantError{Type: e.name, Tag: uint32(raw)}
	}
	return raw, nil
}
