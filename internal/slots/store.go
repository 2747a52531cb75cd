package slots

// Value is what a slot holds. The engine never inspects values; it
// only moves them in and out of positions.
type Value interface{}

type emptySentinel struct{}

func (emptySentinel) String() string { return "empty" }

// Empty is the value every slot holds between allocation and first
// assignment. Hosts map it to their own undefined/nil notion.
var Empty Value = emptySentinel{}

// Store is the slot storage of one instance: a fixed array sized to
// the instance's most-derived layout, created at construction and
// never resized.
type Store struct {
	layout *Layout
	values []Value
}

// Allocate creates a store for one new instance with every slot set
// to Empty.
func Allocate(layout *Layout) *Store {
	values := make([]Value, layout.Len())
	for i := range values {
		values[i] = Empty
	}
	return &Store{layout: layout, values: values}
}

func (s *Store) Len() int { return len(s.values) }

// GetPrivate reads the slot identified by key. The store may be nil
// (the object was never given slot storage by this engine); that is
// the same AccessError as a key the layout never contained.
func GetPrivate(s *Store, key *SlotKey) (Value, error) {
	if s == nil {
		return nil, &AccessError{Key: key}
	}
	i, ok := s.layout.PositionOf(key)
	if !ok {
		return nil, &AccessError{Key: key}
	}
	return s.values[i], nil
}

// SetPrivate overwrites the slot identified by key.
func SetPrivate(s *Store, key *SlotKey, v Value) error {
	if s == nil {
		return &AccessError{Key: key}
	}
	i, ok := s.layout.PositionOf(key)
	if !ok {
		return &AccessError{Key: key}
	}
	s.values[i] = v
	return nil
}
