package slots

// Layout is the ordered slot table of one type: every slot an
// instance of that type carries, inherited slots first. Layouts are
// immutable once composed; a subclass layout embeds its parent's keys
// as a verbatim prefix, so positions compiled against a supertype stay
// valid on subtype instances.
type Layout struct {
	keys []*SlotKey
	pos  map[*SlotKey]int
}

// ComposeLayout mints a key for each own declaration, in declaration
// order, and appends them after the parent layout (nil for a root
// class). The minted keys are returned in declaration order so the
// caller can build the name environment from the same identities.
func ComposeLayout(reg *Registry, owner string, decls []Declaration, parent *Layout) (*Layout, []*SlotKey) {
	parentLen := 0
	if parent != nil {
		parentLen = len(parent.keys)
	}

	keys := make([]*SlotKey, 0, parentLen+len(decls))
	if parent != nil {
		keys = append(keys, parent.keys...)
	}

	own := make([]*SlotKey, 0, len(decls))
	for _, d := range decls {
		k := reg.Mint(owner, d.Name, d.Kind)
		own = append(own, k)
		keys = append(keys, k)
	}

	pos := make(map[*SlotKey]int, len(keys))
	for i, k := range keys {
		pos[k] = i
	}

	return &Layout{keys: keys, pos: pos}, own
}

func (l *Layout) Len() int { return len(l.keys) }

// PositionOf returns the index of key in this layout. A layout only
// answers for keys it was composed with.
func (l *Layout) PositionOf(key *SlotKey) (int, bool) {
	i, ok := l.pos[key]
	return i, ok
}

// Keys returns a copy of the ordered slot table.
func (l *Layout) Keys() []*SlotKey {
	out := make([]*SlotKey, len(l.keys))
	copy(out, l.keys)
	return out
}
