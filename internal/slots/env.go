package slots

import "sort"

// ProtectedEnv is the name environment a class exposes to its
// subclasses: the protected names a subclass body may reference
// without redeclaring them. Environments are immutable snapshots;
// composing a child environment never touches the parent's.
type ProtectedEnv struct {
	entries map[string]*SlotKey
}

// EmptyEnv is what a root class composes against.
func EmptyEnv() *ProtectedEnv {
	return &ProtectedEnv{entries: map[string]*SlotKey{}}
}

// ComposeEnvironment builds the environment a class exposes downward.
// Any locally redeclared name shadows the inherited entry, whether the
// local declaration is private or protected; only local protected
// declarations are then added. A local private redeclaration of an
// inherited protected name therefore removes that name from the
// hierarchy below.
func ComposeEnvironment(decls []Declaration, ownKeys []*SlotKey, parent *ProtectedEnv) *ProtectedEnv {
	entries := make(map[string]*SlotKey)
	if parent != nil {
		for name, key := range parent.entries {
			entries[name] = key
		}
	}

	for _, d := range decls {
		delete(entries, d.Name)
	}
	for i, d := range decls {
		if d.Kind == Protected {
			entries[d.Name] = ownKeys[i]
		}
	}

	return &ProtectedEnv{entries: entries}
}

// Lookup resolves an inherited protected name.
func (e *ProtectedEnv) Lookup(name string) (*SlotKey, bool) {
	k, ok := e.entries[name]
	return k, ok
}

func (e *ProtectedEnv) Len() int { return len(e.entries) }

// Names returns the visible names in sorted order.
func (e *ProtectedEnv) Names() []string {
	out := make([]string, 0, len(e.entries))
	for name := range e.entries {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
