package slots

// Type is the engine's view of one defined class: its composed layout,
// the environment it exposes to subclasses, and its own declarations'
// keys. A Type is built once, at class-definition time, from an
// immutable snapshot of its parent, and is never reopened.
type Type struct {
	Name   string
	Parent *Type

	layout *Layout
	env    *ProtectedEnv
	own    map[string]*SlotKey
}

// DefineType composes layout and environment for one class. decls must
// already have passed CheckDeclarations; DefineType re-checks and
// refuses duplicates so a malformed class can never mint keys.
func DefineType(reg *Registry, name string, parent *Type, decls []Declaration) (*Type, error) {
	if err := CheckDeclarations(decls); err != nil {
		return nil, err
	}

	var parentLayout *Layout
	parentEnv := EmptyEnv()
	if parent != nil {
		parentLayout = parent.layout
		parentEnv = parent.env
	}

	layout, ownKeys := ComposeLayout(reg, name, decls, parentLayout)
	env := ComposeEnvironment(decls, ownKeys, parentEnv)

	own := make(map[string]*SlotKey, len(decls))
	for i, d := range decls {
		own[d.Name] = ownKeys[i]
	}

	return &Type{
		Name:   name,
		Parent: parent,
		layout: layout,
		env:    env,
		own:    own,
	}, nil
}

func (t *Type) Layout() *Layout { return t.layout }

// Protected returns the environment this type exposes to subclasses.
func (t *Type) Protected() *ProtectedEnv { return t.env }

// Own returns the key for a name declared in this type's own body.
func (t *Type) Own(name string) (*SlotKey, bool) {
	k, ok := t.own[name]
	return k, ok
}

// Resolve binds a private-name reference appearing in this type's
// body: own declarations win, then the parent's protected environment.
// The result is fixed at definition-analysis time; there is no
// per-call or per-receiver lookup.
func (t *Type) Resolve(name string) (*SlotKey, bool) {
	if k, ok := t.own[name]; ok {
		return k, true
	}
	if t.Parent != nil {
		return t.Parent.env.Lookup(name)
	}
	return nil, false
}
