package slots

import (
	"errors"
	"testing"
)

func mustDefine(t *testing.T, reg *Registry, name string, parent *Type, decls []Declaration) *Type {
	t.Helper()
	typ, err := DefineType(reg, name, parent, decls)
	if err != nil {
		t.Fatalf("DefineType(%s) failed: %s", name, err)
	}
	return typ
}

func TestMintAlwaysFresh(t *testing.T) {
	reg := NewRegistry()

	a := reg.Mint("Base", "x", Private)
	b := reg.Mint("Base", "x", Private)

	if a == b {
		t.Fatalf("two mints of the same (owner, name) returned the same key")
	}
	if a.Name() != "x" || a.Kind() != Private || a.Owner() != "Base" {
		t.Errorf("key lost its declaration data: %s", a)
	}
}

func TestLayoutPrefixStability(t *testing.T) {
	reg := NewRegistry()

	base := mustDefine(t, reg, "Base", nil, []Declaration{
		{Name: "a", Kind: Protected},
		{Name: "b", Kind: Private},
	})
	child := mustDefine(t, reg, "Child", base, []Declaration{
		{Name: "c", Kind: Private},
	})

	baseKeys := base.Layout().Keys()
	childKeys := child.Layout().Keys()

	if len(baseKeys) != 2 || len(childKeys) != 3 {
		t.Fatalf("layout lengths = %d, %d; want 2, 3", len(baseKeys), len(childKeys))
	}
	for i, k := range baseKeys {
		if childKeys[i] != k {
			t.Errorf("child layout position %d = %s, want parent's %s", i, childKeys[i], k)
		}
	}

	// Inherited keys keep their parent positions.
	for _, k := range baseKeys {
		pPos, _ := base.Layout().PositionOf(k)
		cPos, ok := child.Layout().PositionOf(k)
		if !ok || cPos != pPos {
			t.Errorf("key %s moved: parent position %d, child position %d", k, pPos, cPos)
		}
	}
}

func TestDeclarationOrderPreserved(t *testing.T) {
	reg := NewRegistry()

	decls := []Declaration{
		{Name: "first", Kind: Private},
		{Name: "second", Kind: Protected},
		{Name: "third", Kind: Private},
	}
	typ := mustDefine(t, reg, "T", nil, decls)

	for i, k := range typ.Layout().Keys() {
		if k.Name() != decls[i].Name {
			t.Errorf("position %d holds #%s, want #%s", i, k.Name(), decls[i].Name)
		}
	}
}

func TestNonPolymorphism(t *testing.T) {
	reg := NewRegistry()

	// Two unrelated classes, same textual slot name.
	left := mustDefine(t, reg, "Left", nil, []Declaration{{Name: "x", Kind: Private}})
	right := mustDefine(t, reg, "Right", nil, []Declaration{{Name: "x", Kind: Private}})

	lKey, _ := left.Own("x")
	rKey, _ := right.Own("x")
	if lKey == rKey {
		t.Fatalf("unrelated classes share a key for #x")
	}

	rStore := Allocate(right.Layout())
	if _, err := GetPrivate(rStore, lKey); err == nil {
		t.Errorf("Left's binding read Right's instance; want AccessError")
	} else {
		var accessErr *AccessError
		if !errors.As(err, &accessErr) {
			t.Errorf("error = %T, want *AccessError", err)
		}
	}
	if err := SetPrivate(rStore, lKey, 1); err == nil {
		t.Errorf("Left's binding wrote Right's instance; want AccessError")
	}
}

func TestShadowWinsAndPropagates(t *testing.T) {
	reg := NewRegistry()

	base := mustDefine(t, reg, "Base", nil, []Declaration{{Name: "x", Kind: Protected}})
	child := mustDefine(t, reg, "Child", base, []Declaration{{Name: "x", Kind: Private}})
	grand := mustDefine(t, reg, "Grand", child, nil)

	if _, ok := child.Protected().Lookup("x"); ok {
		t.Errorf("child redeclared #x privately but still exposes it")
	}
	if _, ok := grand.Protected().Lookup("x"); ok {
		t.Errorf("shadow did not propagate: grandchild exposes #x")
	}
	if _, ok := grand.Resolve("x"); ok {
		t.Errorf("grandchild resolves #x; the name should be unresolved below the shadow")
	}

	// Child's own reference binds to its own key, not the inherited one.
	baseKey, _ := base.Own("x")
	childKey, _ := child.Own("x")
	if got, _ := child.Resolve("x"); got != childKey || got == baseKey {
		t.Errorf("child.Resolve(x) = %s, want child's own key", got)
	}
}

func TestProtectedShadowReplacesEntry(t *testing.T) {
	reg := NewRegistry()

	base := mustDefine(t, reg, "Base", nil, []Declaration{{Name: "x", Kind: Protected}})
	child := mustDefine(t, reg, "Child", base, []Declaration{{Name: "x", Kind: Protected}})

	baseKey, _ := base.Own("x")
	childKey, _ := child.Own("x")

	got, ok := child.Protected().Lookup("x")
	if !ok {
		t.Fatalf("protected redeclaration dropped #x from the environment")
	}
	if got != childKey || got == baseKey {
		t.Errorf("child environment maps #x to %s, want the child's key", got)
	}
}

func TestReuseIndependence(t *testing.T) {
	reg := NewRegistry()

	base := mustDefine(t, reg, "Base", nil, []Declaration{{Name: "v", Kind: Private}})
	child := mustDefine(t, reg, "Child", base, []Declaration{{Name: "v", Kind: Private}})

	baseKey, _ := base.Own("v")
	childKey, _ := child.Own("v")

	store := Allocate(child.Layout())
	if store.Len() != 2 {
		t.Fatalf("instance carries %d slots, want 2 live slots for the reused name", store.Len())
	}

	if err := SetPrivate(store, childKey, 5); err != nil {
		t.Fatalf("SetPrivate(child #v): %s", err)
	}
	if got, _ := GetPrivate(store, baseKey); got != Empty {
		t.Errorf("writing child #v changed base #v: got %v, want Empty", got)
	}
	if err := SetPrivate(store, baseKey, 7); err != nil {
		t.Fatalf("SetPrivate(base #v): %s", err)
	}
	if got, _ := GetPrivate(store, childKey); got != 5 {
		t.Errorf("writing base #v changed child #v: got %v, want 5", got)
	}
}

func TestAllocateDefaultsToEmpty(t *testing.T) {
	reg := NewRegistry()

	typ := mustDefine(t, reg, "T", nil, []Declaration{
		{Name: "a", Kind: Private},
		{Name: "b", Kind: Protected},
	})

	store := Allocate(typ.Layout())
	for _, k := range typ.Layout().Keys() {
		v, err := GetPrivate(store, k)
		if err != nil {
			t.Fatalf("GetPrivate(%s): %s", k, err)
		}
		if v != Empty {
			t.Errorf("fresh slot %s = %v, want Empty", k, v)
		}
	}
}

func TestNilStoreAccess(t *testing.T) {
	reg := NewRegistry()
	key := reg.Mint("T", "x", Private)

	if _, err := GetPrivate(nil, key); err == nil {
		t.Errorf("GetPrivate(nil store) succeeded; want AccessError")
	}
	if err := SetPrivate(nil, key, 1); err == nil {
		t.Errorf("SetPrivate(nil store) succeeded; want AccessError")
	}
}

func TestCheckDeclarations(t *testing.T) {
	tests := []struct {
		name    string
		decls   []Declaration
		wantDup string
	}{
		{
			name:  "distinct names",
			decls: []Declaration{{Name: "a", Kind: Private}, {Name: "b", Kind: Protected}},
		},
		{
			name:    "same name twice private",
			decls:   []Declaration{{Name: "a", Kind: Private}, {Name: "a", Kind: Private}},
			wantDup: "a",
		},
		{
			name:    "private then protected",
			decls:   []Declaration{{Name: "a", Kind: Private}, {Name: "a", Kind: Protected}},
			wantDup: "a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckDeclarations(tt.decls)
			if tt.wantDup == "" {
				if err != nil {
					t.Fatalf("CheckDeclarations: %s", err)
				}
				return
			}
			var dup *DuplicateError
			if !errors.As(err, &dup) {
				t.Fatalf("error = %v, want *DuplicateError", err)
			}
			if dup.Name != tt.wantDup {
				t.Errorf("duplicate name = %s, want %s", dup.Name, tt.wantDup)
			}
		})
	}
}

func TestDefineTypeRejectsDuplicates(t *testing.T) {
	reg := NewRegistry()
	_, err := DefineType(reg, "T", nil, []Declaration{
		{Name: "a", Kind: Private},
		{Name: "a", Kind: Protected},
	})
	if err == nil {
		t.Fatalf("DefineType accepted a duplicate declaration")
	}
}

func TestRedefinitionMintsFreshKeys(t *testing.T) {
	reg := NewRegistry()
	decls := []Declaration{{Name: "x", Kind: Private}}

	first := mustDefine(t, reg, "T", nil, decls)
	second := mustDefine(t, reg, "T", nil, decls)

	fKey, _ := first.Own("x")
	sKey, _ := second.Own("x")
	if fKey == sKey {
		t.Fatalf("re-evaluated class body reused a key")
	}

	// An instance of the old definition is invisible to the new one.
	oldStore := Allocate(first.Layout())
	if _, err := GetPrivate(oldStore, sKey); err == nil {
		t.Errorf("new definition's binding read an old instance; want AccessError")
	}
}
