package slots

import "fmt"

// DuplicateError indicates a class body declaring the same slot name
// twice. It is a definition-time error: the class never becomes
// runnable.
type DuplicateError struct {
	Name string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate slot declaration #%s", e.Name)
}

// AccessError indicates a get or set against a store whose layout
// never contained the key — the instance belongs to an unrelated type,
// or was not produced by this engine at all.
type AccessError struct {
	Key      *SlotKey
	TypeName string
}

func (e *AccessError) Error() string {
	if e.TypeName == "" {
		return fmt.Sprintf("object has no slot %s", e.Key)
	}
	return fmt.Sprintf("instance of %s has no slot %s", e.TypeName, e.Key)
}

// CheckDeclarations rejects duplicate names within one class body.
// A name may not be declared twice, nor once private and once
// protected.
func CheckDeclarations(decls []Declaration) error {
	seen := make(map[string]bool, len(decls))
	for _, d := range decls {
		if seen[d.Name] {
			return &DuplicateError{Name: d.Name}
		}
		seen[d.Name] = true
	}
	return nil
}
