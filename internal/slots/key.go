// Package slots implements the runtime model for per-instance private
// and protected state: slot identities, inherited instance layouts,
// protected-name environments, and the per-instance stores those
// identities index into.
//
// Identity is the load-bearing idea. A slot is addressed by its
// *SlotKey, never by its declared name, so two classes that both
// declare #x hold unrelated slots and a binding compiled against one
// can never read the other.
package slots

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Kind distinguishes private from protected declarations. Both occupy
// a slot in the instance layout; only protected ones are exported to
// subclass environments.
type Kind int

const (
	Private Kind = iota
	Protected
)

func (k Kind) String() string {
	if k == Protected {
		return "protected"
	}
	return "private"
}

// Declaration is one `private #name` or `protected #name` line of a
// class body, in declaration order.
type Declaration struct {
	Name string
	Kind Kind
}

// SlotKey is the opaque identity of one slot declaration. Keys are
// compared by pointer; the id and nonce exist so a key remains unique
// and unforgeable even across registries and re-evaluated class
// bodies. A SlotKey never leaves the engine: it is not serializable
// and nothing enumerates keys by name.
type SlotKey struct {
	id    uint64
	nonce uuid.UUID
	name  string
	kind  Kind
	owner string
}

// Name returns the declared name, without the leading '#'.
func (k *SlotKey) Name() string { return k.name }

func (k *SlotKey) Kind() Kind { return k.kind }

// Owner returns the name of the declaring type. Informational only;
// it plays no part in key equality.
func (k *SlotKey) Owner() string { return k.owner }

func (k *SlotKey) String() string {
	return fmt.Sprintf("#%s (declared by %s)", k.name, k.owner)
}

// Registry mints SlotKeys. Minting is a pure allocation: every call
// returns a fresh identity, even for a repeated (owner, name) pair.
type Registry struct {
	counter atomic.Uint64
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Mint creates the identity for one slot declaration. Called exactly
// once per declaration, at class-definition time.
func (r *Registry) Mint(owner, name string, kind Kind) *SlotKey {
	return &SlotKey{
		id:    r.counter.Add(1),
		nonce: uuid.New(),
		name:  name,
		kind:  kind,
		owner: owner,
	}
}
