package evaluator

import (
	"fmt"

	"github.com/funvibe/funseal/internal/ast"
	"github.com/funvibe/funseal/internal/slots"
)

type ObjectType string

const (
	INTEGER_OBJ      = "INTEGER"
	STRING_OBJ       = "STRING"
	BOOLEAN_OBJ      = "BOOLEAN"
	NIL_OBJ          = "NIL"
	EMPTY_OBJ        = "EMPTY"
	ERROR_OBJ        = "ERROR"
	RETURN_VALUE_OBJ = "RETURN_VALUE"
	CLASS_OBJ        = "CLASS"
	INSTANCE_OBJ     = "INSTANCE"
	BUILTIN_OBJ      = "BUILTIN"
)

type Object interface {
	Type() ObjectType
	Inspect() string
}

type Integer struct {
	Value int64
}

func (i *Integer) Type() ObjectType { return INTEGER_OBJ }
func (i *Integer) Inspect() string  { return fmt.Sprintf("%d", i.Value) }

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return s.Value }

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return fmt.Sprintf("%t", b.Value) }

type Nil struct{}

func (n *Nil) Type() ObjectType { return NIL_OBJ }
func (n *Nil) Inspect() string  { return "nil" }

// EmptyValue is what reading a never-assigned slot yields: the
// language-level face of the engine's empty sentinel.
type EmptyValue struct{}

func (e *EmptyValue) Type() ObjectType { return EMPTY_OBJ }
func (e *EmptyValue) Inspect() string  { return "empty" }

type Error struct {
	Message string
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect() string  { return "ERROR: " + e.Message }

// ReturnValue wraps a value travelling up out of a block.
type ReturnValue struct {
	Value Object
}

func (rv *ReturnValue) Type() ObjectType { return RETURN_VALUE_OBJ }
func (rv *ReturnValue) Inspect() string  { return rv.Value.Inspect() }

// Class is the runtime face of a defined class: the engine type
// composed at analysis time, the methods of this body, the runtime
// parent, and the environment the class body closed over.
type Class struct {
	Name    string
	SlotTyp *slots.Type
	Parent  *Class
	Slots   []*ast.SlotDeclaration
	Methods map[string]*ast.MethodDeclaration
	Env     *Environment
}

func (c *Class) Type() ObjectType { return CLASS_OBJ }
func (c *Class) Inspect() string  { return "class " + c.Name }

// FindMethod walks the inheritance chain. The defining class comes
// back too: an inherited method body runs with the bindings and
// closure of the class that declared it.
func (c *Class) FindMethod(name string) (*ast.MethodDeclaration, *Class, bool) {
	for cls := c; cls != nil; cls = cls.Parent {
		if m, ok := cls.Methods[name]; ok {
			return m, cls, true
		}
	}
	return nil, nil, false
}

// Instance owns one slot store, allocated at construction from its
// most-derived class's layout and never resized.
type Instance struct {
	Class *Class
	Store *slots.Store
}

func (i *Instance) Type() ObjectType { return INSTANCE_OBJ }
func (i *Instance) Inspect() string  { return "instance of " + i.Class.Name }

type BuiltinFunction func(args ...Object) Object

type Builtin struct {
	Name string
	Fn   BuiltinFunction
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return "builtin function " + b.Name }
