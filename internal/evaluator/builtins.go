package evaluator

import (
	"fmt"
	"strings"

	"github.com/funvibe/funseal/internal/config"
)

// RegisterBuiltins installs the builtin functions into env. print is
// bound to the evaluator so its output follows e.Out (tests and the
// REPL redirect it).
func RegisterBuiltins(e *Evaluator, env *Environment) {
	env.Set(config.PrintFuncName, &Builtin{Name: config.PrintFuncName, Fn: func(args ...Object) Object {
		parts := make([]string, len(args))
		for i, arg := range args {
			parts[i] = arg.Inspect()
		}
		fmt.Fprintln(e.Out, strings.Join(parts, " "))
		return NIL
	}})

	env.Set(config.LenFuncName, &Builtin{Name: config.LenFuncName, Fn: func(args ...Object) Object {
		if len(args) != 1 {
			return newError("len takes 1 argument, got %d", len(args))
		}
		str, ok := args[0].(*String)
		if !ok {
			return newError("len: unsupported argument %s", args[0].Type())
		}
		return &Integer{Value: int64(len(str.Value))}
	}})

	env.Set(config.TypeOfFuncName, &Builtin{Name: config.TypeOfFuncName, Fn: func(args ...Object) Object {
		if len(args) != 1 {
			return newError("typeOf takes 1 argument, got %d", len(args))
		}
		if instance, ok := args[0].(*Instance); ok {
			return &String{Value: instance.Class.Name}
		}
		return &String{Value: string(args[0].Type())}
	}})
}
