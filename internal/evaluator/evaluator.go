package evaluator

import (
	"fmt"
	"io"
	"os"

	"github.com/funvibe/funseal/internal/ast"
	"github.com/funvibe/funseal/internal/config"
	"github.com/funvibe/funseal/internal/slots"
)

var (
	NIL   = &Nil{}
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
	EMPTY = &EmptyValue{}
)

// Evaluator executes a bound program. It never resolves a private
// name itself: every PrivateRef node was bound to a slot key by the
// analyzer, and the evaluator only moves values through those keys.
type Evaluator struct {
	Out io.Writer

	typeMap     map[*ast.ClassDeclaration]*slots.Type
	slotKeys    map[*ast.SlotDeclaration]*slots.SlotKey
	resolutions map[*ast.PrivateRef]*slots.SlotKey
}

func New() *Evaluator {
	return &Evaluator{
		Out:         os.Stdout,
		typeMap:     make(map[*ast.ClassDeclaration]*slots.Type),
		slotKeys:    make(map[*ast.SlotDeclaration]*slots.SlotKey),
		resolutions: make(map[*ast.PrivateRef]*slots.SlotKey),
	}
}

// AddBindings merges one analyzed unit's maps into the evaluator.
// A REPL session calls this once per line; a script run, once.
func (e *Evaluator) AddBindings(
	typeMap map[*ast.ClassDeclaration]*slots.Type,
	slotKeys map[*ast.SlotDeclaration]*slots.SlotKey,
	resolutions map[*ast.PrivateRef]*slots.SlotKey,
) {
	for decl, typ := range typeMap {
		e.typeMap[decl] = typ
	}
	for decl, key := range slotKeys {
		e.slotKeys[decl] = key
	}
	for ref, key := range resolutions {
		e.resolutions[ref] = key
	}
}

func newError(format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

func isError(obj Object) bool {
	return obj != nil && obj.Type() == ERROR_OBJ
}

func (e *Evaluator) Eval(node ast.Node, env *Environment) Object {
	switch node := node.(type) {
	case *ast.Program:
		return e.evalProgram(node, env)
	case *ast.ExpressionStatement:
		return e.Eval(node.Expression, env)
	case *ast.LetStatement:
		val := e.Eval(node.Value, env)
		if isError(val) {
			return val
		}
		env.Set(node.Name.Value, val)
		return NIL
	case *ast.ReturnStatement:
		if node.Value == nil {
			return &ReturnValue{Value: NIL}
		}
		val := e.Eval(node.Value, env)
		if isError(val) {
			return val
		}
		return &ReturnValue{Value: val}
	case *ast.BlockStatement:
		return e.evalBlock(node, env)
	case *ast.ClassDeclaration:
		return e.evalClassDeclaration(node, env)

	case *ast.IntegerLiteral:
		return &Integer{Value: node.Value}
	case *ast.StringLiteral:
		return &String{Value: node.Value}
	case *ast.BooleanLiteral:
		return boolToObject(node.Value)
	case *ast.NilLiteral:
		return NIL
	case *ast.Identifier:
		if val, ok := env.Get(node.Value); ok {
			return val
		}
		return newError("identifier not found: %s", node.Value)
	case *ast.ThisExpression:
		if val, ok := env.Get("this"); ok {
			return val
		}
		return newError("'this' outside a method body")
	case *ast.PrefixExpression:
		right := e.Eval(node.Right, env)
		if isError(right) {
			return right
		}
		return evalPrefixExpression(node.Operator, right)
	case *ast.InfixExpression:
		left := e.Eval(node.Left, env)
		if isError(left) {
			return left
		}
		right := e.Eval(node.Right, env)
		if isError(right) {
			return right
		}
		return evalInfixExpression(node.Operator, left, right)
	case *ast.IfExpression:
		return e.evalIfExpression(node, env)
	case *ast.AssignExpression:
		return e.evalAssignExpression(node, env)
	case *ast.PrivateRef:
		return e.evalPrivateRef(node, env)
	case *ast.CallExpression:
		return e.evalCallExpression(node, env)
	case *ast.MethodCallExpression:
		return e.evalMethodCall(node, env)
	case *ast.NewExpression:
		return e.evalNewExpression(node, env)
	}

	return newError("unknown node type %T", node)
}

func (e *Evaluator) evalProgram(program *ast.Program, env *Environment) Object {
	var result Object = NIL
	for _, stmt := range program.Statements {
		result = e.Eval(stmt, env)
		switch result := result.(type) {
		case *ReturnValue:
			return result.Value
		case *Error:
			return result
		}
	}
	return result
}

func (e *Evaluator) evalBlock(block *ast.BlockStatement, env *Environment) Object {
	var result Object = NIL
	for _, stmt := range block.Statements {
		result = e.Eval(stmt, env)
		if result != nil {
			if rt := result.Type(); rt == RETURN_VALUE_OBJ || rt == ERROR_OBJ {
				return result
			}
		}
	}
	return result
}

// evalClassDeclaration builds the runtime class from the engine type
// the analyzer composed for this very declaration node.
func (e *Evaluator) evalClassDeclaration(node *ast.ClassDeclaration, env *Environment) Object {
	typ, ok := e.typeMap[node]
	if !ok {
		return newError("class %s was not analyzed", node.Name.Value)
	}

	var parent *Class
	if node.Parent != nil {
		obj, ok := env.Get(node.Parent.Value)
		if !ok {
			return newError("identifier not found: %s", node.Parent.Value)
		}
		parentClass, ok := obj.(*Class)
		if !ok {
			return newError("%s is not a class", node.Parent.Value)
		}
		parent = parentClass
	}

	methods := make(map[string]*ast.MethodDeclaration, len(node.Methods))
	for _, m := range node.Methods {
		methods[m.Name.Value] = m
	}

	cls := &Class{
		Name:    node.Name.Value,
		SlotTyp: typ,
		Parent:  parent,
		Slots:   node.Slots,
		Methods: methods,
		Env:     env,
	}
	env.Set(cls.Name, cls)
	return NIL
}

// evalNewExpression allocates the instance store before the
// constructor runs, so init bodies already see every slot as empty.
func (e *Evaluator) evalNewExpression(node *ast.NewExpression, env *Environment) Object {
	obj, ok := env.Get(node.ClassName.Value)
	if !ok {
		return newError("identifier not found: %s", node.ClassName.Value)
	}
	cls, ok := obj.(*Class)
	if !ok {
		return newError("%s is not a class", node.ClassName.Value)
	}

	args, errObj := e.evalExpressions(node.Arguments, env)
	if errObj != nil {
		return errObj
	}

	instance := &Instance{
		Class: cls,
		Store: slots.Allocate(cls.SlotTyp.Layout()),
	}

	if errObj := e.runSlotInitializers(instance); errObj != nil {
		return errObj
	}

	if init, defining, ok := cls.FindMethod(config.InitMethodName); ok {
		if result := e.applyMethod(instance, init, defining, args); isError(result) {
			return result
		}
	} else if len(args) > 0 {
		return newError("class %s has no init method but got %d constructor arguments", cls.Name, len(args))
	}

	return instance
}

// runSlotInitializers assigns declared initializers root-first, so a
// base class's defaults are in place before any subclass initializer
// or constructor observes them. Each initializer writes through the
// declaring class's own key: a shadowed base slot keeps its default
// even when the subclass reuses the name.
func (e *Evaluator) runSlotInitializers(instance *Instance) Object {
	var chain []*Class
	for cls := instance.Class; cls != nil; cls = cls.Parent {
		chain = append(chain, cls)
	}

	for i := len(chain) - 1; i >= 0; i-- {
		cls := chain[i]
		var initEnv *Environment
		for _, slot := range cls.Slots {
			if slot.Init == nil {
				continue
			}
			key, ok := e.slotKeys[slot]
			if !ok {
				return newError("slot #%s of %s was not analyzed", slot.Name, cls.Name)
			}
			if initEnv == nil {
				initEnv = NewEnclosedEnvironment(cls.Env)
				initEnv.Set("this", instance)
			}
			value := e.Eval(slot.Init, initEnv)
			if isError(value) {
				return value
			}
			if err := slots.SetPrivate(instance.Store, key, value); err != nil {
				return accessErrorObject(err, instance.Class.Name)
			}
		}
	}
	return nil
}

func (e *Evaluator) evalMethodCall(node *ast.MethodCallExpression, env *Environment) Object {
	receiver := e.Eval(node.Receiver, env)
	if isError(receiver) {
		return receiver
	}
	instance, ok := receiver.(*Instance)
	if !ok {
		return newError("cannot call method %s on %s", node.Method.Value, receiver.Type())
	}

	method, defining, ok := instance.Class.FindMethod(node.Method.Value)
	if !ok {
		return newError("instance of %s has no method %s", instance.Class.Name, node.Method.Value)
	}

	args, errObj := e.evalExpressions(node.Arguments, env)
	if errObj != nil {
		return errObj
	}

	result := e.applyMethod(instance, method, defining, args)
	if ret, ok := result.(*ReturnValue); ok {
		return ret.Value
	}
	if isError(result) {
		return result
	}
	return NIL
}

// applyMethod runs a method body in a fresh environment enclosing the
// defining class's closure, with this and the parameters bound.
func (e *Evaluator) applyMethod(instance *Instance, method *ast.MethodDeclaration, defining *Class, args []Object) Object {
	if len(args) != len(method.Parameters) {
		return newError("method %s of %s takes %d arguments, got %d",
			method.Name.Value, defining.Name, len(method.Parameters), len(args))
	}

	methodEnv := NewEnclosedEnvironment(defining.Env)
	methodEnv.Set("this", instance)
	for i, param := range method.Parameters {
		methodEnv.Set(param.Value, args[i])
	}

	return e.Eval(method.Body, methodEnv)
}

// evalPrivateRef is the runtime half of a bound reference: evaluate
// the receiver, then GetPrivate with the key fixed at analysis time.
func (e *Evaluator) evalPrivateRef(node *ast.PrivateRef, env *Environment) Object {
	key, ok := e.resolutions[node]
	if !ok {
		return newError("unbound private reference #%s", node.Name)
	}

	receiver := e.Eval(node.Receiver, env)
	if isError(receiver) {
		return receiver
	}

	store, typeName := storeOf(receiver)
	value, err := slots.GetPrivate(store, key)
	if err != nil {
		return accessErrorObject(err, typeName)
	}
	return slotValueToObject(value)
}

func (e *Evaluator) evalAssignExpression(node *ast.AssignExpression, env *Environment) Object {
	value := e.Eval(node.Value, env)
	if isError(value) {
		return value
	}

	switch target := node.Target.(type) {
	case *ast.Identifier:
		if !env.Update(target.Value, value) {
			return newError("identifier not found: %s", target.Value)
		}
		return value
	case *ast.PrivateRef:
		key, ok := e.resolutions[target]
		if !ok {
			return newError("unbound private reference #%s", target.Name)
		}
		receiver := e.Eval(target.Receiver, env)
		if isError(receiver) {
			return receiver
		}
		store, typeName := storeOf(receiver)
		if err := slots.SetPrivate(store, key, value); err != nil {
			return accessErrorObject(err, typeName)
		}
		return value
	}
	return newError("invalid assignment target")
}

func (e *Evaluator) evalCallExpression(node *ast.CallExpression, env *Environment) Object {
	fn := e.Eval(node.Function, env)
	if isError(fn) {
		return fn
	}
	args, errObj := e.evalExpressions(node.Arguments, env)
	if errObj != nil {
		return errObj
	}

	builtin, ok := fn.(*Builtin)
	if !ok {
		return newError("%s is not callable", fn.Type())
	}
	return builtin.Fn(args...)
}

func (e *Evaluator) evalIfExpression(node *ast.IfExpression, env *Environment) Object {
	condition := e.Eval(node.Condition, env)
	if isError(condition) {
		return condition
	}
	if isTruthy(condition) {
		return e.Eval(node.Consequence, env)
	}
	if node.Alternative != nil {
		return e.Eval(node.Alternative, env)
	}
	return NIL
}

func (e *Evaluator) evalExpressions(exprs []ast.Expression, env *Environment) ([]Object, Object) {
	result := make([]Object, 0, len(exprs))
	for _, expr := range exprs {
		value := e.Eval(expr, env)
		if isError(value) {
			return nil, value
		}
		result = append(result, value)
	}
	return result, nil
}

// storeOf extracts the slot store of a receiver. Non-instances have
// no store; GetPrivate/SetPrivate turn that into the access error.
func storeOf(receiver Object) (*slots.Store, string) {
	if instance, ok := receiver.(*Instance); ok {
		return instance.Store, instance.Class.Name
	}
	return nil, ""
}

func accessErrorObject(err error, typeName string) *Error {
	if typeName != "" {
		if accessErr, ok := err.(*slots.AccessError); ok {
			accessErr.TypeName = typeName
		}
	}
	return &Error{Message: err.Error()}
}

func slotValueToObject(value slots.Value) Object {
	if value == slots.Empty {
		return EMPTY
	}
	if obj, ok := value.(Object); ok {
		return obj
	}
	return newError("slot holds a non-object value %v", value)
}

func evalPrefixExpression(operator string, right Object) Object {
	switch operator {
	case "!":
		return boolToObject(!isTruthy(right))
	case "-":
		integer, ok := right.(*Integer)
		if !ok {
			return newError("unknown operator: -%s", right.Type())
		}
		return &Integer{Value: -integer.Value}
	}
	return newError("unknown operator: %s%s", operator, right.Type())
}

func evalInfixExpression(operator string, left, right Object) Object {
	switch {
	case left.Type() == INTEGER_OBJ && right.Type() == INTEGER_OBJ:
		return evalIntegerInfix(operator, left.(*Integer), right.(*Integer))
	case left.Type() == STRING_OBJ && right.Type() == STRING_OBJ && operator == "+":
		return &String{Value: left.(*String).Value + right.(*String).Value}
	case operator == "==":
		return boolToObject(objectsEqual(left, right))
	case operator == "!=":
		return boolToObject(!objectsEqual(left, right))
	}
	return newError("unknown operator: %s %s %s", left.Type(), operator, right.Type())
}

func evalIntegerInfix(operator string, left, right *Integer) Object {
	switch operator {
	case "+":
		return &Integer{Value: left.Value + right.Value}
	case "-":
		return &Integer{Value: left.Value - right.Value}
	case "*":
		return &Integer{Value: left.Value * right.Value}
	case "/":
		if right.Value == 0 {
			return newError("division by zero")
		}
		return &Integer{Value: left.Value / right.Value}
	case "<":
		return boolToObject(left.Value < right.Value)
	case ">":
		return boolToObject(left.Value > right.Value)
	case "<=":
		return boolToObject(left.Value <= right.Value)
	case ">=":
		return boolToObject(left.Value >= right.Value)
	case "==":
		return boolToObject(left.Value == right.Value)
	case "!=":
		return boolToObject(left.Value != right.Value)
	}
	return newError("unknown operator: INTEGER %s INTEGER", operator)
}

func objectsEqual(left, right Object) bool {
	switch l := left.(type) {
	case *Integer:
		r, ok := right.(*Integer)
		return ok && l.Value == r.Value
	case *String:
		r, ok := right.(*String)
		return ok && l.Value == r.Value
	case *Boolean:
		r, ok := right.(*Boolean)
		return ok && l.Value == r.Value
	default:
		// Nil, empty, instances, classes: identity.
		return left == right
	}
}

func isTruthy(obj Object) bool {
	switch obj {
	case NIL, FALSE, EMPTY:
		return false
	default:
		return true
	}
}

func boolToObject(v bool) *Boolean {
	if v {
		return TRUE
	}
	return FALSE
}
