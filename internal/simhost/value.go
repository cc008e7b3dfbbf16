package simhost

import (
	"errors"
	"fmt"

	"github.com/slashdevops/browserid"
)

// ErrTypeError is returned where a browser would throw a TypeError.
var ErrTypeError = errors.New("TypeError")

// Func is the body of a simulated function. this is the receiver of a
// method call, or nil for a plain invocation.
type Func func(this *Object, args []any) (browserid.Value, error)

// Object is a simulated host value: a primitive, a plain object, an array or
// a function. It implements [browserid.Value].
type Object struct {
	kind  browserid.Kind
	str   string
	num   float64
	b     bool
	props map[string]browserid.Value
	items []browserid.Value
	fn    Func
}

var (
	undefinedValue = &Object{kind: browserid.KindUndefined}
	nullValue      = &Object{kind: browserid.KindNull}
)

// Undefined returns the undefined value.
func Undefined() *Object { return undefinedValue }

// Null returns the null value.
func Null() *Object { return nullValue }

// String returns a string value.
func String(s string) *Object { return &Object{kind: browserid.KindString, str: s} }

// Number returns a number value.
func Number(f float64) *Object { return &Object{kind: browserid.KindNumber, num: f} }

// Bool returns a boolean value.
func Bool(b bool) *Object { return &Object{kind: browserid.KindBool, b: b} }

// NewObject returns a plain object with the given properties.
func NewObject(props map[string]browserid.Value) *Object {
	if props == nil {
		props = make(map[string]browserid.Value)
	}

	return &Object{kind: browserid.KindObject, props: props}
}

// Array returns an array-like object.
func Array(items ...browserid.Value) *Object {
	return &Object{kind: browserid.KindObject, items: items, props: map[string]browserid.Value{}}
}

// StringArray returns an array of string values.
func StringArray(ss []string) *Object {
	items := make([]browserid.Value, len(ss))
	for i, s := range ss {
		items[i] = String(s)
	}

	return Array(items...)
}

// Function returns a callable value.
func Function(fn Func) *Object {
	return &Object{kind: browserid.KindFunction, fn: fn, props: map[string]browserid.Value{}}
}

// Set defines a property and returns o.
func (o *Object) Set(name string, v browserid.Value) *Object {
	if o.props == nil {
		o.props = make(map[string]browserid.Value)
	}
	o.props[name] = v

	return o
}

// Method defines a function property and returns o.
func (o *Object) Method(name string, fn Func) *Object {
	return o.Set(name, Function(fn))
}

func (o *Object) Kind() browserid.Kind {
	return o.kind
}

func (o *Object) Get(name string) (browserid.Value, error) {
	switch o.kind {
	case browserid.KindUndefined, browserid.KindNull:
		return nil, fmt.Errorf("%w: cannot read property %q of %s", ErrTypeError, name, o.kind)
	}
	if name == "length" && o.items != nil {
		return Number(float64(len(o.items))), nil
	}
	if v, ok := o.props[name]; ok {
		return v, nil
	}

	return Undefined(), nil
}

func (o *Object) Call(method string, args ...any) (browserid.Value, error) {
	v, err := o.Get(method)
	if err != nil {
		return nil, err
	}
	fn, ok := v.(*Object)
	if !ok || fn.kind != browserid.KindFunction {
		return nil, fmt.Errorf("%w: %s is not a function", ErrTypeError, method)
	}

	return fn.fn(o, args)
}

func (o *Object) Invoke(args ...any) (browserid.Value, error) {
	if o.kind != browserid.KindFunction {
		return nil, fmt.Errorf("%w: %s is not a function", ErrTypeError, o.kind)
	}

	return o.fn(nil, args)
}

func (o *Object) AsString() (string, bool) {
	return o.str, o.kind == browserid.KindString
}

func (o *Object) AsFloat() (float64, bool) {
	return o.num, o.kind == browserid.KindNumber
}

func (o *Object) AsBool() (bool, bool) {
	return o.b, o.kind == browserid.KindBool
}

func (o *Object) Len() (int, bool) {
	if o.items == nil {
		return 0, false
	}

	return len(o.items), true
}

func (o *Object) Index(i int) (browserid.Value, error) {
	if i < 0 || i >= len(o.items) {
		return Undefined(), nil
	}

	return o.items[i], nil
}

// uintArg converts the i-th call argument to a GL enum.
func uintArg(args []any, i int) (uint32, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("%w: missing argument %d", ErrTypeError, i)
	}
	switch v := args[i].(type) {
	case float64:
		return uint32(v), nil
	case uint32:
		return v, nil
	case int:
		return uint32(v), nil
	default:
		return 0, fmt.Errorf("%w: argument %d is %T", ErrTypeError, i, args[i])
	}
}

// stringArg converts the i-th call argument to a string.
func stringArg(args []any, i int) (string, error) {
	if i >= len(args) {
		return "", fmt.Errorf("%w: missing argument %d", ErrTypeError, i)
	}
	s, ok := args[i].(string)
	if !ok {
		return "", fmt.Errorf("%w: argument %d is %T", ErrTypeError, i, args[i])
	}

	return s, nil
}
