package browserid

import (
	"fmt"
)

// Kind classifies a host [Value].
type Kind int

const (
	KindUndefined Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindObject
	KindFunction
)

// String returns the JavaScript typeof-style name of the kind.
func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindFunction:
		return "function"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is an untyped handle into the host whose shape is only known at
// run time. Implementations must never panic: host exceptions surface as
// errors.
type Value interface {
	Kind() Kind

	// Get reads a property. Missing properties yield an undefined value,
	// not an error.
	Get(name string) (Value, error)

	// Call invokes the named method with the value as receiver.
	Call(method string, args ...any) (Value, error)

	// Invoke calls the value itself as a function with a null receiver.
	Invoke(args ...any) (Value, error)

	AsString() (string, bool)
	AsFloat() (float64, bool)
	AsBool() (bool, bool)

	// Len and Index give access to array-like values.
	Len() (int, bool)
	Index(i int) (Value, error)
}

// IsNullish reports whether v is nil, undefined or null.
func IsNullish(v Value) bool {
	if v == nil {
		return true
	}
	k := v.Kind()

	return k == KindUndefined || k == KindNull
}

// Dynamic wraps a [Value] with typed, name-based accessors. All untyped
// access in the package goes through it.
type Dynamic struct {
	v Value
}

// NewDynamic wraps v.
func NewDynamic(v Value) Dynamic {
	return Dynamic{v: v}
}

// Value returns the wrapped handle.
func (d Dynamic) Value() Value {
	return d.v
}

// Has reports whether the named property exists and is neither undefined
// nor null.
func (d Dynamic) Has(name string) bool {
	p, err := d.get(name)

	return err == nil && !IsNullish(p)
}

// GetString reads a string property.
func (d Dynamic) GetString(name string) (string, error) {
	p, err := d.get(name)
	if err != nil {
		return "", err
	}

	return stringValue(p)
}

// GetFloat reads a numeric property.
func (d Dynamic) GetFloat(name string) (float64, error) {
	p, err := d.get(name)
	if err != nil {
		return 0, err
	}
	if IsNullish(p) {
		return 0, ErrUnsupported
	}
	f, ok := p.AsFloat()
	if !ok {
		return 0, fmt.Errorf("%s: %w: got %s", name, ErrWrongType, p.Kind())
	}

	return f, nil
}

// GetBool reads a boolean property.
func (d Dynamic) GetBool(name string) (bool, error) {
	p, err := d.get(name)
	if err != nil {
		return false, err
	}
	if IsNullish(p) {
		return false, ErrUnsupported
	}
	b, ok := p.AsBool()
	if !ok {
		return false, fmt.Errorf("%s: %w: got %s", name, ErrWrongType, p.Kind())
	}

	return b, nil
}

// GetObject reads a property and wraps it.
func (d Dynamic) GetObject(name string) (Dynamic, error) {
	p, err := d.get(name)
	if err != nil {
		return Dynamic{}, err
	}
	if IsNullish(p) {
		return Dynamic{}, fmt.Errorf("%s: %w", name, ErrUnsupported)
	}

	return Dynamic{v: p}, nil
}

// CallFunction looks up the named property, checks that it is callable and
// calls it with the wrapped value as receiver.
func (d Dynamic) CallFunction(name string, args ...any) (Value, error) {
	fn, err := d.get(name)
	if err != nil {
		return nil, err
	}
	if fn == nil || fn.Kind() != KindFunction {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFunction)
	}

	return d.v.Call(name, args...)
}

// Strings converts an array-like value into its string elements. Non-string
// elements are skipped; a value that is not array-like yields nil.
func Strings(v Value) []string {
	if IsNullish(v) {
		return nil
	}
	n, ok := v.Len()
	if !ok {
		return nil
	}

	out := make([]string, 0, n)
	for i := range n {
		el, err := v.Index(i)
		if err != nil || el == nil {
			continue
		}
		if s, ok := el.AsString(); ok {
			out = append(out, s)
		}
	}

	return out
}

func (d Dynamic) get(name string) (Value, error) {
	if IsNullish(d.v) {
		return nil, fmt.Errorf("%s: %w", name, ErrUnsupported)
	}

	return d.v.Get(name)
}

// stringValue converts a host value into a Go string.
func stringValue(v Value) (string, error) {
	if IsNullish(v) {
		return "", ErrUnsupported
	}
	s, ok := v.AsString()
	if !ok {
		return "", fmt.Errorf("%w: got %s", ErrWrongType, v.Kind())
	}

	return s, nil
}
