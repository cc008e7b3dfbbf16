package browserid

import (
	"errors"
	"reflect"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := map[Kind]string{
		KindUndefined: "undefined",
		KindNull:      "null",
		KindBool:      "boolean",
		KindNumber:    "number",
		KindString:    "string",
		KindObject:    "object",
		KindFunction:  "function",
		Kind(42):      "Kind(42)",
	}

	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(k), got, want)
		}
	}
}

func TestIsNullish(t *testing.T) {
	if !IsNullish(nil) || !IsNullish(fUndefined()) || !IsNullish(fNull()) {
		t.Error("nil, undefined and null are nullish")
	}
	if IsNullish(fBool(false)) || IsNullish(fString("")) || IsNullish(fNumber(0)) {
		t.Error("falsy primitives are not nullish")
	}
}

func TestDynamicAccessors(t *testing.T) {
	d := NewDynamic(fObject(map[string]Value{
		"name":    fString("x"),
		"count":   fNumber(3),
		"enabled": fBool(true),
		"nested":  fObject(nil),
		"nothing": fNull(),
	}))

	if s, err := d.GetString("name"); err != nil || s != "x" {
		t.Errorf("GetString = %q, %v", s, err)
	}
	if f, err := d.GetFloat("count"); err != nil || f != 3 {
		t.Errorf("GetFloat = %v, %v", f, err)
	}
	if b, err := d.GetBool("enabled"); err != nil || !b {
		t.Errorf("GetBool = %v, %v", b, err)
	}
	if _, err := d.GetObject("nested"); err != nil {
		t.Errorf("GetObject error = %v", err)
	}

	if !d.Has("name") || d.Has("nothing") || d.Has("missing") {
		t.Error("Has reports present non-nullish properties only")
	}

	if _, err := d.GetString("count"); !errors.Is(err, ErrWrongType) {
		t.Errorf("GetString(number) error = %v, want ErrWrongType", err)
	}
	if _, err := d.GetFloat("name"); !errors.Is(err, ErrWrongType) {
		t.Errorf("GetFloat(string) error = %v, want ErrWrongType", err)
	}
	if _, err := d.GetBool("missing"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("GetBool(missing) error = %v, want ErrUnsupported", err)
	}
	if _, err := d.GetObject("nothing"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("GetObject(null) error = %v, want ErrUnsupported", err)
	}
}

func TestDynamicOnNullish(t *testing.T) {
	for _, v := range []Value{nil, fNull(), fUndefined()} {
		d := NewDynamic(v)
		if _, err := d.GetString("x"); !errors.Is(err, ErrUnsupported) {
			t.Errorf("GetString on %v: error = %v, want ErrUnsupported", v, err)
		}
		if _, err := d.CallFunction("f"); !errors.Is(err, ErrUnsupported) {
			t.Errorf("CallFunction on %v: error = %v, want ErrUnsupported", v, err)
		}
	}
}

func TestDynamicCallFunction(t *testing.T) {
	var got []any
	d := NewDynamic(fObject(map[string]Value{
		"echo": fFunc(func(args []any) (Value, error) {
			got = args
			return fString("ok"), nil
		}),
		"value": fNumber(1),
	}))

	v, err := d.CallFunction("echo", float64(GLVendor), "x")
	if err != nil {
		t.Fatalf("CallFunction error = %v", err)
	}
	if s, _ := v.AsString(); s != "ok" {
		t.Errorf("CallFunction result = %q", s)
	}
	if !reflect.DeepEqual(got, []any{float64(GLVendor), "x"}) {
		t.Errorf("args = %v", got)
	}

	if _, err := d.CallFunction("value"); !errors.Is(err, ErrNotFunction) {
		t.Errorf("CallFunction(number) error = %v, want ErrNotFunction", err)
	}
	if _, err := d.CallFunction("missing"); !errors.Is(err, ErrNotFunction) {
		t.Errorf("CallFunction(missing) error = %v, want ErrNotFunction", err)
	}
}

func TestStrings(t *testing.T) {
	mixed := fStrings("a", "b")
	mixed.items = append(mixed.items, fNumber(1), fString("c"))

	if got := Strings(mixed); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("Strings() = %v", got)
	}
	if got := Strings(fObject(nil)); got != nil {
		t.Errorf("Strings(non-array) = %v, want nil", got)
	}
	if got := Strings(fNull()); got != nil {
		t.Errorf("Strings(null) = %v, want nil", got)
	}
}
