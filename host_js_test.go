//go:build js && wasm

package browserid

import (
	"syscall/js"
	"testing"
)

func TestInstanceOf(t *testing.T) {
	array := js.Global().Get("Array").New()
	object := js.Global().Get("Object").New()

	if !instanceOf(array, "Array") {
		t.Error("instanceOf(array, Array) = false")
	}
	if instanceOf(object, "Array") {
		t.Error("instanceOf(object, Array) = true")
	}
	// Hosts without the constructor must not throw.
	if !instanceOf(object, "HTMLCanvasElementMissing") {
		t.Error("instanceOf() with a missing constructor should pass")
	}
}
