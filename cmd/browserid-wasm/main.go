//go:build js && wasm

// Command browserid-wasm exposes the fingerprinter to page scripts as the
// global BrowserFingerprinter constructor.
package main

import (
	"log/slog"
	"os"
	"syscall/js"

	"github.com/slashdevops/browserid"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	js.Global().Set("BrowserFingerprinter", js.FuncOf(func(this js.Value, args []js.Value) any {
		return newFingerprinter(browserid.New().WithLogger(logger))
	}))

	select {}
}

// newFingerprinter wraps a session in a plain object with collect and
// get_hash methods. collect returns the record as pretty JSON, or an Error
// object instead of throwing, so page scripts check the result with
// `instanceof Error`. get_hash returns null until a collect succeeds.
func newFingerprinter(session *browserid.Session) js.Value {
	obj := js.Global().Get("Object").New()

	obj.Set("collect", js.FuncOf(func(this js.Value, args []js.Value) any {
		record, err := session.Collect()
		if err != nil {
			return jsError(err)
		}

		data, err := record.JSON()
		if err != nil {
			return jsError(err)
		}

		return string(data)
	}))

	obj.Set("get_hash", js.FuncOf(func(this js.Value, args []js.Value) any {
		hash, ok := session.Hash()
		if !ok {
			return js.Null()
		}

		return hash
	}))

	return obj
}

func jsError(err error) js.Value {
	return js.Global().Get("Error").New(err.Error())
}
