//go:build !(js && wasm)

package browserid

// defaultHost returns a host without a window. Outside a browser the
// session must be given a host with [Session.WithHost].
func defaultHost() Host {
	return noWindowHost{}
}

type noWindowHost struct{}

func (noWindowHost) Window() (Window, error) {
	return nil, ErrNoWindow
}
