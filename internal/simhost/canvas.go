package simhost

import (
	"fmt"
	"slices"

	"github.com/slashdevops/browserid"
	"github.com/slashdevops/browserid/internal/softcanvas"
)

const context2DName = "2d"

// canvas is a software canvas element. Like a browser canvas it hands out
// a single context type: once one family is acquired every other family
// yields null.
type canvas struct {
	host    *Host
	surface *softcanvas.Canvas
	mode    string
}

func (c *canvas) SetSize(width, height int) {
	c.surface.SetSize(width, height)
}

func (c *canvas) Context2D() (browserid.Context2D, error) {
	if !*c.host.profile.Canvas.Context2D || !c.claim(context2DName) {
		return nil, browserid.ErrNoContext2D
	}

	ctx, err := c.surface.Context2D()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", browserid.ErrNoContext2D, err)
	}

	return ctx, nil
}

func (c *canvas) Context(name string) (browserid.Value, error) {
	family := c.host.profile.WebGL.Family
	var supported bool
	switch name {
	case FamilyWebGL:
		supported = family == FamilyWebGL
	case FamilyExperimentalWebGL:
		supported = family == FamilyWebGL || family == FamilyExperimentalWebGL
	case FamilyWebGL2:
		supported = family == FamilyWebGL2
	default:
		return nil, fmt.Errorf("%w: unknown context type %q", ErrTypeError, name)
	}

	if !supported || !c.claim(name) {
		c.host.logDebug("context unavailable", "family", name)
		return Null(), nil
	}
	c.host.logDebug("context acquired", "family", name)

	gl := newGLState(c.host.profile.WebGL)
	if name == FamilyWebGL2 {
		return gl.object(), nil
	}

	return &legacyContext{Object: gl.object(), gl: gl}, nil
}

func (c *canvas) DataURL() (string, error) {
	return c.surface.DataURL()
}

// claim binds the canvas to one context type.
func (c *canvas) claim(name string) bool {
	if c.mode == "" {
		c.mode = name
	}

	return c.mode == name
}

// glState answers WebGL queries from a profile.
type glState struct {
	parameters map[uint32]string
	extensions []string
	debugInfo  bool
}

func newGLState(p WebGLProfile) *glState {
	params := make(map[uint32]string)
	set := func(code uint32, v string) {
		if v != "" {
			params[code] = v
		}
	}
	set(browserid.GLVendor, p.Vendor)
	set(browserid.GLRenderer, p.Renderer)
	set(browserid.GLVersion, p.Version)
	set(browserid.GLShadingLanguageVersion, p.ShadingLanguageVersion)
	if p.DebugRendererInfo {
		set(browserid.GLUnmaskedVendor, p.UnmaskedVendor)
		set(browserid.GLUnmaskedRenderer, p.UnmaskedRenderer)
	}

	return &glState{parameters: params, extensions: p.Extensions, debugInfo: p.DebugRendererInfo}
}

func (g *glState) parameter(code uint32) browserid.Value {
	if v, ok := g.parameters[code]; ok {
		return String(v)
	}

	return Null()
}

func (g *glState) extension(name string) browserid.Value {
	if name == browserid.DebugRendererInfo {
		if !g.debugInfo {
			return Null()
		}

		return NewObject(map[string]browserid.Value{
			"UNMASKED_VENDOR_WEBGL":   Number(float64(browserid.GLUnmaskedVendor)),
			"UNMASKED_RENDERER_WEBGL": Number(float64(browserid.GLUnmaskedRenderer)),
		})
	}
	if slices.Contains(g.extensions, name) {
		return NewObject(nil)
	}

	return Null()
}

func (g *glState) supportedExtensions() []string {
	return append([]string{}, g.extensions...)
}

// object exposes the state as a context object whose functions are only
// reachable by name.
func (g *glState) object() *Object {
	o := NewObject(nil)
	o.Method("getParameter", func(_ *Object, args []any) (browserid.Value, error) {
		code, err := uintArg(args, 0)
		if err != nil {
			return nil, err
		}

		return g.parameter(code), nil
	})
	o.Method("getExtension", func(_ *Object, args []any) (browserid.Value, error) {
		name, err := stringArg(args, 0)
		if err != nil {
			return nil, err
		}

		return g.extension(name), nil
	})
	o.Method("getSupportedExtensions", func(_ *Object, _ []any) (browserid.Value, error) {
		return StringArray(g.supportedExtensions()), nil
	})

	return o
}

// legacyContext is a WebGLRenderingContext: reachable both by name and
// through the typed [browserid.WebGLContext] surface.
type legacyContext struct {
	*Object
	gl *glState
}

func (c *legacyContext) GetParameter(pname uint32) (browserid.Value, error) {
	return c.gl.parameter(pname), nil
}

func (c *legacyContext) GetExtension(name string) (browserid.Value, error) {
	return c.gl.extension(name), nil
}

func (c *legacyContext) GetSupportedExtensions() ([]string, error) {
	return c.gl.supportedExtensions(), nil
}
