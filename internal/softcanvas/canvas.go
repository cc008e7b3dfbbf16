// Package softcanvas is an offscreen HTML-canvas look-alike rendered in
// software by gg. It is the reference rendering stack for simulated hosts:
// the same drawing calls always produce the same pixels.
package softcanvas

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// Default canvas size, as for a fresh HTMLCanvasElement.
const (
	DefaultWidth  = 300
	DefaultHeight = 150
)

const defaultFont = "10px sans-serif"

// ErrNegativeRadius is returned by Arc for a negative radius, where a
// browser throws IndexSizeError.
var ErrNegativeRadius = errors.New("negative arc radius")

// Canvas is an offscreen drawing surface.
type Canvas struct {
	logger *slog.Logger
	fonts  *Fonts
	dc     *gg.Context
	ctx2d  *Context2D
	width  int
	height int
}

// New returns a DefaultWidth x DefaultHeight transparent canvas drawing text
// with fonts. A nil fonts uses NewFonts.
func New(fonts *Fonts) *Canvas {
	if fonts == nil {
		fonts = NewFonts()
	}
	c := &Canvas{fonts: fonts}
	c.SetSize(DefaultWidth, DefaultHeight)

	return c
}

// WithLogger sets a logger for resize and encode events. A nil logger
// disables logging.
func (c *Canvas) WithLogger(logger *slog.Logger) *Canvas {
	c.logger = logger
	return c
}

// SetSize resizes the canvas. As in a browser, resizing clears the bitmap
// and resets the 2D context state. Sizes below one pixel are raised to one.
func (c *Canvas) SetSize(width, height int) {
	c.width, c.height = max(width, 1), max(height, 1)
	c.dc = gg.NewContext(c.width, c.height)
	c.ctx2d = nil

	if c.logger != nil {
		c.logger.Debug("canvas resized", "width", c.width, "height", c.height)
	}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.height }

// Context2D returns the canvas' 2D context. Repeated calls return the same
// context until the canvas is resized.
func (c *Canvas) Context2D() (*Context2D, error) {
	if c.ctx2d == nil {
		ctx := &Context2D{dc: c.dc, fonts: c.fonts, fill: gg.Hex("#000")}
		ctx.SetFont(defaultFont)
		if ctx.face == nil {
			return nil, fmt.Errorf("default font %q unavailable", defaultFont)
		}
		c.ctx2d = ctx
	}

	return c.ctx2d, nil
}

// Image returns the canvas bitmap.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// PNG encodes the bitmap.
func (c *Canvas) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	if c.logger != nil {
		c.logger.Debug("canvas encoded", "format", "png", "bytes", buf.Len())
	}

	return buf.Bytes(), nil
}

// DataURL returns the bitmap as a base64 PNG data URL.
func (c *Canvas) DataURL() (string, error) {
	data, err := c.PNG()
	if err != nil {
		return "", err
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}

// pathOp is one recorded path command.
type pathOp struct {
	kind byte // 'M', 'L', 'A', 'Z'
	args [5]float64
}

// Context2D follows CanvasRenderingContext2D semantics for the calls it
// supports: fillRect leaves the current path alone, fill keeps the path
// until the next beginPath, and invalid styles or fonts are ignored.
type Context2D struct {
	dc    *gg.Context
	fonts *Fonts
	face  text.Face
	fill  gg.RGBA
	font  string
	path  []pathOp
}

// SetFillStyle sets the fill color. Unparseable colors are ignored.
func (c *Context2D) SetFillStyle(style string) {
	if col, ok := parseColor(style); ok {
		c.fill = col
	}
}

// FillStyle returns the current fill color.
func (c *Context2D) FillStyle() gg.RGBA {
	return c.fill
}

// SetFont sets the font from CSS shorthand. Unparseable fonts are ignored.
func (c *Context2D) SetFont(font string) {
	size, families, ok := parseFont(font)
	if !ok {
		return
	}
	face, err := c.fonts.Face(families, size)
	if err != nil {
		return
	}
	c.dc.SetFont(face)
	c.face = face
	c.font = font
}

// Font returns the current CSS font shorthand.
func (c *Context2D) Font() string {
	return c.font
}

// FillRect fills a rectangle without touching the current path.
func (c *Context2D) FillRect(x, y, w, h float64) error {
	c.dc.ClearPath()
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.SetFillBrush(gg.Solid(c.fill))

	return c.dc.Fill()
}

// FillText draws text with its alphabetic baseline at y.
func (c *Context2D) FillText(s string, x, y float64) error {
	if c.face == nil {
		return errors.New("no font face")
	}
	c.dc.SetFillBrush(gg.Solid(c.fill))
	c.dc.DrawString(s, x, y)

	return nil
}

// BeginPath discards the current path.
func (c *Context2D) BeginPath() {
	c.path = c.path[:0]
}

// MoveTo starts a new subpath.
func (c *Context2D) MoveTo(x, y float64) {
	c.path = append(c.path, pathOp{kind: 'M', args: [5]float64{x, y}})
}

// LineTo adds a straight segment.
func (c *Context2D) LineTo(x, y float64) {
	c.path = append(c.path, pathOp{kind: 'L', args: [5]float64{x, y}})
}

// Arc adds a clockwise circular arc.
func (c *Context2D) Arc(x, y, radius, startAngle, endAngle float64) error {
	if radius < 0 {
		return ErrNegativeRadius
	}
	c.path = append(c.path, pathOp{kind: 'A', args: [5]float64{x, y, radius, startAngle, endAngle}})

	return nil
}

// ClosePath closes the current subpath.
func (c *Context2D) ClosePath() {
	c.path = append(c.path, pathOp{kind: 'Z'})
}

// Fill fills the current path with the nonzero rule. The path is kept.
func (c *Context2D) Fill() error {
	c.dc.ClearPath()
	c.replay()
	c.dc.SetFillBrush(gg.Solid(c.fill))

	return c.dc.Fill()
}

// replay rebuilds the recorded path on the gg context.
func (c *Context2D) replay() {
	open := false
	for _, op := range c.path {
		switch op.kind {
		case 'M':
			c.dc.MoveTo(op.args[0], op.args[1])
			open = true
		case 'L':
			if !open {
				c.dc.MoveTo(op.args[0], op.args[1])
				open = true

				continue
			}
			c.dc.LineTo(op.args[0], op.args[1])
		case 'A':
			x, y, r, a0, a1 := op.args[0], op.args[1], op.args[2], op.args[3], op.args[4]
			sx, sy := x+r*math.Cos(a0), y+r*math.Sin(a0)
			if open {
				c.dc.LineTo(sx, sy)
			} else {
				c.dc.MoveTo(sx, sy)
			}
			c.dc.DrawArc(x, y, r, a0, a1)
			open = true
		case 'Z':
			c.dc.ClosePath()
		}
	}
}
