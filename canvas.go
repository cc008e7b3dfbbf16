package browserid

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
)

// Canvas surface size used by the canvas fingerprint.
const (
	CanvasWidth  = 280
	CanvasHeight = 60
)

// DrawFingerprintProgram runs the fixed drawing program on ctx. The program
// never varies: differences in the resulting raster come only from the
// host's rendering stack (GPU, font rasterizer, anti-aliasing).
func DrawFingerprintProgram(ctx Context2D) error {
	ctx.SetFillStyle("#f60")
	if err := ctx.FillRect(0, 0, 62, 20); err != nil {
		return err
	}

	ctx.SetFillStyle("#069")
	ctx.SetFont("15px 'Arial'")
	if err := ctx.FillText("Browser Fingerprint!", 2, 15); err != nil {
		return err
	}

	ctx.SetFillStyle("rgba(102, 204, 0, 0.7)")
	ctx.SetFont("18px 'Times New Roman'")
	if err := ctx.FillText("Canvas 2D Test", 4, 45); err != nil {
		return err
	}

	ctx.BeginPath()
	if err := ctx.Arc(150, 30, 20, 0, math.Pi*2); err != nil {
		return err
	}
	ctx.SetFillStyle("#ff0066")
	if err := ctx.Fill(); err != nil {
		return err
	}

	ctx.BeginPath()
	ctx.MoveTo(200, 10)
	ctx.LineTo(220, 50)
	ctx.LineTo(180, 50)
	ctx.ClosePath()
	ctx.SetFillStyle("#3399ff")

	return ctx.Fill()
}

// canvasFingerprint draws the fixed program on a fresh canvas and returns
// the hex SHA-256 of its data URL. Every failure is fatal.
func canvasFingerprint(doc Document) (string, error) {
	canvas, err := createCanvas(doc)
	if err != nil {
		return "", err
	}
	canvas.SetSize(CanvasWidth, CanvasHeight)

	ctx, err := canvas.Context2D()
	if err != nil {
		return "", &CanvasError{Stage: "context", Err: joinCause(ErrNoContext2D, err)}
	}
	if ctx == nil {
		return "", &CanvasError{Stage: "context", Err: ErrNoContext2D}
	}

	if err := DrawFingerprintProgram(ctx); err != nil {
		return "", &CanvasError{Stage: "draw", Err: err}
	}

	dataURL, err := canvas.DataURL()
	if err != nil {
		return "", &CanvasError{Stage: "encode", Err: err}
	}

	return digestDataURL(dataURL), nil
}

// digestDataURL hashes the data URL text.
func digestDataURL(dataURL string) string {
	sum := sha256.Sum256([]byte(dataURL))

	return hex.EncodeToString(sum[:])
}

// createCanvas asks doc for a canvas, mapping every failure onto
// ErrCanvasUnavailable.
func createCanvas(doc Document) (Canvas, error) {
	canvas, err := doc.CreateCanvas()
	if err != nil {
		return nil, &CanvasError{Stage: "create", Err: joinCause(ErrCanvasUnavailable, err)}
	}
	if canvas == nil {
		return nil, &CanvasError{Stage: "create", Err: ErrCanvasUnavailable}
	}

	return canvas, nil
}
