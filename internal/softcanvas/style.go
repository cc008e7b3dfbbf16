package softcanvas

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
)

var namedColors = map[string]gg.RGBA{
	"black":       gg.Hex("#000000"),
	"white":       gg.Hex("#ffffff"),
	"red":         gg.Hex("#ff0000"),
	"green":       gg.Hex("#008000"),
	"blue":        gg.Hex("#0000ff"),
	"yellow":      gg.Hex("#ffff00"),
	"orange":      gg.Hex("#ffa500"),
	"gray":        gg.Hex("#808080"),
	"grey":        gg.Hex("#808080"),
	"transparent": {R: 0, G: 0, B: 0, A: 0},
}

var (
	hexColorRe  = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	funcColorRe = regexp.MustCompile(`^rgba?\(\s*([^,\s]+)\s*,\s*([^,\s]+)\s*,\s*([^,\s]+)\s*(?:,\s*([^,\s]+)\s*)?\)$`)

	// [style] [weight] <size>px <family list>
	fontRe = regexp.MustCompile(`^\s*(?:(?:normal|italic|oblique)\s+)?(?:(?:normal|bold|bolder|lighter|[1-9]00)\s+)?(\d+(?:\.\d+)?)px\s+(.+?)\s*$`)
)

// parseColor parses the CSS color forms the canvas accepts: #rgb, #rgba,
// #rrggbb, #rrggbbaa, rgb(), rgba() and a few named colors.
func parseColor(s string) (gg.RGBA, bool) {
	s = strings.TrimSpace(s)
	if hexColorRe.MatchString(s) {
		return gg.Hex(s), true
	}
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, true
	}

	m := funcColorRe.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return gg.RGBA{}, false
	}

	var channels [3]float64
	for i := range channels {
		v, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return gg.RGBA{}, false
		}
		channels[i] = clamp(v, 0, 255) / 255
	}

	alpha := 1.0
	if m[4] != "" {
		v, err := strconv.ParseFloat(m[4], 64)
		if err != nil {
			return gg.RGBA{}, false
		}
		alpha = clamp(v, 0, 1)
	}

	return gg.RGBA2(channels[0], channels[1], channels[2], alpha), true
}

// parseFont splits a CSS font shorthand into its pixel size and family list.
func parseFont(s string) (size float64, families string, ok bool) {
	m := fontRe.FindStringSubmatch(s)
	if m == nil {
		return 0, "", false
	}
	size, err := strconv.ParseFloat(m[1], 64)
	if err != nil || size <= 0 {
		return 0, "", false
	}

	return size, m[2], true
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
