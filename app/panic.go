package app

import (
	"fmt"
	"image/color"
	"strings"
	"unicode/utf8"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// fail logs a recovered panic and its stack, paints them on the panel and
// parks the app.
func (a *App) fail(r any, stack []byte) error {
	a.stage = stageFailed
	a.err = fmt.Errorf("app: panic: %v", r)

	lines := []string{"hxpanel panic:", fmt.Sprintf("panic: %v", r)}
	if len(stack) > 0 {
		lines = append(lines, "stack:")
		for _, line := range strings.Split(string(stack), "\n") {
			if line != "" {
				lines = append(lines, strings.ReplaceAll(line, "\t", "  "))
			}
		}
	} else {
		lines = append(lines, "stack: unavailable")
	}
	for _, l := range lines {
		a.log.WriteLineString(l)
	}
	if a.dev != nil {
		drawPanic(a.dev, lines)
	}
	return a.err
}

var panicFont = &proggy.TinySZ8pt7b

// panicScreen is the display the panic text is drawn on.
type panicScreen interface {
	Size() (x, y int16)
	SetPixel(x, y int16, c color.RGBA)
	Display() error
	FillScreen(c uint16)
}

// drawPanic writes lines black on white, wrapped to the screen width,
// until the screen is full.
func drawPanic(d panicScreen, lines []string) {
	d.FillScreen(0xFFFF)
	_, outbox := tinyfont.LineWidth(panicFont, "0")
	fontWidth := int16(outbox)
	fontHeight := int16(panicFont.GetYAdvance())
	if fontWidth <= 0 || fontHeight <= 0 {
		return
	}
	maxW, maxH := d.Size()
	cols := maxW / fontWidth
	if cols <= 0 {
		cols = 1
	}
	fg := color.RGBA{A: 255}

	y := fontHeight
	for _, line := range lines {
		for len(line) > 0 {
			if y > maxH {
				_ = d.Display()
				return
			}
			chunk, rest := takeRunes(line, cols)
			tinyfont.WriteLine(d, panicFont, 0, y, chunk, fg)
			y += fontHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = d.Display()
}

// takeRunes splits s after n runes.
func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= int(n) {
		return s, ""
	}
	i := 0
	for count := int16(0); i < len(s) && count < n; count++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return s[:i], s[i:]
}
