package explorer

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	mandel "github.com/marben/mandel_explorer"
)

var printer = message.NewPrinter(language.English)

func hudLines(vp *mandel.Viewport, maxIter int) []string {
	lines := []string{
		printer.Sprintf("max iterations: %d", maxIter),
		printer.Sprintf("zoom: %d (width %.3e)", vp.Zooms, vp.Width()),
	}
	if vp.Degenerate() {
		lines = append(lines, "viewport collapsed - Esc to reset")
	}
	return lines
}
