package render

import (
	"strconv"

	"golang.org/x/net/html"

	"github.com/xkilldash9x/beacon/api/schemas"
	"github.com/xkilldash9x/beacon/internal/dom"
)

// OverlayFunc receives the full-page screenshot artifact and the assembled
// report root, exactly once per render, after the tree is complete. The
// collaborator owns all overlay presentation.
type OverlayFunc func(root *html.Node, screenshot *schemas.FullPageScreenshot)

// installOverlay extracts the screenshot artifact and hands it to the
// collaborator. Absent or malformed artifacts skip the step entirely.
func installOverlay(ctx *Context, root *html.Node, install OverlayFunc) bool {
	if install == nil {
		return false
	}
	fps := ctx.Report.FullPageScreenshot()
	if fps == nil {
		return false
	}
	install(root, fps)
	return true
}

// DefaultOverlayInstaller is the built-in overlay collaborator: it attaches
// a single container carrying the screenshot geometry as data attributes,
// leaving interactive annotation to the host page's scripting.
func DefaultOverlayInstaller(d *dom.DOM) OverlayFunc {
	return func(root *html.Node, screenshot *schemas.FullPageScreenshot) {
		container := d.CreateElement("div", "lh-screenshot-overlay")
		d.SetAttr(container, "data-width", strconv.Itoa(screenshot.Screenshot.Width))
		d.SetAttr(container, "data-height", strconv.Itoa(screenshot.Screenshot.Height))

		img := d.CreateChildOf(container, "img", "lh-screenshot-overlay__image")
		d.SetAttr(img, "src", screenshot.Screenshot.Data)
		d.SetAttr(img, "alt", "Full page screenshot")

		root.AppendChild(container)
	}
}
