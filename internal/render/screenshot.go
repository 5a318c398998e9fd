package render

import (
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/net/html"
)

// auditFinalScreenshot is the audit carrying the end-of-load thumbnail.
const auditFinalScreenshot = "final-screenshot"

// screenshotDetails is the thumbnail details payload.
type screenshotDetails struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

// screenshotInjector is the final-screenshot capability of a fallback
// strategy. The assembler runs the pass through the dispatch table's
// fallback, so a replacement default without the capability skips it.
type screenshotInjector interface {
	InjectFinalScreenshot(ctx *Context, fallback, scorescale *html.Node) bool
}

// InjectFinalScreenshot inserts the final page screenshot into the document,
// positioned just before the score-scale legend when one exists, otherwise
// prepended to the fallback container. Runs once per render, after every
// category body exists. Returns false (and does nothing) when the audit is
// absent or its payload malformed.
func (r *DefaultCategoryRenderer) InjectFinalScreenshot(ctx *Context, fallback, scorescale *html.Node) bool {
	audit := ctx.Report.Audits[auditFinalScreenshot]
	if audit == nil || len(audit.Details) == 0 {
		return false
	}

	var det screenshotDetails
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(audit.Details, &det); err != nil {
		return false
	}
	if det.Type != "screenshot" || det.Data == "" {
		return false
	}

	d := ctx.DOM
	img := d.CreateElement("img", "lh-final-ss-image")
	d.SetAttr(img, "src", det.Data)
	d.SetAttr(img, "alt", "Screenshot of the final rendered page")

	if scorescale != nil && scorescale.Parent != nil {
		scorescale.Parent.InsertBefore(img, scorescale)
		return true
	}
	if fallback.FirstChild != nil {
		fallback.InsertBefore(img, fallback.FirstChild)
	} else {
		fallback.AppendChild(img)
	}
	return true
}
