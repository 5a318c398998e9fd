// Package badge renders a compact shields-style SVG badge for one category
// score, suitable for embedding in READMEs and dashboards.
package badge

import (
	"fmt"
	"math"
	"strconv"

	"github.com/beevik/etree"

	"github.com/xkilldash9x/beacon/api/schemas"
)

// Color bands for a category score.
const (
	colorPass    = "#0c6"
	colorAverage = "#fe7d37"
	colorFail    = "#e05d44"
	colorUnknown = "#9f9f9f"
)

// Color maps a score to its badge color. A nil score means the category was
// not applicable or erroring and renders grey.
func Color(score *float64) string {
	switch {
	case score == nil:
		return colorUnknown
	case *score >= 0.9:
		return colorPass
	case *score >= 0.5:
		return colorAverage
	default:
		return colorFail
	}
}

// valueText formats the score segment.
func valueText(score *float64) string {
	if score == nil {
		return "n/a"
	}
	return strconv.Itoa(int(math.Round(*score * 100)))
}

// RenderSVG produces a self-contained two-segment SVG badge.
func RenderSVG(label string, score *float64) (string, error) {
	value := valueText(score)
	labelWidth := float64(len(label))*6.5 + 10
	valueWidth := float64(len(value))*7.5 + 10
	totalWidth := labelWidth + valueWidth

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	svg := doc.CreateElement("svg")
	svg.CreateAttr("xmlns", "http://www.w3.org/2000/svg")
	svg.CreateAttr("width", fmt.Sprintf("%.0f", totalWidth))
	svg.CreateAttr("height", "20")

	clip := svg.CreateElement("clipPath")
	clip.CreateAttr("id", "r")
	rect := clip.CreateElement("rect")
	rect.CreateAttr("width", fmt.Sprintf("%.0f", totalWidth))
	rect.CreateAttr("height", "20")
	rect.CreateAttr("rx", "3")
	rect.CreateAttr("fill", "#fff")

	g := svg.CreateElement("g")
	g.CreateAttr("clip-path", "url(#r)")

	left := g.CreateElement("path")
	left.CreateAttr("fill", "#555")
	left.CreateAttr("d", fmt.Sprintf("M0 0h%.0fv20H0z", labelWidth))

	right := g.CreateElement("path")
	right.CreateAttr("fill", Color(score))
	right.CreateAttr("d", fmt.Sprintf("M%.0f 0h%.0fv20H%.0fz", labelWidth, valueWidth, labelWidth))

	text := svg.CreateElement("g")
	text.CreateAttr("fill", "#fff")
	text.CreateAttr("text-anchor", "middle")
	text.CreateAttr("font-family", "DejaVu Sans,Verdana,Geneva,sans-serif")
	text.CreateAttr("font-size", "11")

	labelText := text.CreateElement("text")
	labelText.CreateAttr("x", fmt.Sprintf("%.1f", labelWidth/2))
	labelText.CreateAttr("y", "14")
	labelText.SetText(label)

	valueEl := text.CreateElement("text")
	valueEl.CreateAttr("x", fmt.Sprintf("%.1f", labelWidth+valueWidth/2))
	valueEl.CreateAttr("y", "14")
	valueEl.SetText(value)

	doc.Indent(2)
	out, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("serializing badge: %w", err)
	}
	return out, nil
}

// ForReport renders a badge for the named category, or for the report's
// first category when categoryID is empty.
func ForReport(lhr *schemas.Report, categoryID string) (string, error) {
	if lhr.Categories.Len() == 0 {
		return "", fmt.Errorf("report has no categories")
	}
	if categoryID == "" {
		categoryID = lhr.Categories.IDs()[0]
	}
	cat := lhr.Categories.Get(categoryID)
	if cat == nil {
		return "", fmt.Errorf("unknown category %q", categoryID)
	}
	return RenderSVG(cat.Title, cat.Score)
}
