package render

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/xkilldash9x/beacon/internal/dom"
	"github.com/xkilldash9x/beacon/internal/i18n"
)

// chromePattern captures the "<prefix>Chrome/<version>" token of a user
// agent. The prefix (e.g. "Headless") is discarded; all variants display as
// Chromium.
var chromePattern = regexp.MustCompile(`(\S*)Chrome/([\d.]+)`)

// browserDescription derives the display name of the auditing browser from
// its user-agent string. A UA without a Chrome token falls back to the bare
// engine name.
func browserDescription(userAgent string) string {
	m := chromePattern.FindStringSubmatch(userAgent)
	if m == nil {
		return "Using Chromium"
	}
	return "Using Chromium " + m[2]
}

// metaItem is one entry of the footer metadata block.
type metaItem struct {
	icon    string
	value   string
	tooltip string
}

// buildMetaItems derives the six fixed metadata entries from the report's
// environment and settings. Order is fixed.
func buildMetaItems(ctx *Context) []metaItem {
	lhr := ctx.Report
	s := ctx.Strings
	cfg := lhr.ConfigSettings
	env := lhr.Environment

	// Device description plus the tool version, with the environment
	// details folded into the tooltip.
	deviceValue := i18n.EmulationDescription(cfg) + " with Lighthouse " + lhr.LighthouseVersion
	deviceTooltip := s.Get(i18n.KeyBenchmark) + ": " + strconv.FormatFloat(env.BenchmarkIndex, 'f', 0, 64) +
		"; " + s.Get(i18n.KeyCPUThrottling) + ": " + i18n.CPUThrottlingDescription(cfg)
	if axe := env.Credits["axe-core"]; axe != "" {
		deviceTooltip += "; " + s.Get(i18n.KeyAxeVersion) + ": " + axe
	}

	networkLabel, networkTooltip := i18n.ThrottlingSummary(cfg)

	browserValue := browserDescription(lhr.UserAgent)
	if cfg != nil && cfg.Channel != "" {
		browserValue += " (" + cfg.Channel + ")"
	}

	return []metaItem{
		{icon: "date", value: s.FormatDateTime(lhr.FetchTime)},
		{icon: "devices", value: deviceValue, tooltip: deviceTooltip},
		{icon: "samples-one", value: s.Get(i18n.KeySingleLoad), tooltip: s.Get(i18n.KeySingleLoadTooltip)},
		{icon: "stopwatch", value: s.Get(i18n.KeyAnalysisWindow)},
		{icon: "networkspeed", value: networkLabel, tooltip: networkTooltip},
		{icon: "chrome", value: browserValue, tooltip: strings.TrimSpace(env.NetworkUserAgent)},
	}
}

// renderMetaBlock fills the footer's metadata list.
func renderMetaBlock(ctx *Context, list *html.Node) {
	d := ctx.DOM
	for _, item := range buildMetaItems(ctx) {
		li := d.CreateComponent(dom.ComponentMetaItem)
		d.AddClass(li, "lh-report-icon--"+item.icon)

		d.SetText(d.FindByClass(li, "lh-meta__item-value"), item.value)
		if item.tooltip != "" {
			tip := d.CreateChildOf(li, "div", "lh-tooltip")
			d.SetText(tip, item.tooltip)
		}
		list.AppendChild(li)
	}
}
