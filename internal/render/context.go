// Package render is the report composition engine. It takes one normalized
// audit report and builds the full output tree: topbar, header with summary
// gauges, category sections, footer, plus navigation wiring and the optional
// screenshot overlay hand-off.
package render

import (
	"github.com/xkilldash9x/beacon/api/schemas"
	"github.com/xkilldash9x/beacon/internal/dom"
	"github.com/xkilldash9x/beacon/internal/i18n"
)

// Context carries everything one render call needs. It is constructed at the
// start of the call and passed explicitly to every strategy invocation, so
// two reports can render concurrently without sharing any state.
type Context struct {
	Report  *schemas.Report
	Strings *i18n.Strings
	DOM     *dom.DOM
}

func newContext(lhr *schemas.Report, d *dom.DOM) *Context {
	locale := ""
	if lhr.ConfigSettings != nil {
		locale = lhr.ConfigSettings.Locale
	}
	return &Context{
		Report:  lhr,
		Strings: i18n.Resolve(locale, lhr.I18n.RendererFormattedStrings),
		DOM:     d,
	}
}

// GatherMode returns the collection mode of the report.
func (c *Context) GatherMode() schemas.GatherMode {
	return c.Report.GatherMode
}
