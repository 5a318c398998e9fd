package render

import (
	"golang.org/x/net/html"

	"github.com/xkilldash9x/beacon/api/schemas"
	"github.com/xkilldash9x/beacon/internal/dom"
	"github.com/xkilldash9x/beacon/internal/i18n"
)

// InstallabilityCategoryRenderer specializes the summary gauge for
// installability-style categories: instead of a percentage arc it shows a
// binary installable / not-installable badge, including for null scores.
// The category body uses the stock rendering.
type InstallabilityCategoryRenderer struct {
	DefaultCategoryRenderer
}

// RenderGauge builds the badge-style gauge.
func (r *InstallabilityCategoryRenderer) RenderGauge(ctx *Context, cat *schemas.Category) *html.Node {
	d := ctx.DOM
	wrapper := d.CreateComponent(dom.ComponentGaugePWA)

	label := d.FindByClass(wrapper, "lh-gauge__label")
	d.SetText(label, cat.Title)

	state := i18n.KeyNotInstallableLabel
	stateClass := "lh-gauge--pwa__wrapper--fail"
	if cat.Score != nil && *cat.Score == 1 {
		state = i18n.KeyInstallableLabel
		stateClass = "lh-gauge--pwa__wrapper--pass"
	}
	if cat.Score == nil {
		stateClass = "lh-gauge--pwa__wrapper--not-applicable"
	}
	d.AddClass(wrapper, stateClass)
	d.SetAttr(wrapper, "title", ctx.Strings.Get(state))
	return wrapper
}
