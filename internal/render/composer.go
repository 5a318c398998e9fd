package render

import (
	"golang.org/x/net/html"
)

// renderScoreGauges composes one summary gauge per category and returns them
// in bucket order: standard, then specialized, then plugin. Within a bucket
// the order is the category iteration order of the report, so the result is
// deterministic for a given document.
//
// Each gauge's anchor gets its href written through sanitization and is
// registered with the navigation binder.
func renderScoreGauges(ctx *Context, reg *Registry, binder *NavigationBinder) []*html.Node {
	var standard, specialized, plugin []*html.Node

	for _, id := range ctx.Report.Categories.IDs() {
		cat := ctx.Report.Categories.Get(id)
		strategy, _ := reg.Lookup(id)

		gauge := strategy.RenderGauge(ctx, cat)
		if a := anchorOf(ctx.DOM, gauge); a != nil {
			ctx.DOM.SafeSetHref(a, "#"+cat.ID)
			binder.Bind(a)
		}

		switch reg.Classify(id) {
		case BucketPlugin:
			plugin = append(plugin, gauge)
		case BucketSpecialized:
			specialized = append(specialized, gauge)
		default:
			standard = append(standard, gauge)
		}
	}

	out := make([]*html.Node, 0, len(standard)+len(specialized)+len(plugin))
	out = append(out, standard...)
	out = append(out, specialized...)
	out = append(out, plugin...)
	return out
}
