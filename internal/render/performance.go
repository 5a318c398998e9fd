package render

import (
	"golang.org/x/net/html"

	"github.com/xkilldash9x/beacon/api/schemas"
	"github.com/xkilldash9x/beacon/internal/i18n"
)

// metricsGroupID is the audit group holding the headline performance metrics.
const metricsGroupID = "metrics"

// PerformanceCategoryRenderer specializes the stock rendering with a metrics
// strip at the top of the category body. Gather mode matters here: the
// variance disclaimer only applies to observed page loads.
type PerformanceCategoryRenderer struct {
	DefaultCategoryRenderer
}

// RenderCategory renders the header, the metrics strip, then the remaining
// audits through the stock clump logic.
func (r *PerformanceCategoryRenderer) RenderCategory(ctx *Context, cat *schemas.Category) *html.Node {
	d := ctx.DOM
	category := d.CreateElement("div", "lh-category")
	d.SetAttr(category, "id", cat.ID)
	category.AppendChild(r.renderCategoryHeader(ctx, cat))

	var metricRefs, otherRefs []schemas.AuditRef
	for _, ref := range cat.AuditRefs {
		if ref.Group == metricsGroupID {
			metricRefs = append(metricRefs, ref)
		} else {
			otherRefs = append(otherRefs, ref)
		}
	}

	if len(metricRefs) > 0 {
		category.AppendChild(r.renderMetrics(ctx, metricRefs))
	}
	for _, clump := range r.renderClumps(ctx, otherRefs) {
		category.AppendChild(clump)
	}
	return category
}

// renderMetrics renders the headline metric tiles.
func (r *PerformanceCategoryRenderer) renderMetrics(ctx *Context, refs []schemas.AuditRef) *html.Node {
	d := ctx.DOM
	section := d.CreateElement("div", "lh-metrics-section")

	title := d.CreateChildOf(section, "div", "lh-audit-group__title")
	d.SetText(title, ctx.Strings.Get(i18n.KeyMetricsGroupTitle))

	container := d.CreateChildOf(section, "div", "lh-metrics-container")
	for _, ref := range refs {
		audit := ctx.Report.Audits[ref.ID]
		if audit == nil {
			continue
		}
		metric := d.CreateChildOf(container, "div", "lh-metric", "lh-metric--"+auditRating(audit))
		d.SetAttr(metric, "id", audit.ID)
		metricTitle := d.CreateChildOf(metric, "span", "lh-metric__title")
		d.SetText(metricTitle, audit.Title)
		value := d.CreateChildOf(metric, "span", "lh-metric__value")
		d.SetText(value, audit.DisplayValue)
	}

	// Estimates only make sense for a simulated or observed page load; a
	// timespan or snapshot report shows the tiles without the disclaimer.
	if ctx.GatherMode() == schemas.GatherModeNavigation {
		disclaimer := d.CreateChildOf(section, "div", "lh-metrics__disclaimer")
		d.SetText(disclaimer, ctx.Strings.Get(i18n.KeyVarianceDisclaimer))
	}
	return section
}
