package render

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/net/html"

	"github.com/xkilldash9x/beacon/api/schemas"
	"github.com/xkilldash9x/beacon/internal/dom"
	"github.com/xkilldash9x/beacon/internal/i18n"
)

// gaugeCircumference is 2*pi*r for the r=56 gauge arc.
const gaugeCircumference = 2 * math.Pi * 56

// ratingForScore maps a numeric score to its display rating. A nil score is
// "not applicable or erroring" and rates as an error.
func ratingForScore(score *float64) string {
	switch {
	case score == nil:
		return "error"
	case *score >= 0.9:
		return "pass"
	case *score >= 0.5:
		return "average"
	default:
		return "fail"
	}
}

// auditRating resolves the rating of one audit, honoring its display mode
// before falling back to the numeric score.
func auditRating(a *schemas.Audit) string {
	switch a.ScoreDisplayMode {
	case "manual":
		return "manual"
	case "notApplicable", "not-applicable":
		return "notapplicable"
	case "informative":
		return "informative"
	case "error":
		return "error"
	default:
		return ratingForScore(a.Score)
	}
}

// DefaultCategoryRenderer is the stock strategy shared by every category
// without a registered specialization.
type DefaultCategoryRenderer struct{}

// RenderGauge builds the standard circular score gauge for a category. The
// anchor href is written later by the composer, through sanitization.
func (r *DefaultCategoryRenderer) RenderGauge(ctx *Context, cat *schemas.Category) *html.Node {
	d := ctx.DOM
	wrapper := d.CreateComponent(dom.ComponentGauge)

	label := d.FindByClass(wrapper, "lh-gauge__label")
	d.SetText(label, cat.Title)

	percentage := d.FindByClass(wrapper, "lh-gauge__percentage")
	arc := d.FindByClass(wrapper, "lh-gauge-arc")

	if cat.Score == nil {
		d.SetText(percentage, "--")
		d.AddClass(wrapper, "lh-gauge__wrapper--not-applicable")
		return wrapper
	}

	score := *cat.Score
	d.SetText(percentage, strconv.Itoa(int(math.Round(score*100))))
	d.SetAttr(arc, "stroke-dasharray", fmt.Sprintf("%.1f %.1f", score*gaugeCircumference, gaugeCircumference))
	d.AddClass(wrapper, "lh-gauge__wrapper--"+ratingForScore(cat.Score))
	return wrapper
}

// RenderCategory builds the full category section: header with gauge and
// description, failed audits grouped by their audit groups, then the
// collapsed passed / manual / not-applicable clumps.
func (r *DefaultCategoryRenderer) RenderCategory(ctx *Context, cat *schemas.Category) *html.Node {
	d := ctx.DOM
	category := d.CreateElement("div", "lh-category")
	d.SetAttr(category, "id", cat.ID)

	category.AppendChild(r.renderCategoryHeader(ctx, cat))
	for _, clump := range r.renderClumps(ctx, cat.AuditRefs) {
		category.AppendChild(clump)
	}
	return category
}

// renderCategoryHeader builds the in-section header: a self-linking gauge
// plus the category description.
func (r *DefaultCategoryRenderer) renderCategoryHeader(ctx *Context, cat *schemas.Category) *html.Node {
	d := ctx.DOM
	header := d.CreateComponent(dom.ComponentCategoryHeader)

	gaugeSlot := d.FindByClass(header, "lh-score__gauge")
	gauge := r.RenderGauge(ctx, cat)
	if a := anchorOf(d, gauge); a != nil {
		d.SafeSetHref(a, "#"+cat.ID)
	}
	gaugeSlot.AppendChild(gauge)

	if cat.Description != "" {
		desc := d.FindByClass(header, "lh-category-header__description")
		desc.AppendChild(d.ConvertMarkdownLinkSnippets(cat.Description))
	}
	return header
}

// auditPartition is the split of a category's audit refs into display clumps.
type auditPartition struct {
	failed        []schemas.AuditRef
	passed        []schemas.AuditRef
	manual        []schemas.AuditRef
	notApplicable []schemas.AuditRef
}

// partitionAuditRefs splits refs by display mode and score. Refs pointing at
// audits missing from the audit map are dropped silently.
func partitionAuditRefs(ctx *Context, refs []schemas.AuditRef) auditPartition {
	var p auditPartition
	for _, ref := range refs {
		audit := ctx.Report.Audits[ref.ID]
		if audit == nil {
			continue
		}
		switch auditRating(audit) {
		case "manual":
			p.manual = append(p.manual, ref)
		case "notapplicable":
			p.notApplicable = append(p.notApplicable, ref)
		case "pass":
			p.passed = append(p.passed, ref)
		default:
			p.failed = append(p.failed, ref)
		}
	}
	return p
}

// renderClumps renders the partitioned audit refs: failed audits first,
// visible and grouped, then the three collapsed clumps.
func (r *DefaultCategoryRenderer) renderClumps(ctx *Context, refs []schemas.AuditRef) []*html.Node {
	p := partitionAuditRefs(ctx, refs)
	var out []*html.Node

	if len(p.failed) > 0 {
		out = append(out, r.renderGroupedAudits(ctx, p.failed))
	}
	for _, clump := range []struct {
		titleKey string
		refs     []schemas.AuditRef
	}{
		{i18n.KeyPassedAudits, p.passed},
		{i18n.KeyManualAudits, p.manual},
		{i18n.KeyNotApplicableAudits, p.notApplicable},
	} {
		if len(clump.refs) == 0 {
			continue
		}
		out = append(out, r.renderClump(ctx, ctx.Strings.Get(clump.titleKey), clump.refs))
	}
	return out
}

// renderGroupedAudits renders refs in order, inserting an audit-group header
// whenever a ref enters a group with registered metadata.
func (r *DefaultCategoryRenderer) renderGroupedAudits(ctx *Context, refs []schemas.AuditRef) *html.Node {
	d := ctx.DOM
	container := d.CreateElement("div", "lh-audit-group--failed")

	var currentGroup string
	target := container
	for _, ref := range refs {
		if ref.Group != currentGroup {
			currentGroup = ref.Group
			target = container
			if group := ctx.Report.CategoryGroups[ref.Group]; group != nil {
				wrapper := d.CreateChildOf(container, "div", "lh-audit-group")
				titleEl := d.CreateChildOf(wrapper, "div", "lh-audit-group__title")
				d.SetText(titleEl, group.Title)
				if group.Description != "" {
					desc := d.CreateChildOf(wrapper, "div", "lh-audit-group__description")
					desc.AppendChild(d.ConvertMarkdownLinkSnippets(group.Description))
				}
				target = wrapper
			}
		}
		target.AppendChild(r.renderAudit(ctx, ref))
	}
	return container
}

// renderClump renders a collapsed clump of audits with a title and count.
func (r *DefaultCategoryRenderer) renderClump(ctx *Context, title string, refs []schemas.AuditRef) *html.Node {
	d := ctx.DOM
	clump := d.CreateComponent(dom.ComponentClump)

	d.SetText(d.FindByClass(clump, "lh-audit-group__title"), title)
	d.SetText(d.FindByClass(clump, "lh-audit-group__itemcount"), fmt.Sprintf("(%d)", len(refs)))

	for _, ref := range refs {
		clump.AppendChild(r.renderAudit(ctx, ref))
	}
	return clump
}

// renderAudit renders one audit row: score icon, title, display value and
// markdown-converted description. Detail payloads beyond that are a
// collaborator concern and not expanded here.
func (r *DefaultCategoryRenderer) renderAudit(ctx *Context, ref schemas.AuditRef) *html.Node {
	d := ctx.DOM
	audit := ctx.Report.Audits[ref.ID]

	el := d.CreateComponent(dom.ComponentAudit)
	d.AddClass(el, "lh-audit--"+auditRating(audit))
	d.SetAttr(el, "id", audit.ID)

	d.SetText(d.FindByClass(el, "lh-audit__title"), audit.Title)
	if audit.DisplayValue != "" {
		d.SetText(d.FindByClass(el, "lh-audit__display-text"), audit.DisplayValue)
	}
	if audit.Description != "" {
		desc := d.FindByClass(el, "lh-audit__description")
		desc.AppendChild(d.ConvertMarkdownLinkSnippets(audit.Description))
	}
	return el
}

// anchorOf returns n when it is an anchor, else the first anchor descendant.
func anchorOf(d *dom.DOM, n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "a" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if a := anchorOf(d, c); a != nil {
			return a
		}
	}
	return nil
}
