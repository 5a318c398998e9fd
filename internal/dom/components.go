package dom

import "golang.org/x/net/html"

// Component names one of the fixed report building blocks. Renderers create
// a component, then fill its inner nodes by class lookup.
type Component string

// The component set the composition engine consumes.
const (
	ComponentStyles           Component = "styles"
	ComponentTopbar           Component = "topbar"
	ComponentHeader           Component = "header"
	ComponentFooter           Component = "footer"
	ComponentWarningsToplevel Component = "warningsToplevel"
	ComponentScoreScale       Component = "scorescale"
	ComponentGauge            Component = "gauge"
	ComponentGaugePWA         Component = "gaugePwa"
	ComponentChevron          Component = "chevron"
	ComponentClump            Component = "clump"
	ComponentAudit            Component = "audit"
	ComponentMetaItem         Component = "metaItem"
	ComponentCategoryHeader   Component = "categoryHeader"
)

// CreateComponent builds a fresh subtree for the named component. Unknown
// names return an empty div so a renderer bug degrades to a blank block
// rather than a crash.
func (d *DOM) CreateComponent(name Component) *html.Node {
	switch name {
	case ComponentStyles:
		return d.createStyles()
	case ComponentTopbar:
		return d.createTopbar()
	case ComponentHeader:
		return d.createHeader()
	case ComponentFooter:
		return d.createFooter()
	case ComponentWarningsToplevel:
		return d.createWarningsToplevel()
	case ComponentScoreScale:
		return d.createScoreScale()
	case ComponentGauge:
		return d.createGauge()
	case ComponentGaugePWA:
		return d.createGaugePWA()
	case ComponentChevron:
		return d.createChevron()
	case ComponentClump:
		return d.createClump()
	case ComponentAudit:
		return d.createAudit()
	case ComponentMetaItem:
		return d.createMetaItem()
	case ComponentCategoryHeader:
		return d.createCategoryHeader()
	default:
		return d.CreateElement("div")
	}
}

func (d *DOM) createStyles() *html.Node {
	style := d.CreateElement("style")
	d.CreateText(style, baseStylesheet)
	return style
}

func (d *DOM) createTopbar() *html.Node {
	topbar := d.CreateElement("div", "lh-topbar")

	logo := d.CreateChildOf(topbar, "div", "lh-topbar__logo")
	d.SetAttr(logo, "role", "img")
	d.SetAttr(logo, "title", "Beacon")

	a := d.CreateChildOf(topbar, "a", "lh-topbar__url")
	d.SetAttr(a, "target", "_blank")
	d.SetAttr(a, "rel", "noopener")
	return topbar
}

func (d *DOM) createHeader() *html.Node {
	container := d.CreateElement("div", "lh-header-container")
	d.CreateChildOf(container, "div", "lh-header")
	return container
}

func (d *DOM) createFooter() *html.Node {
	footer := d.CreateElement("footer", "lh-footer")
	d.CreateChildOf(footer, "ul", "lh-meta__items")

	version := d.CreateChildOf(footer, "div", "lh-footer__version")
	d.CreateChildOf(version, "span", "lh-footer__version-label")
	d.CreateChildOf(version, "span", "lh-footer__version-number")
	return footer
}

func (d *DOM) createWarningsToplevel() *html.Node {
	warnings := d.CreateElement("div", "lh-warnings", "lh-warnings--toplevel")
	d.CreateChildOf(warnings, "p", "lh-warnings__msg")
	d.CreateChildOf(warnings, "ul")
	return warnings
}

func (d *DOM) createScoreScale() *html.Node {
	scale := d.CreateElement("div", "lh-scorescale")

	for _, r := range []struct{ class, label string }{
		{"lh-scorescale-range--fail", "0–49"},
		{"lh-scorescale-range--average", "50–89"},
		{"lh-scorescale-range--pass", "90–100"},
	} {
		span := d.CreateChildOf(scale, "span", "lh-scorescale-range", r.class)
		d.CreateText(span, r.label)
	}
	return scale
}

func (d *DOM) createGauge() *html.Node {
	wrapper := d.CreateElement("a", "lh-gauge__wrapper")

	svgWrapper := d.CreateChildOf(wrapper, "div", "lh-gauge__svg-wrapper")
	svg := d.CreateChildOf(svgWrapper, "svg", "lh-gauge")
	d.SetAttr(svg, "viewBox", "0 0 120 120")

	base := d.CreateChildOf(svg, "circle", "lh-gauge-base")
	d.SetAttr(base, "r", "56")
	d.SetAttr(base, "cx", "60")
	d.SetAttr(base, "cy", "60")
	d.SetAttr(base, "stroke-width", "8")

	arc := d.CreateChildOf(svg, "circle", "lh-gauge-arc")
	d.SetAttr(arc, "r", "56")
	d.SetAttr(arc, "cx", "60")
	d.SetAttr(arc, "cy", "60")
	d.SetAttr(arc, "stroke-width", "8")

	d.CreateChildOf(wrapper, "div", "lh-gauge__percentage")
	d.CreateChildOf(wrapper, "div", "lh-gauge__label")
	return wrapper
}

func (d *DOM) createGaugePWA() *html.Node {
	wrapper := d.CreateElement("a", "lh-gauge--pwa__wrapper")

	svg := d.CreateChildOf(wrapper, "svg", "lh-gauge--pwa")
	d.SetAttr(svg, "viewBox", "0 0 60 60")
	d.CreateChildOf(svg, "rect", "lh-gauge--pwa__disc")
	d.CreateChildOf(svg, "g", "lh-gauge--pwa__icons")

	d.CreateChildOf(wrapper, "div", "lh-gauge__label")
	return wrapper
}

func (d *DOM) createChevron() *html.Node {
	svg := d.CreateElement("svg", "lh-chevron")
	d.SetAttr(svg, "viewBox", "0 0 100 100")
	g := d.CreateChildOf(svg, "g", "lh-chevron__lines")
	left := d.CreateChildOf(g, "path", "lh-chevron__line", "lh-chevron__line-left")
	d.SetAttr(left, "d", "M10 50h40")
	right := d.CreateChildOf(g, "path", "lh-chevron__line", "lh-chevron__line-right")
	d.SetAttr(right, "d", "M90 50H50")
	return svg
}

func (d *DOM) createClump() *html.Node {
	clump := d.CreateElement("details", "lh-clump")
	summary := d.CreateChildOf(clump, "summary")
	header := d.CreateChildOf(summary, "div", "lh-audit-group__header")
	d.CreateChildOf(header, "span", "lh-audit-group__title")
	d.CreateChildOf(header, "span", "lh-audit-group__itemcount")
	return clump
}

func (d *DOM) createAudit() *html.Node {
	audit := d.CreateElement("div", "lh-audit")

	header := d.CreateChildOf(audit, "div", "lh-audit__header")
	d.CreateChildOf(header, "span", "lh-audit__score-icon")
	d.CreateChildOf(header, "span", "lh-audit__title")
	d.CreateChildOf(header, "span", "lh-audit__display-text")

	d.CreateChildOf(audit, "div", "lh-audit__description")
	return audit
}

func (d *DOM) createMetaItem() *html.Node {
	item := d.CreateElement("li", "lh-meta__item")
	d.CreateChildOf(item, "span", "lh-meta__item-value")
	return item
}

func (d *DOM) createCategoryHeader() *html.Node {
	header := d.CreateElement("div", "lh-category-header")
	d.CreateChildOf(header, "div", "lh-score__gauge")
	d.CreateChildOf(header, "div", "lh-category-header__description")
	return header
}

// baseStylesheet is the self-contained styling emitted ahead of the report
// tree. Kept deliberately small; host pages may layer their own styles on
// top of the lh-* class contract.
const baseStylesheet = `
.lh-root { font-family: Roboto, Helvetica, Arial, sans-serif; color: #212121; }
.lh-topbar { display: flex; align-items: center; padding: 8px 16px; background: #fafafa; }
.lh-topbar__url { margin-left: 8px; text-decoration: none; color: inherit; }
.lh-warnings--toplevel { background: #fff3e0; padding: 8px 16px; }
.lh-scores-header { display: flex; flex-wrap: wrap; justify-content: center; }
.lh-sticky-header { position: sticky; top: 0; display: none; }
.lh-gauge__wrapper { display: inline-flex; flex-direction: column; align-items: center; text-decoration: none; color: inherit; padding: 8px; }
.lh-gauge { width: 120px; height: 120px; }
.lh-gauge-base { fill: none; stroke: #e0e0e0; }
.lh-gauge-arc { fill: none; stroke-linecap: round; transform: rotate(-90deg); transform-origin: 50% 50%; }
.lh-gauge__wrapper--pass .lh-gauge-arc { stroke: #0c6; }
.lh-gauge__wrapper--average .lh-gauge-arc { stroke: #fa3; }
.lh-gauge__wrapper--fail .lh-gauge-arc { stroke: #f33; }
.lh-gauge__wrapper--not-applicable .lh-gauge-arc { stroke: #9e9e9e; }
.lh-scorescale { display: flex; gap: 16px; justify-content: center; padding: 8px; }
.lh-category { padding: 24px 16px; }
.lh-audit { padding: 4px 0; border-bottom: 1px solid #eee; }
.lh-clump > summary { cursor: pointer; }
.lh-footer { padding: 16px; background: #fafafa; }
.lh-meta__items { list-style: none; display: flex; flex-wrap: wrap; gap: 12px; padding: 0; }
`
