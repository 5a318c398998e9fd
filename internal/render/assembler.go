package render

import (
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/xkilldash9x/beacon/api/schemas"
	"github.com/xkilldash9x/beacon/internal/dom"
	"github.com/xkilldash9x/beacon/internal/i18n"
)

// MountMode selects how a render call produces its output tree. It is
// resolved once, before the composition pipeline runs.
type MountMode int

const (
	// CreateRoot builds and returns a detached fragment; the caller owns
	// attachment.
	CreateRoot MountMode = iota
	// AdoptRoot clears and populates the caller-supplied mount node.
	AdoptRoot
)

// Options configures one render call.
type Options struct {
	// OmitTopbar suppresses the topbar section.
	OmitTopbar bool
	// Mode selects detached-fragment vs. adopted-mount output.
	Mode MountMode
}

// Render call failures.
var (
	ErrNilReport    = errors.New("render: report is nil")
	ErrMissingMount = errors.New("render: mount node required in AdoptRoot mode")
)

// Renderer composes reports. It holds only injected collaborators, never
// per-report state, so one Renderer serves concurrent renders.
type Renderer struct {
	dom      *dom.DOM
	logger   *zap.Logger
	scroll   ScrollFunc
	overlay  OverlayFunc
	registry func() *Registry
}

// Option customizes a Renderer.
type Option func(*Renderer)

// WithScrollHandler injects the scroll-into-view callback used by gauge
// activation.
func WithScrollHandler(fn ScrollFunc) Option {
	return func(r *Renderer) { r.scroll = fn }
}

// WithOverlayInstaller replaces the screenshot-overlay collaborator. Passing
// nil disables overlay installation.
func WithOverlayInstaller(fn OverlayFunc) Option {
	return func(r *Renderer) { r.overlay = fn }
}

// WithRegistry replaces the dispatch-table factory. The factory runs once
// per render call, so registrations never leak between reports.
func WithRegistry(factory func() *Registry) Option {
	return func(r *Renderer) { r.registry = factory }
}

// New creates a Renderer with the stock dispatch table and overlay
// collaborator.
func New(logger *zap.Logger, opts ...Option) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := dom.NewDOM()
	r := &Renderer{
		dom:      d,
		logger:   logger.Named("render"),
		overlay:  DefaultOverlayInstaller(d),
		registry: defaultRegistry,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Result is the outcome of one render call.
type Result struct {
	// Root is the detached fragment (CreateRoot) or the adopted mount node
	// (AdoptRoot).
	Root *html.Node
	// Binder holds the navigation handlers registered for this render.
	Binder *NavigationBinder
}

// RenderReport composes the full output tree for one normalized report.
// The call either completes fully or fails before anything is observable;
// in AdoptRoot mode the mount-clearing step is the only boundary after
// which a failure could leave the mount empty.
func (r *Renderer) RenderReport(lhr *schemas.Report, mount *html.Node, opts Options) (*Result, error) {
	if lhr == nil {
		return nil, ErrNilReport
	}

	logger := r.logger.With(
		zap.String("render_id", uuid.NewString()),
		zap.String("url", lhr.FinalURL),
		zap.Int("categories", lhr.Categories.Len()),
	)

	d := r.dom
	ctx := newContext(lhr, d)
	reg := r.registry()

	var container *html.Node
	switch opts.Mode {
	case AdoptRoot:
		if mount == nil {
			return nil, ErrMissingMount
		}
		d.RemoveChildren(mount)
		container = mount
	default:
		container = d.CreateFragment()
	}

	binder := newNavigationBinder(d, container, r.scroll)

	root := d.CreateChildOf(container, "div", "lh-root", "lh-vars")
	root.AppendChild(d.CreateComponent(dom.ComponentStyles))

	if !opts.OmitTopbar {
		root.AppendChild(r.renderTopbar(ctx))
	}

	main := d.CreateChildOf(root, "div", "lh-container")
	main.AppendChild(r.renderHeader(ctx, reg, binder))

	// Category bodies always follow the report's own order; only the
	// summary gauges use bucket order.
	for _, id := range lhr.Categories.IDs() {
		cat := lhr.Categories.Get(id)
		strategy, _ := reg.Lookup(id)
		wrapper := d.CreateChildOf(main, "div", "lh-category-wrapper")
		wrapper.AppendChild(strategy.RenderCategory(ctx, cat))
	}

	// One-shot final screenshot injection, after every category body exists.
	// The pass belongs to the dispatch table's fallback strategy, so a
	// replacement registry brings its own injector.
	if inj, ok := reg.Fallback().(screenshotInjector); ok {
		inj.InjectFinalScreenshot(ctx, main, d.FindByClass(root, "lh-scorescale"))
	}

	main.AppendChild(r.renderFooter(ctx))

	if installOverlay(ctx, container, r.overlay) {
		logger.Debug("Installed full-page screenshot overlay.")
	}

	logger.Debug("Report composition complete.")
	return &Result{Root: container, Binder: binder}, nil
}

// renderTopbar fills the topbar with the final page URL as both label and
// sanitized link target.
func (r *Renderer) renderTopbar(ctx *Context) *html.Node {
	d := ctx.DOM
	topbar := d.CreateComponent(dom.ComponentTopbar)

	link := d.FindByClass(topbar, "lh-topbar__url")
	d.SetText(link, ctx.Report.FinalURL)
	d.SetAttr(link, "title", ctx.Report.FinalURL)
	d.SafeSetHref(link, ctx.Report.FinalURL)
	return topbar
}

// renderHeader builds the report header: the toplevel warnings (when any),
// then either the reduced single-category variant or the duplicated gauge
// strips plus score scale.
func (r *Renderer) renderHeader(ctx *Context, reg *Registry, binder *NavigationBinder) *html.Node {
	d := ctx.DOM
	container := d.CreateComponent(dom.ComponentHeader)
	header := d.FindByClass(container, "lh-header")

	if len(ctx.Report.RunWarnings) > 0 {
		header.AppendChild(r.renderWarnings(ctx))
	}

	if ctx.Report.Categories.Len() < 2 {
		// Solo-category reports skip the gauge strips and the score scale.
		d.AddClass(container, "lh-header--solo-category")
		return container
	}

	// The gauges appear twice: once in the sticky strip that follows the
	// reader down the page, once in the static header. Both sets bind.
	sticky := d.CreateChildOf(header, "div", "lh-sticky-header")
	for _, gauge := range renderScoreGauges(ctx, reg, binder) {
		sticky.AppendChild(gauge)
	}

	static := d.CreateChildOf(header, "div", "lh-scores-header")
	for _, gauge := range renderScoreGauges(ctx, reg, binder) {
		static.AppendChild(gauge)
	}

	header.AppendChild(d.CreateComponent(dom.ComponentScoreScale))
	return container
}

// renderWarnings builds the toplevel warnings block, one markdown-converted
// list item per warning.
func (r *Renderer) renderWarnings(ctx *Context) *html.Node {
	d := ctx.DOM
	warnings := d.CreateComponent(dom.ComponentWarningsToplevel)

	d.SetText(d.FindByClass(warnings, "lh-warnings__msg"), ctx.Strings.Get(i18n.KeyToplevelWarnings))

	list := htmlFirstByTag(warnings, "ul")
	for _, w := range ctx.Report.RunWarnings {
		li := d.CreateChildOf(list, "li")
		li.AppendChild(d.ConvertMarkdownLinkSnippets(w))
	}
	return warnings
}

// renderFooter builds the footer: the six-item metadata block plus version
// attribution.
func (r *Renderer) renderFooter(ctx *Context) *html.Node {
	d := ctx.DOM
	footer := d.CreateComponent(dom.ComponentFooter)

	renderMetaBlock(ctx, d.FindByClass(footer, "lh-meta__items"))

	d.SetText(d.FindByClass(footer, "lh-footer__version-label"),
		ctx.Strings.Get(i18n.KeyGeneratedBy)+" Lighthouse")
	d.SetText(d.FindByClass(footer, "lh-footer__version-number"),
		ctx.Report.LighthouseVersion)
	return footer
}

// htmlFirstByTag returns the first descendant element with the given tag.
func htmlFirstByTag(root *html.Node, tag string) *html.Node {
	var walk func(*html.Node) *html.Node
	walk = func(n *html.Node) *html.Node {
		if n.Type == html.ElementNode && n.Data == tag {
			return n
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if found := walk(c); found != nil {
				return found
			}
		}
		return nil
	}
	return walk(root)
}
