package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/xkilldash9x/beacon/api/schemas"
	"github.com/xkilldash9x/beacon/internal/dom"
)

func renderFragment(t *testing.T, lhr *schemas.Report, opts Options) (*dom.DOM, *Result) {
	t.Helper()
	renderer := New(nil)
	result, err := renderer.RenderReport(lhr, nil, opts)
	require.NoError(t, err)
	return dom.NewDOM(), result
}

func TestRenderReportMultiCategoryHeader(t *testing.T) {
	lhr := sampleReport(
		category("performance", "Performance", scorePtr(0.9)),
		category("seo", "SEO", scorePtr(0.8)),
		category("accessibility", "Accessibility", scorePtr(0.7)),
	)
	d, result := renderFragment(t, lhr, Options{})

	// Both gauge strips carry one gauge per category.
	sticky := d.FindByClass(result.Root, "lh-sticky-header")
	static := d.FindByClass(result.Root, "lh-scores-header")
	require.NotNil(t, sticky)
	require.NotNil(t, static)
	assert.Len(t, d.FindAllByClass(sticky, "lh-gauge__wrapper"), 3)
	assert.Len(t, d.FindAllByClass(static, "lh-gauge__wrapper"), 3)

	assert.NotNil(t, d.FindByClass(result.Root, "lh-scorescale"))
	assert.Nil(t, d.FindByClass(result.Root, "lh-header--solo-category"))
}

func TestRenderReportSoloCategoryHeader(t *testing.T) {
	lhr := sampleReport(category("performance", "Performance", scorePtr(0.9)))
	d, result := renderFragment(t, lhr, Options{})

	// The reduced header variant: marker present, no strips, no score scale.
	assert.NotNil(t, d.FindByClass(result.Root, "lh-header--solo-category"))
	assert.Nil(t, d.FindByClass(result.Root, "lh-sticky-header"))
	assert.Nil(t, d.FindByClass(result.Root, "lh-scores-header"))
	assert.Nil(t, d.FindByClass(result.Root, "lh-scorescale"))

	// The category body still renders, with its in-section gauge.
	assert.NotNil(t, d.FindByID(result.Root, "performance"))
}

func TestRenderReportWarnings(t *testing.T) {
	t.Run("no warnings, no block", func(t *testing.T) {
		lhr := sampleReport(category("seo", "SEO", scorePtr(0.8)))
		d, result := renderFragment(t, lhr, Options{})
		assert.Nil(t, d.FindByClass(result.Root, "lh-warnings--toplevel"))
	})

	t.Run("one item per warning", func(t *testing.T) {
		lhr := sampleReport(category("seo", "SEO", scorePtr(0.8)))
		lhr.RunWarnings = []string{
			"The page loaded too slowly.",
			"See [the docs](https://example.com/docs) for details.",
		}
		d, result := renderFragment(t, lhr, Options{})

		block := d.FindByClass(result.Root, "lh-warnings--toplevel")
		require.NotNil(t, block)

		items := 0
		var count func(n *html.Node)
		count = func(n *html.Node) {
			if n.Type == html.ElementNode && n.Data == "li" {
				items++
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				count(c)
			}
		}
		count(block)
		assert.Equal(t, 2, items)

		// Markdown snippets become real anchors.
		out, err := d.Serialize(block)
		require.NoError(t, err)
		assert.Contains(t, string(out), `href="https://example.com/docs"`)
	})
}

func TestRenderReportTopbar(t *testing.T) {
	lhr := sampleReport(category("seo", "SEO", scorePtr(0.8)))

	d, result := renderFragment(t, lhr, Options{})
	link := d.FindByClass(result.Root, "lh-topbar__url")
	require.NotNil(t, link)
	assert.Equal(t, "https://example.com/", d.Attr(link, "href"))
	assert.Equal(t, "https://example.com/", d.TextContent(link))

	_, result = renderFragment(t, lhr, Options{OmitTopbar: true})
	assert.Nil(t, d.FindByClass(result.Root, "lh-topbar"))
}

func TestRenderReportCategoryBodiesKeepReportOrder(t *testing.T) {
	// Gauges reorder into buckets; bodies must not.
	lhr := sampleReport(
		category("lighthouse-plugin-soup", "Soup", scorePtr(0.3)),
		category("performance", "Performance", scorePtr(0.9)),
		category("seo", "SEO", scorePtr(0.8)),
	)
	d, result := renderFragment(t, lhr, Options{})

	var ids []string
	for _, cat := range d.FindAllByClass(result.Root, "lh-category") {
		ids = append(ids, d.Attr(cat, "id"))
	}
	assert.Equal(t, []string{"lighthouse-plugin-soup", "performance", "seo"}, ids)
}

func TestRenderReportAdoptRootIsIdempotent(t *testing.T) {
	lhr := sampleReport(
		category("performance", "Performance", scorePtr(0.9)),
		category("seo", "SEO", scorePtr(0.8)),
	)
	d := dom.NewDOM()
	renderer := New(nil)

	mount := d.CreateElement("div")
	_, err := renderer.RenderReport(lhr, mount, Options{Mode: AdoptRoot})
	require.NoError(t, err)
	_, err = renderer.RenderReport(lhr, mount, Options{Mode: AdoptRoot})
	require.NoError(t, err)
	twice, err := d.Serialize(mount)
	require.NoError(t, err)

	fresh := d.CreateElement("div")
	_, err = renderer.RenderReport(lhr, fresh, Options{Mode: AdoptRoot})
	require.NoError(t, err)
	once, err := d.Serialize(fresh)
	require.NoError(t, err)

	if diff := cmp.Diff(string(once), string(twice)); diff != "" {
		t.Errorf("re-render diverged from fresh render (-once +twice):\n%s", diff)
	}
}

func TestRenderReportFailures(t *testing.T) {
	renderer := New(nil)

	_, err := renderer.RenderReport(nil, nil, Options{})
	assert.ErrorIs(t, err, ErrNilReport)

	lhr := sampleReport(category("seo", "SEO", scorePtr(0.8)))
	_, err = renderer.RenderReport(lhr, nil, Options{Mode: AdoptRoot})
	assert.ErrorIs(t, err, ErrMissingMount)
}

func TestRenderReportOverlayInstallation(t *testing.T) {
	t.Run("well-formed artifact installs once", func(t *testing.T) {
		lhr := withScreenshot(sampleReport(
			category("performance", "Performance", scorePtr(0.9)),
			category("seo", "SEO", scorePtr(0.8)),
		))

		calls := 0
		var sawRoot *html.Node
		renderer := New(nil, WithOverlayInstaller(func(root *html.Node, fps *schemas.FullPageScreenshot) {
			calls++
			sawRoot = root
			assert.Equal(t, 412, fps.Screenshot.Width)
			// The tree is complete by the time the collaborator runs.
			assert.NotNil(t, dom.NewDOM().FindByClass(root, "lh-footer"))
		}))

		result, err := renderer.RenderReport(lhr, nil, Options{})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
		assert.Same(t, result.Root, sawRoot)
	})

	t.Run("absent artifact skips the step", func(t *testing.T) {
		lhr := sampleReport(category("seo", "SEO", scorePtr(0.8)))
		calls := 0
		renderer := New(nil, WithOverlayInstaller(func(*html.Node, *schemas.FullPageScreenshot) { calls++ }))
		_, err := renderer.RenderReport(lhr, nil, Options{})
		require.NoError(t, err)
		assert.Zero(t, calls)
	})

	t.Run("malformed artifact skips the step", func(t *testing.T) {
		lhr := sampleReport(category("seo", "SEO", scorePtr(0.8)))
		lhr.Audits[schemas.AuditFullPageScreenshot] = &schemas.Audit{
			ID:      schemas.AuditFullPageScreenshot,
			Details: []byte(`{"type": "wrong-type", "screenshot": {"data": "data:x"}}`),
		}
		calls := 0
		renderer := New(nil, WithOverlayInstaller(func(*html.Node, *schemas.FullPageScreenshot) { calls++ }))
		_, err := renderer.RenderReport(lhr, nil, Options{})
		require.NoError(t, err)
		assert.Zero(t, calls)
	})
}

func TestRenderReportFooter(t *testing.T) {
	lhr := sampleReport(category("seo", "SEO", scorePtr(0.8)))
	d, result := renderFragment(t, lhr, Options{})

	footer := d.FindByClass(result.Root, "lh-footer")
	require.NotNil(t, footer)
	assert.Equal(t, "10.4.0", d.TextContent(d.FindByClass(footer, "lh-footer__version-number")))

	// The metadata block always carries its six fixed items.
	assert.Len(t, d.FindAllByClass(footer, "lh-meta__item"), 6)

	// The footer sits inside the main region, a sibling of the header and
	// the category wrappers.
	main := d.FindByClass(result.Root, "lh-container")
	require.NotNil(t, main)
	inMain := false
	for p := footer.Parent; p != nil; p = p.Parent {
		if p == main {
			inMain = true
			break
		}
	}
	assert.True(t, inMain, "footer must be attached under lh-container")
}

// recordingInjectorRenderer is a fallback strategy that takes over the
// final-screenshot pass.
type recordingInjectorRenderer struct {
	DefaultCategoryRenderer
	injections int
}

func (r *recordingInjectorRenderer) InjectFinalScreenshot(ctx *Context, fallback, scorescale *html.Node) bool {
	r.injections++
	return false
}

func TestRenderReportScreenshotInjectionUsesRegistryFallback(t *testing.T) {
	lhr := sampleReport(
		category("performance", "Performance", scorePtr(0.9)),
		category("seo", "SEO", scorePtr(0.8)),
	)
	lhr.Audits[auditFinalScreenshot] = &schemas.Audit{
		ID:      auditFinalScreenshot,
		Details: []byte(`{"type": "screenshot", "data": "data:image/jpeg;base64,BBBB"}`),
	}

	custom := &recordingInjectorRenderer{}
	renderer := New(nil, WithRegistry(func() *Registry { return NewRegistry(custom) }))

	result, err := renderer.RenderReport(lhr, nil, Options{})
	require.NoError(t, err)

	// The replacement fallback owns the pass; the stock image never appears.
	assert.Equal(t, 1, custom.injections)
	assert.Nil(t, dom.NewDOM().FindByClass(result.Root, "lh-final-ss-image"))
}

func TestRenderReportInjectsFinalScreenshot(t *testing.T) {
	lhr := sampleReport(
		category("performance", "Performance", scorePtr(0.9)),
		category("seo", "SEO", scorePtr(0.8)),
	)
	lhr.Audits[auditFinalScreenshot] = &schemas.Audit{
		ID:      auditFinalScreenshot,
		Details: []byte(`{"type": "screenshot", "data": "data:image/jpeg;base64,BBBB"}`),
	}
	d, result := renderFragment(t, lhr, Options{})

	img := d.FindByClass(result.Root, "lh-final-ss-image")
	require.NotNil(t, img)
	assert.Equal(t, "data:image/jpeg;base64,BBBB", d.Attr(img, "src"))

	// Positioned immediately before the score-scale legend.
	scale := d.FindByClass(result.Root, "lh-scorescale")
	require.NotNil(t, scale)
	assert.Same(t, img, prevElement(scale))
}

func prevElement(n *html.Node) *html.Node {
	for p := n.PrevSibling; p != nil; p = p.PrevSibling {
		if p.Type == html.ElementNode {
			return p
		}
	}
	return nil
}
