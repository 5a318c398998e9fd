package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/xkilldash9x/beacon/internal/dom"
)

func TestNavigationBinderScrollsToTarget(t *testing.T) {
	lhr := sampleReport(
		category("performance", "Performance", scorePtr(0.9)),
		category("seo", "SEO", scorePtr(0.8)),
	)

	var scrolled []*html.Node
	renderer := New(nil, WithScrollHandler(func(target *html.Node) {
		scrolled = append(scrolled, target)
	}))
	result, err := renderer.RenderReport(lhr, nil, Options{})
	require.NoError(t, err)

	d := dom.NewDOM()
	static := d.FindByClass(result.Root, "lh-scores-header")
	// Bucket order puts the standard-bucket SEO gauge first.
	anchor := anchorOf(d, d.FindAllByClass(static, "lh-gauge__wrapper")[0])
	require.NotNil(t, anchor)

	// Activation prevents default and scrolls the matching section into view.
	assert.True(t, result.Binder.Activate(anchor))
	require.Len(t, scrolled, 1)
	assert.Equal(t, "seo", d.Attr(scrolled[0], "id"))

	// Handlers are idempotent.
	assert.True(t, result.Binder.Activate(anchor))
	assert.Len(t, scrolled, 2)
}

func TestNavigationBinderLeavesExternalHrefsAlone(t *testing.T) {
	d := dom.NewDOM()
	root := d.CreateFragment()
	binder := newNavigationBinder(d, root, func(*html.Node) {
		t.Fatal("scroll must not fire for external hrefs")
	})

	a := d.CreateElement("a")
	d.SetAttr(a, "href", "https://example.com/details")
	binder.Bind(a)

	// Default behavior proceeds: not intercepted.
	assert.False(t, binder.Activate(a))
}

func TestNavigationBinderUnresolvedTargetIsANoOp(t *testing.T) {
	d := dom.NewDOM()
	root := d.CreateFragment()

	var scrolled int
	binder := newNavigationBinder(d, root, func(*html.Node) { scrolled++ })

	a := d.CreateElement("a")
	d.SetAttr(a, "href", "#nothing-here")
	binder.Bind(a)

	// Still intercepted (no address mutation), but nothing to scroll to.
	assert.True(t, binder.Activate(a))
	assert.Zero(t, scrolled)
}

func TestNavigationBinderIgnoresUnboundAnchors(t *testing.T) {
	d := dom.NewDOM()
	binder := newNavigationBinder(d, d.CreateFragment(), nil)

	a := d.CreateElement("a")
	d.SetAttr(a, "href", "#seo")
	assert.False(t, binder.Activate(a))

	binder.Bind(nil) // tolerated
	assert.False(t, binder.Bound(nil))
}
