package render

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/xkilldash9x/beacon/internal/dom"
)

// ScrollFunc is invoked when an activated summary gauge resolves to a
// category section. It must be idempotent and free of side effects beyond
// bringing the node into view.
type ScrollFunc func(target *html.Node)

// NavigationBinder wires summary-gauge anchors to in-tree navigation. An
// activation never mutates the document address or history; it resolves the
// fragment inside the mount root and scrolls the match into view.
type NavigationBinder struct {
	dom    *dom.DOM
	root   *html.Node
	scroll ScrollFunc
	bound  map[*html.Node]struct{}
}

func newNavigationBinder(d *dom.DOM, root *html.Node, scroll ScrollFunc) *NavigationBinder {
	if scroll == nil {
		scroll = func(*html.Node) {}
	}
	return &NavigationBinder{
		dom:    d,
		root:   root,
		scroll: scroll,
		bound:  make(map[*html.Node]struct{}),
	}
}

// Bind registers an anchor for activation interception. Binding the same
// anchor twice is a no-op.
func (b *NavigationBinder) Bind(anchor *html.Node) {
	if anchor == nil {
		return
	}
	b.bound[anchor] = struct{}{}
}

// Bound reports whether the anchor has an interception handler.
func (b *NavigationBinder) Bound(anchor *html.Node) bool {
	_, ok := b.bound[anchor]
	return ok
}

// Activate runs the interception handler for a primary activation of anchor.
// It returns true when default navigation was prevented. Anchors whose
// current href does not start with "#" keep their default behavior, which
// covers anchors later repurposed for external links. A fragment that
// matches nothing inside the root is silently ignored.
func (b *NavigationBinder) Activate(anchor *html.Node) bool {
	if _, ok := b.bound[anchor]; !ok {
		return false
	}
	href := b.dom.Attr(anchor, "href")
	if !strings.HasPrefix(href, "#") {
		return false
	}
	if target := b.dom.FragmentTarget(b.root, href); target != nil {
		b.scroll(target)
	}
	return true
}
