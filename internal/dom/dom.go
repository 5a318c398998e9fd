// Package dom is the tree-construction surface the composition engine builds
// reports with. It wraps golang.org/x/net/html nodes with the small set of
// primitives the renderer needs: element and fragment creation, class and
// attribute helpers, sanitized href writing, markdown link-snippet conversion
// and fragment-scoped lookup.
package dom

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DOM constructs and queries report trees. It is stateless and safe for
// concurrent use by independent renders.
type DOM struct{}

// NewDOM returns a DOM helper.
func NewDOM() *DOM {
	return &DOM{}
}

// -- Construction --

// CreateFragment returns a detached container node. Children appended to it
// form the renderable fragment handed back to the caller.
func (d *DOM) CreateFragment() *html.Node {
	return &html.Node{Type: html.DocumentNode}
}

// CreateElement creates an element with optional class names.
func (d *DOM) CreateElement(tag string, classes ...string) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	if len(classes) > 0 {
		d.SetAttr(n, "class", strings.Join(classes, " "))
	}
	return n
}

// CreateChildOf creates an element and appends it to parent.
func (d *DOM) CreateChildOf(parent *html.Node, tag string, classes ...string) *html.Node {
	n := d.CreateElement(tag, classes...)
	parent.AppendChild(n)
	return n
}

// CreateText appends a text node to parent.
func (d *DOM) CreateText(parent *html.Node, text string) *html.Node {
	t := &html.Node{Type: html.TextNode, Data: text}
	parent.AppendChild(t)
	return t
}

// SetText replaces the children of n with a single text node.
func (d *DOM) SetText(n *html.Node, text string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	d.CreateText(n, text)
}

// RemoveChildren detaches all children of n. Used to make re-renders against
// one mount node replace instead of append.
func (d *DOM) RemoveChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}

// -- Attributes and classes --

// Attr returns the value of the named attribute, or "".
func (d *DOM) Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// SetAttr sets or replaces the named attribute.
func (d *DOM) SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// AddClass appends class names to the element's class attribute.
func (d *DOM) AddClass(n *html.Node, classes ...string) {
	existing := d.Attr(n, "class")
	joined := strings.TrimSpace(existing + " " + strings.Join(classes, " "))
	d.SetAttr(n, "class", joined)
}

// HasClass reports whether the element carries the class name.
func (d *DOM) HasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(d.Attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// -- Sanitized links --

// allowedSchemes are the only URL schemes written through SafeSetHref.
// Everything else (javascript:, data:, vbscript:, ...) is dropped.
var allowedSchemes = map[string]bool{
	"http":  true,
	"https": true,
}

// SafeSetHref writes href onto an anchor only when it is a same-document
// fragment or parses to an allowlisted scheme. Hostile values coming in
// through audit data never reach the attribute; the anchor is left inert
// with href="#" instead.
func (d *DOM) SafeSetHref(a *html.Node, href string) {
	if strings.HasPrefix(href, "#") {
		d.SetAttr(a, "href", href)
		return
	}
	parsed, err := url.Parse(href)
	if err != nil || !allowedSchemes[parsed.Scheme] {
		d.SetAttr(a, "href", "#")
		return
	}
	d.SetAttr(a, "href", parsed.String())
}

// markdownLinkPattern matches [label](http...) snippets. Only absolute
// http(s) targets are recognized, mirroring the source documents.
var markdownLinkPattern = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^\s)]+)\)`)

// ConvertMarkdownLinkSnippets converts a description string containing
// [label](url) snippets into a span of text and anchor nodes. Anchors open
// in a new context and carry rel="noopener" so report links cannot reach
// back into the host page.
func (d *DOM) ConvertMarkdownLinkSnippets(text string) *html.Node {
	root := d.CreateElement("span")

	rest := text
	for {
		loc := markdownLinkPattern.FindStringSubmatchIndex(rest)
		if loc == nil {
			break
		}
		if pre := rest[:loc[0]]; pre != "" {
			d.CreateText(root, pre)
		}
		label := rest[loc[2]:loc[3]]
		target := rest[loc[4]:loc[5]]

		a := d.CreateChildOf(root, "a")
		d.SetAttr(a, "rel", "noopener")
		d.SetAttr(a, "target", "_blank")
		d.SafeSetHref(a, target)
		d.CreateText(a, label)

		rest = rest[loc[1]:]
	}
	if rest != "" {
		d.CreateText(root, rest)
	}
	return root
}

// -- Lookup --

// FindByID resolves an element by id within root, or nil.
func (d *DOM) FindByID(root *html.Node, id string) *html.Node {
	return htmlquery.FindOne(root, fmt.Sprintf("//*[@id=%s]", xpathString(id)))
}

// FragmentTarget resolves a same-document href ("#id") inside root. Returns
// nil for non-fragment hrefs or when nothing matches.
func (d *DOM) FragmentTarget(root *html.Node, href string) *html.Node {
	if !strings.HasPrefix(href, "#") || len(href) < 2 {
		return nil
	}
	return d.FindByID(root, href[1:])
}

// FindByClass returns the first element under root carrying the class.
func (d *DOM) FindByClass(root *html.Node, class string) *html.Node {
	return htmlquery.FindOne(root, classXPath(class))
}

// FindAllByClass returns every element under root carrying the class, in
// document order.
func (d *DOM) FindAllByClass(root *html.Node, class string) []*html.Node {
	return htmlquery.Find(root, classXPath(class))
}

// TextContent returns the concatenated text of the subtree.
func (d *DOM) TextContent(n *html.Node) string {
	return htmlquery.InnerText(n)
}

func classXPath(class string) string {
	return fmt.Sprintf(
		"//*[contains(concat(' ', normalize-space(@class), ' '), concat(' ', %s, ' '))]",
		xpathString(class),
	)
}

// xpathString quotes s as an XPath string literal. Ids and class names never
// contain both quote kinds, so concat() splicing is unnecessary.
func xpathString(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	return `"` + s + `"`
}

// -- Serialization --

// Serialize renders the subtree (or the children of a fragment) to HTML.
func (d *DOM) Serialize(n *html.Node) ([]byte, error) {
	var buf bytes.Buffer
	if n.Type == html.DocumentNode {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return nil, fmt.Errorf("serializing fragment: %w", err)
			}
		}
		return buf.Bytes(), nil
	}
	if err := html.Render(&buf, n); err != nil {
		return nil, fmt.Errorf("serializing node: %w", err)
	}
	return buf.Bytes(), nil
}
