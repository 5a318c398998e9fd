package render

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/xkilldash9x/beacon/api/schemas"
)

// PluginPrefix is the naming convention identifying third-party plugin
// categories. Plugin categories always group last, regardless of which
// strategy renders them.
const PluginPrefix = "lighthouse-plugin-"

// IsPluginCategory reports whether a category id follows the plugin naming
// convention.
func IsPluginCategory(id string) bool {
	return strings.HasPrefix(id, PluginPrefix)
}

// CategoryRenderer is the strategy a category is rendered with. Exactly one
// strategy applies per category, chosen by id lookup with fallback to the
// default.
type CategoryRenderer interface {
	// RenderCategory builds the full category section body.
	RenderCategory(ctx *Context, cat *schemas.Category) *html.Node
	// RenderGauge builds the category's summary indicator. The returned
	// subtree contains (or is) an anchor targeting the category section.
	RenderGauge(ctx *Context, cat *schemas.Category) *html.Node
}

// Bucket is the ordering group a summary indicator lands in.
type Bucket int

// Buckets in final display order.
const (
	BucketStandard Bucket = iota
	BucketSpecialized
	BucketPlugin
)

type registration struct {
	renderer  CategoryRenderer
	isDefault bool
}

// Registry maps category ids to renderer strategies. Each registration
// carries an explicit is-default flag, so bucket classification never
// depends on comparing renderer identities.
type Registry struct {
	fallback registration
	byID     map[string]registration
}

// NewRegistry creates a registry whose unregistered categories fall back to
// fallback, which classifies as the default (standard-bucket) strategy.
func NewRegistry(fallback CategoryRenderer) *Registry {
	return &Registry{
		fallback: registration{renderer: fallback, isDefault: true},
		byID:     make(map[string]registration),
	}
}

// Register binds a specialized strategy to a category id.
func (r *Registry) Register(id string, cr CategoryRenderer) {
	r.byID[id] = registration{renderer: cr, isDefault: false}
}

// RegisterDefault binds a strategy to an id while keeping its default
// classification. Useful when a category needs the stock rendering under a
// non-standard id.
func (r *Registry) RegisterDefault(id string, cr CategoryRenderer) {
	r.byID[id] = registration{renderer: cr, isDefault: true}
}

// Fallback returns the default strategy unregistered categories resolve to.
func (r *Registry) Fallback() CategoryRenderer {
	return r.fallback.renderer
}

// Lookup returns the strategy for a category id and whether it is the
// default strategy. Never nil.
func (r *Registry) Lookup(id string) (CategoryRenderer, bool) {
	if reg, ok := r.byID[id]; ok {
		return reg.renderer, reg.isDefault
	}
	return r.fallback.renderer, r.fallback.isDefault
}

// Classify places a category id into its ordering bucket. The plugin naming
// convention is checked first and wins unconditionally; otherwise the
// registration's is-default flag decides.
func (r *Registry) Classify(id string) Bucket {
	if IsPluginCategory(id) {
		return BucketPlugin
	}
	if _, isDefault := r.Lookup(id); isDefault {
		return BucketStandard
	}
	return BucketSpecialized
}

// defaultRegistry builds the per-render dispatch table: the stock renderer
// as fallback plus the fixed set of specialized domains.
func defaultRegistry() *Registry {
	stock := &DefaultCategoryRenderer{}
	reg := NewRegistry(stock)
	reg.Register("performance", &PerformanceCategoryRenderer{DefaultCategoryRenderer: *stock})
	reg.Register("pwa", &InstallabilityCategoryRenderer{DefaultCategoryRenderer: *stock})
	return reg
}
