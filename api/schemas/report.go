package schemas

import (
	"encoding/json"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// -- Report Schemas --

// GatherMode describes how the underlying audit data was collected. It is
// passed through to category renderers, which may adjust their presentation
// (e.g. omit load-based metrics for a snapshot).
type GatherMode string

// Constants for the supported gather modes.
const (
	GatherModeNavigation GatherMode = "navigation" // A full page load was observed.
	GatherModeTimespan   GatherMode = "timespan"   // An arbitrary user-defined window was observed.
	GatherModeSnapshot   GatherMode = "snapshot"   // A single point-in-time capture, no load.
)

// Report is the canonical, normalized form of one audit result document.
// It is constructed once per render call and treated as read-only afterwards.
type Report struct {
	// LighthouseVersion is the version of the tool that produced the document.
	LighthouseVersion string `json:"lighthouseVersion"`

	RequestedURL string `json:"requestedUrl,omitempty"` // The URL the run was asked to audit.
	FinalURL     string `json:"finalUrl"`               // The URL audited after redirects.

	// FetchTime is the capture timestamp, ISO 8601 as emitted by the producer.
	FetchTime string `json:"fetchTime"`

	// GatherMode is optional in older documents; empty means navigation.
	GatherMode GatherMode `json:"gatherMode,omitempty"`

	// UserAgent identifies the host browser that ran the audits.
	UserAgent string `json:"userAgent"`

	Environment    Environment     `json:"environment"`
	ConfigSettings *ConfigSettings `json:"configSettings"`

	// Categories preserves the document's own ordering, which is the display
	// order for category bodies and the within-bucket order for gauges.
	Categories CategoryMap `json:"categories"`

	// CategoryGroups clusters related audits inside a category body. Optional.
	CategoryGroups map[string]*CategoryGroup `json:"categoryGroups,omitempty"`

	// Audits maps audit id to its result, including the optional singleton
	// full-page-screenshot artifact.
	Audits map[string]*Audit `json:"audits"`

	// RunWarnings are human-readable, ordered, and may legitimately be empty.
	RunWarnings []string `json:"runWarnings"`

	I18n I18n `json:"i18n"`
}

// Category is one scored grouping of related audits. Its id doubles as the
// anchor fragment linking the summary gauge to the category section.
type Category struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	// Score is nil when the category is not applicable or erroring.
	Score *float64 `json:"score"`

	ManualDescription string     `json:"manualDescription,omitempty"`
	AuditRefs         []AuditRef `json:"auditRefs"`
}

// AuditRef associates an audit with a category, carrying per-category weight
// and optional group membership.
type AuditRef struct {
	ID      string  `json:"id"`
	Weight  float64 `json:"weight"`
	Group   string  `json:"group,omitempty"`
	Acronym string  `json:"acronym,omitempty"`
}

// CategoryGroup labels a cluster of audits within a category body.
type CategoryGroup struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Audit is a single check result. Details is a polymorphic payload; the only
// variant the composition engine itself inspects is the full-page screenshot
// (see FullPageScreenshot).
type Audit struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description,omitempty"`
	Score            *float64 `json:"score"`
	ScoreDisplayMode string   `json:"scoreDisplayMode,omitempty"`
	DisplayValue     string   `json:"displayValue,omitempty"`

	Details json.RawMessage `json:"details,omitempty"`
}

// Environment captures facts about the machine and browser that ran the audits.
type Environment struct {
	NetworkUserAgent string  `json:"networkUserAgent"`
	HostUserAgent    string  `json:"hostUserAgent"`
	BenchmarkIndex   float64 `json:"benchmarkIndex"`

	// Credits maps contributing-tool name to its version, e.g. "axe-core".
	Credits map[string]string `json:"credits,omitempty"`
}

// ConfigSettings records the run configuration relevant to presentation.
type ConfigSettings struct {
	Locale           string     `json:"locale"`
	Channel          string     `json:"channel,omitempty"`
	FormFactor       string     `json:"formFactor,omitempty"`
	ThrottlingMethod string     `json:"throttlingMethod,omitempty"`
	Throttling       Throttling `json:"throttling"`

	ScreenEmulation ScreenEmulation `json:"screenEmulation"`
}

// Throttling describes the simulated network and CPU conditions of the run.
type Throttling struct {
	RTTMs                  float64 `json:"rttMs,omitempty"`
	RequestLatencyMs       float64 `json:"requestLatencyMs,omitempty"`
	ThroughputKbps         float64 `json:"throughputKbps,omitempty"`
	DownloadThroughputKbps float64 `json:"downloadThroughputKbps,omitempty"`
	UploadThroughputKbps   float64 `json:"uploadThroughputKbps,omitempty"`
	CPUSlowdownMultiplier  float64 `json:"cpuSlowdownMultiplier,omitempty"`
}

// ScreenEmulation describes the emulated viewport, if any.
type ScreenEmulation struct {
	Mobile   bool `json:"mobile"`
	Disabled bool `json:"disabled"`
}

// I18n carries the locale of the document plus renderer string overrides.
type I18n struct {
	RendererFormattedStrings map[string]string `json:"rendererFormattedStrings,omitempty"`
}

// -- Ordered Category Map --

// CategoryMap is a map from category id to Category that additionally
// preserves the key order of the source document. Standard-library map
// decoding would discard that order, and display order depends on it.
type CategoryMap struct {
	order []string
	byID  map[string]*Category
}

// NewCategoryMap builds a CategoryMap from an explicit ordering. Intended for
// tests and programmatic construction.
func NewCategoryMap(categories ...*Category) CategoryMap {
	m := CategoryMap{byID: make(map[string]*Category, len(categories))}
	for _, c := range categories {
		if _, dup := m.byID[c.ID]; dup {
			continue
		}
		m.order = append(m.order, c.ID)
		m.byID[c.ID] = c
	}
	return m
}

// Len returns the number of categories.
func (m *CategoryMap) Len() int { return len(m.order) }

// IDs returns category ids in document order. The caller must not mutate it.
func (m *CategoryMap) IDs() []string { return m.order }

// Get returns the category for id, or nil if absent.
func (m *CategoryMap) Get(id string) *Category { return m.byID[id] }

// All iterates categories in document order.
func (m *CategoryMap) All(yield func(*Category) bool) {
	for _, id := range m.order {
		if !yield(m.byID[id]) {
			return
		}
	}
}

// UnmarshalJSON decodes a JSON object of categories while retaining key order.
func (m *CategoryMap) UnmarshalJSON(data []byte) error {
	m.order = nil
	m.byID = make(map[string]*Category)

	iter := jsoniter.ConfigCompatibleWithStandardLibrary.BorrowIterator(data)
	defer jsoniter.ConfigCompatibleWithStandardLibrary.ReturnIterator(iter)

	ok := iter.ReadMapCB(func(it *jsoniter.Iterator, key string) bool {
		var c Category
		it.ReadVal(&c)
		if c.ID == "" {
			// Older documents omit the id inside the value; the key is canonical.
			c.ID = key
		}
		if _, dup := m.byID[key]; dup {
			return true
		}
		m.order = append(m.order, key)
		m.byID[key] = &c
		return true
	})
	if !ok || iter.Error != nil {
		if iter.Error != nil {
			return fmt.Errorf("decoding categories: %w", iter.Error)
		}
		return fmt.Errorf("decoding categories: malformed object")
	}
	return nil
}

// MarshalJSON encodes the categories as a JSON object in document order.
func (m CategoryMap) MarshalJSON() ([]byte, error) {
	stream := jsoniter.ConfigCompatibleWithStandardLibrary.BorrowStream(nil)
	defer jsoniter.ConfigCompatibleWithStandardLibrary.ReturnStream(stream)

	stream.WriteObjectStart()
	for i, id := range m.order {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(id)
		stream.WriteVal(m.byID[id])
	}
	stream.WriteObjectEnd()
	if stream.Error != nil {
		return nil, stream.Error
	}
	out := make([]byte, len(stream.Buffer()))
	copy(out, stream.Buffer())
	return out, nil
}
