// Package report turns a raw audit-result JSON document into the canonical
// schemas.Report consumed by the composition engine.
package report

import (
	"encoding/json"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/xkilldash9x/beacon/api/schemas"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrInvalidReport wraps every fatal normalization failure so callers can
// distinguish bad input from their own plumbing errors.
var ErrInvalidReport = errors.New("invalid audit report")

// Normalize parses raw into the canonical report shape. Required top-level
// fields (categories, audits, configSettings) must be present; every optional
// collection is defaulted so downstream code can iterate without nil checks.
// Normalize has no side effects and the returned report is safe to treat as
// immutable.
func Normalize(raw []byte) (*schemas.Report, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidReport)
	}

	// Presence is checked on the raw object rather than on decoded zero
	// values, so an explicitly empty collection is still distinguishable
	// from an absent one.
	var probe struct {
		Categories     json.RawMessage `json:"categories"`
		Audits         json.RawMessage `json:"audits"`
		ConfigSettings json.RawMessage `json:"configSettings"`
	}
	if err := jsonAPI.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidReport, err)
	}
	for _, f := range []struct {
		name string
		raw  json.RawMessage
	}{
		{"categories", probe.Categories},
		{"audits", probe.Audits},
		{"configSettings", probe.ConfigSettings},
	} {
		if len(f.raw) == 0 || string(f.raw) == "null" {
			return nil, fmt.Errorf("%w: missing required field %q", ErrInvalidReport, f.name)
		}
	}

	var lhr schemas.Report
	if err := jsonAPI.Unmarshal(raw, &lhr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidReport, err)
	}

	applyDefaults(&lhr)
	return &lhr, nil
}

// applyDefaults fills the optional collections and enums so downstream
// iteration never sees a nil.
func applyDefaults(lhr *schemas.Report) {
	if lhr.Audits == nil {
		lhr.Audits = map[string]*schemas.Audit{}
	}
	if lhr.CategoryGroups == nil {
		lhr.CategoryGroups = map[string]*schemas.CategoryGroup{}
	}
	if lhr.RunWarnings == nil {
		lhr.RunWarnings = []string{}
	}
	if lhr.GatherMode == "" {
		lhr.GatherMode = schemas.GatherModeNavigation
	}
	if lhr.ConfigSettings.Locale == "" {
		lhr.ConfigSettings.Locale = "en-US"
	}
	if lhr.Environment.Credits == nil {
		lhr.Environment.Credits = map[string]string{}
	}
	if lhr.I18n.RendererFormattedStrings == nil {
		lhr.I18n.RendererFormattedStrings = map[string]string{}
	}

	// Audit values keep their map key as id when the producer omitted it.
	for id, audit := range lhr.Audits {
		if audit != nil && audit.ID == "" {
			audit.ID = id
		}
	}
	for _, id := range lhr.Categories.IDs() {
		c := lhr.Categories.Get(id)
		if c.AuditRefs == nil {
			c.AuditRefs = []schemas.AuditRef{}
		}
	}
}
