// Package i18n provides the renderer string table and locale-aware
// formatting helpers. The built-in table is en-US; documents may override
// individual strings through their i18n.rendererFormattedStrings block.
package i18n

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/xkilldash9x/beacon/api/schemas"
)

// Keys into the renderer string table.
const (
	KeyToplevelWarnings      = "toplevelWarningsMessage"
	KeyVarianceDisclaimer    = "varianceDisclaimer"
	KeyScorescaleLabel       = "scorescaleLabel"
	KeyPassedAudits          = "passedAuditsGroupTitle"
	KeyNotApplicableAudits   = "notApplicableAuditsGroupTitle"
	KeyManualAudits          = "manualAuditsGroupTitle"
	KeyErrorLabel            = "errorLabel"
	KeyCapturedAt            = "runtimeSettingsFetchTime"
	KeyDevice                = "runtimeSettingsDevice"
	KeyBenchmark             = "runtimeSettingsBenchmark"
	KeyCPUThrottling         = "runtimeSettingsCPUThrottling"
	KeyAxeVersion            = "runtimeSettingsAxeVersion"
	KeySingleLoad            = "runtimeSingleLoad"
	KeySingleLoadTooltip     = "runtimeSingleLoadTooltip"
	KeyAnalysisWindow        = "runtimeAnalysisWindow"
	KeyNetworkThrottling     = "runtimeSettingsNetworkThrottling"
	KeyUANetwork             = "runtimeSettingsUANetwork"
	KeyGeneratedBy           = "footerGeneratedBy"
	KeyMetricsGroupTitle     = "performanceMetricsGroupTitle"
	KeyInstallableLabel      = "installableLabel"
	KeyNotInstallableLabel   = "notInstallableLabel"
)

// defaultStrings is the en-US renderer string table.
var defaultStrings = map[string]string{
	KeyToplevelWarnings:    "There were issues affecting this run of Lighthouse:",
	KeyVarianceDisclaimer:  "Values are estimated and may vary.",
	KeyScorescaleLabel:     "Score scale:",
	KeyPassedAudits:        "Passed audits",
	KeyNotApplicableAudits: "Not applicable",
	KeyManualAudits:        "Additional items to manually check",
	KeyErrorLabel:          "Error!",
	KeyCapturedAt:          "Captured at",
	KeyDevice:              "Device",
	KeyBenchmark:           "Unthrottled CPU/Memory Power",
	KeyCPUThrottling:       "CPU throttling",
	KeyAxeVersion:          "Axe version",
	KeySingleLoad:          "Single page load",
	KeySingleLoadTooltip:   "This data is taken from a single page load, as opposed to field data summarizing many sessions.",
	KeyAnalysisWindow:      "Initial page load",
	KeyNetworkThrottling:   "Network throttling",
	KeyUANetwork:           "User agent (network)",
	KeyGeneratedBy:         "Generated by",
	KeyMetricsGroupTitle:   "Metrics",
	KeyInstallableLabel:    "Installable",
	KeyNotInstallableLabel: "Not installable",
}

// supportedLocales lists the locales with built-in tables. Documents in any
// other locale still render; they fall back to en-US plus their own
// override strings.
var supportedLocales = []language.Tag{
	language.AmericanEnglish,
}

var localeMatcher = language.NewMatcher(supportedLocales)

// Strings resolves renderer strings for one document: the matched base
// table, shadowed by the document's own overrides.
type Strings struct {
	tag       language.Tag
	overrides map[string]string
}

// Resolve matches the document locale against the supported set and attaches
// the document's string overrides. A malformed locale falls back to en-US.
func Resolve(locale string, overrides map[string]string) *Strings {
	tag, _ := language.MatchStrings(localeMatcher, locale)
	return &Strings{tag: tag, overrides: overrides}
}

// Locale returns the matched locale tag.
func (s *Strings) Locale() language.Tag { return s.tag }

// Get returns the renderer string for key, preferring document overrides.
// Unknown keys return "" rather than leaking key names into output.
func (s *Strings) Get(key string) string {
	if v, ok := s.overrides[key]; ok && v != "" {
		return v
	}
	return defaultStrings[key]
}

// FormatDateTime renders an ISO 8601 capture timestamp for display. An
// unparseable value is shown verbatim; a wrong-looking date beats a blank.
func (s *Strings) FormatDateTime(iso string) string {
	t, err := time.Parse(time.RFC3339Nano, iso)
	if err != nil {
		return iso
	}
	return t.Format("Jan 2, 2006, 3:04:05 PM MST")
}

// -- Config-derived descriptions --

// EmulationDescription summarizes the emulated device of a run.
func EmulationDescription(cfg *schemas.ConfigSettings) string {
	if cfg == nil || cfg.ScreenEmulation.Disabled {
		return "No emulation"
	}
	switch cfg.FormFactor {
	case "mobile":
		return "Emulated Moto G Power"
	case "desktop":
		return "Emulated Desktop"
	}
	if cfg.ScreenEmulation.Mobile {
		return "Emulated Moto G Power"
	}
	return "No emulation"
}

// ThrottlingSummary returns the short label and the detailed tooltip for the
// network throttling applied to a run.
func ThrottlingSummary(cfg *schemas.ConfigSettings) (label, tooltip string) {
	if cfg == nil {
		return "Unknown throttling", ""
	}
	t := cfg.Throttling
	switch cfg.ThrottlingMethod {
	case "simulate":
		label = "Simulated throttling"
		tooltip = fmt.Sprintf("%.0f ms TCP RTT, %s throughput (Simulated)",
			t.RTTMs, formatKbps(t.ThroughputKbps))
	case "devtools":
		label = "Throttled"
		tooltip = fmt.Sprintf("%.0f ms HTTP RTT, %s throughput (DevTools)",
			t.RequestLatencyMs, formatKbps(t.DownloadThroughputKbps))
	case "provided":
		label = "Provided by environment"
	default:
		label = "Unknown throttling"
	}
	return label, tooltip
}

// CPUThrottlingDescription formats the CPU slowdown applied to a run.
func CPUThrottlingDescription(cfg *schemas.ConfigSettings) string {
	if cfg == nil || cfg.Throttling.CPUSlowdownMultiplier == 0 {
		return "Unknown"
	}
	mult := cfg.Throttling.CPUSlowdownMultiplier
	s := fmt.Sprintf("%.1f", mult)
	s = strings.TrimSuffix(s, ".0")
	return s + "x slowdown"
}

func formatKbps(kbps float64) string {
	if kbps >= 1000 {
		return fmt.Sprintf("%.1f Mbps", kbps/1000)
	}
	return fmt.Sprintf("%.0f Kbps", kbps)
}
