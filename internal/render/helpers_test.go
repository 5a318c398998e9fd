package render

import (
	"encoding/json"

	"github.com/xkilldash9x/beacon/api/schemas"
)

// -- Test Fixtures --

func scorePtr(v float64) *float64 { return &v }

// category builds a minimal scored category.
func category(id, title string, score *float64) *schemas.Category {
	return &schemas.Category{
		ID:        id,
		Title:     title,
		Score:     score,
		AuditRefs: []schemas.AuditRef{},
	}
}

// sampleReport assembles a normalized-shape report around the given
// categories, in the given order.
func sampleReport(categories ...*schemas.Category) *schemas.Report {
	return &schemas.Report{
		LighthouseVersion: "10.4.0",
		FinalURL:          "https://example.com/",
		FetchTime:         "2023-06-01T12:00:00.000Z",
		UserAgent:         "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) HeadlessChrome/114.0.5735.90 Safari/537.36",
		GatherMode:        schemas.GatherModeNavigation,
		Environment: schemas.Environment{
			NetworkUserAgent: "Mozilla/5.0 (Linux; Android 11; moto g power) Chrome/114.0.5735.90",
			BenchmarkIndex:   1500,
			Credits:          map[string]string{},
		},
		ConfigSettings: &schemas.ConfigSettings{
			Locale:           "en-US",
			FormFactor:       "mobile",
			ThrottlingMethod: "simulate",
			Throttling:       schemas.Throttling{RTTMs: 150, ThroughputKbps: 1638.4, CPUSlowdownMultiplier: 4},
		},
		Categories:     schemas.NewCategoryMap(categories...),
		CategoryGroups: map[string]*schemas.CategoryGroup{},
		Audits:         map[string]*schemas.Audit{},
		RunWarnings:    []string{},
		I18n:           schemas.I18n{RendererFormattedStrings: map[string]string{}},
	}
}

// withScreenshot attaches a well-formed full-page screenshot artifact.
func withScreenshot(lhr *schemas.Report) *schemas.Report {
	lhr.Audits[schemas.AuditFullPageScreenshot] = &schemas.Audit{
		ID: schemas.AuditFullPageScreenshot,
		Details: json.RawMessage(`{
			"type": "full-page-screenshot",
			"screenshot": {"data": "data:image/webp;base64,AAAA", "width": 412, "height": 823}
		}`),
	}
	return lhr
}
