package schemas

import jsoniter "github.com/json-iterator/go"

// -- Full-Page Screenshot Artifact --

// AuditFullPageScreenshot is the id of the singleton audit whose details
// payload carries the full-page screenshot artifact.
const AuditFullPageScreenshot = "full-page-screenshot"

// DetailsTypeFullPageScreenshot is the discriminator value identifying a
// well-formed screenshot details payload.
const DetailsTypeFullPageScreenshot = "full-page-screenshot"

// Screenshot is the image portion of a full-page screenshot artifact.
type Screenshot struct {
	// Data is a data URL containing the encoded image.
	Data   string `json:"data"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// FullPageScreenshot is the decoded details payload of the screenshot audit.
// Nodes maps element ids to viewport rectangles; the overlay collaborator
// consumes them opaquely, so they stay raw here.
type FullPageScreenshot struct {
	Type       string     `json:"type"`
	Screenshot Screenshot `json:"screenshot"`

	Nodes map[string]ScreenshotNodeRect `json:"nodes,omitempty"`
}

// ScreenshotNodeRect is the bounding rectangle of one annotated element,
// in full-page coordinates.
type ScreenshotNodeRect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FullPageScreenshot extracts the screenshot artifact from the audit map.
// It returns nil when the audit is absent, has no details, fails to decode,
// or carries the wrong type discriminator. None of those are errors; the
// artifact is simply optional.
func (r *Report) FullPageScreenshot() *FullPageScreenshot {
	audit, ok := r.Audits[AuditFullPageScreenshot]
	if !ok || audit == nil || len(audit.Details) == 0 {
		return nil
	}

	var fps FullPageScreenshot
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(audit.Details, &fps); err != nil {
		return nil
	}
	if fps.Type != DetailsTypeFullPageScreenshot || fps.Screenshot.Data == "" {
		return nil
	}
	return &fps
}
