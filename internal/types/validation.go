package types

// Validation check identifiers, one per independent check.
const (
	CheckMinFontSize       = "min_font_size"
	CheckSafeZoneBounds    = "safe_zone_bounds"
	CheckEmptyHeadline     = "empty_headline"
	CheckMissingBackground = "missing_background"
	CheckMissingPreview    = "missing_preview"
)

// ChecksPerSlide is the number of independent checks the validation gate
// runs per slide. Used only for reporting, not for pass/fail logic.
const ChecksPerSlide = 5

// ValidationError represents a single validation failure on one slide.
type ValidationError struct {
	SlidePosition int    `json:"slidePosition"`
	Check         string `json:"check"`
	Message       string `json:"message"`
	Value         any    `json:"value,omitempty"`
	Threshold     any    `json:"threshold,omitempty"`
}

// ValidationResult is the verdict of the validation gate. A non-empty error
// list is a normal pipeline outcome, not an exception.
type ValidationResult struct {
	Passed bool              `json:"passed"`
	Errors []ValidationError `json:"errors"`
}

// PipelineResult is the structured outcome an orchestrate run returns to
// the queue.
type PipelineResult struct {
	Success bool              `json:"success"`
	Errors  []ValidationError `json:"errors,omitempty"`
}
