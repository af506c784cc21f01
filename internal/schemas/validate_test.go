package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateLayoutJSON_Valid(t *testing.T) {
	doc := []byte(`{
		"slides": [
			{
				"position": 1,
				"safe_zone": {"x": 60, "y": 200, "width": 960, "height": 850},
				"bg_safe_zone_position": "center",
				"bg_safe_zone_pct": 60,
				"text_elements": [
					{"type": "headline", "x": 100, "y": 240, "width": 880, "font_size": 48}
				]
			}
		]
	}`)
	assert.NoError(t, ValidateLayoutJSON(doc))
}

func TestValidateLayoutJSON_MinimalSlide(t *testing.T) {
	assert.NoError(t, ValidateLayoutJSON([]byte(`{"slides": [{"position": 2}]}`)))
}

func TestValidateLayoutJSON_MissingSlides(t *testing.T) {
	err := ValidateLayoutJSON([]byte(`{}`))
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.NotEmpty(t, ve.Errors)
}

func TestValidateLayoutJSON_BadElementType(t *testing.T) {
	doc := []byte(`{
		"slides": [
			{"position": 1, "text_elements": [{"type": "footer", "x": 0, "y": 0}]}
		]
	}`)
	err := ValidateLayoutJSON(doc)
	require.Error(t, err)

	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestValidateLayoutJSON_NotJSON(t *testing.T) {
	err := ValidateLayoutJSON([]byte("not json"))
	require.Error(t, err)

	// malformed JSON is a load error, not a field-level validation error
	var ve *ValidationError
	assert.False(t, errors.As(err, &ve))
}
