package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_KnownTemplates(t *testing.T) {
	layout, err := Default(LayoutTemplateID)
	require.NoError(t, err)
	assert.Contains(t, layout, "{{ carousel_title }}")
	assert.Contains(t, layout, "{{ slides_data }}")

	bg, err := Default(BackgroundTemplateID)
	require.NoError(t, err)
	assert.Contains(t, bg, "{{ brand_primary }}")
	assert.Contains(t, bg, "{{ safe_zone_pct }}")
}

func TestDefault_UnknownTemplate(t *testing.T) {
	_, err := Default("NO_SUCH_TEMPLATE")
	assert.Error(t, err)
}

func TestDefaultIDs(t *testing.T) {
	ids, err := DefaultIDs()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{LayoutTemplateID, BackgroundTemplateID}, ids)
}

func TestFormat_Substitution(t *testing.T) {
	out := Format("color {{ brand_primary }} on {{ style }}", map[string]string{
		"brand_primary": "#1a1a2e",
		"style":         "modern clean",
	})
	assert.Equal(t, "color #1a1a2e on modern clean", out)
}

func TestFormat_UnknownPlaceholderLeftIntact(t *testing.T) {
	out := Format("keep {{ mystery }}", map[string]string{"style": "x"})
	assert.Equal(t, "keep {{ mystery }}", out)
}
