package db

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobTypeConstants(t *testing.T) {
	// Verify stage audit types are defined
	jobTypes := []string{
		JobTypeGenerateLayout,
		JobTypeGenerateBG,
		JobTypeRenderPreview,
		JobTypeValidate,
		JobTypeRenderHires,
	}

	for _, jt := range jobTypes {
		assert.NotEmpty(t, jt, "job type constant should not be empty")
	}
}

func TestRetentionCaps(t *testing.T) {
	assert.Greater(t, CompletedJobRetention, FailedJobRetention,
		"completed history should be the larger window")
	assert.Equal(t, 100, CompletedJobRetention)
	assert.Equal(t, 50, FailedJobRetention)
}

func TestSentinelErrors(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), ErrTemplateNotFound)
	assert.True(t, errors.Is(wrapped, ErrTemplateNotFound))
	assert.NotErrorIs(t, ErrCarouselNotFound, ErrTemplateNotFound)
}
