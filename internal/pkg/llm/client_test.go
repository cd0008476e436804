package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yigit/extension-registry/internal/pkg/apperrors"
)

func TestGeminiClientWithoutKey(t *testing.T) {
	client := NewGeminiClient("  ", "")
	assert.Equal(t, DefaultModel, client.Model())

	_, err := client.Complete(context.Background(), "hello")
	assert.ErrorIs(t, err, apperrors.ErrGenerationUnavailable)
	assert.ErrorIs(t, err, apperrors.ErrGenerationFailed)
}
