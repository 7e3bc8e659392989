package gemini_test

import (
	"context"
	"testing"

	"github.com/ollapdf/ollapdf"
	"github.com/ollapdf/ollapdf/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Generate_ReturnsErrorWhenPromptEmpty(t *testing.T) {
	t.Parallel()

	gen := gemini.NewGenerator(nil) // nil client ok for this test

	_, err := gen.Generate(context.Background(), ollapdf.GenerateRequest{})

	require.Error(t, err)
	assert.Equal(t, ollapdf.EINVALID, ollapdf.ErrorCode(err))
	assert.Contains(t, ollapdf.ErrorMessage(err), "prompt required")
}

func TestBuildConfig_SetsSystemInstruction(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig("Use the provided context.", 0.1)

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Equal(t, "Use the provided context.", config.SystemInstruction.Parts[0].Text)
}

func TestBuildConfig_OmitsEmptySystemInstruction(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig("", 0.1)

	assert.Nil(t, config.SystemInstruction)
}

func TestBuildConfig_SetsTemperature(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig("", 0.1)

	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.1, *config.Temperature, 0.001)
}
