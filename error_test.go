package ollapdf_test

import (
	"fmt"
	"testing"

	"github.com/ollapdf/ollapdf"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := ollapdf.Errorf(ollapdf.ENOTFOUND, "document %q not found", "test")

	assert.Equal(t, ollapdf.ENOTFOUND, ollapdf.ErrorCode(err))
	assert.Equal(t, "document \"test\" not found", ollapdf.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ollapdf.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ollapdf.EINTERNAL, ollapdf.ErrorCode(fmt.Errorf("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ollapdf.ErrorMessage(nil))
}

func TestErrorMessage_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Internal error.", ollapdf.ErrorMessage(fmt.Errorf("boom")))
}

func TestError_WrappedErrorPreservesCode(t *testing.T) {
	t.Parallel()

	inner := ollapdf.Errorf(ollapdf.EQUEUEFULL, "queue full")
	wrapped := fmt.Errorf("submitting question: %w", inner)

	assert.Equal(t, ollapdf.EQUEUEFULL, ollapdf.ErrorCode(wrapped))
	assert.Equal(t, "queue full", ollapdf.ErrorMessage(wrapped))
}
