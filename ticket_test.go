package ollapdf_test

import (
	"testing"

	"github.com/ollapdf/ollapdf"
	"github.com/stretchr/testify/assert"
)

func TestTicketState_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state ollapdf.TicketState
		want  string
	}{
		{ollapdf.TicketPending, "pending"},
		{ollapdf.TicketRunning, "running"},
		{ollapdf.TicketDone, "done"},
		{ollapdf.TicketFailed, "failed"},
		{ollapdf.TicketState(42), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.state.String())
	}
}

func TestTicketState_Terminal(t *testing.T) {
	t.Parallel()

	assert.False(t, ollapdf.TicketPending.Terminal())
	assert.False(t, ollapdf.TicketRunning.Terminal())
	assert.True(t, ollapdf.TicketDone.Terminal())
	assert.True(t, ollapdf.TicketFailed.Terminal())
}
