package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewOrderStateCommissionsUnset(t *testing.T) {
	s := NewOrderState()
	assert.True(t, IsUnsetDouble(s.Commission))
	assert.True(t, IsUnsetDouble(s.MinCommission))
	assert.True(t, IsUnsetDouble(s.MaxCommission))
	assert.False(t, s.IsWhatIfResult())

	out := s.String()
	assert.Contains(t, out, "commission: 1.7976931348623157E+308")
	assert.Contains(t, out, "completed_status: ")
}

func TestOrderStateWhatIf(t *testing.T) {
	s := NewOrderState()
	s.InitMarginAfter = "1200.5"
	s.Commission = 1
	assert.True(t, s.IsWhatIfResult())
	assert.Contains(t, s.String(), "commission: 1.0")
}

func TestStatusClassification(t *testing.T) {
	tests := []struct {
		status    Status
		final     bool
		active    bool
		canCancel bool
	}{
		{StatusPendingSubmit, false, false, true},
		{StatusPendingCancel, false, false, false},
		{StatusPreSubmitted, false, true, true},
		{StatusSubmitted, false, true, true},
		{StatusAPIPending, false, false, true},
		{StatusAPICancelled, true, false, false},
		{StatusCancelled, true, false, false},
		{StatusFilled, true, false, false},
		{StatusInactive, true, false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.final, tt.status.IsFinal())
			assert.Equal(t, tt.active, tt.status.IsActive())
			assert.Equal(t, tt.canCancel, tt.status.CanCancel())
			assert.NotEqual(t, "unknown status", tt.status.Describe())
		})
	}
	assert.Equal(t, "unknown status", Status("Bogus").Describe())
}
