package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepName_Layer(t *testing.T) {
	tests := []struct {
		name  StepName
		layer string
		child bool
	}{
		{StepReference, "reference", false},
		{StepClients, "clients", false},
		{StepClientContacts, "clients", true},
		{StepPolicyRiskAssessments, "policies", true},
		{StepPayments, "financials", true},
	}
	for _, tt := range tests {
		t.Run(tt.name.String(), func(t *testing.T) {
			assert.Equal(t, tt.layer, tt.name.Layer())
			assert.Equal(t, tt.child, tt.name.IsChild())
		})
	}
}

func TestStep_Advance(t *testing.T) {
	s := NewStep(StepClientAddresses).Advance(120, 80).Advance(30, 100).Advance(0, 90)

	assert.Equal(t, int64(150), s.Rows())
	assert.Equal(t, int64(100), s.Cursor())
	assert.False(t, s.IsComplete())
}

func TestStep_Complete(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	s := NewStep(StepClients).Complete(at)

	require.True(t, s.IsComplete())
	assert.Equal(t, time.UTC, s.CompletedAt().Location())
	assert.True(t, at.Equal(*s.CompletedAt()))
}

func TestRun_Lifecycle(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r := NewRun("run-1", start, true, 42)

	assert.Equal(t, RunRunning, r.State())
	assert.False(t, r.State().IsTerminal())
	assert.Zero(t, r.Duration())

	done := r.Complete(start.Add(3 * time.Second))
	assert.Equal(t, RunCompleted, done.State())
	assert.True(t, done.State().IsTerminal())
	assert.Equal(t, 3*time.Second, done.Duration())
	assert.Empty(t, done.Error())

	failed := r.Fail(start.Add(time.Second), "claims: boom")
	assert.Equal(t, RunFailed, failed.State())
	assert.Equal(t, "claims: boom", failed.Error())
	assert.Equal(t, RunRunning, r.State())
}
