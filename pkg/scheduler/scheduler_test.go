package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCronExpression(t *testing.T) {
	assert.NoError(t, ValidateCronExpression("5 0 * * *"))
	assert.Error(t, ValidateCronExpression("every day"))
}

func TestJobScheduler_AddRemove(t *testing.T) {
	s := NewJobScheduler(time.UTC)

	require.NoError(t, s.AddJob("reseed", "5 0 * * *", func() {}))
	assert.Error(t, s.AddJob("reseed", "5 0 * * *", func() {}))

	_, ok := s.NextRun("reseed")
	require.True(t, ok)

	require.NoError(t, s.RemoveJob("reseed"))
	_, ok = s.NextRun("reseed")
	assert.False(t, ok)
	assert.Error(t, s.RemoveJob("reseed"))
}

func TestJobScheduler_StartStop(t *testing.T) {
	s := NewJobScheduler(nil)
	assert.False(t, s.IsRunning())

	s.Start()
	assert.True(t, s.IsRunning())
	s.Start()

	s.Stop()
	assert.False(t, s.IsRunning())
	s.Stop()
}
