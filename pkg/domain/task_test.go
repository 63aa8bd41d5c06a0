package domain_test

import (
	"testing"
	"time"

	"github.com/aretw0/tasklist/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("BRT", -3*3600))

	t.Run("trims text and starts pending", func(t *testing.T) {
		task, err := domain.NewTask("  Buy milk \n", 7, now)
		require.NoError(t, err)
		assert.Equal(t, int64(7), task.ID)
		assert.Equal(t, "Buy milk", task.Text)
		assert.False(t, task.Done)
		assert.True(t, task.CreatedAt.Equal(now))
		assert.Equal(t, time.UTC, task.CreatedAt.Location())
	})

	for _, input := range []string{"", " ", "\t\n", "   \r\n  "} {
		t.Run("rejects "+quote(input), func(t *testing.T) {
			_, err := domain.NewTask(input, 1, now)
			assert.ErrorIs(t, err, domain.ErrEmptyText)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestTask_ToggleDone(t *testing.T) {
	task, err := domain.NewTask("Walk dog", 1, time.Now())
	require.NoError(t, err)

	task.ToggleDone()
	assert.True(t, task.Done)
	task.ToggleDone()
	assert.False(t, task.Done, "toggle is its own inverse")
}

func quote(s string) string {
	return "[" + s + "]"
}
