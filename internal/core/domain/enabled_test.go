package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talon-mods/talon/internal/core/domain"
)

func TestEnabledSet_Toggles(t *testing.T) {
	t.Parallel()

	s := domain.NewEnabledSet()

	// Core loader mods start enabled.
	assert.True(t, s.IsEnabled("Northstar.Client"))

	s.Disable("Someone.Thing")
	assert.False(t, s.IsEnabled("Someone.Thing"))

	// Idempotent toggles.
	s.Disable("Someone.Thing")
	assert.False(t, s.IsEnabled("Someone.Thing"))

	s.Enable("Someone.Thing")
	s.Enable("Someone.Thing")
	assert.True(t, s.IsEnabled("Someone.Thing"))

	// Unknown mods default to enabled.
	assert.True(t, s.IsEnabled("Never.Seen"))
	assert.False(t, s.Contains("Never.Seen"))
}

func TestEnabledSet_DeterministicJSON(t *testing.T) {
	t.Parallel()

	s := domain.NewEnabledSet()
	s.Disable("Zed.Last")
	s.Enable("Abel.First")

	first, err := json.Marshal(s)
	require.NoError(t, err)
	second, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var reloaded domain.EnabledSet
	require.NoError(t, json.Unmarshal(first, &reloaded))
	third, err := json.Marshal(&reloaded)
	require.NoError(t, err)
	assert.Equal(t, first, third)
}
