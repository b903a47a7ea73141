package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithoutFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	st, err := Load()
	require.NoError(t, err)
	assert.True(t, st.EventFollow)
	assert.Zero(t, st.ActiveTab)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	st := &State{
		ActiveTab:    2,
		EventFilter:  "llm",
		EventFollow:  false,
		WindowWidth:  120,
		WindowHeight: 40,
	}
	require.NoError(t, Save(st))

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, st, loaded)
}
