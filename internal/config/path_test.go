package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "stipend.db"), ExpandPath("~/stipend.db"))
	assert.Equal(t, home, ExpandPath("~"))
}

func TestExpandPathEnvVar(t *testing.T) {
	t.Setenv("STIPEND_DATA_DIR", "/var/lib/stipend")

	assert.Equal(t, "/var/lib/stipend/stipend.db", ExpandPath("$STIPEND_DATA_DIR/stipend.db"))
}

func TestExpandPathPassthrough(t *testing.T) {
	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, "/absolute/path.db", ExpandPath("/absolute/path.db"))
}
