package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/dimensio/errors"
)

func TestDbCmd_SaveUseRemove(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "extra.yaml", furlongYAML)

	out, _, err := execute(t, "--catalog", path, "db", "save", "plant")
	require.NoError(t, err)
	assert.Contains(t, out, `as "plant"`)

	out, _, err = execute(t, "db", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "plant")

	out, _, err = execute(t, "--space", "plant", "convert", "1", "furlong", "m")
	require.NoError(t, err)
	assert.Equal(t, "201.168 m\n", out)

	out, _, err = execute(t, "--space", "plant", "check", "furlong", "km")
	require.NoError(t, err)
	assert.Equal(t, "compatible: length\n", out)

	out, _, err = execute(t, "db", "rm", "plant")
	require.NoError(t, err)
	assert.Contains(t, out, `Deleted "plant"`)

	_, _, err = execute(t, "db", "rm", "plant")
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestDbCmd_LsEmpty(t *testing.T) {
	isolate(t)
	out, _, err := execute(t, "db", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "No saved registries")
}

func TestDbCmd_UnknownSpace(t *testing.T) {
	isolate(t)
	_, _, err := execute(t, "--space", "missing", "units")
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}
