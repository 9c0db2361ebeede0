package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/dimensio/errors"
	"github.com/teranos/dimensio/version"
)

func TestVersionCmd(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "dimensio ")
	assert.Contains(t, out, "Catalog format: 1.0")
	assert.Contains(t, out, "Parse budget: 1000")
	assert.Contains(t, out, "Platform: ")

	out, _, err = execute(t, "version", "--json")
	require.NoError(t, err)
	var info version.Info
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, version.Get().GoVersion, info.GoVersion)
	assert.Equal(t, "1.0", info.CatalogFormat)
}

func TestReportError(t *testing.T) {
	var buf syncBuffer
	ReportError(&buf, errors.WithHint(errors.New("boom"), "try again"))
	assert.Contains(t, buf.String(), "boom")
	assert.Contains(t, buf.String(), "try again")
}
