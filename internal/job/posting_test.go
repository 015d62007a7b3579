package job

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.yaml")
	content := `title: Backend Engineer
company: Acme
location: Berlin
description: "<p>Looking for a Go engineer</p>"
requirements:
  - golang
  - postgres
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	p, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Backend Engineer", p.Title)
	assert.Equal(t, "Acme", p.Company)
	assert.Equal(t, []string{"golang", "postgres"}, p.Requirements)
	assert.Equal(t, SourceFile, p.Source)
}

func TestLoadFileJSONKeepsSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"title":"SRE","source":"greenhouse"}`), 0o600))

	p, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "greenhouse", p.Source)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile("  ")
	require.Error(t, err)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestPostingIsEmpty(t *testing.T) {
	assert.True(t, Posting{}.IsEmpty())
	assert.True(t, Posting{Company: "Acme", Requirements: []string{"  "}}.IsEmpty())
	assert.False(t, Posting{Requirements: []string{"go"}}.IsEmpty())
	assert.False(t, Posting{Description: "x"}.IsEmpty())
}
