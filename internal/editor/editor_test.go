package editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditorCmd(t *testing.T) {
	t.Setenv("EDITOR", "code --wait")
	t.Setenv("VISUAL", "nano")
	assert.Equal(t, []string{"code", "--wait"}, editorCmd())

	t.Setenv("EDITOR", "")
	assert.Equal(t, []string{"nano"}, editorCmd())

	t.Setenv("VISUAL", "  ")
	assert.Equal(t, []string{"vi"}, editorCmd())
}

func TestEditText_Unchanged(t *testing.T) {
	t.Setenv("EDITOR", "true")
	got, err := EditText("# Operation batch\n", "opbatch-*.md")
	require.NoError(t, err)
	assert.Equal(t, "# Operation batch\n", got)
}

func TestEditText_Rewritten(t *testing.T) {
	script := filepath.Join(t.TempDir(), "fake-editor.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nprintf 'edited' > \"$1\"\n"), 0755))
	t.Setenv("EDITOR", script)

	got, err := EditText("original", "opbatch-*.md")
	require.NoError(t, err)
	assert.Equal(t, "edited", got)
}

func TestEditText_EditorFails(t *testing.T) {
	t.Setenv("EDITOR", "false")
	_, err := EditText("x", "opbatch-*.md")
	assert.Error(t, err)
}
