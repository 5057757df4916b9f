// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rename

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/zwli/paperbatch/pkg/types"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestResolveTarget_FreeName(t *testing.T) {
	dir := t.TempDir()
	got := resolveTarget(dir, "Attention_Is_All_You_Need", ".pdf")
	assert.Equal(t, filepath.Join(dir, "Attention_Is_All_You_Need.pdf"), got)
}

func TestResolveTarget_CollisionChain(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "T.pdf"))
	touch(t, filepath.Join(dir, "T_1.pdf"))

	got := resolveTarget(dir, "T", ".pdf")
	assert.Equal(t, filepath.Join(dir, "T_2.pdf"), got)
}

func TestResolveTarget_LongCollisionChain(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "T.pdf"))
	for i := 1; i <= 25; i++ {
		touch(t, filepath.Join(dir, fmt.Sprintf("T_%d.pdf", i)))
	}

	got := resolveTarget(dir, "T", ".pdf")
	assert.Equal(t, filepath.Join(dir, "T_26.pdf"), got)
}

func TestWriteLog(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "rename_log_test.yaml")
	entries := []LogEntry{
		{From: "/papers/old.pdf", To: "/papers/New_Title.pdf"},
	}
	require.NoError(t, writeLog(logPath, entries))

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)

	var got runLog
	require.NoError(t, yaml.Unmarshal(data, &got))
	require.Len(t, got.Renames, 1)
	assert.Equal(t, "/papers/old.pdf", got.Renames[0].From)
	assert.Equal(t, "/papers/New_Title.pdf", got.Renames[0].To)
	assert.NotEmpty(t, got.RenamedAt)
}

func TestHeuristicOptions_Defaults(t *testing.T) {
	opts := heuristicOptions(types.RenameConfig{})
	assert.Equal(t, 10, opts.MinLineLen)
	assert.Equal(t, 200, opts.MaxLineLen)
	assert.Equal(t, 11.0, opts.HeadingFontSize)
	assert.False(t, opts.UseMetadata)

	opts = heuristicOptions(types.RenameConfig{
		MinTitleLen:      5,
		MaxTitleLen:      80,
		HeadingFontSize:  14,
		UseMetadataTitle: true,
	})
	assert.Equal(t, 5, opts.MinLineLen)
	assert.Equal(t, 80, opts.MaxLineLen)
	assert.Equal(t, 14.0, opts.HeadingFontSize)
	assert.True(t, opts.UseMetadata)
}

func TestRun_EmptyDir(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	result, err := Run(types.RenameConfig{InputDir: dir}, &out)
	require.NoError(t, err)
	assert.Equal(t, BatchResult{}, result)
	assert.Contains(t, out.String(), "Found 0 PDF files")
}

func TestRun_MissingDir(t *testing.T) {
	_, err := Run(types.RenameConfig{InputDir: filepath.Join(t.TempDir(), "nope")}, &bytes.Buffer{})
	require.Error(t, err)
}

// Unparseable PDFs fail with kind parse and stay in place.
func TestRun_UnparseablePDF(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "broken.pdf"))

	var out bytes.Buffer
	result, err := Run(types.RenameConfig{InputDir: dir}, &out)
	require.NoError(t, err)
	assert.Equal(t, BatchResult{Failed: 1}, result)
	assert.Contains(t, out.String(), "failed")
	assert.FileExists(t, filepath.Join(dir, "broken.pdf"))
}
