// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zwli/paperbatch/pkg/types"
)

// fakeCompleter implements Completer for testing. It records prompts and
// returns a canned reply or an error.
type fakeCompleter struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

// stubExtract replaces the PDF text source for the duration of a test.
func stubExtract(t *testing.T, fn func(path string) (string, error)) {
	t.Helper()
	orig := extractText
	extractText = fn
	t.Cleanup(func() { extractText = orig })
}

func textByBase(texts map[string]string) func(string) (string, error) {
	return func(path string) (string, error) {
		if text, ok := texts[filepath.Base(path)]; ok {
			return text, nil
		}
		return "", fmt.Errorf("parse failed for %s", path)
	}
}

func TestDerivedPath(t *testing.T) {
	assert.Equal(t, "/papers/a.md", DerivedPath("/papers/a.pdf"))
	assert.Equal(t, "/papers/sub/b.md", DerivedPath("/papers/sub/b.PDF"))
}

func TestTruncateForPrompt(t *testing.T) {
	text := "abcdefghij"
	assert.Equal(t, "abcde", TruncateForPrompt(text, 5))
	assert.Equal(t, text, TruncateForPrompt(text, 10))
	assert.Equal(t, text, TruncateForPrompt(text, 50))

	// Rune-based, not byte-based: CJK text keeps exactly budget runes.
	cjk := strings.Repeat("深", 10)
	got := TruncateForPrompt(cjk, 4)
	assert.Equal(t, strings.Repeat("深", 4), got)
}

func TestProcessFile_Success(t *testing.T) {
	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "paper.pdf")
	require.NoError(t, os.WriteFile(pdfPath, []byte("pdf"), 0o644))

	stubExtract(t, textByBase(map[string]string{"paper.pdf": "the extracted text"}))
	backend := &fakeCompleter{reply: "a model summary"}

	res := ProcessFile(context.Background(), backend, pdfPath, types.SummarizeConfig{})
	assert.Equal(t, types.OutcomeSuccess, res.Outcome)
	assert.Equal(t, types.FailureNone, res.Kind)

	data, err := os.ReadFile(filepath.Join(dir, "paper.md"))
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, `source_pdf: "paper.pdf"`)
	assert.Contains(t, content, "# Literature Summary")
	assert.Contains(t, content, "a model summary")
}

func TestProcessFile_SkipsExistingSummary(t *testing.T) {
	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "paper.pdf")
	mdPath := filepath.Join(dir, "paper.md")
	require.NoError(t, os.WriteFile(pdfPath, []byte("pdf"), 0o644))
	require.NoError(t, os.WriteFile(mdPath, []byte("existing summary"), 0o644))

	stubExtract(t, func(string) (string, error) {
		t.Fatal("extraction must not run for skipped files")
		return "", nil
	})
	backend := &fakeCompleter{reply: "should not be called"}

	res := ProcessFile(context.Background(), backend, pdfPath, types.SummarizeConfig{})
	assert.Equal(t, types.OutcomeSkipped, res.Outcome)
	assert.Empty(t, backend.prompts)

	data, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	assert.Equal(t, "existing summary", string(data), "existing artifact must not change")
}

func TestProcessFile_ParseFailure(t *testing.T) {
	tests := []struct {
		name    string
		extract func(string) (string, error)
	}{
		{"extraction error", func(string) (string, error) { return "", errors.New("bad xref") }},
		{"empty text layer", func(string) (string, error) { return "  \n ", nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			pdfPath := filepath.Join(dir, "scan.pdf")
			require.NoError(t, os.WriteFile(pdfPath, []byte("pdf"), 0o644))

			stubExtract(t, tt.extract)
			backend := &fakeCompleter{reply: "unused"}

			res := ProcessFile(context.Background(), backend, pdfPath, types.SummarizeConfig{})
			assert.Equal(t, types.OutcomeFailed, res.Outcome)
			assert.Equal(t, types.FailureParse, res.Kind)
			assert.Empty(t, backend.prompts, "API must not be called on parse failure")
			assert.NoFileExists(t, filepath.Join(dir, "scan.md"))
		})
	}
}

func TestProcessFile_APIFailureLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "paper.pdf")
	require.NoError(t, os.WriteFile(pdfPath, []byte("pdf"), 0o644))

	stubExtract(t, textByBase(map[string]string{"paper.pdf": "text"}))
	backend := &fakeCompleter{err: errors.New("chat API returned 503")}

	res := ProcessFile(context.Background(), backend, pdfPath, types.SummarizeConfig{})
	assert.Equal(t, types.OutcomeFailed, res.Outcome)
	assert.Equal(t, types.FailureAPI, res.Kind)
	assert.NoFileExists(t, filepath.Join(dir, "paper.md"))
}

// The prompt embeds exactly the first PromptBudget runes of the text.
func TestProcessFile_PromptBudgetIsExactPrefix(t *testing.T) {
	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "paper.pdf")
	require.NoError(t, os.WriteFile(pdfPath, []byte("pdf"), 0o644))

	text := strings.Repeat("0123456789", 10)
	stubExtract(t, textByBase(map[string]string{"paper.pdf": text}))
	backend := &fakeCompleter{reply: "s"}

	cfg := types.SummarizeConfig{PromptBudget: 37}
	res := ProcessFile(context.Background(), backend, pdfPath, cfg)
	require.Equal(t, types.OutcomeSuccess, res.Outcome)

	require.Len(t, backend.prompts, 1)
	prompt := backend.prompts[0]
	assert.True(t, strings.HasSuffix(prompt, text[:37]), "prompt must end with the exact prefix")
	assert.NotContains(t, prompt, text[:38])
}

func TestProcessFile_PromptLanguage(t *testing.T) {
	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "paper.pdf")
	require.NoError(t, os.WriteFile(pdfPath, []byte("pdf"), 0o644))

	stubExtract(t, textByBase(map[string]string{"paper.pdf": "text"}))

	backend := &fakeCompleter{reply: "s"}
	ProcessFile(context.Background(), backend, pdfPath, types.SummarizeConfig{})
	require.Len(t, backend.prompts, 1)
	assert.Contains(t, backend.prompts[0], "Reply in en.")

	os.Remove(filepath.Join(dir, "paper.md"))
	backend = &fakeCompleter{reply: "s"}
	ProcessFile(context.Background(), backend, pdfPath, types.SummarizeConfig{Language: "zh-CN"})
	require.Len(t, backend.prompts, 1)
	assert.Contains(t, backend.prompts[0], "Reply in zh-CN.")
}

// Resume scenario: a.pdf already has a summary, b.pdf does not.
func TestRun_ResumeSkipsCompletedWork(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.pdf"), []byte("pdf"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.pdf"), []byte("pdf"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("prior summary"), 0o644))

	stubExtract(t, textByBase(map[string]string{"b.pdf": "text of b"}))
	backend := &fakeCompleter{reply: "summary of b"}

	var out bytes.Buffer
	result, fileResults, err := Run(context.Background(), backend, types.SummarizeConfig{InputDir: dir}, &out)
	require.NoError(t, err)

	assert.Equal(t, BatchResult{Summarized: 1, Skipped: 1, Failed: 0}, result)
	require.Len(t, fileResults, 2)

	data, err := os.ReadFile(filepath.Join(dir, "a.md"))
	require.NoError(t, err)
	assert.Equal(t, "prior summary", string(data))

	assert.FileExists(t, filepath.Join(dir, "b.md"))
	assert.Contains(t, out.String(), "Batch summary: 1 summarized, 1 skipped, 0 failed (total: 2)")
}

func TestRun_FailureDoesNotAbortBatch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.pdf"), []byte("pdf"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.pdf"), []byte("pdf"), 0o644))

	stubExtract(t, textByBase(map[string]string{"good.pdf": "good text"}))
	backend := &fakeCompleter{reply: "summary"}

	var out bytes.Buffer
	result, fileResults, err := Run(context.Background(), backend, types.SummarizeConfig{InputDir: dir}, &out)
	require.NoError(t, err)

	assert.Equal(t, BatchResult{Summarized: 1, Failed: 1}, result)
	assert.True(t, result.HasFailures())

	for _, res := range fileResults {
		if filepath.Base(res.Path) == "bad.pdf" {
			assert.Equal(t, types.FailureParse, res.Kind)
		}
	}
}

func TestRun_MissingDirFailsBeforeWork(t *testing.T) {
	backend := &fakeCompleter{reply: "unused"}
	_, _, err := Run(context.Background(), backend, types.SummarizeConfig{InputDir: filepath.Join(t.TempDir(), "nope")}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Empty(t, backend.prompts)
}
