package convert

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/sessionmd/config"
)

const sampleLines = `{"type":"user","message":{"role":"user","content":"Hello"},"timestamp":"2024-01-15T10:30:00Z"}
{"type":"file-history-snapshot","messageId":"snap1"}
this line is not JSON

{"type":"assistant","message":{"role":"assistant","model":"claude-3","content":[{"type":"text","text":"Hi there"}],"usage":{"input_tokens":3,"output_tokens":9}}}
`

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "session.jsonl", sampleLines)

	var logBuf bytes.Buffer
	logger.SetOutput(&logBuf)
	defer logger.SetOutput(os.Stderr)

	result, err := Convert(input, "")
	require.NoError(t, err)

	// The non-JSON line is warned about with its 1-based line number.
	assert.Contains(t, logBuf.String(), "line 3")

	assert.Equal(t, filepath.Join(dir, "session.md"), result.OutputPath)
	assert.Equal(t, 2, result.Entries)

	data, err := os.ReadFile(result.OutputPath)
	require.NoError(t, err)
	output := string(data)

	assert.Contains(t, output, "# Claude Code Conversation Log")
	assert.Contains(t, output, "**Source:** `session.jsonl` ")
	assert.Contains(t, output, "## 👤 USER — 2024-01-15 10:30:00")
	assert.Contains(t, output, "Hello")
	assert.Contains(t, output, "Hi there")
	assert.NotContains(t, output, "snap1")

	// User block before assistant block: input order is preserved.
	assert.Less(t, strings.Index(output, "Hello"), strings.Index(output, "Hi there"))
}

func TestConvertExplicitOutput(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "session.jsonl", sampleLines)
	output := filepath.Join(dir, "custom.md")

	result, err := Convert(input, output)
	require.NoError(t, err)
	assert.Equal(t, output, result.OutputPath)
	assert.FileExists(t, output)
}

func TestConvertMissingInput(t *testing.T) {
	dir := t.TempDir()

	_, err := Convert(filepath.Join(dir, "missing.jsonl"), "")
	assert.Error(t, err)
}

func TestConvertEmptyFile(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "empty.jsonl", "")

	result, err := Convert(input, "")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Entries)

	data, err := os.ReadFile(result.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Claude Code Conversation Log")
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()
	source := writeInput(t, dir, "abc123.jsonl",
		`{"type":"user","message":{"role":"user","content":"mail secret@corp.io or admin@example.com"},"timestamp":"2024-01-15T10:30:00Z"}`+"\n")

	cfg := config.Default()
	cfg.Import.OutputDir = filepath.Join(dir, "md")

	result, err := ImportFile(source, cfg)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "md", "abc123.md"), result.OutputPath)
	assert.Equal(t, 1, result.Entries)

	data, err := os.ReadFile(result.OutputPath)
	require.NoError(t, err)
	output := string(data)

	assert.Contains(t, output, "[REDACTED-EMAIL]")
	assert.Contains(t, output, "admin@example.com")
	assert.NotContains(t, output, "secret@corp.io")

	// Only the rendered Markdown is persisted, never a redacted JSONL.
	files, err := os.ReadDir(cfg.Import.OutputDir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "abc123.md", files[0].Name())
}

func TestImportFileSkipsBadLines(t *testing.T) {
	dir := t.TempDir()
	source := writeInput(t, dir, "abc123.jsonl", sampleLines)

	cfg := config.Default()
	cfg.Import.OutputDir = filepath.Join(dir, "md")

	result, err := ImportFile(source, cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Entries)
}

func TestImportFileMissingSource(t *testing.T) {
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Import.OutputDir = filepath.Join(dir, "md")

	_, err := ImportFile(filepath.Join(dir, "missing.jsonl"), cfg)
	assert.Error(t, err)
}
