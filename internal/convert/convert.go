// Package convert implements the two transcript-to-Markdown pipeline
// modes: plain conversion and redacting session import.
package convert

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/sessionmd/config"
	"github.com/grovetools/sessionmd/internal/markdown"
	"github.com/grovetools/sessionmd/internal/redact"
	"github.com/grovetools/sessionmd/internal/transcript"
)

var logger = logrus.StandardLogger()

// Result describes a completed conversion.
type Result struct {
	OutputPath string
	Entries    int
}

// Convert renders a JSONL transcript file to Markdown. When outputPath
// is empty, the input path with a .md extension is used. Input lines
// are processed strictly in file order; a line that fails to parse is
// warned about and skipped, never fatal.
func Convert(inputPath, outputPath string) (*Result, error) {
	inFile, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer inFile.Close()

	if outputPath == "" {
		outputPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".md"
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	defer outFile.Close()

	writer := bufio.NewWriter(outFile)
	if _, err := writer.WriteString(markdown.Header(filepath.Base(inputPath), time.Now())); err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(inFile)
	const maxScanTokenSize = 1024 * 1024 // 1MB
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, maxScanTokenSize)

	entries := 0
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		block, ok := renderLine(line, lineNum)
		if !ok {
			continue
		}
		if _, err := writer.WriteString(block); err != nil {
			return nil, err
		}
		entries++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", inputPath, err)
	}
	if err := writer.Flush(); err != nil {
		return nil, err
	}

	return &Result{OutputPath: outputPath, Entries: entries}, nil
}

// ImportFile redacts a resolved transcript and renders it into the
// import output directory. The whole file is read into memory, the
// Redactor runs over the blob in one pass, and only the final Markdown
// is written; the redacted text itself is never persisted.
func ImportFile(sourcePath string, cfg *config.Config) (*Result, error) {
	outputDir := cfg.Import.OutputDir
	if outputDir == "" {
		outputDir = defaultOutputDir()
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	raw, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	redactor := redact.New(cfg.Redaction.ProtectedAddresses, cfg.Redaction.AllowedDomains)
	redacted := redactor.Redact(string(raw))

	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	outputPath := filepath.Join(outputDir, base+".md")

	outFile, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	defer outFile.Close()

	writer := bufio.NewWriter(outFile)
	if _, err := writer.WriteString(markdown.Header(filepath.Base(sourcePath), time.Now())); err != nil {
		return nil, err
	}

	entries := 0
	for i, line := range strings.Split(redacted, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		block, ok := renderLine(line, i+1)
		if !ok {
			continue
		}
		if _, err := writer.WriteString(block); err != nil {
			return nil, err
		}
		entries++
	}
	if err := writer.Flush(); err != nil {
		return nil, err
	}

	return &Result{OutputPath: outputPath, Entries: entries}, nil
}

// renderLine converts one JSONL line into a Markdown block. Failures
// are isolated per line: a warning is logged and the line is skipped.
func renderLine(line string, lineNum int) (string, bool) {
	entry, err := transcript.DecodeLine([]byte(line))
	if err != nil {
		logger.Warnf("Failed to parse line %d: %v", lineNum, err)
		return "", false
	}
	return markdown.RenderEntry(entry)
}

// defaultOutputDir mirrors the import layout: an md/ directory next to
// the executable.
func defaultOutputDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "md"
	}
	return filepath.Join(filepath.Dir(exe), "md")
}
