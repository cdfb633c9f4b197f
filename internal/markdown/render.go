// Package markdown renders transcript entries as Markdown blocks.
package markdown

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/grovetools/sessionmd/internal/transcript"
)

const (
	iconUser      = "👤"
	iconAssistant = "🤖"
)

// timestampLayouts are tried in order when formatting entry timestamps.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// FormatTimestamp renders an ISO-8601 timestamp as "YYYY-MM-DD HH:MM:SS"
// in its own offset, without converting to another zone. Strings that do
// not parse are returned unchanged rather than treated as errors.
func FormatTimestamp(s string) string {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02 15:04:05")
		}
	}
	return s
}

// Header returns the document header written before any entry blocks.
func Header(sourceName string, now time.Time) string {
	var b strings.Builder
	b.WriteString("# Claude Code Conversation Log\n\n")
	fmt.Fprintf(&b, "**Source:** `%s` \n", sourceName)
	fmt.Fprintf(&b, "**Generated:** %s\n\n", now.Format("2006-01-02 15:04:05"))
	b.WriteString("---\n\n")
	return b.String()
}

// RenderEntry converts one entry into a Markdown block. The second
// return is false for entry types that do not render: file history
// snapshots and anything that is not a user or assistant message.
func RenderEntry(entry *transcript.Entry) (string, bool) {
	if entry.Type == transcript.TypeFileHistorySnapshot {
		return "", false
	}
	if entry.Type != transcript.TypeUser && entry.Type != transcript.TypeAssistant {
		return "", false
	}

	msg := entry.Message
	role := entry.Type
	if msg != nil && msg.Role != "" {
		role = msg.Role
	}

	icon := iconAssistant
	if role == "user" {
		icon = iconUser
	}

	header := fmt.Sprintf("## %s %s", icon, strings.ToUpper(role))
	if entry.Timestamp != "" {
		header += " — " + FormatTimestamp(entry.Timestamp)
	}

	var metadata []string
	if entry.Type == transcript.TypeAssistant && msg != nil {
		if msg.Model != "" {
			metadata = append(metadata, fmt.Sprintf("**Model:** `%s`", msg.Model))
		}
		if msg.Usage != nil {
			metadata = append(metadata, fmt.Sprintf("**Tokens:** %d in / %d out", msg.Usage.InputTokens, msg.Usage.OutputTokens))
		}
	}
	if entry.Cwd != "" {
		metadata = append(metadata, fmt.Sprintf("**Working Dir:** `%s`", entry.Cwd))
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")
	if len(metadata) > 0 {
		b.WriteString(strings.Join(metadata, "\n"))
		b.WriteString("\n\n")
	}
	b.WriteString(renderContent(msg))
	b.WriteString("\n\n---\n")
	return b.String(), true
}

// renderContent converts message content into a Markdown fragment.
// String content passes through verbatim; array content renders each
// block per its kind, joined by blank lines in original order.
func renderContent(msg *transcript.Message) string {
	if msg == nil || len(msg.Content) == 0 {
		return ""
	}

	if text, ok := msg.Text(); ok {
		return text
	}

	if blocks, ok := msg.Blocks(); ok {
		var parts []string
		for _, block := range blocks {
			if part, include := renderBlock(block); include {
				parts = append(parts, part)
			}
		}
		return strings.Join(parts, "\n\n")
	}

	return compactJSON(msg.Content)
}

// renderBlock renders one content block. include is false only for
// empty thinking blocks, which contribute nothing at all.
func renderBlock(block transcript.ContentBlock) (string, bool) {
	switch block.Type {
	case transcript.BlockText, "":
		return block.Text, true
	case transcript.BlockThinking:
		if block.Thinking == "" {
			return "", false
		}
		return fmt.Sprintf("<details>\n<summary>💭 Thinking</summary>\n\n%s\n</details>", block.Thinking), true
	case transcript.BlockToolUse:
		return renderToolUse(block), true
	case transcript.BlockToolResult:
		return renderToolResult(block), true
	default:
		return compactJSON(block.Raw), true
	}
}

func renderToolUse(block transcript.ContentBlock) string {
	name := block.Name
	if name == "" {
		name = "Unknown"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Tool:** `%s`\n\n", name)
	if hasInput(block.Input) {
		b.WriteString("**Input:**\n```json\n")
		b.WriteString(indentJSON(block.Input))
		b.WriteString("\n```\n")
	}
	return b.String()
}

func renderToolResult(block transcript.ContentBlock) string {
	return fmt.Sprintf("**Result:**\n```\n%s\n```\n", toolResultText(block.Content))
}

// toolResultText flattens a tool result payload: a string is used
// verbatim; for an array, text items contribute their text and other
// items their compact JSON, joined by single newlines.
func toolResultText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err == nil {
		var parts []string
		for _, item := range items {
			var sub struct {
				Type string `json:"type"`
				Text string `json:"text"`
			}
			if err := json.Unmarshal(item, &sub); err != nil {
				continue
			}
			if sub.Type == "text" {
				parts = append(parts, sub.Text)
			} else {
				parts = append(parts, compactJSON(item))
			}
		}
		return strings.Join(parts, "\n")
	}

	return compactJSON(raw)
}

// hasInput reports whether a tool input is a non-empty mapping.
func hasInput(raw json.RawMessage) bool {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return false
	}
	return len(m) > 0
}

// indentJSON re-indents raw JSON with two spaces, preserving the
// original key order.
func indentJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

func compactJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
