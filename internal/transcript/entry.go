// Package transcript defines the wire types for Claude Code JSONL
// conversation logs. This package contains only decoding, not rendering.
package transcript

import (
	"bytes"
	"encoding/json"
)

// Entry type constants for transcript lines.
const (
	TypeUser                = "user"
	TypeAssistant           = "assistant"
	TypeFileHistorySnapshot = "file-history-snapshot"
)

// Content block type constants.
const (
	BlockText       = "text"
	BlockThinking   = "thinking"
	BlockToolUse    = "tool_use"
	BlockToolResult = "tool_result"
)

// Entry represents a single line in a JSONL transcript. Timestamp is
// kept as a raw string so malformed values survive to the display
// fallback instead of failing the whole line.
type Entry struct {
	Type      string   `json:"type"`
	Message   *Message `json:"message,omitempty"`
	Timestamp string   `json:"timestamp,omitempty"`
	Cwd       string   `json:"cwd,omitempty"`
}

// Message represents the message payload of a user or assistant entry.
type Message struct {
	Role    string          `json:"role"`
	Model   string          `json:"model,omitempty"`
	Content json.RawMessage `json:"content,omitempty"` // string or []ContentBlock
	Usage   *Usage          `json:"usage,omitempty"`
}

// Usage represents token usage information.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// ContentBlock is one typed unit of message content. Raw holds the
// block's original JSON so unrecognized kinds can still be rendered.
type ContentBlock struct {
	Type     string          `json:"type"`
	Text     string          `json:"text,omitempty"`
	Thinking string          `json:"thinking,omitempty"`
	Name     string          `json:"name,omitempty"`
	Input    json.RawMessage `json:"input,omitempty"`
	Content  json.RawMessage `json:"content,omitempty"` // tool_result payload
	Raw      json.RawMessage `json:"-"`
}

// DecodeLine parses one JSONL line into an Entry.
func DecodeLine(line []byte) (*Entry, error) {
	var entry Entry
	if err := json.Unmarshal(line, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Text returns string-form message content. ok is false when the
// content is not a plain JSON string.
func (m *Message) Text() (string, bool) {
	var s string
	if err := json.Unmarshal(m.Content, &s); err != nil {
		return "", false
	}
	return s, true
}

// Blocks decodes array-form message content into its content blocks,
// preserving order. Array elements that are not objects are dropped.
// ok is false when the content is not an array.
func (m *Message) Blocks() ([]ContentBlock, bool) {
	var raws []json.RawMessage
	if err := json.Unmarshal(m.Content, &raws); err != nil {
		return nil, false
	}

	blocks := make([]ContentBlock, 0, len(raws))
	for _, raw := range raws {
		if !isObject(raw) {
			continue
		}
		var block ContentBlock
		if err := json.Unmarshal(raw, &block); err != nil {
			continue
		}
		block.Raw = raw
		blocks = append(blocks, block)
	}
	return blocks, true
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '{'
}
