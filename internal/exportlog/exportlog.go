// Package exportlog records every page the server or CLI hands out, so
// the recent exports list survives restarts even though builder state
// does not.
package exportlog

import "time"

// Action is what happened to the document.
type Action string

const (
	ActionDownload Action = "download"
	ActionExport   Action = "export"
	ActionApply    Action = "apply"
	ActionPreview  Action = "preview"
)

// Source is the surface that triggered the action.
type Source string

const (
	SourceHTTP Source = "http"
	SourceCLI  Source = "cli"
	SourceMCP  Source = "mcp"
)

// Entry is one export log record.
type Entry struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Action     Action    `json:"action"`
	Source     Source    `json:"source"`
	DocumentID string    `json:"document_id"`
	Filename   string    `json:"filename,omitempty"`
	Bytes      int       `json:"bytes"`
	Sections   int       `json:"sections"`
	Actor      string    `json:"actor,omitempty"`
}
