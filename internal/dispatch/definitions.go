package dispatch

import (
	provider "github.com/aide-cli/aide/internal/provider/model"
)

// Definitions returns the tool definitions advertised to the model, one per
// Kind, in a stable order.
func Definitions() []provider.ToolDefinition {
	return []provider.ToolDefinition{
		{
			Name:        string(KindReadFile),
			Description: "Reads a text file and returns its content",
			Parameters: &provider.ParameterSchema{
				Type: "object",
				Properties: map[string]provider.PropertySchema{
					"path": {
						Type:        "string",
						Description: "Path to the file (absolute, or relative to the working directory)",
					},
				},
				Required: []string{"path"},
			},
		},
		{
			Name:        string(KindWriteFile),
			Description: "Writes content to a file, creating it and any missing parent directories",
			Parameters: &provider.ParameterSchema{
				Type: "object",
				Properties: map[string]provider.PropertySchema{
					"path": {
						Type:        "string",
						Description: "Path to the file (absolute, or relative to the working directory)",
					},
					"content": {
						Type:        "string",
						Description: "Full file content to write",
					},
				},
				Required: []string{"path", "content"},
			},
		},
		{
			Name:        string(KindReplaceInFile),
			Description: "Replaces occurrences of an exact text snippet in an existing file",
			Parameters: &provider.ParameterSchema{
				Type: "object",
				Properties: map[string]provider.PropertySchema{
					"path": {
						Type:        "string",
						Description: "Path to the file (absolute, or relative to the working directory)",
					},
					"old_text": {
						Type:        "string",
						Description: "Exact text to find",
					},
					"new_text": {
						Type:        "string",
						Description: "Replacement text",
					},
					"expected_replacements": {
						Type:        "integer",
						Description: "Exact number of occurrences expected; 0 means replace all occurrences",
					},
				},
				Required: []string{"path", "old_text", "new_text"},
			},
		},
		{
			Name:        string(KindListDirectory),
			Description: "Lists the entries of a directory",
			Parameters: &provider.ParameterSchema{
				Type: "object",
				Properties: map[string]provider.PropertySchema{
					"path": {
						Type:        "string",
						Description: "Directory path; defaults to the working directory",
					},
					"include_ignored": {
						Type:        "boolean",
						Description: "Include entries matched by .gitignore",
					},
				},
			},
		},
		{
			Name:        string(KindGlob),
			Description: "Finds files under a directory matching a glob pattern (supports ** for any depth)",
			Parameters: &provider.ParameterSchema{
				Type: "object",
				Properties: map[string]provider.PropertySchema{
					"pattern": {
						Type:        "string",
						Description: "Glob pattern, e.g. **/*.go",
					},
					"path": {
						Type:        "string",
						Description: "Directory to search from; defaults to the working directory",
					},
					"include_ignored": {
						Type:        "boolean",
						Description: "Include files matched by .gitignore",
					},
				},
				Required: []string{"pattern"},
			},
		},
		{
			Name:        string(KindSearchContent),
			Description: "Searches file contents for a literal string and returns matching lines",
			Parameters: &provider.ParameterSchema{
				Type: "object",
				Properties: map[string]provider.PropertySchema{
					"query": {
						Type:        "string",
						Description: "Literal text to search for",
					},
					"path": {
						Type:        "string",
						Description: "Directory to search from; defaults to the working directory",
					},
					"case_sensitive": {
						Type:        "boolean",
						Description: "Match case exactly",
					},
					"include_ignored": {
						Type:        "boolean",
						Description: "Include files matched by .gitignore",
					},
				},
				Required: []string{"query"},
			},
		},
		{
			Name:        string(KindRunShell),
			Description: "Runs a shell command line and returns its output and exit code",
			Parameters: &provider.ParameterSchema{
				Type: "object",
				Properties: map[string]provider.PropertySchema{
					"command": {
						Type:        "string",
						Description: "The command line to run",
					},
					"dir": {
						Type:        "string",
						Description: "Working directory for the command; defaults to the session working directory",
					},
					"timeout_seconds": {
						Type:        "integer",
						Description: "Per-command timeout override in seconds",
					},
				},
				Required: []string{"command"},
			},
		},
		{
			Name:        string(KindWebSearch),
			Description: "Searches the web and returns result titles and URLs",
			Parameters: &provider.ParameterSchema{
				Type: "object",
				Properties: map[string]provider.PropertySchema{
					"query": {
						Type:        "string",
						Description: "Search query",
					},
				},
				Required: []string{"query"},
			},
		},
		{
			Name:        string(KindWebFetch),
			Description: "Fetches a URL over HTTP(S) and returns the response body",
			Parameters: &provider.ParameterSchema{
				Type: "object",
				Properties: map[string]provider.PropertySchema{
					"url": {
						Type:        "string",
						Description: "The http or https URL to fetch",
					},
				},
				Required: []string{"url"},
			},
		},
		{
			Name:        string(KindSaveNote),
			Description: "Appends a timestamped note to the persistent notes file",
			Parameters: &provider.ParameterSchema{
				Type: "object",
				Properties: map[string]provider.PropertySchema{
					"content": {
						Type:        "string",
						Description: "The note text",
					},
				},
				Required: []string{"content"},
			},
		},
	}
}
