package dispatch

import (
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Validator is implemented by request types that check their own arguments.
type Validator interface {
	Validate() error
}

// decode maps raw tool-call arguments onto a typed request and runs its
// validation if it has any.
func decode[Req any](args map[string]any) (Req, error) {
	var req Req
	if err := mapstructure.Decode(args, &req); err != nil {
		return req, fmt.Errorf("invalid arguments: %w", err)
	}
	if v, ok := any(req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return req, err
		}
	}
	return req, nil
}

type readFileRequest struct {
	Path string `mapstructure:"path"`
}

func (r readFileRequest) Validate() error {
	if r.Path == "" {
		return errors.New("path must not be empty")
	}
	return nil
}

type writeFileRequest struct {
	Path    string `mapstructure:"path"`
	Content string `mapstructure:"content"`
}

func (r writeFileRequest) Validate() error {
	if r.Path == "" {
		return errors.New("path must not be empty")
	}
	return nil
}

type replaceInFileRequest struct {
	Path                 string `mapstructure:"path"`
	OldText              string `mapstructure:"old_text"`
	NewText              string `mapstructure:"new_text"`
	ExpectedReplacements int    `mapstructure:"expected_replacements"`
}

func (r replaceInFileRequest) Validate() error {
	if r.Path == "" {
		return errors.New("path must not be empty")
	}
	if r.OldText == "" {
		return errors.New("old_text must not be empty")
	}
	if r.ExpectedReplacements < 0 {
		return errors.New("expected_replacements must not be negative")
	}
	return nil
}

type listDirectoryRequest struct {
	Path           string `mapstructure:"path"`
	IncludeIgnored bool   `mapstructure:"include_ignored"`
}

type globRequest struct {
	Pattern        string `mapstructure:"pattern"`
	Path           string `mapstructure:"path"`
	IncludeIgnored bool   `mapstructure:"include_ignored"`
}

func (r globRequest) Validate() error {
	if r.Pattern == "" {
		return errors.New("pattern must not be empty")
	}
	return nil
}

type searchContentRequest struct {
	Query          string `mapstructure:"query"`
	Path           string `mapstructure:"path"`
	CaseSensitive  bool   `mapstructure:"case_sensitive"`
	IncludeIgnored bool   `mapstructure:"include_ignored"`
}

func (r searchContentRequest) Validate() error {
	if r.Query == "" {
		return errors.New("query must not be empty")
	}
	return nil
}

type runShellRequest struct {
	Command        string `mapstructure:"command"`
	Dir            string `mapstructure:"dir"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

func (r runShellRequest) Validate() error {
	if r.Command == "" {
		return errors.New("command must not be empty")
	}
	if r.TimeoutSeconds < 0 {
		return errors.New("timeout_seconds must not be negative")
	}
	return nil
}

type webSearchRequest struct {
	Query string `mapstructure:"query"`
}

func (r webSearchRequest) Validate() error {
	if r.Query == "" {
		return errors.New("query must not be empty")
	}
	return nil
}

type webFetchRequest struct {
	URL string `mapstructure:"url"`
}

func (r webFetchRequest) Validate() error {
	if r.URL == "" {
		return errors.New("url must not be empty")
	}
	return nil
}

type saveNoteRequest struct {
	Content string `mapstructure:"content"`
}

func (r saveNoteRequest) Validate() error {
	if r.Content == "" {
		return errors.New("content must not be empty")
	}
	return nil
}
