// Package dispatch routes model tool calls to their implementations. Every
// call produces exactly one ToolResult: argument errors, trust denials,
// policy denials and execution failures are all folded into the result
// rather than surfaced as Go errors, so the agent loop never aborts on a
// failed tool.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	agentmodel "github.com/aide-cli/aide/internal/agent/model"
	"github.com/aide-cli/aide/internal/policy"
	"github.com/aide-cli/aide/internal/tool/directory"
	"github.com/aide-cli/aide/internal/tool/file"
	"github.com/aide-cli/aide/internal/tool/note"
	"github.com/aide-cli/aide/internal/tool/search"
	"github.com/aide-cli/aide/internal/tool/shell"
	"github.com/aide-cli/aide/internal/tool/web"
	"github.com/aide-cli/aide/internal/trust"
)

// Kind identifies a tool. The set is closed: Dispatch handles every Kind
// and rejects anything else.
type Kind string

const (
	KindReadFile      Kind = "read_file"
	KindWriteFile     Kind = "write_file"
	KindReplaceInFile Kind = "replace_in_file"
	KindListDirectory Kind = "list_directory"
	KindGlob          Kind = "glob"
	KindSearchContent Kind = "search_content"
	KindRunShell      Kind = "run_shell"
	KindWebSearch     Kind = "web_search"
	KindWebFetch      Kind = "web_fetch"
	KindSaveNote      Kind = "save_note"
)

// deniedError marks a failure that is a refusal rather than an error. The
// distinction surfaces as the result outcome.
type deniedError struct {
	reason string
}

func (e *deniedError) Error() string { return e.reason }

// Deps carries everything the dispatcher needs. All fields are required.
type Deps struct {
	Trust    *trust.Resolver
	Policy   *policy.ShellPolicy
	Consent  Consenter
	Files    *file.Tool
	Dirs     *directory.Tool
	Searcher *search.Tool
	Shell    *shell.Executor
	Web      *web.Client
	Notes    *note.Store
	Logger   *slog.Logger

	// MaxResultBytes caps the serialized content of any single result.
	MaxResultBytes int
	// ShellTimeout is the default per-command timeout; zero means none.
	ShellTimeout time.Duration
}

// Dispatcher executes tool calls against the workspace.
type Dispatcher struct {
	deps Deps
}

// New creates a Dispatcher. Panics if a required dependency is nil.
func New(deps Deps) *Dispatcher {
	if deps.Trust == nil {
		panic("dispatch: Trust is required")
	}
	if deps.Policy == nil {
		panic("dispatch: Policy is required")
	}
	if deps.Consent == nil {
		panic("dispatch: Consent is required")
	}
	if deps.Files == nil || deps.Dirs == nil || deps.Searcher == nil {
		panic("dispatch: filesystem tools are required")
	}
	if deps.Shell == nil {
		panic("dispatch: Shell is required")
	}
	if deps.Web == nil {
		panic("dispatch: Web is required")
	}
	if deps.Notes == nil {
		panic("dispatch: Notes is required")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Dispatcher{deps: deps}
}

// Dispatch executes one tool call and returns its result. It never returns
// an error; the outcome field on the result carries the verdict.
func (d *Dispatcher) Dispatch(ctx context.Context, call agentmodel.ToolCall) agentmodel.ToolResult {
	d.deps.Logger.Debug("dispatching tool call", "tool", call.Name, "id", call.ID)

	var payload any
	var err error

	switch Kind(call.Name) {
	case KindReadFile:
		payload, err = d.readFile(call.Args)
	case KindWriteFile:
		payload, err = d.writeFile(call.Args)
	case KindReplaceInFile:
		payload, err = d.replaceInFile(call.Args)
	case KindListDirectory:
		payload, err = d.listDirectory(call.Args)
	case KindGlob:
		payload, err = d.glob(call.Args)
	case KindSearchContent:
		payload, err = d.searchContent(call.Args)
	case KindRunShell:
		payload, err = d.runShell(ctx, call.Args)
	case KindWebSearch:
		payload, err = d.webSearch(ctx, call.Args)
	case KindWebFetch:
		payload, err = d.webFetch(ctx, call.Args)
	case KindSaveNote:
		payload, err = d.saveNote(call.Args)
	default:
		return d.finish(call, nil, fmt.Errorf("unknown tool %q", call.Name))
	}

	return d.finish(call, payload, err)
}

// finish folds a handler outcome into a ToolResult, serializing the payload
// and clipping it to the configured ceiling.
func (d *Dispatcher) finish(call agentmodel.ToolCall, payload any, err error) agentmodel.ToolResult {
	result := agentmodel.ToolResult{
		ToolCallID: call.ID,
		Name:       call.Name,
	}

	if err != nil {
		var denied *deniedError
		switch {
		case errors.As(err, &denied):
			result.Outcome = agentmodel.OutcomeDenied
		default:
			result.Outcome = agentmodel.OutcomeError
		}
		result.Content = err.Error()
		d.deps.Logger.Debug("tool call failed", "tool", call.Name, "outcome", result.Outcome, "reason", result.Content)
		return result
	}

	raw, marshalErr := json.Marshal(payload)
	if marshalErr != nil {
		result.Outcome = agentmodel.OutcomeError
		result.Content = fmt.Sprintf("failed to encode result: %v", marshalErr)
		return result
	}

	content := string(raw)
	if d.deps.MaxResultBytes > 0 && len(content) > d.deps.MaxResultBytes {
		content = content[:d.deps.MaxResultBytes] + "\n[result truncated]"
	}

	result.Outcome = agentmodel.OutcomeSuccess
	result.Content = content
	return result
}

// resolvePath canonicalises a reference and enforces trust before any
// filesystem access happens.
func (d *Dispatcher) resolvePath(reference string) (string, error) {
	resolved, err := d.deps.Trust.Resolve(reference)
	if err != nil {
		return "", err
	}
	if !d.deps.Trust.IsTrusted(resolved) {
		return "", &deniedError{reason: fmt.Sprintf("access denied: %s is outside the trusted roots", resolved)}
	}
	return resolved, nil
}

func (d *Dispatcher) readFile(args map[string]any) (any, error) {
	req, err := decode[readFileRequest](args)
	if err != nil {
		return nil, err
	}
	path, err := d.resolvePath(req.Path)
	if err != nil {
		return nil, err
	}
	return d.deps.Files.Read(path)
}

func (d *Dispatcher) writeFile(args map[string]any) (any, error) {
	req, err := decode[writeFileRequest](args)
	if err != nil {
		return nil, err
	}
	path, err := d.resolvePath(req.Path)
	if err != nil {
		return nil, err
	}
	return d.deps.Files.Write(path, req.Content)
}

func (d *Dispatcher) replaceInFile(args map[string]any) (any, error) {
	req, err := decode[replaceInFileRequest](args)
	if err != nil {
		return nil, err
	}
	path, err := d.resolvePath(req.Path)
	if err != nil {
		return nil, err
	}
	return d.deps.Files.Replace(path, req.OldText, req.NewText, req.ExpectedReplacements)
}

func (d *Dispatcher) listDirectory(args map[string]any) (any, error) {
	req, err := decode[listDirectoryRequest](args)
	if err != nil {
		return nil, err
	}
	if req.Path == "" {
		req.Path = "."
	}
	path, err := d.resolvePath(req.Path)
	if err != nil {
		return nil, err
	}
	return d.deps.Dirs.List(path, req.IncludeIgnored)
}

func (d *Dispatcher) glob(args map[string]any) (any, error) {
	req, err := decode[globRequest](args)
	if err != nil {
		return nil, err
	}
	if req.Path == "" {
		req.Path = "."
	}
	root, err := d.resolvePath(req.Path)
	if err != nil {
		return nil, err
	}
	return d.deps.Dirs.Glob(root, req.Pattern, req.IncludeIgnored)
}

func (d *Dispatcher) searchContent(args map[string]any) (any, error) {
	req, err := decode[searchContentRequest](args)
	if err != nil {
		return nil, err
	}
	if req.Path == "" {
		req.Path = "."
	}
	root, err := d.resolvePath(req.Path)
	if err != nil {
		return nil, err
	}
	return d.deps.Searcher.Search(root, req.Query, req.CaseSensitive, req.IncludeIgnored)
}

func (d *Dispatcher) runShell(ctx context.Context, args map[string]any) (any, error) {
	req, err := decode[runShellRequest](args)
	if err != nil {
		return nil, err
	}

	switch d.deps.Policy.Classify(req.Command) {
	case policy.Blocked:
		return nil, &deniedError{reason: fmt.Sprintf("command %q is blocked and cannot be approved", policy.RootCommandOf(req.Command))}
	case policy.NeedsConsent:
		decision, err := d.deps.Consent.RequestConsent(ctx, req.Command)
		if err != nil {
			return nil, fmt.Errorf("consent prompt failed: %w", err)
		}
		if decision == DecisionDeny {
			return nil, &deniedError{reason: "user declined to run the command"}
		}
		if err := d.recordConsent(req.Command, decision); err != nil {
			// The approval itself stands; only persistence failed.
			d.deps.Logger.Warn("failed to record consent", "command", policy.RootCommandOf(req.Command), "error", err)
		}
	}

	dir := d.deps.Trust.Workdir()
	if req.Dir != "" {
		dir, err = d.resolvePath(req.Dir)
		if err != nil {
			return nil, err
		}
	}

	timeout := d.deps.ShellTimeout
	if req.TimeoutSeconds > 0 {
		timeout = time.Duration(req.TimeoutSeconds) * time.Second
	}

	return d.deps.Shell.Run(ctx, req.Command, dir, timeout)
}

func (d *Dispatcher) recordConsent(commandLine string, decision Decision) error {
	root := policy.RootCommandOf(commandLine)
	switch decision {
	case DecisionOnce:
		return d.deps.Policy.RecordConsent(root, policy.ScopeOnce)
	case DecisionSession:
		return d.deps.Policy.RecordConsent(root, policy.ScopeSession)
	case DecisionPermanent:
		return d.deps.Policy.RecordConsent(root, policy.ScopePermanent)
	default:
		return fmt.Errorf("unexpected consent decision %v", decision)
	}
}

func (d *Dispatcher) webSearch(ctx context.Context, args map[string]any) (any, error) {
	req, err := decode[webSearchRequest](args)
	if err != nil {
		return nil, err
	}
	hits, err := d.deps.Web.Search(ctx, req.Query)
	if err != nil {
		return nil, err
	}
	return map[string]any{"query": req.Query, "results": hits}, nil
}

func (d *Dispatcher) webFetch(ctx context.Context, args map[string]any) (any, error) {
	req, err := decode[webFetchRequest](args)
	if err != nil {
		return nil, err
	}
	return d.deps.Web.Fetch(ctx, req.URL)
}

func (d *Dispatcher) saveNote(args map[string]any) (any, error) {
	req, err := decode[saveNoteRequest](args)
	if err != nil {
		return nil, err
	}
	return d.deps.Notes.Save(req.Content)
}
