package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/genai"

	"github.com/aide-cli/aide/internal/agent"
	"github.com/aide-cli/aide/internal/config"
	"github.com/aide-cli/aide/internal/dispatch"
	"github.com/aide-cli/aide/internal/logging"
	"github.com/aide-cli/aide/internal/policy"
	"github.com/aide-cli/aide/internal/provider/gemini"
	"github.com/aide-cli/aide/internal/tool/directory"
	"github.com/aide-cli/aide/internal/tool/file"
	"github.com/aide-cli/aide/internal/tool/fsutil"
	"github.com/aide-cli/aide/internal/tool/note"
	"github.com/aide-cli/aide/internal/tool/search"
	"github.com/aide-cli/aide/internal/tool/shell"
	"github.com/aide-cli/aide/internal/tool/web"
	"github.com/aide-cli/aide/internal/trust"
	"github.com/aide-cli/aide/internal/ui"
)

const systemPrompt = `You are aide, a coding agent working inside the user's project directory.
Use the available tools to inspect and change files, run commands, and look
things up on the web. Prefer small, verifiable steps. When the task is done,
answer with a short summary instead of calling more tools.`

type rootFlags struct {
	model          string
	maxIterations  int
	permissive     bool
	nonInteractive bool
	trustedRoots   []string
	debug          bool
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "aide [goal]",
		Short: "A coding agent for your terminal",
		Long: `aide runs a model-driven agent against the current directory. File access
is confined to trusted roots and shell commands go through an approval
policy before they execute.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), flags, args)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&flags.model, "model", "", "model name (overrides config)")
	cmd.Flags().IntVar(&flags.maxIterations, "max-iterations", 0, "iteration ceiling per run (overrides config)")
	cmd.Flags().BoolVar(&flags.permissive, "permissive", false, "run non-blocked shell commands without prompting")
	cmd.Flags().BoolVar(&flags.nonInteractive, "non-interactive", false, "never prompt; deny commands that would need consent")
	cmd.Flags().StringArrayVar(&flags.trustedRoots, "trust", nil, "additional trusted root directory (repeatable)")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "enable debug logging")

	return cmd
}

// applyFlags overlays command-line overrides onto the loaded config.
func applyFlags(cfg *config.Config, flags *rootFlags) {
	if flags.model != "" {
		cfg.Agent.Model = flags.model
	}
	if flags.maxIterations > 0 {
		cfg.Agent.MaxIterations = flags.maxIterations
	}
	if flags.permissive {
		cfg.Agent.ApprovalMode = string(policy.ModePermissive)
	}
	cfg.Trust.Roots = append(cfg.Trust.Roots, flags.trustedRoots...)
}

func run(ctx context.Context, flags *rootFlags, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlags(cfg, flags)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logging.SetDebug(flags.debug)
	logDir := ""
	if dir, err := config.Dir(); err == nil {
		logDir = filepath.Join(dir, "logs")
	}
	session := logging.NewSession(os.Stderr, logDir)
	defer session.Close()
	logger := session.Logger

	workdir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}

	roots := append([]string{workdir}, cfg.Trust.Roots...)
	resolver, err := trust.NewResolver(workdir, roots)
	if err != nil {
		return fmt.Errorf("failed to set up trusted roots: %w", err)
	}

	allowlistPath, err := config.AllowlistPath()
	if err != nil {
		return fmt.Errorf("failed to locate allowlist: %w", err)
	}
	shellPolicy, err := policy.NewShellPolicy(policy.ApprovalMode(cfg.Agent.ApprovalMode), policy.NewFileStore(allowlistPath))
	if err != nil {
		return fmt.Errorf("failed to load shell policy: %w", err)
	}

	notesPath, err := config.NotesPath()
	if err != nil {
		return fmt.Errorf("failed to locate notes file: %w", err)
	}

	var consenter dispatch.Consenter = ui.NewConsentPrompt()
	if flags.nonInteractive {
		consenter = dispatch.AutoDeny{}
	}

	detector := fsutil.NewBinaryDetector(cfg.Tools.BinarySampleSize)
	dispatcher := dispatch.New(dispatch.Deps{
		Trust:    resolver,
		Policy:   shellPolicy,
		Consent:  consenter,
		Files:    file.NewTool(cfg.Tools.MaxFileSize, detector),
		Dirs:     directory.NewTool(cfg.Tools.MaxListEntries),
		Searcher: search.NewTool(cfg.Tools.MaxSearchResults, cfg.Tools.MaxLineLength, detector),
		Shell: shell.NewExecutor(
			cfg.Tools.MaxCommandOutputSize,
			time.Duration(cfg.Tools.GracefulShutdownMs)*time.Millisecond,
			detector,
		),
		Web: web.NewClient(
			time.Duration(cfg.Tools.WebTimeoutSeconds)*time.Second,
			cfg.Tools.MaxFetchBytes,
			cfg.Tools.MaxWebSearchResults,
		),
		Notes:          note.NewStore(notesPath),
		Logger:         logger,
		MaxResultBytes: cfg.Tools.MaxResultBytes,
		ShellTimeout:   time.Duration(cfg.Tools.ShellTimeoutSeconds) * time.Second,
	})

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return errors.New("GEMINI_API_KEY environment variable is required")
	}
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}
	modelProvider := gemini.New(gemini.NewSDKClient(genaiClient), cfg.Agent.Model)

	goal := ""
	if len(args) > 0 {
		goal = joinArgs(args)
	} else {
		if flags.nonInteractive {
			return errors.New("a goal argument is required in non-interactive mode")
		}
		goal, err = ui.ReadGoal()
		if err != nil {
			if errors.Is(err, ui.ErrPromptCancelled) {
				return nil
			}
			return err
		}
	}

	console := ui.NewConsole(os.Stdout, ui.NewMarkdownRenderer(100))
	loop := agent.New(modelProvider, dispatcher, agent.Config{
		System:        systemPrompt,
		MaxIterations: cfg.Agent.MaxIterations,
		Tools:         dispatch.Definitions(),
		UI:            console,
		Logger:        logger,
	})

	logger.Info("starting run",
		"model", cfg.Agent.Model,
		"workdir", workdir,
		"approval_mode", cfg.Agent.ApprovalMode,
	)

	result, err := loop.Run(ctx, goal)
	if err != nil {
		logger.Error("run failed", "error", err)
		return err
	}

	logger.Info("run finished",
		"outcome", result.Outcome,
		"iterations", result.Iterations,
		"total_tokens", result.Usage.TotalTokens,
	)

	if result.Outcome == agent.OutcomeAborted {
		console.ShowStatus("aborted", fmt.Sprintf("stopped after %d iterations", result.Iterations))
	}
	return nil
}

func joinArgs(args []string) string {
	goal := args[0]
	for _, arg := range args[1:] {
		goal += " " + arg
	}
	return goal
}
