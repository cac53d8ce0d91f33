package config

import (
	"fmt"
	"strings"
)

// Validate checks config values for correctness.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	var errs []string

	// Agent validation
	if c.Agent.MaxIterations < 1 {
		errs = append(errs, "agent.max_iterations must be >= 1")
	}
	if c.Agent.ApprovalMode != "default" && c.Agent.ApprovalMode != "permissive" {
		errs = append(errs, `agent.approval_mode must be "default" or "permissive"`)
	}
	if c.Agent.Model == "" {
		errs = append(errs, "agent.model must not be empty")
	}

	// Tools validation
	if c.Tools.MaxFileSize < 1 {
		errs = append(errs, "tools.max_file_size must be >= 1")
	}
	if c.Tools.BinarySampleSize < 1 {
		errs = append(errs, "tools.binary_sample_size must be >= 1")
	}
	if c.Tools.MaxResultBytes < 1 {
		errs = append(errs, "tools.max_result_bytes must be >= 1")
	}
	if c.Tools.MaxCommandOutputSize < 1 {
		errs = append(errs, "tools.max_command_output_size must be >= 1")
	}
	if c.Tools.ShellTimeoutSeconds < 0 {
		errs = append(errs, "tools.shell_timeout_seconds must be >= 0")
	}
	if c.Tools.GracefulShutdownMs < 1 {
		errs = append(errs, "tools.graceful_shutdown_ms must be >= 1")
	}
	if c.Tools.MaxListEntries < 1 {
		errs = append(errs, "tools.max_list_entries must be >= 1")
	}
	if c.Tools.MaxSearchResults < 1 {
		errs = append(errs, "tools.max_search_results must be >= 1")
	}
	if c.Tools.MaxLineLength < 1 {
		errs = append(errs, "tools.max_line_length must be >= 1")
	}
	if c.Tools.MaxFetchBytes < 1 {
		errs = append(errs, "tools.max_fetch_bytes must be >= 1")
	}
	if c.Tools.WebTimeoutSeconds < 1 {
		errs = append(errs, "tools.web_timeout_seconds must be >= 1")
	}
	if c.Tools.MaxWebSearchResults < 1 {
		errs = append(errs, "tools.max_web_search_results must be >= 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
