// Package config loads the aide dotfile configuration.
package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// NOTE: Values in config files override defaults, including explicit zero
// values. Missing keys are left at their default values.
type Config struct {
	Agent AgentConfig `json:"agent"`
	Trust TrustConfig `json:"trust"`
	Tools ToolsConfig `json:"tools"`
}

type AgentConfig struct {
	// MaxIterations bounds the number of model turns that carry tool calls.
	MaxIterations int `json:"max_iterations"` // Default: 20

	// ApprovalMode is "default" (prompt for new commands) or "permissive".
	ApprovalMode string `json:"approval_mode"` // Default: "default"

	// Model is the provider model name.
	Model string `json:"model"` // Default: "gemini-2.0-flash"
}

type TrustConfig struct {
	// Roots are additional trusted directories beyond the working directory.
	Roots []string `json:"roots"`
}

type ToolsConfig struct {
	// File operations
	MaxFileSize      int64 `json:"max_file_size"`      // Default: 20 * 1024 * 1024 (20MB)
	BinarySampleSize int   `json:"binary_sample_size"` // Default: 8192

	// Tool output larger than this is truncated before it is appended to
	// the conversation history.
	MaxResultBytes int `json:"max_result_bytes"` // Default: 48000

	// Command execution
	MaxCommandOutputSize int64 `json:"max_command_output_size"` // Default: 10 * 1024 * 1024 (10MB)
	ShellTimeoutSeconds  int   `json:"shell_timeout_seconds"`   // Default: 600 (0 disables)
	GracefulShutdownMs   int   `json:"graceful_shutdown_ms"`    // Default: 2000

	// Listing and search
	MaxListEntries   int `json:"max_list_entries"`   // Default: 1000
	MaxSearchResults int `json:"max_search_results"` // Default: 200
	MaxLineLength    int `json:"max_line_length"`    // Default: 2000

	// Web
	MaxFetchBytes       int64 `json:"max_fetch_bytes"`        // Default: 2 * 1024 * 1024 (2MB)
	WebTimeoutSeconds   int   `json:"web_timeout_seconds"`    // Default: 30
	MaxWebSearchResults int   `json:"max_web_search_results"` // Default: 8
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Agent: AgentConfig{
			MaxIterations: 20,
			ApprovalMode:  "default",
			Model:         "gemini-2.0-flash",
		},
		Tools: ToolsConfig{
			MaxFileSize:          20 * 1024 * 1024,
			BinarySampleSize:     8192,
			MaxResultBytes:       48000,
			MaxCommandOutputSize: 10 * 1024 * 1024,
			ShellTimeoutSeconds:  600,
			GracefulShutdownMs:   2000,
			MaxListEntries:       1000,
			MaxSearchResults:     200,
			MaxLineLength:        2000,
			MaxFetchBytes:        2 * 1024 * 1024,
			WebTimeoutSeconds:    30,
			MaxWebSearchResults:  8,
		},
	}
}
