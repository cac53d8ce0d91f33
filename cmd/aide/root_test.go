package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aide-cli/aide/internal/config"
	"github.com/aide-cli/aide/internal/policy"
)

func TestApplyFlagsOverridesConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Trust.Roots = []string{"/srv/data"}

	applyFlags(cfg, &rootFlags{
		model:         "gemini-2.5-pro",
		maxIterations: 7,
		permissive:    true,
		trustedRoots:  []string{"/opt/shared"},
	})

	assert.Equal(t, "gemini-2.5-pro", cfg.Agent.Model)
	assert.Equal(t, 7, cfg.Agent.MaxIterations)
	assert.Equal(t, string(policy.ModePermissive), cfg.Agent.ApprovalMode)
	assert.Equal(t, []string{"/srv/data", "/opt/shared"}, cfg.Trust.Roots)
}

func TestApplyFlagsKeepsDefaults(t *testing.T) {
	cfg := config.DefaultConfig()
	before := *cfg

	applyFlags(cfg, &rootFlags{})

	assert.Equal(t, before.Agent, cfg.Agent)
}

func TestJoinArgs(t *testing.T) {
	assert.Equal(t, "fix the parser", joinArgs([]string{"fix", "the", "parser"}))
	assert.Equal(t, "single", joinArgs([]string{"single"}))
}
