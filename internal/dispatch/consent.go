package dispatch

import "context"

// Decision is the user's answer to a shell consent prompt.
type Decision int

const (
	// DecisionDeny refuses the command.
	DecisionDeny Decision = iota
	// DecisionOnce allows this invocation only.
	DecisionOnce
	// DecisionSession allows the root command for the rest of the session.
	DecisionSession
	// DecisionPermanent allows the root command across sessions.
	DecisionPermanent
)

func (d Decision) String() string {
	switch d {
	case DecisionDeny:
		return "deny"
	case DecisionOnce:
		return "once"
	case DecisionSession:
		return "session"
	case DecisionPermanent:
		return "permanent"
	default:
		return "unknown"
	}
}

// Consenter obtains an interactive decision for a command line that is
// neither blocked nor pre-approved. Implementations block until the user
// answers or ctx is cancelled.
type Consenter interface {
	RequestConsent(ctx context.Context, commandLine string) (Decision, error)
}

// AutoDeny refuses every consent request. It is the consenter for
// non-interactive runs.
type AutoDeny struct{}

func (AutoDeny) RequestConsent(context.Context, string) (Decision, error) {
	return DecisionDeny, nil
}
