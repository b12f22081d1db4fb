package agent

import llmtypes "github.com/skillet-ai/skillet/pkg/types/llm"

// Outcome tags how the reasoning loop ended. Callers must branch on it:
// a Degraded result still carries assistant text, but the task may be
// incomplete.
type Outcome int

const (
	// Final means the model produced a plain assistant reply within the
	// round budget.
	Final Outcome = iota
	// Degraded means the round budget ran out before a plain reply arrived.
	Degraded
)

func (o Outcome) String() string {
	if o == Degraded {
		return "degraded"
	}
	return "final"
}

// Result is the outcome of one ProcessMessage call. Message is always an
// assistant message; Conversation is the full transcript including the
// caller's input, every tool exchange, and Message itself, so it can be fed
// back in as the next call's history.
type Result struct {
	Outcome      Outcome
	Message      llmtypes.Message
	Conversation []llmtypes.Message
	Rounds       int
}
