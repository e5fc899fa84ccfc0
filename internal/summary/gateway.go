// Package summary relays note text to an external summarization model.
package summary

import (
	"context"
	"log/slog"
)

// Unavailable is returned in place of a summary when no model can be reached.
const Unavailable = "AI summary is currently unavailable"

// Instruction is the system prompt sent with every request.
const Instruction = "You summarize personal notes. Reply with a short, faithful summary of the user's text in the same language as the text."

// Summarizer produces text from a system instruction and user text.
type Summarizer interface {
	Summarize(ctx context.Context, instruction, text string) (string, error)
}

// Result is the outcome of a summary request.
type Result struct {
	Summary   string
	Available bool
}

// Gateway forwards text to a Summarizer and degrades to Unavailable when
// the summarizer is missing or fails.
type Gateway struct {
	s      Summarizer
	logger *slog.Logger
}

// NewGateway returns a gateway over s. s may be nil.
func NewGateway(s Summarizer, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{s: s, logger: logger}
}

// Configured reports whether a summarizer is attached.
func (g *Gateway) Configured() bool {
	return g != nil && g.s != nil
}

// Summarize returns the model output verbatim.
func (g *Gateway) Summarize(ctx context.Context, text string) Result {
	if !g.Configured() {
		return Result{Summary: Unavailable}
	}
	out, err := g.s.Summarize(ctx, Instruction, text)
	if err != nil {
		g.logger.Warn("summarizer failed", slog.String("error", err.Error()))
		return Result{Summary: Unavailable}
	}
	return Result{Summary: out, Available: true}
}
