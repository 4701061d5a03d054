// Package report prints human-readable progress for a cleanup run.
package report

import (
	"fmt"
	"io"

	"github.com/lucendex/phantomclear/internal/cleanup"
)

const closingNote = "The next sync will create proper Motion tasks for these items."

// Console writes progress lines to w. Output is meant for people, not parsers.
type Console struct {
	w io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Start(total int) {
	fmt.Fprintln(c.w, "🔧 Clearing phantom Motion IDs from Notion...")
	fmt.Fprintf(c.w, "Found %d tasks with phantom IDs\n\n", total)
}

func (c *Console) Begin(task cleanup.ClearTask) {
	fmt.Fprintf(c.w, "Clearing phantom ID for: %s\n", task.DisplayName)
}

func (c *Console) Result(res cleanup.Result) {
	switch res.Outcome {
	case cleanup.OutcomeCleared:
		fmt.Fprintf(c.w, "  ✓ Cleared Motion ID: %s\n", res.Task.StaleReferenceID)
	case cleanup.OutcomeFailed:
		fmt.Fprintf(c.w, "  ❌ Failed: %d - %s\n", res.StatusCode, res.Snippet)
	default:
		fmt.Fprintf(c.w, "  ❌ Error: %v\n", res.Err)
	}
}

func (c *Console) Finish(summary cleanup.Summary) {
	fmt.Fprintf(c.w, "\n✅ Fixed %d/%d phantom IDs\n", summary.Cleared, summary.Total)
	fmt.Fprintf(c.w, "\n%s\n", closingNote)
}

// MissingCredential prints the fatal message shown when no API key resolves.
func MissingCredential(w io.Writer, envVar string) {
	fmt.Fprintf(w, "❌ %s not found in environment\n", envVar)
}
