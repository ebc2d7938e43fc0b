package harness

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/roach88/gripe/internal/grievance"
	"github.com/roach88/gripe/internal/store"
	"github.com/roach88/gripe/internal/testutil"
)

// scenarioEpoch is the frozen starting instant for every scenario run.
// The clock advances one minute before each step, so created_at values
// are deterministic and distinct.
var scenarioEpoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local)

// Event records the outcome of one step in the transcript.
type Event struct {
	Op      string                `json:"op"`
	Result  string                `json:"result"` // "ok" or "error"
	Error   string                `json:"error,omitempty"`
	Record  *grievance.Grievance  `json:"record,omitempty"`
	Records []grievance.Grievance `json:"records,omitempty"`
	Count   *int                  `json:"count,omitempty"`
}

// Result is the outcome of running a scenario.
type Result struct {
	Scenario *Scenario

	// Events is the transcript, one per step.
	Events []Event

	// Failures lists unmet step expectations. Empty means the
	// scenario passed.
	Failures []string
}

// Run executes a scenario against a fresh file store in a temporary
// directory. The error return covers harness-level problems (unknown
// op, store setup); expectation mismatches land in Result.Failures.
func Run(scenario *Scenario) (*Result, error) {
	dir, err := os.MkdirTemp("", "gripe-harness-*")
	if err != nil {
		return nil, fmt.Errorf("create scenario workspace: %w", err)
	}
	defer os.RemoveAll(dir)

	clock := testutil.NewFrozenClock(scenarioEpoch)
	st := store.NewFileStore(filepath.Join(dir, "grievances.json"), store.WithClock(clock.Now))

	result := &Result{Scenario: scenario}
	ctx := context.Background()

	for i, step := range scenario.Steps {
		clock.Advance(time.Minute)

		event, err := runStep(ctx, st, step)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
		result.Events = append(result.Events, event)

		for _, failure := range checkExpect(step, event) {
			result.Failures = append(result.Failures,
				fmt.Sprintf("step %d (%s): %s", i+1, step.Op, failure))
		}
	}
	return result, nil
}

func runStep(ctx context.Context, st store.Store, step Step) (Event, error) {
	switch step.Op {
	case "add":
		g, err := st.Add(ctx, step.Title, step.Description, step.Author)
		return recordEvent(step.Op, &g, err), nil

	case "vote":
		dir, err := grievance.ParseVoteDirection(step.Direction)
		if err != nil {
			return Event{}, err
		}
		g, err := st.Vote(ctx, step.ID, dir)
		return recordEvent(step.Op, &g, err), nil

	case "resolve":
		g, err := st.Resolve(ctx, step.ID)
		return recordEvent(step.Op, &g, err), nil

	case "show":
		g, err := st.Get(ctx, step.ID)
		return recordEvent(step.Op, &g, err), nil

	case "delete":
		err := st.Delete(ctx, step.ID)
		return recordEvent(step.Op, nil, err), nil

	case "list":
		var status grievance.Status
		if step.Status != "" {
			parsed, err := grievance.ParseStatus(step.Status)
			if err != nil {
				return Event{}, err
			}
			status = parsed
		}
		key, err := grievance.ParseSortKey(step.Sort)
		if err != nil {
			return Event{}, err
		}
		items, err := st.List(ctx, status, key)
		if err != nil {
			return errorEvent(step.Op, err), nil
		}
		count := len(items)
		event := Event{Op: step.Op, Result: "ok", Count: &count}
		if count > 0 {
			event.Records = items
		}
		return event, nil
	}
	return Event{}, fmt.Errorf("unknown op %q", step.Op)
}

func recordEvent(op string, g *grievance.Grievance, err error) Event {
	if err != nil {
		return errorEvent(op, err)
	}
	return Event{Op: op, Result: "ok", Record: g}
}

func errorEvent(op string, err error) Event {
	return Event{
		Op:     op,
		Result: "error",
		Error:  fmt.Sprintf("%s: %v", store.CodeFor(err), err),
	}
}
