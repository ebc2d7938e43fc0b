package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/gripe/internal/grievance"
)

// checkExpect compares one step's event against its expectations.
// A step with no Expect block is simply required to succeed.
func checkExpect(step Step, event Event) []string {
	var failures []string
	fail := func(format string, args ...any) {
		failures = append(failures, fmt.Sprintf(format, args...))
	}

	expect := step.Expect
	if expect == nil {
		if event.Result != "ok" {
			fail("unexpected error: %s", event.Error)
		}
		return failures
	}

	if expect.Error != "" {
		if event.Result != "error" {
			fail("expected error %s, step succeeded", expect.Error)
		} else if !strings.HasPrefix(event.Error, expect.Error) {
			fail("expected error %s, got %s", expect.Error, event.Error)
		}
		return failures
	}
	if event.Result != "ok" {
		fail("unexpected error: %s", event.Error)
		return failures
	}

	if expect.Status != "" {
		if event.Record == nil {
			fail("expected a record with status %s, got none", expect.Status)
		} else if string(event.Record.Status) != expect.Status {
			fail("status = %s, want %s", event.Record.Status, expect.Status)
		}
	}
	if expect.Upvotes != nil {
		if event.Record == nil {
			fail("expected a record, got none")
		} else if event.Record.Upvotes != *expect.Upvotes {
			fail("upvotes = %d, want %d", event.Record.Upvotes, *expect.Upvotes)
		}
	}
	if expect.Downvotes != nil {
		if event.Record == nil {
			fail("expected a record, got none")
		} else if event.Record.Downvotes != *expect.Downvotes {
			fail("downvotes = %d, want %d", event.Record.Downvotes, *expect.Downvotes)
		}
	}
	if expect.Count != nil {
		if event.Count == nil {
			fail("expected a listing, got none")
		} else if *event.Count != *expect.Count {
			fail("count = %d, want %d", *event.Count, *expect.Count)
		}
	}
	if len(expect.IDs) > 0 {
		got := listingIDs(event.Records)
		if !equalIDs(got, expect.IDs) {
			fail("listing order = %v, want %v", got, expect.IDs)
		}
	}
	return failures
}

func listingIDs(items []grievance.Grievance) []int {
	out := make([]int, len(items))
	for i, g := range items {
		out[i] = g.ID
	}
	return out
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
