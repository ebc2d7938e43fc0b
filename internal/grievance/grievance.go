// Package grievance defines the grievance record and the pure helpers
// (id assignment, filtering, ordering) shared by all store backends.
package grievance

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Status is the lifecycle state of a grievance.
// The only legal transition is open → resolved; there is no way back.
type Status string

const (
	// StatusOpen is the initial status of every grievance.
	StatusOpen Status = "open"

	// StatusResolved is terminal. Resolving an already-resolved
	// grievance is a no-op success.
	StatusResolved Status = "resolved"
)

// ParseStatus converts user input into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusOpen, StatusResolved:
		return Status(s), nil
	}
	return "", fmt.Errorf("invalid status %q: must be %q or %q", s, StatusOpen, StatusResolved)
}

// VoteDirection selects which counter a vote increments.
type VoteDirection string

const (
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
)

// ParseVoteDirection converts user input into a VoteDirection.
func ParseVoteDirection(s string) (VoteDirection, error) {
	switch VoteDirection(s) {
	case VoteUp, VoteDown:
		return VoteDirection(s), nil
	}
	return "", fmt.Errorf("invalid vote direction %q: must be %q or %q", s, VoteUp, VoteDown)
}

// SortKey selects the ordering applied when listing grievances.
type SortKey string

const (
	// SortByDate orders by creation time, oldest first. This is the default.
	SortByDate SortKey = "date"

	// SortByVotes orders by score (upvotes - downvotes), highest first.
	SortByVotes SortKey = "votes"
)

// ParseSortKey converts user input into a SortKey.
// Empty input selects the default ordering.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case "":
		return SortByDate, nil
	case SortByDate, SortByVotes:
		return SortKey(s), nil
	}
	return "", fmt.Errorf("invalid sort key %q: must be %q or %q", s, SortByDate, SortByVotes)
}

// TimeLayout is the persisted timestamp format: local time, second
// precision, no zone. This is the on-disk contract and must not change.
const TimeLayout = "2006-01-02T15:04:05"

// Timestamp is a second-precision creation time.
// It marshals to and from the persisted TimeLayout form.
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to second precision.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t.Truncate(time.Second)}
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format(TimeLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
// A timestamp that does not match TimeLayout is a decode error, which the
// store's corruption policy downgrades to an empty collection.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := time.ParseInLocation(TimeLayout, s, time.Local)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

// String returns the persisted form.
func (t Timestamp) String() string {
	return t.Format(TimeLayout)
}

// Grievance is a user-submitted complaint record.
//
// Invariants:
//   - ID is positive, unique within a collection, and never reused.
//   - Title, Description, and Author are non-empty after normalization.
//   - Upvotes and Downvotes never decrease.
//   - CreatedAt is immutable after creation.
//
// The JSON field names are the persisted file format.
type Grievance struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Author      string    `json:"author"`
	Status      Status    `json:"status"`
	Upvotes     int       `json:"upvotes"`
	Downvotes   int       `json:"downvotes"`
	CreatedAt   Timestamp `json:"created_at"`
}

// New builds an open grievance with zero votes.
// Fields are assumed to be normalized and validated by the caller.
func New(id int, title, description, author string, createdAt time.Time) Grievance {
	return Grievance{
		ID:          id,
		Title:       title,
		Description: description,
		Author:      author,
		Status:      StatusOpen,
		CreatedAt:   NewTimestamp(createdAt),
	}
}

// Score is upvotes minus downvotes.
func (g Grievance) Score() int {
	return g.Upvotes - g.Downvotes
}

// NormalizeField prepares user text for storage: Unicode NFC
// normalization followed by a whitespace trim.
func NormalizeField(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// NextID returns the id the next grievance should receive:
// max existing id + 1, or 1 for an empty collection.
//
// Gaps left by deletions are never reused, but deleting the current
// maximum makes its id available again. That matches the original
// tool's observable behavior and is kept deliberately.
func NextID(items []Grievance) int {
	max := 0
	for _, g := range items {
		if g.ID > max {
			max = g.ID
		}
	}
	return max + 1
}

// FindIndex returns the index of the grievance with the given id,
// or -1 if absent. Linear scan; collections are small.
func FindIndex(items []Grievance, id int) int {
	for i, g := range items {
		if g.ID == id {
			return i
		}
	}
	return -1
}

// Filter returns the grievances matching the given status.
// An empty status matches everything. The input is never modified.
func Filter(items []Grievance, status Status) []Grievance {
	if status == "" {
		return append([]Grievance(nil), items...)
	}
	out := make([]Grievance, 0, len(items))
	for _, g := range items {
		if g.Status == status {
			out = append(out, g)
		}
	}
	return out
}

// Sorted returns a copy of items ordered by the given key.
// Ties keep their relative (insertion) order under both keys.
func Sorted(items []Grievance, key SortKey) []Grievance {
	out := append([]Grievance(nil), items...)
	switch key {
	case SortByVotes:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Score() > out[j].Score()
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.Before(out[j].CreatedAt.Time)
		})
	}
	return out
}
