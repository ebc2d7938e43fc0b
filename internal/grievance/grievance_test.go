package grievance

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextID_Empty(t *testing.T) {
	assert.Equal(t, 1, NextID(nil))
	assert.Equal(t, 1, NextID([]Grievance{}))
}

func TestNextID_IgnoresGaps(t *testing.T) {
	items := []Grievance{{ID: 1}, {ID: 7}, {ID: 3}}
	assert.Equal(t, 8, NextID(items))
}

func TestFindIndex(t *testing.T) {
	items := []Grievance{{ID: 1}, {ID: 2}, {ID: 5}}

	assert.Equal(t, 2, FindIndex(items, 5))
	assert.Equal(t, -1, FindIndex(items, 4))
	assert.Equal(t, -1, FindIndex(nil, 1))
}

func TestScore(t *testing.T) {
	g := Grievance{Upvotes: 3, Downvotes: 5}
	assert.Equal(t, -2, g.Score())
}

func TestNormalizeField(t *testing.T) {
	assert.Equal(t, "hello", NormalizeField("  hello\n"))
	assert.Equal(t, "", NormalizeField(" \t "))

	// NFC: e + combining acute collapses to the precomposed form.
	assert.Equal(t, "café", NormalizeField("café"))
}

func TestParseVoteDirection(t *testing.T) {
	dir, err := ParseVoteDirection("up")
	require.NoError(t, err)
	assert.Equal(t, VoteUp, dir)

	_, err = ParseVoteDirection("sideways")
	assert.Error(t, err)
}

func TestParseSortKey_DefaultsToDate(t *testing.T) {
	key, err := ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortByDate, key)

	_, err = ParseSortKey("title")
	assert.Error(t, err)
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("resolved")
	require.NoError(t, err)
	assert.Equal(t, StatusResolved, st)

	_, err = ParseStatus("closed")
	assert.Error(t, err)
}

func TestFilter(t *testing.T) {
	items := []Grievance{
		{ID: 1, Status: StatusOpen},
		{ID: 2, Status: StatusResolved},
		{ID: 3, Status: StatusOpen},
	}

	open := Filter(items, StatusOpen)
	require.Len(t, open, 2)
	assert.Equal(t, 1, open[0].ID)
	assert.Equal(t, 3, open[1].ID)

	all := Filter(items, "")
	assert.Len(t, all, 3)
}

func TestFilter_DoesNotShareBackingArray(t *testing.T) {
	items := []Grievance{{ID: 1, Status: StatusOpen}}
	out := Filter(items, "")
	out[0].ID = 99
	assert.Equal(t, 1, items[0].ID)
}

func TestSorted_ByDate(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)
	items := []Grievance{
		{ID: 1, CreatedAt: NewTimestamp(base.Add(2 * time.Hour))},
		{ID: 2, CreatedAt: NewTimestamp(base)},
		{ID: 3, CreatedAt: NewTimestamp(base.Add(time.Hour))},
	}

	out := Sorted(items, SortByDate)
	assert.Equal(t, []int{2, 3, 1}, ids(out))

	// Input order untouched.
	assert.Equal(t, []int{1, 2, 3}, ids(items))
}

func TestSorted_ByVotes(t *testing.T) {
	items := []Grievance{
		{ID: 1, Upvotes: 1},
		{ID: 2, Upvotes: 5, Downvotes: 1},
		{ID: 3, Downvotes: 2},
	}

	out := Sorted(items, SortByVotes)
	assert.Equal(t, []int{2, 1, 3}, ids(out))
}

func TestSorted_TiesKeepInsertionOrder(t *testing.T) {
	at := NewTimestamp(time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local))
	items := []Grievance{
		{ID: 4, CreatedAt: at},
		{ID: 2, CreatedAt: at},
		{ID: 9, CreatedAt: at},
	}

	assert.Equal(t, []int{4, 2, 9}, ids(Sorted(items, SortByDate)))
	assert.Equal(t, []int{4, 2, 9}, ids(Sorted(items, SortByVotes)))
}

func TestTimestamp_RoundTrip(t *testing.T) {
	ts := NewTimestamp(time.Date(2024, 3, 1, 12, 34, 56, 789000000, time.Local))

	data, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-01T12:34:56"`, string(data))

	var back Timestamp
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Equal(ts.Time))
}

func TestTimestamp_RejectsGarbage(t *testing.T) {
	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"not-a-time"`), &ts))
}

func TestGrievance_JSONFieldNames(t *testing.T) {
	g := New(1, "Noisy AC", "AC unit in room 4 buzzes loudly", "J. Doe",
		time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local))

	data, err := json.Marshal(g)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, field := range []string{"id", "title", "description", "author", "status", "upvotes", "downvotes", "created_at"} {
		assert.Contains(t, raw, field)
	}
	assert.Equal(t, "open", raw["status"])
	assert.EqualValues(t, 0, raw["upvotes"])
}

func ids(items []Grievance) []int {
	out := make([]int, len(items))
	for i, g := range items {
		out[i] = g.ID
	}
	return out
}
