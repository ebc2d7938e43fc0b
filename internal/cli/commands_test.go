package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddThenShow(t *testing.T) {
	data := tempDataFile(t)

	out, err := execute(t, data, "add",
		"--title", "Noisy AC",
		"--description", "AC unit in room 4 buzzes loudly",
		"--author", "J. Doe")
	require.NoError(t, err)
	assert.Contains(t, out, "Added grievance #1: Noisy AC")

	out, err = execute(t, data, "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Title: Noisy AC")
	assert.Contains(t, out, "Status: open")
	assert.Contains(t, out, "Upvotes: 0")
}

func TestAdd_EmptyTitleFails(t *testing.T) {
	data := tempDataFile(t)

	out, err := execute(t, data, "add", "--title", "  ", "--description", "d", "--author", "a")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [VALIDATION]")

	// Nothing was created.
	out, err = execute(t, data, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No grievances found.")
}

func TestVoteAndResolveFlow(t *testing.T) {
	data := tempDataFile(t)

	_, err := execute(t, data, "add", "--title", "Noisy AC", "--description", "d", "--author", "J. Doe")
	require.NoError(t, err)

	out, err := execute(t, data, "vote", "1", "up")
	require.NoError(t, err)
	assert.Contains(t, out, "Voted up on grievance #1. (up: 1, down: 0)")

	out, err = execute(t, data, "list", "--status", "open", "--sort", "votes")
	require.NoError(t, err)
	assert.Contains(t, out, "#1 | OPEN     | score: +1 | Noisy AC (by J. Doe)")

	out, err = execute(t, data, "resolve", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Grievance #1 marked as resolved.")

	// Resolving again is a quiet success.
	_, err = execute(t, data, "resolve", "1")
	require.NoError(t, err)

	out, err = execute(t, data, "list", "--status", "open")
	require.NoError(t, err)
	assert.Contains(t, out, "No grievances found.")
}

func TestDeleteTwice(t *testing.T) {
	data := tempDataFile(t)

	_, err := execute(t, data, "add", "--title", "t", "--description", "d", "--author", "a")
	require.NoError(t, err)

	out, err := execute(t, data, "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted grievance #1.")

	out, err = execute(t, data, "delete", "1")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [NOT_FOUND]")
}

func TestShow_NotFound(t *testing.T) {
	out, err := execute(t, tempDataFile(t), "show", "42")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "grievance #42 not found")
}

func TestBadArguments(t *testing.T) {
	data := tempDataFile(t)

	_, err := execute(t, data, "show", "abc")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = execute(t, data, "vote", "1", "sideways")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = execute(t, data, "list", "--status", "closed")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = execute(t, data, "list", "--sort", "title")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestJSONOutput(t *testing.T) {
	data := tempDataFile(t)

	out, err := execute(t, data, "add", "--format", "json",
		"--title", "Noisy AC", "--description", "d", "--author", "J. Doe")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.TraceID)

	record, ok := resp.Data.(map[string]any)
	require.True(t, ok, "data should be a grievance object")
	assert.EqualValues(t, 1, record["id"])
	assert.Equal(t, "open", record["status"])
}

func TestJSONOutput_Error(t *testing.T) {
	out, err := execute(t, tempDataFile(t), "show", "9", "--format", "json")
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestSQLiteBackendFlow(t *testing.T) {
	data := filepath.Join(t.TempDir(), "gripe.db")

	run := func(args ...string) (string, error) {
		return execute(t, data, append(args, "--backend", "sqlite")...)
	}

	out, err := run("add", "--title", "Noisy AC", "--description", "d", "--author", "J. Doe")
	require.NoError(t, err)
	assert.Contains(t, out, "Added grievance #1")

	out, err = run("vote", "1", "down")
	require.NoError(t, err)
	assert.Contains(t, out, "(up: 0, down: 1)")

	out, err = run("list")
	require.NoError(t, err)
	assert.Contains(t, out, "score: -1")
}

func TestList_GoldenByVotes(t *testing.T) {
	data := tempDataFile(t)

	adds := [][3]string{
		{"Noisy AC", "AC unit in room 4 buzzes loudly", "J. Doe"},
		{"Broken printer", "Second floor printer eats paper", "M. Smith"},
		{"Cold coffee", "Machine on floor 2 runs lukewarm", "A. Lee"},
	}
	for _, a := range adds {
		_, err := execute(t, data, "add", "--title", a[0], "--description", a[1], "--author", a[2])
		require.NoError(t, err)
	}
	for _, args := range [][]string{
		{"vote", "2", "up"},
		{"vote", "2", "up"},
		{"vote", "1", "down"},
		{"resolve", "3"},
	} {
		_, err := execute(t, data, args...)
		require.NoError(t, err)
	}

	out, err := execute(t, data, "list", "--sort", "votes")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "list_by_votes", []byte(out))
}
