package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarios(t *testing.T) {
	scenarios, err := LoadScenarios("testdata/scenarios")
	require.NoError(t, err)
	require.NotEmpty(t, scenarios, "no scenario files found")

	for _, scenario := range scenarios {
		t.Run(scenario.Name, func(t *testing.T) {
			RunWithGolden(t, scenario)
		})
	}
}

func TestLoadScenario(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/noisy_ac.yaml")
	require.NoError(t, err)
	assert.Equal(t, "noisy_ac", s.Name)
	assert.Len(t, s.Steps, 5)
	assert.Equal(t, "add", s.Steps[0].Op)
	require.NotNil(t, s.Steps[1].Expect)
	require.NotNil(t, s.Steps[1].Expect.Upvotes)
	assert.Equal(t, 1, *s.Steps[1].Expect.Upvotes)
}

func TestLoadScenarioErrors(t *testing.T) {
	dir := t.TempDir()

	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		return path
	}

	_, err := LoadScenario(filepath.Join(dir, "absent.yaml"))
	assert.Error(t, err)

	_, err = LoadScenario(write("garbage.yaml", "steps: [not: valid: yaml"))
	assert.Error(t, err)

	_, err = LoadScenario(write("unnamed.yaml", "steps:\n  - op: list\n"))
	assert.ErrorContains(t, err, "name is required")

	_, err = LoadScenario(write("empty.yaml", "name: empty\n"))
	assert.ErrorContains(t, err, "at least one step")
}

func TestRunRejectsUnknownOp(t *testing.T) {
	_, err := Run(&Scenario{
		Name:  "bogus",
		Steps: []Step{{Op: "archive"}},
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "unknown op")
}

func TestRunReportsExpectationFailures(t *testing.T) {
	upvotes := 5
	result, err := Run(&Scenario{
		Name: "mismatch",
		Steps: []Step{
			{Op: "add", Title: "t", Description: "d", Author: "a",
				Expect: &Expect{Upvotes: &upvotes}},
		},
	})
	require.NoError(t, err)
	require.Len(t, result.Failures, 1)
	assert.Contains(t, result.Failures[0], "upvotes = 0, want 5")
}
