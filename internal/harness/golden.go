package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// transcript is the serialized form compared against golden files.
type transcript struct {
	ScenarioName string  `json:"scenario_name"`
	Events       []Event `json:"events"`
}

// RunWithGolden executes a scenario, fails the test on any unmet
// expectation, and compares the transcript against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		t.Fatalf("scenario %s: %v", scenario.Name, err)
	}
	for _, failure := range result.Failures {
		t.Errorf("scenario %s: %s", scenario.Name, failure)
	}

	data, err := json.MarshalIndent(transcript{
		ScenarioName: scenario.Name,
		Events:       result.Events,
	}, "", "  ")
	if err != nil {
		t.Fatalf("scenario %s: marshal transcript: %v", scenario.Name, err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)
}
