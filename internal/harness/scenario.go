// Package harness runs YAML-described scenarios against a grievance
// store and compares transcripts against golden files.
//
// Scenarios exercise sequences of operations (add, vote, resolve,
// delete, show, list) the way a user would, with a frozen clock so
// every transcript is deterministic.
package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario defines one conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Steps are executed in order against a fresh store.
	Steps []Step `yaml:"steps"`
}

// Step is a single store operation with optional expectations.
type Step struct {
	// Op is one of: add, vote, resolve, delete, show, list.
	Op string `yaml:"op"`

	// Add fields.
	Title       string `yaml:"title,omitempty"`
	Description string `yaml:"description,omitempty"`
	Author      string `yaml:"author,omitempty"`

	// Target id for vote/resolve/delete/show.
	ID int `yaml:"id,omitempty"`

	// Direction for vote: "up" or "down".
	Direction string `yaml:"direction,omitempty"`

	// List fields.
	Status string `yaml:"status,omitempty"`
	Sort   string `yaml:"sort,omitempty"`

	// Expect, when present, is checked after the step executes.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect describes the outcome a step must produce.
type Expect struct {
	// Error is the expected error code (NOT_FOUND, VALIDATION, ...).
	// Empty means the step must succeed.
	Error string `yaml:"error,omitempty"`

	// Record expectations (add/vote/resolve/show).
	Status    string `yaml:"status,omitempty"`
	Upvotes   *int   `yaml:"upvotes,omitempty"`
	Downvotes *int   `yaml:"downvotes,omitempty"`

	// Listing expectations (list).
	Count *int  `yaml:"count,omitempty"`
	IDs   []int `yaml:"ids,omitempty"` // exact listing order
}

// LoadScenario reads a single scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s: at least one step is required", path)
	}
	return &s, nil
}

// LoadScenarios reads every *.yaml scenario in a directory, sorted by
// filename for stable test ordering.
func LoadScenarios(dir string) ([]*Scenario, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	sort.Strings(matches)

	var scenarios []*Scenario
	for _, path := range matches {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}
