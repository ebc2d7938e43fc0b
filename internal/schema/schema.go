// Package schema validates the persisted grievance file against an
// embedded CUE schema.
//
// The store deliberately loads malformed content as an empty collection;
// this package is the loud counterpart, used by `gripe validate` to
// surface exactly what is wrong with a data file.
package schema

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed grievances.cue
var schemaSource string

// Issue is a single validation finding.
type Issue struct {
	// Path locates the offending value, e.g. "0.title". Empty when the
	// finding applies to the document as a whole.
	Path string `json:"path,omitempty"`

	// Message is a human-readable description.
	Message string `json:"message"`
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

// Validate checks raw file content against the grievance list schema.
//
// Returns the list of findings; an empty list means the content is
// valid. The error return is reserved for internal failures (a broken
// embedded schema), not data problems.
func Validate(data []byte) ([]Issue, error) {
	ctx := cuecontext.New()

	schemaVal := ctx.CompileString(schemaSource, cue.Filename("grievances.cue"))
	if err := schemaVal.Err(); err != nil {
		return nil, fmt.Errorf("compile embedded schema: %w", err)
	}
	listDef := schemaVal.LookupPath(cue.ParsePath("#Grievances"))
	if err := listDef.Err(); err != nil {
		return nil, fmt.Errorf("lookup #Grievances: %w", err)
	}

	expr, err := cuejson.Extract("grievances.json", data)
	if err != nil {
		return []Issue{{Message: fmt.Sprintf("not valid JSON: %v", err)}}, nil
	}
	dataVal := ctx.BuildExpr(expr)
	if err := dataVal.Err(); err != nil {
		return []Issue{{Message: fmt.Sprintf("not valid JSON: %v", err)}}, nil
	}

	unified := listDef.Unify(dataVal)
	if err := unified.Validate(cue.Concrete(true), cue.Final()); err != nil {
		return issuesFromCUE(err), nil
	}

	return duplicateIDs(unified), nil
}

// issuesFromCUE flattens a CUE error into individual findings.
func issuesFromCUE(err error) []Issue {
	var issues []Issue
	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()
		issues = append(issues, Issue{
			Path:    strings.Join(e.Path(), "."),
			Message: fmt.Sprintf(format, args...),
		})
	}
	if len(issues) == 0 {
		issues = append(issues, Issue{Message: err.Error()})
	}
	return issues
}

// duplicateIDs reports ids that appear more than once. Uniqueness is a
// cross-record constraint CUE's list schema cannot express.
func duplicateIDs(list cue.Value) []Issue {
	seen := map[int64]bool{}
	var issues []Issue

	iter, err := list.List()
	if err != nil {
		return nil
	}
	for index := 0; iter.Next(); index++ {
		id, err := iter.Value().LookupPath(cue.ParsePath("id")).Int64()
		if err != nil {
			continue
		}
		if seen[id] {
			issues = append(issues, Issue{
				Path:    fmt.Sprintf("%d.id", index),
				Message: fmt.Sprintf("duplicate id %d", id),
			})
		}
		seen[id] = true
	}
	return issues
}
