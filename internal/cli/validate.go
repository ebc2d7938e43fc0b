package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/gripe/internal/schema"
)

// ValidationResult holds validation results for JSON output.
type ValidationResult struct {
	Valid  bool           `json:"valid"`
	File   string         `json:"file"`
	Issues []schema.Issue `json:"issues,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a grievance file against the schema",
		Long: `Check a grievance JSON file against the schema.

Normal loading tolerates a corrupt file by treating it as empty; this
command is the loud alternative, reporting exactly which records are
malformed. Defaults to the configured data file.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := rootOpts.Config.DataFile
			if len(args) == 1 {
				path = args[0]
			}
			return runValidate(rootOpts, path, cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	data, err := os.ReadFile(path)
	if err != nil {
		return argError(formatter, fmt.Sprintf("cannot read %s: %v", path, err))
	}

	issues, err := schema.Validate(data)
	if err != nil {
		return err
	}

	result := ValidationResult{Valid: len(issues) == 0, File: path, Issues: issues}
	if result.Valid {
		return formatter.Success(fmt.Sprintf("%s: OK", path), result)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d problem(s) found", path, len(issues))
	for _, issue := range issues {
		fmt.Fprintf(&b, "\n  %s", issue)
	}
	formatter.Error("INVALID_DATA_FILE", b.String(), issues)
	return NewExitError(ExitFailure, fmt.Sprintf("%s failed validation", path))
}
