package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewResolveCommand creates the resolve command.
func NewResolveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <id>",
		Short: "Mark a grievance as resolved",
		Long: `Mark a grievance as resolved.

Resolution is one-way and idempotent: resolving an already-resolved
grievance succeeds without change.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runResolve(opts *RootOptions, rawID string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	id, err := strconv.Atoi(rawID)
	if err != nil {
		return argError(formatter, fmt.Sprintf("invalid id %q: must be an integer", rawID))
	}

	st, err := opts.OpenStore()
	if err != nil {
		return err
	}
	defer st.Close()

	g, err := st.Resolve(cmd.Context(), id)
	if err != nil {
		return operationFailed(formatter, err)
	}
	return formatter.Success(fmt.Sprintf("Grievance #%d marked as resolved.", g.ID), g)
}
