package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "show <id>",
		Short:         "Show a grievance in full",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runShow(opts *RootOptions, rawID string, cmd *cobra.Command) error {
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

	g, err := st.Get(cmd.Context(), id)
	if err != nil {
		return operationFailed(formatter, err)
	}
	return formatter.Success(renderDetail(g), g)
}
