package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a grievance permanently",
		Long: `Delete a grievance permanently. There is no tombstone and no
undo; the id is only ever reissued if it was the highest one.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runDelete(opts *RootOptions, rawID string, cmd *cobra.Command) error {
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

	if err := st.Delete(cmd.Context(), id); err != nil {
		return operationFailed(formatter, err)
	}
	return formatter.Success(fmt.Sprintf("Deleted grievance #%d.", id), map[string]int{"id": id})
}
