package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Title       string
	Description string
	Author      string
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new grievance",
		Long: `Record a new grievance with status open and zero votes.

Title, description, and author must all be non-empty after trimming.

Example:
  gripe add --title "Noisy AC" --description "AC unit in room 4 buzzes loudly" --author "J. Doe"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "grievance title")
	cmd.Flags().StringVar(&opts.Description, "description", "", "what is wrong")
	cmd.Flags().StringVar(&opts.Author, "author", "", "who is complaining")

	return cmd
}

func runAdd(opts *AddOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := opts.OpenStore()
	if err != nil {
		return err
	}
	defer st.Close()

	g, err := st.Add(cmd.Context(), opts.Title, opts.Description, opts.Author)
	if err != nil {
		return operationFailed(formatter, err)
	}
	return formatter.Success(fmt.Sprintf("Added grievance #%d: %s", g.ID, g.Title), g)
}
