package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/gripe/internal/grievance"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Status string
	Sort   string
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List grievances",
		Long: `List grievances, optionally filtered by status.

Ordering is by creation date (oldest first) or by score (highest
first). Listing never modifies stored data.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Status, "status", "", "filter by status (open|resolved)")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "ordering (date|votes); default from config")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	var status grievance.Status
	if opts.Status != "" {
		parsed, err := grievance.ParseStatus(opts.Status)
		if err != nil {
			return argError(formatter, err.Error())
		}
		status = parsed
	}

	sortInput := opts.Sort
	if sortInput == "" {
		sortInput = opts.Config.Sort
	}
	key, err := grievance.ParseSortKey(sortInput)
	if err != nil {
		return argError(formatter, err.Error())
	}

	st, err := opts.OpenStore()
	if err != nil {
		return err
	}
	defer st.Close()

	items, err := st.List(cmd.Context(), status, key)
	if err != nil {
		return operationFailed(formatter, err)
	}
	return formatter.Success(renderRows(items), items)
}
