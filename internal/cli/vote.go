package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/gripe/internal/grievance"
)

// NewVoteCommand creates the vote command.
func NewVoteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vote <id> <up|down>",
		Short: "Vote a grievance up or down",
		Long: `Increment a grievance's up or down counter by one.

Votes are never retracted; counters only grow.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVote(rootOpts, args[0], args[1], cmd)
		},
	}
	return cmd
}

func runVote(opts *RootOptions, rawID, rawDir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	id, err := strconv.Atoi(rawID)
	if err != nil {
		return argError(formatter, fmt.Sprintf("invalid id %q: must be an integer", rawID))
	}
	dir, err := grievance.ParseVoteDirection(rawDir)
	if err != nil {
		return argError(formatter, err.Error())
	}

	st, err := opts.OpenStore()
	if err != nil {
		return err
	}
	defer st.Close()

	g, err := st.Vote(cmd.Context(), id, dir)
	if err != nil {
		return operationFailed(formatter, err)
	}
	text := fmt.Sprintf("Voted %s on grievance #%d. (up: %d, down: %d)", dir, g.ID, g.Upvotes, g.Downvotes)
	return formatter.Success(text, g)
}
