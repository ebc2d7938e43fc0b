package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/gripe/internal/grievance"
	"github.com/roach88/gripe/internal/store"
)

// NewMenuCommand creates the interactive menu command.
func NewMenuCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Run the interactive menu",
		Long: `Run the interactive numbered menu.

This is the conversational front end for people who prefer prompts
over flags. Every choice maps onto the same operations the direct
subcommands use.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(rootOpts, cmd)
		},
	}
	return cmd
}

func runMenu(opts *RootOptions, cmd *cobra.Command) error {
	st, err := opts.OpenStore()
	if err != nil {
		return err
	}
	defer st.Close()

	m := &menu{
		ctx:   cmd.Context(),
		in:    bufio.NewScanner(cmd.InOrStdin()),
		out:   cmd.OutOrStdout(),
		store: st,
	}
	return m.run()
}

// menu drives one interactive session. It owns all prompt text and
// reporting; store errors are shown and the loop continues.
type menu struct {
	ctx   context.Context
	in    *bufio.Scanner
	out   io.Writer
	store store.Store
}

func (m *menu) run() error {
	for {
		m.printf("\nGrievance Tracker - Menu\n")
		m.printf("1) Add grievance\n")
		m.printf("2) List grievances\n")
		m.printf("3) Show grievance by id\n")
		m.printf("4) Vote on grievance (up/down)\n")
		m.printf("5) Resolve grievance\n")
		m.printf("6) Delete grievance\n")
		m.printf("0) Exit\n")

		choice, ok := m.prompt("Choose an option: ")
		if !ok {
			// EOF ends the session like an explicit exit.
			return m.in.Err()
		}

		switch choice {
		case "1":
			m.add()
		case "2":
			m.list()
		case "3":
			m.show()
		case "4":
			m.vote()
		case "5":
			m.resolve()
		case "6":
			m.delete()
		case "0":
			m.printf("Goodbye!\n")
			return nil
		default:
			m.printf("Please choose a valid option.\n")
		}
	}
}

func (m *menu) add() {
	title, ok := m.prompt("Title: ")
	if !ok {
		return
	}
	description, ok := m.prompt("Description: ")
	if !ok {
		return
	}
	author, ok := m.prompt("Author: ")
	if !ok {
		return
	}

	g, err := m.store.Add(m.ctx, title, description, author)
	if err != nil {
		m.printf("Error: %v\n", err)
		return
	}
	m.printf("Added grievance #%d: %s\n", g.ID, g.Title)
}

func (m *menu) list() {
	rawStatus, ok := m.prompt("Filter by status (open/resolved or blank): ")
	if !ok {
		return
	}
	// Anything unrecognized means "no filter", as the prompt suggests.
	var status grievance.Status
	if parsed, err := grievance.ParseStatus(rawStatus); err == nil {
		status = parsed
	}

	rawSort, ok := m.prompt("Sort by (date/votes, default date): ")
	if !ok {
		return
	}
	key, err := grievance.ParseSortKey(rawSort)
	if err != nil {
		key = grievance.SortByDate
	}

	items, err := m.store.List(m.ctx, status, key)
	if err != nil {
		m.printf("Error: %v\n", err)
		return
	}
	m.printf("%s\n", renderRows(items))
}

func (m *menu) show() {
	id, ok := m.promptID()
	if !ok {
		return
	}
	g, err := m.store.Get(m.ctx, id)
	if err != nil {
		m.printf("Error: %v\n", err)
		return
	}
	m.printf("%s\n", renderDetail(g))
}

func (m *menu) vote() {
	id, ok := m.promptID()
	if !ok {
		return
	}
	rawDir, ok := m.prompt("Vote type (up/down): ")
	if !ok {
		return
	}
	dir, err := grievance.ParseVoteDirection(rawDir)
	if err != nil {
		m.printf("Invalid vote type.\n")
		return
	}

	g, err := m.store.Vote(m.ctx, id, dir)
	if err != nil {
		m.printf("Error: %v\n", err)
		return
	}
	m.printf("Voted %s on grievance #%d. (up: %d, down: %d)\n", dir, g.ID, g.Upvotes, g.Downvotes)
}

func (m *menu) resolve() {
	id, ok := m.promptID()
	if !ok {
		return
	}
	g, err := m.store.Resolve(m.ctx, id)
	if err != nil {
		m.printf("Error: %v\n", err)
		return
	}
	m.printf("Grievance #%d marked as resolved.\n", g.ID)
}

func (m *menu) delete() {
	id, ok := m.promptID()
	if !ok {
		return
	}
	if err := m.store.Delete(m.ctx, id); err != nil {
		m.printf("Error: %v\n", err)
		return
	}
	m.printf("Deleted grievance #%d.\n", id)
}

// promptID asks for an id and reports invalid input without aborting
// the session.
func (m *menu) promptID() (int, bool) {
	raw, ok := m.prompt("Enter id: ")
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		m.printf("Invalid id.\n")
		return 0, false
	}
	return id, true
}

// prompt prints a label and reads one trimmed line.
// ok is false when input is exhausted.
func (m *menu) prompt(label string) (string, bool) {
	m.printf("%s", label)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}
