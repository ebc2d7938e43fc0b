package cli

import (
	"fmt"
	"strings"

	"github.com/roach88/gripe/internal/grievance"
)

// renderRow formats the one-line list form:
//
//	#1 | OPEN     | score: +2 | Noisy AC (by J. Doe)
func renderRow(g grievance.Grievance) string {
	return fmt.Sprintf("#%d | %-8s | score: %+d | %s (by %s)",
		g.ID, strings.ToUpper(string(g.Status)), g.Score(), g.Title, g.Author)
}

// renderRows formats a listing, one row per line.
// An empty listing renders as a friendly message rather than nothing.
func renderRows(items []grievance.Grievance) string {
	if len(items) == 0 {
		return "No grievances found."
	}
	rows := make([]string, len(items))
	for i, g := range items {
		rows[i] = renderRow(g)
	}
	return strings.Join(rows, "\n")
}

// renderDetail formats the full record, one field per line.
func renderDetail(g grievance.Grievance) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ID: %d\n", g.ID)
	fmt.Fprintf(&b, "Title: %s\n", g.Title)
	fmt.Fprintf(&b, "Description: %s\n", g.Description)
	fmt.Fprintf(&b, "Author: %s\n", g.Author)
	fmt.Fprintf(&b, "Status: %s\n", g.Status)
	fmt.Fprintf(&b, "Upvotes: %d\n", g.Upvotes)
	fmt.Fprintf(&b, "Downvotes: %d\n", g.Downvotes)
	fmt.Fprintf(&b, "Created At: %s", g.CreatedAt)
	return b.String()
}
