package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/statcardhq/statcard/pkg/github"
)

// runReport accumulates per-operation fetch timings in call order.
type runReport struct {
	entries []reportEntry
}

type reportEntry struct {
	name    string
	elapsed time.Duration
}

func newRunReport() *runReport {
	return &runReport{}
}

// add records the elapsed time of one named fetch.
func (r *runReport) add(name string, elapsed time.Duration) {
	r.entries = append(r.entries, reportEntry{name: name, elapsed: elapsed})
}

// total returns the summed elapsed time across all recorded fetches.
func (r *runReport) total() time.Duration {
	var total time.Duration
	for _, e := range r.entries {
		total += e.elapsed
	}
	return total
}

// formatElapsed renders a duration in seconds above one second and in
// milliseconds below, both with four decimals.
func formatElapsed(d time.Duration) string {
	if d > time.Second {
		return fmt.Sprintf("%.4f s", d.Seconds())
	}
	return fmt.Sprintf("%.4f ms", float64(d.Nanoseconds())/1e6)
}

// renderReport builds the run report: a timing table for each fetch plus the
// GraphQL call tally per operation.
func renderReport(r *runReport, counter *github.Counter) string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(colorWhite)

	rows := make([][]string, 0, len(r.entries)+1)
	for _, e := range r.entries {
		rows = append(rows, []string{e.name, formatElapsed(e.elapsed)})
	}
	rows = append(rows, []string{"total", formatElapsed(r.total())})

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Fetch", "Elapsed").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row == len(rows)-1 {
				return StyleNumber
			}
			return rowStyle
		})

	b.WriteString(StyleTitle.Render("Calculation times"))
	b.WriteString("\n")
	b.WriteString(t.Render())
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Total GraphQL API calls: %s\n", StyleNumber.Render(fmt.Sprintf("%d", counter.Total()))))
	for _, op := range counter.Operations() {
		b.WriteString(fmt.Sprintf("  %-16s %s\n", op+":", StyleDim.Render(fmt.Sprintf("%d", counter.Count(op)))))
	}

	return b.String()
}

// printReport writes the run report to stdout.
func printReport(r *runReport, counter *github.Counter) {
	fmt.Print(renderReport(r, counter))
}
