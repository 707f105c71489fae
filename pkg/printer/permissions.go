package printer

import (
	"fmt"
	"io"

	"github.com/berkguzel/slsperm/pkg/types"
	"github.com/fatih/color"
)

var (
	green     = color.New(color.FgGreen).SprintFunc()
	yellow    = color.New(color.FgYellow).SprintFunc()
	red       = color.New(color.FgRed).SprintFunc()
	bold      = color.New(color.Bold).SprintFunc()
	checkmark = green("✅")
	warning   = yellow("⚠️")
	danger    = red("❌")
)

// PrintReview writes the warnings of report grouped by severity.
func PrintReview(w io.Writer, report types.Report) {
	fmt.Fprintf(w, "\n%s Review: %s\n", bold("→"), report.PolicyName)

	if len(report.Warnings) == 0 {
		fmt.Fprintf(w, "  %s no broad or high-risk grants\n", checkmark)
		return
	}

	for _, level := range []string{"High", "Medium", "Low"} {
		for _, warn := range report.Warnings {
			if warn.Level == level {
				printWarningLine(w, warn)
			}
		}
	}
	fmt.Fprintln(w)
}

func printWarningLine(w io.Writer, warn types.Warning) {
	var icon string

	switch warn.Level {
	case "High":
		icon = danger
	case "Medium":
		icon = warning
	default:
		icon = checkmark
	}

	// Pad the action string for alignment
	actionPadded := fmt.Sprintf("%-35s", warn.Action)

	fmt.Fprintf(w, "    %s %-6s %s %s\n", icon, warn.Level, actionPadded, warn.Description)
}
