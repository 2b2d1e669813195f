package cuke

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/acarl005/stripansi"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/cuketest/cuke-runner/runner"
	"github.com/cuketest/cuke-runner/types"
)

// printResultsTable prints the results of the suite run to the console.
func (c *cuke) printResultsTable(result *runner.SuiteResult) {
	c.config.Log.Info("Printing results...")
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(fmt.Sprintf("Suite Results (%s)", formatDuration(result.Duration)))

	// Configure columns
	t.AppendHeader(table.Row{
		"Type", "Name", "Duration", "Scenarios", "Passed", "Failed", "Skipped", "Status", "Error",
	})

	// Set column configurations for better readability
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Type", AutoMerge: true},
		{Name: "Name", WidthMax: 50, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Duration", Align: text.AlignRight},
		{Name: "Scenarios", Align: text.AlignRight},
		{Name: "Passed", Align: text.AlignRight},
		{Name: "Failed", Align: text.AlignRight},
		{Name: "Skipped", Align: text.AlignRight},
		{Name: "Error", WidthMax: 80, WidthMaxEnforcer: text.WrapSoft},
	})

	for _, feature := range result.Features {
		t.AppendRow(table.Row{
			"Feature",
			feature.Name,
			formatDuration(feature.Duration),
			"-", // Don't count the feature itself as a scenario
			feature.Stats.Passed,
			feature.Stats.Failed,
			feature.Stats.Skipped,
			getResultString(feature.Status),
			"",
		})

		for i, scenario := range feature.Scenarios {
			prefix := "├──"
			if i == len(feature.Scenarios)-1 {
				prefix = "└──"
			}

			t.AppendRow(table.Row{
				"Scenario",
				fmt.Sprintf("%s %s", prefix, scenario.Name),
				formatDuration(scenario.Duration),
				"1",
				boolToInt(scenario.Status == types.StatusPass),
				boolToInt(scenario.Status == types.StatusFail),
				boolToInt(scenario.Status == types.StatusSkip),
				getResultString(scenario.Status),
				extractKeyErrorMessage(scenario.Error),
			})
		}

		t.AppendSeparator()
	}

	for _, pf := range result.ParseFailures {
		t.AppendRow(table.Row{
			"File",
			pf.Path,
			"-",
			"-",
			0,
			0,
			0,
			"✗ parse error",
			extractKeyErrorMessage(pf.Error),
		})
	}
	if len(result.ParseFailures) > 0 {
		t.AppendSeparator()
	}

	// Update the table style setting based on result status
	if result.Status == types.StatusPass {
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	} else if result.Status == types.StatusSkip {
		t.SetStyle(table.StyleColoredBlackOnYellowWhite)
	} else {
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	}

	// Add summary footer
	t.AppendFooter(table.Row{
		"TOTAL",
		"",
		formatDuration(result.Duration),
		result.Stats.Total,
		result.Stats.Passed,
		result.Stats.Failed,
		result.Stats.Skipped,
		getResultString(result.Status),
		"",
	})

	t.Render()
}

// extractKeyErrorMessage extracts the most pertinent part of the error
// message for display. Step output may carry ANSI color codes; those
// are stripped first.
func extractKeyErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	errStr := stripansi.Strip(err.Error())

	// Limit to the first line or 80 chars
	if idx := strings.Index(errStr, "\n"); idx != -1 {
		errStr = errStr[:idx]
	}
	if len(errStr) > 80 {
		return errStr[:70] + "..."
	}
	return errStr
}

// Helper function to convert bool to int
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// getResultString returns a string representing the scenario result
func getResultString(status types.Status) string {
	switch status {
	case types.StatusPass:
		return "✓ pass"
	case types.StatusSkip:
		return "- skip"
	default:
		return "✗ fail"
	}
}

// Helper function to format duration to seconds with 1 decimal place
func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
