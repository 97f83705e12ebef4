package planner

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/entreplan/planner/internal/models"
)

// ExportHeader is the fixed column set of the tabular export.
var ExportHeader = []string{"Date", "Theme", "Platform", "Hook", "Prompt", "Automation Title", "Automation Idea", "Tools"}

// PlanRows renders a weekly plan as tabular rows: the header followed by one
// row per day in week order, always 8 rows total.
func PlanRows(plan models.WeeklyPlan) [][]string {
	rows := make([][]string, 0, 1+len(plan.Days))
	rows = append(rows, ExportHeader)
	for _, day := range plan.Days {
		rows = append(rows, []string{
			day.ISODate(),
			day.Theme,
			day.Platform,
			day.Hook,
			day.PromptText,
			day.Automation.Title,
			day.Automation.Idea,
			day.Automation.Tools,
		})
	}
	return rows
}

// WriteCSV writes the plan rows as RFC 4180 CSV. Fields containing commas,
// quotes or line breaks are quoted so a reader recovers them exactly.
func WriteCSV(w io.Writer, plan models.WeeklyPlan) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(PlanRows(plan)); err != nil {
		return fmt.Errorf("writing plan csv: %w", err)
	}
	return nil
}
