package workflow

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// WriteReadinessWorkbook writes the scorecard next to the JSON report as an
// .xlsx for the operators who review go/no-go in a spreadsheet.
func WriteReadinessWorkbook(path string, report *ReadinessReport) error {
	f := excelize.NewFile()
	sheet := "Scorecard"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	f.SetCellValue(sheet, "A1", "Section")
	f.SetCellValue(sheet, "B1", "Name")
	f.SetCellValue(sheet, "C1", "Status")
	f.SetCellValue(sheet, "D1", "Score")
	f.SetCellValue(sheet, "E1", "Threshold")
	f.SetCellValue(sheet, "F1", "Details")

	row := 2
	for _, s := range report.Sections {
		f.SetCellValue(sheet, "A"+fmt.Sprint(row), s.Section)
		f.SetCellValue(sheet, "B"+fmt.Sprint(row), s.Name)
		f.SetCellValue(sheet, "C"+fmt.Sprint(row), s.Status)
		f.SetCellValue(sheet, "D"+fmt.Sprint(row), s.Score)
		f.SetCellValue(sheet, "E"+fmt.Sprint(row), s.Threshold)
		f.SetCellValue(sheet, "F"+fmt.Sprint(row), strings.Join(s.Details, "; "))
		row++
	}

	row++
	f.SetCellValue(sheet, "A"+fmt.Sprint(row), "Verdict")
	f.SetCellValue(sheet, "B"+fmt.Sprint(row), report.FinalVerdict)
	if len(report.BlockingSections) > 0 {
		f.SetCellValue(sheet, "C"+fmt.Sprint(row), "Blocked by: "+strings.Join(report.BlockingSections, ", "))
	}

	row += 2
	f.SetCellValue(sheet, "A"+fmt.Sprint(row), "Step")
	f.SetCellValue(sheet, "B"+fmt.Sprint(row), "Action")
	f.SetCellValue(sheet, "C"+fmt.Sprint(row), "Risk")
	f.SetCellValue(sheet, "D"+fmt.Sprint(row), "Prerequisite")
	for _, step := range report.FlagFlipSequence {
		row++
		f.SetCellValue(sheet, "A"+fmt.Sprint(row), step.Step)
		f.SetCellValue(sheet, "B"+fmt.Sprint(row), step.Action)
		f.SetCellValue(sheet, "C"+fmt.Sprint(row), step.Risk)
		f.SetCellValue(sheet, "D"+fmt.Sprint(row), step.Prerequisite)
	}

	return f.SaveAs(path)
}
