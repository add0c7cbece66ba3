package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/uniformhub/uniforms_backend/config"
	"github.com/uniformhub/uniforms_backend/workflow"
)

// rollout-readiness runs the composite go/no-go scorecard for promoting the
// unified-status rollout to its next phase. Advisory and read-only: a NOT
// READY verdict exits 0 — it is an answer, not a failure.
//
//	go run ./cmd/rollout-readiness
//	go run ./cmd/rollout-readiness -xlsx=false
func main() {
	writeXlsx := flag.Bool("xlsx", true, "Also write the scorecard as an .xlsx workbook")
	flag.Parse()

	flags := config.LoadRolloutFlags()

	summary, err := workflow.RunBatchJob("rollout-readiness", false,
		func(db *gorm.DB, logger *logrus.Logger, runId string) (any, error) {
			return workflow.RunReadinessEvaluation(db, logger, runId, flags)
		})
	if err != nil {
		fmt.Fprintf(os.Stderr, "readiness evaluation failed: %v\n", err)
		os.Exit(1)
	}

	report := summary.Report.(*workflow.ReadinessReport)
	fmt.Printf("flags: dual_write=%v safe_mode=%v read_from_unified=%v\n",
		flags.DualWriteEnabled, flags.SafeMode, flags.ReadFromUnified)
	for _, s := range report.Sections {
		fmt.Printf("%s. %-26s %-4s %6.1f%% (threshold %.0f%%)\n", s.Section, s.Name, s.Status, s.Score, s.Threshold)
		for _, d := range s.Details {
			fmt.Printf("   %s\n", d)
		}
	}
	fmt.Println("flag-flip sequence:")
	for _, step := range report.FlagFlipSequence {
		fmt.Printf("  %d. [%s] %s (requires: %s)\n", step.Step, step.Risk, step.Action, step.Prerequisite)
	}
	fmt.Printf("final verdict: %s\n", report.FinalVerdict)
	if len(report.BlockingSections) > 0 {
		fmt.Printf("blocked by sections: %s\n", strings.Join(report.BlockingSections, ", "))
	}
	fmt.Printf("report written to %s\n", summary.ReportFile)

	if *writeXlsx {
		xlsxPath := strings.TrimSuffix(summary.ReportFile, filepath.Ext(summary.ReportFile)) + ".xlsx"
		if err := workflow.WriteReadinessWorkbook(xlsxPath, report); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write workbook: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("workbook written to %s\n", xlsxPath)
	}
}
