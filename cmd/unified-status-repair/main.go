package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/uniformhub/uniforms_backend/workflow"
)

// unified-status-repair backfills missing unified-status fields from the
// legacy status fields. Safe to re-run: already-repaired records get zero
// additional writes. Unmapped legacy values are skipped and listed in the
// report for manual follow-up, never defaulted.
//
// Backfill (default):
//
//	go run ./cmd/unified-status-repair
//
// Preview only:
//
//	go run ./cmd/unified-status-repair -dry-run
//
// Also fix present-but-mismatched unified values:
//
//	go run ./cmd/unified-status-repair -strict
func main() {
	companyId := flag.String("company-id", "", "Optional: restrict the pass to one company")
	dryRun := flag.Bool("dry-run", false, "Report what would change without writing")
	strict := flag.Bool("strict", false, "Also repair unified values that mismatch the current legacy value")
	flag.Parse()

	opts := workflow.RepairOptions{
		CompanyId: strings.TrimSpace(*companyId),
		DryRun:    *dryRun,
		Strict:    *strict,
	}

	summary, err := workflow.RunBatchJob("unified-status-repair", !opts.DryRun,
		func(db *gorm.DB, logger *logrus.Logger, runId string) (any, error) {
			return workflow.RunStatusRepair(db, logger, runId, opts)
		})
	if err != nil {
		fmt.Fprintf(os.Stderr, "status repair failed: %v\n", err)
		os.Exit(1)
	}

	report := summary.Report.(*workflow.RepairReport)
	for _, c := range report.Collections {
		fmt.Printf("%-22s scanned=%-6d repaired=%-6d skipped=%-6d errors=%d\n",
			c.Collection, c.Scanned, c.Repaired, len(c.Skipped), len(c.Errors))
		if c.EmptyLegacy > 0 {
			fmt.Printf("  %d records carry a unified value with no legacy value; nothing to repair\n", c.EmptyLegacy)
		}
		for _, s := range c.Skipped {
			fmt.Printf("  skipped id=%d %s: %s\n", s.Id, s.Number, s.Reason)
		}
		for _, e := range c.Errors {
			fmt.Printf("  error id=%d %s: %s\n", e.Id, e.Number, e.Error)
		}
	}
	fmt.Printf("totals: repaired=%d skipped=%d errors=%d\n",
		report.TotalRepaired, report.TotalSkipped, report.TotalErrors)
	fmt.Printf("report written to %s\n", summary.ReportFile)
}
