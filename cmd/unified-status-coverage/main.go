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

// unified-status-coverage reports, per entity collection, how many records
// carry a populated unified-status field. Read-only.
//
//	go run ./cmd/unified-status-coverage
//	go run ./cmd/unified-status-coverage -company-id=<uuid>
func main() {
	companyId := flag.String("company-id", "", "Optional: restrict the audit to one company")
	flag.Parse()

	summary, err := workflow.RunBatchJob("unified-status-coverage", false,
		func(db *gorm.DB, logger *logrus.Logger, runId string) (any, error) {
			return workflow.RunCoverageAudit(db, logger, runId, strings.TrimSpace(*companyId))
		})
	if err != nil {
		fmt.Fprintf(os.Stderr, "coverage audit failed: %v\n", err)
		os.Exit(1)
	}

	report := summary.Report.(*workflow.CoverageReport)
	for _, c := range report.Collections {
		fmt.Printf("%-22s %6d/%-6d %6.1f%%\n", c.Collection, c.WithUnified, c.Total, c.Coverage)
	}
	fmt.Printf("aggregate coverage: %.1f%%\n", report.Aggregate)
	fmt.Printf("report written to %s\n", summary.ReportFile)
}
