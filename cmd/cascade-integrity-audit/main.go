package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/uniformhub/uniforms_backend/workflow"
)

// cascade-integrity-audit runs the read-only cross-collection checks:
// orphaned shipments/GRNs/invoices, requisitions claiming a PO that does
// not exist, PO status vs child requisitions, and dangling
// product-vendor/vendor-inventory links. Findings are reported, never
// remediated.
//
//	go run ./cmd/cascade-integrity-audit
func main() {
	flag.Parse()

	summary, err := workflow.RunBatchJob("cascade-integrity-audit", false,
		func(db *gorm.DB, logger *logrus.Logger, runId string) (any, error) {
			return workflow.RunCascadeAudit(db, logger, runId)
		})
	if err != nil {
		fmt.Fprintf(os.Stderr, "cascade audit failed: %v\n", err)
		os.Exit(1)
	}

	report := summary.Report.(*workflow.CascadeAuditReport)
	for _, c := range report.Checks {
		state := "healthy"
		if !c.Healthy {
			state = fmt.Sprintf("%d findings", c.Count)
		}
		fmt.Printf("%-34s scanned=%-6d %s\n", c.Name, c.Scanned, state)
		for _, o := range c.Preview {
			fmt.Printf("  id=%d %s -> %s\n", o.Id, o.Number, o.ParentKey)
		}
		if c.TruncatedCount > 0 {
			fmt.Printf("  +%d more\n", c.TruncatedCount)
		}
	}
	fmt.Printf("total findings: %d\n", report.TotalFindings)
	fmt.Printf("report written to %s\n", summary.ReportFile)
}
