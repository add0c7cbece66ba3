package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/uniformhub/uniforms_backend/workflow"
)

// orphan-cleanup-plan snapshots every orphaned child record to a JSON
// backup and prints the delete statements an operator would run. It never
// deletes anything itself; deletion is a separate, explicitly confirmed
// command (orphan-cleanup-execute) that consumes the plan file this tool
// writes.
//
//	go run ./cmd/orphan-cleanup-plan
func main() {
	flag.Parse()

	summary, err := workflow.RunBatchJob("orphan-cleanup-plan", false,
		func(db *gorm.DB, logger *logrus.Logger, runId string) (any, error) {
			return workflow.BuildCleanupPlan(db, logger, runId)
		})
	if err != nil {
		fmt.Fprintf(os.Stderr, "cleanup planning failed: %v\n", err)
		os.Exit(1)
	}

	plan := summary.Report.(*workflow.CleanupPlan)
	if len(plan.Collections) == 0 {
		fmt.Println("no orphaned records found; nothing to plan")
		return
	}
	for _, c := range plan.Collections {
		fmt.Printf("%s (%s): %d orphans\n", c.Collection, c.CheckName, len(c.Ids))
		fmt.Printf("  backup: %s\n", c.BackupFile)
		fmt.Printf("  %s\n", c.DeleteStatement)
	}
	fmt.Printf("plan written to %s\n", summary.ReportFile)
	fmt.Println("review the backups, then run orphan-cleanup-execute with this plan file to delete")
}
