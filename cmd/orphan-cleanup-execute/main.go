package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/uniformhub/uniforms_backend/utils"
	"github.com/uniformhub/uniforms_backend/workflow"
)

// orphan-cleanup-execute deletes exactly the primary-key sets recorded in a
// plan file produced by orphan-cleanup-plan. The plan must have been
// reviewed by a human; this tool refuses to run without -confirm=DELETE.
//
//	go run ./cmd/orphan-cleanup-execute -plan=reports/orphan-cleanup-plan-20260830-120000.json -confirm=DELETE
func main() {
	planFile := flag.String("plan", "", "Required: path to a plan file written by orphan-cleanup-plan")
	confirm := flag.String("confirm", "", "Type DELETE to proceed")
	flag.Parse()

	if strings.TrimSpace(*planFile) == "" {
		fmt.Fprintln(os.Stderr, "--plan is required")
		os.Exit(1)
	}
	if strings.TrimSpace(*confirm) != "DELETE" {
		fmt.Fprintln(os.Stderr, "set --confirm=DELETE to proceed")
		os.Exit(1)
	}

	// Plan files are the RunSummary envelope around the plan itself.
	var envelope struct {
		RunId  string               `json:"runId"`
		Report workflow.CleanupPlan `json:"report"`
	}
	if err := utils.ReadJSONFile(*planFile, &envelope); err != nil {
		fmt.Fprintf(os.Stderr, "cannot read plan file: %v\n", err)
		os.Exit(1)
	}
	if len(envelope.Report.Collections) == 0 {
		fmt.Println("plan contains no orphan sets; nothing to delete")
		return
	}

	summary, err := workflow.RunBatchJob("orphan-cleanup-execute", true,
		func(db *gorm.DB, logger *logrus.Logger, runId string) (any, error) {
			return workflow.ExecuteCleanupPlan(db, logger, &envelope.Report)
		})
	if err != nil {
		fmt.Fprintf(os.Stderr, "cleanup execution failed: %v\n", err)
		os.Exit(1)
	}

	results := summary.Report.([]workflow.ExecuteResult)
	for _, r := range results {
		fmt.Printf("%-22s requested=%-6d deleted=%-6d errors=%d\n",
			r.Collection, r.Requested, r.Deleted, len(r.Errors))
		for _, e := range r.Errors {
			fmt.Printf("  error: %s\n", e.Error)
		}
	}
	fmt.Printf("report written to %s\n", summary.ReportFile)
}
