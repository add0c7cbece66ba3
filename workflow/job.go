package workflow

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/uniformhub/uniforms_backend/config"
	"github.com/uniformhub/uniforms_backend/models"
	"github.com/uniformhub/uniforms_backend/utils"
)

// RunSummary wraps one batch run: the component report plus run metadata.
// The JSON file written to REPORTS_DIR contains this whole struct.
type RunSummary struct {
	JobName    string    `json:"jobName"`
	RunId      string    `json:"runId"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	ReportFile string    `json:"-"`
	Report     any       `json:"report"`
}

// RunBatchJob is the shared harness every operator tool runs on: connect,
// run the component, write the JSON report, log a summary line. A store
// connectivity failure is returned before any processing so the caller can
// exit non-zero; component findings are never errors.
//
// mutating jobs get MIGRATION_START / MIGRATION_COMPLETE entries in the
// migration log so the audit trail brackets every write-bearing run.
func RunBatchJob(jobName string, mutating bool, run func(db *gorm.DB, logger *logrus.Logger, runId string) (any, error)) (*RunSummary, error) {
	logger := config.GetLogger()

	if err := config.ConnectDatabase(); err != nil {
		config.LogError(logger, "job.go", "RunBatchJob", "connecting to store", jobName, err)
		return nil, err
	}
	db := config.GetDB()
	if db == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	runId := uuid.NewString()
	startedAt := time.Now().UTC()

	if mutating {
		if err := models.AppendMigrationLog(db, &models.MigrationLog{
			EntityType: models.EntityTypeMigrationRun,
			Action:     models.MigrationActionMigrationStart,
			Source:     jobName,
			UpdatedBy:  jobName,
			RunId:      runId,
		}); err != nil {
			return nil, fmt.Errorf("append MIGRATION_START: %w", err)
		}
	}

	report, err := run(db, logger, runId)
	if err != nil {
		config.LogError(logger, "job.go", "RunBatchJob", "running "+jobName, runId, err)
		return nil, err
	}

	summary := &RunSummary{
		JobName:    jobName,
		RunId:      runId,
		StartedAt:  startedAt,
		FinishedAt: time.Now().UTC(),
		Report:     report,
	}

	path, err := utils.WriteJSONFile(config.ReportsDir(), jobName, summary)
	if err != nil {
		return nil, err
	}
	summary.ReportFile = path

	if mutating {
		metadata, _ := utils.MarshalToJSON(map[string]string{"reportFile": path})
		if err := models.AppendMigrationLog(db, &models.MigrationLog{
			EntityType: models.EntityTypeMigrationRun,
			Action:     models.MigrationActionMigrationComplete,
			Source:     jobName,
			UpdatedBy:  jobName,
			RunId:      runId,
			Metadata:   metadata,
		}); err != nil {
			return nil, fmt.Errorf("append MIGRATION_COMPLETE: %w", err)
		}
	}

	logger.WithFields(logrus.Fields{
		"job":         jobName,
		"run_id":      runId,
		"report_file": path,
		"duration_ms": summary.FinishedAt.Sub(startedAt).Milliseconds(),
	}).Info("batch job completed")

	return summary, nil
}
