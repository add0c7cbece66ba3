package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/uniformhub/uniforms_backend/config"
	"github.com/uniformhub/uniforms_backend/models"
	"github.com/uniformhub/uniforms_backend/utils"
)

const (
	SectionStatusPass = "PASS"
	SectionStatusFail = "FAIL"

	VerdictReady    = "READY"
	VerdictNotReady = "NOT READY"
)

// SectionScore is one row of the readiness scorecard. Score and Threshold
// are percentages; Details carries the per-collection or per-field-pair
// evidence behind the score.
type SectionScore struct {
	Section   string   `json:"section"`
	Name      string   `json:"name"`
	Status    string   `json:"status"`
	Score     float64  `json:"score"`
	Threshold float64  `json:"threshold"`
	Details   []string `json:"details"`
}

type FlagFlipStep struct {
	Step         int    `json:"step"`
	Action       string `json:"action"`
	Risk         string `json:"risk"`
	Prerequisite string `json:"prerequisite"`
}

type ReadinessReport struct {
	RunId            string              `json:"runId"`
	GeneratedAt      time.Time           `json:"generatedAt"`
	Flags            config.RolloutFlags `json:"flags"`
	Sections         []SectionScore      `json:"sections"`
	FlagFlipSequence []FlagFlipStep      `json:"flagFlipSequence"`
	FinalVerdict     string              `json:"finalVerdict"`
	BlockingSections []string            `json:"blockingSections"`
}

// RunReadinessEvaluation aggregates the coverage, sync, cascade,
// relationship and dual-write measurements into the go/no-go scorecard for
// the next rollout phase. Read-only and advisory: it never flips a flag and
// never writes a record. A NOT READY verdict is an expected outcome, not an
// error.
func RunReadinessEvaluation(db *gorm.DB, logger *logrus.Logger, runId string, flags config.RolloutFlags) (*ReadinessReport, error) {
	report := &ReadinessReport{
		RunId:       runId,
		GeneratedAt: time.Now().UTC(),
		Flags:       flags,
	}

	sectionA, err := scoreFieldIntegrity(db, logger, runId)
	if err != nil {
		return nil, err
	}
	sectionB, err := scoreSyncHealth(db)
	if err != nil {
		return nil, err
	}
	sectionC, err := scoreCascadeIntegrity(db)
	if err != nil {
		return nil, err
	}
	sectionD, err := scoreRelationshipGraph(db)
	if err != nil {
		return nil, err
	}
	sectionE, sectionF, err := scoreLegacyDependence(db)
	if err != nil {
		return nil, err
	}
	report.Sections = []SectionScore{sectionA, sectionB, sectionC, sectionD, sectionE, sectionF}

	report.FlagFlipSequence = flagFlipSequence()
	report.FinalVerdict, report.BlockingSections = EvaluateVerdict(report.Sections)

	logger.WithFields(logrus.Fields{
		"run_id":            runId,
		"final_verdict":     report.FinalVerdict,
		"blocking_sections": report.BlockingSections,
	}).Info("rollout readiness evaluated")

	return report, nil
}

// EvaluateVerdict is a pure function of the section scores: READY only when
// every section in {A, B, C, F} passes and at most one section across A-F
// fails. It lists every failing section when blocking.
func EvaluateVerdict(sections []SectionScore) (string, []string) {
	required := map[string]bool{"A": true, "B": true, "C": true, "F": true}

	var failing []string
	requiredFailed := false
	for _, s := range sections {
		if s.Status == SectionStatusFail {
			failing = append(failing, s.Section)
			if required[s.Section] {
				requiredFailed = true
			}
		}
	}

	if !requiredFailed && len(failing) <= 1 {
		return VerdictReady, []string{}
	}
	return VerdictNotReady, failing
}

func scoreSection(section string, name string, score float64, threshold float64, details []string) SectionScore {
	status := SectionStatusFail
	if score >= threshold {
		status = SectionStatusPass
	}
	if details == nil {
		details = []string{}
	}
	return SectionScore{
		Section:   section,
		Name:      name,
		Status:    status,
		Score:     score,
		Threshold: threshold,
		Details:   details,
	}
}

// Section A: unified field coverage per collection, aggregate >= 95%.
func scoreFieldIntegrity(db *gorm.DB, logger *logrus.Logger, runId string) (SectionScore, error) {
	coverage, err := RunCoverageAudit(db, logger, runId, "")
	if err != nil {
		return SectionScore{}, err
	}
	var details []string
	for _, c := range coverage.Collections {
		details = append(details, fmt.Sprintf("%s: %d/%d (%.1f%%)", c.Collection, c.WithUnified, c.Total, c.Coverage))
	}
	return scoreSection("A", "Unified Field Integrity", coverage.Aggregate, 95, details), nil
}

// Section B: for every record whose legacy value has a defined mapping,
// does the unified value equal that mapping? Records with unmapped legacy
// vocabulary are reported but excluded from the ratio; they can never pass
// and are the repairer's skipped population.
func scoreSyncHealth(db *gorm.DB) (SectionScore, error) {
	var matched, mismatched, unmapped int64
	var details []string

	for _, t := range statusTargets() {
		q := db.Table(t.Table).
			Select(fmt.Sprintf("id, %s AS doc_number, %s AS legacy_status, %s AS unified_value",
				t.NumberColumn, t.LegacyColumn, t.UnifiedColumn))
		if t.Scope != "" {
			q = q.Where(t.Scope)
		}
		var rows []statusRow
		if err := q.Find(&rows).Error; err != nil {
			return SectionScore{}, fmt.Errorf("scan %s: %w", t.Entity, err)
		}

		var collectionMismatched int64
		for _, row := range rows {
			legacy := strings.TrimSpace(utils.DereferencePtr(row.Legacy))
			if legacy == "" {
				continue
			}
			expected, ok := t.MapFn(legacy)
			if !ok {
				unmapped++
				continue
			}
			if strings.TrimSpace(utils.DereferencePtr(row.Unified)) == expected {
				matched++
			} else {
				mismatched++
				collectionMismatched++
			}
		}
		if collectionMismatched > 0 {
			details = append(details, fmt.Sprintf("%s: %d out of sync", t.Entity, collectionMismatched))
		}
	}

	if unmapped > 0 {
		details = append(details, fmt.Sprintf("%d records carry unmapped legacy values (excluded from ratio)", unmapped))
	}
	score := percentage(matched, matched+mismatched)
	return scoreSection("B", "Status Sync Health", score, 98, details), nil
}

// Section C: pass/fail ratio over the four fixed cascade edges, the
// claimed-but-missing check folded into the PR->PO edge.
func scoreCascadeIntegrity(db *gorm.DB) (SectionScore, error) {
	type edgeResult struct {
		name       string
		violations int
		scanned    int
	}
	var results []edgeResult

	for _, edge := range []orphanEdge{prPoEdge(), grnPoEdge(), invoiceGrnEdge(), shipmentPrEdge()} {
		orphans, scanned, err := findOrphans[string](db, edge)
		if err != nil {
			return SectionScore{}, err
		}
		results = append(results, edgeResult{name: edge.Name, violations: len(orphans), scanned: scanned})
	}

	claimed, claimedScanned, err := findClaimedButMissingPos(db)
	if err != nil {
		return SectionScore{}, err
	}
	results[0].violations += len(claimed)
	results[0].scanned += claimedScanned

	var total float64
	var details []string
	for _, r := range results {
		ratio := 100.0
		if r.scanned > 0 {
			ratio = float64(r.scanned-r.violations) / float64(r.scanned) * 100
		}
		total += ratio
		details = append(details, fmt.Sprintf("%s: %d/%d intact (%.1f%%)", r.name, r.scanned-r.violations, r.scanned, ratio))
	}
	score := total / float64(len(results))
	return scoreSection("C", "Cascade Integrity", score, 90, details), nil
}

// Section D: orphan rate of the Order->Employee, Order->Company and
// Order->Vendor references. Only populated references count.
func scoreRelationshipGraph(db *gorm.DB) (SectionScore, error) {
	type refEdge struct {
		name string
		edge orphanEdge
	}
	intEdges := []refEdge{
		{"Order->Employee", orphanEdge{
			Name: "orderEmployee", ChildTable: "orders", ChildNumberExpr: "order_number",
			ChildKeyColumn: "employee_id", ChildKeyFilter: "employee_id IS NOT NULL AND employee_id > 0",
			ParentTable: "employees", ParentKeyColumn: "id", ParentKeyFilter: "id > 0",
		}},
		{"Order->Vendor", orphanEdge{
			Name: "orderVendor", ChildTable: "orders", ChildNumberExpr: "order_number",
			ChildKeyColumn: "vendor_id", ChildKeyFilter: "vendor_id IS NOT NULL AND vendor_id > 0",
			ParentTable: "vendors", ParentKeyColumn: "id", ParentKeyFilter: "id > 0",
		}},
	}
	companyEdge := refEdge{"Order->Company", orphanEdge{
		Name: "orderCompany", ChildTable: "orders", ChildNumberExpr: "order_number",
		ChildKeyColumn: "company_id", ChildKeyFilter: "company_id <> ''",
		ParentTable: "companies", ParentKeyColumn: "id", ParentKeyFilter: "id <> ''",
	}}

	var total float64
	var details []string
	score := func(name string, violations int, scanned int) {
		ratio := 100.0
		if scanned > 0 {
			ratio = float64(scanned-violations) / float64(scanned) * 100
		}
		total += ratio
		details = append(details, fmt.Sprintf("%s: %d/%d resolve (%.1f%%)", name, scanned-violations, scanned, ratio))
	}

	for _, e := range intEdges {
		orphans, scanned, err := findOrphans[int](db, e.edge)
		if err != nil {
			return SectionScore{}, err
		}
		score(e.name, len(orphans), scanned)
	}
	orphans, scanned, err := findOrphans[string](db, companyEdge.edge)
	if err != nil {
		return SectionScore{}, err
	}
	score(companyEdge.name, len(orphans), scanned)

	return scoreSection("D", "Relationship Graph Health", total/3, 80, details), nil
}

// Sections E and F share one scan. E: per field pair, the fraction of
// legacy-populated records that also carry the unified field — SAFE at
// 100%, WARNING at >= 90%, BLOCKING below; section score is the share of
// SAFE pairs. F: the same both/legacy ratio aggregated over all pairs, the
// lockstep-write evidence.
func scoreLegacyDependence(db *gorm.DB) (SectionScore, SectionScore, error) {
	var eDetails, fDetails []string
	var safePairs, totalPairs int
	var aggLegacy, aggBoth int64

	for _, t := range statusTargets() {
		base := db.Table(t.Table)
		if t.Scope != "" {
			base = base.Where(t.Scope)
		}
		legacyPopulated := fmt.Sprintf("%s IS NOT NULL AND %s <> ''", t.LegacyColumn, t.LegacyColumn)
		unifiedPopulated := fmt.Sprintf("%s IS NOT NULL AND %s <> ''", t.UnifiedColumn, t.UnifiedColumn)

		var legacyCount int64
		if err := base.Session(&gorm.Session{}).Where(legacyPopulated).Count(&legacyCount).Error; err != nil {
			return SectionScore{}, SectionScore{}, err
		}
		var bothCount int64
		if err := base.Session(&gorm.Session{}).Where(legacyPopulated).Where(unifiedPopulated).Count(&bothCount).Error; err != nil {
			return SectionScore{}, SectionScore{}, err
		}

		pct := percentage(bothCount, legacyCount)
		grade := "BLOCKING"
		switch {
		case pct >= 100:
			grade = "SAFE"
			safePairs++
		case pct >= 90:
			grade = "WARNING"
		}
		totalPairs++
		eDetails = append(eDetails, fmt.Sprintf("%s.%s/%s: %.1f%% %s", t.Table, t.LegacyColumn, t.UnifiedColumn, pct, grade))

		aggLegacy += legacyCount
		aggBoth += bothCount
	}

	eScore := percentage(int64(safePairs), int64(totalPairs))
	fScore := percentage(aggBoth, aggLegacy)
	fDetails = append(fDetails, fmt.Sprintf("%d of %d legacy-populated records carry both fields", aggBoth, aggLegacy))
	for _, action := range []models.MigrationAction{models.MigrationActionStatusUpdate, models.MigrationActionStatusSync, models.MigrationActionStatusRepair} {
		count, err := models.CountMigrationLogsByAction(db, action)
		if err != nil {
			return SectionScore{}, SectionScore{}, err
		}
		fDetails = append(fDetails, fmt.Sprintf("migration log %s entries: %d", action, count))
	}

	return scoreSection("E", "Legacy Field Dependence", eScore, 80, eDetails),
		scoreSection("F", "Dual-write Stability", fScore, 95, fDetails), nil
}

// flagFlipSequence is the fixed five-step rollout plan the evaluator
// annotates but never executes.
func flagFlipSequence() []FlagFlipStep {
	return []FlagFlipStep{
		{Step: 1, Action: "Set DUAL_WRITE_ENABLED=true (write legacy and unified together)", Risk: "LOW", Prerequisite: "Sections A and B PASS"},
		{Step: 2, Action: "Set READ_FROM_UNIFIED=true (serve reads from unified fields)", Risk: "MEDIUM", Prerequisite: "Final verdict READY on two consecutive runs"},
		{Step: 3, Action: "Set SAFE_MODE=false (legacy fields no longer authoritative)", Risk: "HIGH", Prerequisite: "Step 2 live for one full business cycle with section B >= 99%"},
		{Step: 4, Action: "Set DUAL_WRITE_ENABLED=false (stop writing legacy fields)", Risk: "HIGH", Prerequisite: "No consumer reads legacy fields; section F stable"},
		{Step: 5, Action: "Remove legacy status fields from the collections", Risk: "MEDIUM", Prerequisite: "Step 4 live; final backup taken"},
	}
}
