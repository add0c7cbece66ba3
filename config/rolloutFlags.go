package config

import (
	"os"
	"strings"
)

// RolloutFlags is the full set of flags gating the unified-status rollout.
// Components receive this struct at construction; they never read process
// env themselves. The engine only ever consults these flags, it never flips
// them — promotion is an external deployment-configuration step.
//
// Set via env as plain strings:
// - DUAL_WRITE_ENABLED=true|false   write legacy and unified together
// - SAFE_MODE=true|false            legacy fields stay authoritative on reads
// - READ_FROM_UNIFIED=true|false    reads served from unified fields
type RolloutFlags struct {
	DualWriteEnabled bool `json:"dualWriteEnabled"`
	SafeMode         bool `json:"safeMode"`
	ReadFromUnified  bool `json:"readFromUnified"`
}

func LoadRolloutFlags() RolloutFlags {
	return RolloutFlags{
		DualWriteEnabled: boolFromEnv("DUAL_WRITE_ENABLED", false),
		SafeMode:         boolFromEnv("SAFE_MODE", true),
		ReadFromUnified:  boolFromEnv("READ_FROM_UNIFIED", false),
	}
}

func boolFromEnv(key string, def bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if v == "" {
		return def
	}
	return v == "1" || v == "true" || v == "yes" || v == "y"
}

// ReportsDir is where batch runs write their timestamped JSON reports.
func ReportsDir() string {
	if v := strings.TrimSpace(os.Getenv("REPORTS_DIR")); v != "" {
		return v
	}
	return "reports"
}

// BackupsDir is where the orphan cleanup planner writes record snapshots
// before any manual deletion.
func BackupsDir() string {
	if v := strings.TrimSpace(os.Getenv("BACKUPS_DIR")); v != "" {
		return v
	}
	return "backups"
}
