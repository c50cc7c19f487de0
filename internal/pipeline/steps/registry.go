// Package steps provides stage definitions and dependency validation for the pipeline.
package steps

import (
	"fmt"
)

// Stage names one unit of work in a pipeline run.
type Stage string

const (
	StageRegisterLogin  Stage = "register_login"
	StageIngest         Stage = "ingest"
	StageDiscover       Stage = "discover"
	StageRecordFavorite Stage = "record_favorite"
	StageAdvise         Stage = "advise"
	StageAggregate      Stage = "aggregate"
)

// Status is the terminal state of a stage within one run.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
	StatusNotRun    Status = "not_run"
)

// Stage categories
const (
	CategoryIdentity   = "identity"
	CategoryIngestion  = "ingestion"
	CategoryDiscovery  = "discovery"
	CategoryEngagement = "engagement"
	CategoryReporting  = "reporting"
)

// StageDefinition defines metadata for a pipeline stage. A failed Fatal stage ends the run.
type StageDefinition struct {
	Name         Stage
	Label        string
	Category     string
	Dependencies []Stage
	Fatal        bool
}

// Registry holds all stage definitions
var Registry = map[Stage]StageDefinition{
	StageRegisterLogin: {
		Name:         StageRegisterLogin,
		Label:        "Registration & Login",
		Category:     CategoryIdentity,
		Dependencies: []Stage{},
		Fatal:        true,
	},
	StageIngest: {
		Name:         StageIngest,
		Label:        "PDF Upload & Extraction",
		Category:     CategoryIngestion,
		Dependencies: []Stage{StageRegisterLogin},
		Fatal:        true,
	},
	StageDiscover: {
		Name:         StageDiscover,
		Label:        "Job Scraping",
		Category:     CategoryDiscovery,
		Dependencies: []Stage{StageIngest},
	},
	StageRecordFavorite: {
		Name:         StageRecordFavorite,
		Label:        "Favorites",
		Category:     CategoryEngagement,
		Dependencies: []Stage{StageRegisterLogin, StageDiscover},
	},
	StageAdvise: {
		Name:         StageAdvise,
		Label:        "Career Chat",
		Category:     CategoryEngagement,
		Dependencies: []Stage{StageRegisterLogin},
	},
	StageAggregate: {
		Name:         StageAggregate,
		Label:        "Report",
		Category:     CategoryReporting,
		Dependencies: []Stage{StageIngest, StageDiscover},
	},
}

// Order is the sequence in which stages execute.
var Order = []Stage{
	StageRegisterLogin,
	StageIngest,
	StageDiscover,
	StageRecordFavorite,
	StageAdvise,
	StageAggregate,
}

// DependencyError represents a dependency validation error
type DependencyError struct {
	Stage               Stage
	MissingDependencies []Stage
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("missing dependencies: %v", e.MissingDependencies)
}

// ValidateDependencies checks that every dependency of stage has succeeded in statuses.
// Dependencies that are absent from statuses count as missing.
func ValidateDependencies(stage Stage, statuses map[Stage]Status) error {
	def, ok := Registry[stage]
	if !ok {
		return fmt.Errorf("unknown stage: %s", stage)
	}

	var missing []Stage
	for _, dep := range def.Dependencies {
		if statuses[dep] != StatusSucceeded {
			missing = append(missing, dep)
		}
	}

	if len(missing) > 0 {
		return &DependencyError{
			Stage:               stage,
			MissingDependencies: missing,
		}
	}

	return nil
}

// BlockedStages returns the stages in Order that have not run yet and whose dependencies
// are not met.
func BlockedStages(statuses map[Stage]Status) []Stage {
	var blocked []Stage
	for _, stage := range Order {
		if _, done := statuses[stage]; done {
			continue
		}
		if err := ValidateDependencies(stage, statuses); err != nil {
			blocked = append(blocked, stage)
		}
	}
	return blocked
}
