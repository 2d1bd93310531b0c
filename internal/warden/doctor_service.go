package warden

import (
	"context"

	"github.com/colonyops/warden/internal/core/config"
	"github.com/colonyops/warden/internal/core/doctor"
)

// DoctorService runs health checks on the warden setup.
type DoctorService struct {
	config *config.Config
}

// NewDoctorService creates a new DoctorService.
func NewDoctorService(cfg *config.Config) *DoctorService {
	return &DoctorService{config: cfg}
}

// RunChecks executes all doctor checks and returns results.
func (d *DoctorService) RunChecks(ctx context.Context, configPath string, autofix bool) []doctor.Result {
	checks := []doctor.Check{
		doctor.NewToolsCheck(d.config.GitPath),
		doctor.NewConfigCheck(d.config, configPath),
		doctor.NewDataDirsCheck([]string{d.config.DataDir, d.config.ArchiveDir()}, autofix),
		doctor.NewRulesCheck(d.config.RulesFile),
		doctor.NewWorklistCheck(d.config.WorklistFile()),
	}
	return doctor.RunAll(ctx, checks)
}
