package warden

import (
	"github.com/rs/zerolog"

	"github.com/colonyops/warden/internal/core/archive"
	"github.com/colonyops/warden/internal/core/config"
	"github.com/colonyops/warden/internal/core/gate"
	"github.com/colonyops/warden/internal/core/git"
	"github.com/colonyops/warden/internal/core/worklist"
)

// App is the central entry point for all warden operations.
// Commands consume App instead of cherry-picking raw dependencies.
type App struct {
	Config   *config.Config
	Rules    *config.CompiledRules
	Recorder *Recorder
	Worklist *WorklistService
	Doctor   *DoctorService
	Archive  *archive.Root
}

// NewApp constructs an App from explicit dependencies.
func NewApp(cfg *config.Config, rules *config.CompiledRules, inspector git.Inspector, log zerolog.Logger) *App {
	store := worklist.NewFileStore(cfg.WorklistFile())
	archiveRoot := archive.NewRoot(cfg.ArchiveDir())

	return &App{
		Config: cfg,
		Rules:  rules,
		Recorder: NewRecorder(
			inspector,
			store,
			archiveRoot,
			cfg.GitTimeout(),
			nil,
			log.With().Str("component", "recorder").Logger(),
		),
		Worklist: NewWorklistService(store, log.With().Str("component", "worklist").Logger()),
		Doctor:   NewDoctorService(cfg),
		Archive:  archiveRoot,
	}
}

// GatesFor builds policy gates rooted at the given project directory. Rule
// sets are shared and immutable; only the containment root varies per call,
// so hook evaluations for different working directories stay independent.
func (a *App) GatesFor(root string) (*gate.Gates, error) {
	files, err := gate.NewFileGate(a.Rules.Protected, root)
	if err != nil {
		return nil, err
	}
	return &gate.Gates{
		Files:    files,
		Commands: gate.NewCommandGate(a.Rules.Blocked, a.Rules.Caution),
	}, nil
}
