package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component derives a logger tagged with a component name from the global
// logger. All warden subsystems log under the "component" key so one grep
// isolates a subsystem in the shared log file.
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
