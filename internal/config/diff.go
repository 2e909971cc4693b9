package config

import "slices"

// ConfigDiff describes what changed between two configs. Only fields the
// server reacts to at runtime are tracked; everything else needs a restart.
type ConfigDiff struct {
	LogLevelChanged  bool
	NewLogLevel      LogLevel
	ModelsChanged    bool
	NewModels        []string
	RateLimitChanged bool
	NewRateLimit     RateLimitConfig
	PersonasChanged  bool
	NewCatalogFile   string
}

// Any reports whether the diff records at least one change.
func (d ConfigDiff) Any() bool {
	return d.LogLevelChanged || d.ModelsChanged || d.RateLimitChanged || d.PersonasChanged
}

// Diff compares old and new configs and returns what changed. Provider
// credentials and the listen address are deliberately not tracked; changing
// those requires a restart.
func Diff(old, new *Config) ConfigDiff {
	d := ConfigDiff{}

	if old.Server.LogLevel != new.Server.LogLevel {
		d.LogLevelChanged = true
		d.NewLogLevel = new.Server.LogLevel
	}

	if !slices.Equal(old.Tutor.Models, new.Tutor.Models) {
		d.ModelsChanged = true
		d.NewModels = slices.Clone(new.Tutor.Models)
	}

	if old.RateLimit != new.RateLimit {
		d.RateLimitChanged = true
		d.NewRateLimit = new.RateLimit
	}

	if old.Personas.CatalogFile != new.Personas.CatalogFile {
		d.PersonasChanged = true
		d.NewCatalogFile = new.Personas.CatalogFile
	}

	return d
}
