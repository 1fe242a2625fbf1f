// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields koanf-tagged and flat; env vars map 1:1 onto tags.
// - Provide New() to build a Config with defaults; Load() layers file/env.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DatasetPath optionally points at a JSON dataset loaded at startup.
	DatasetPath string `koanf:"dataset_path"`

	// QueueSize bounds the in-memory ingest queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of ingest workers.
	WorkerCount int `koanf:"worker_count"`

	// MemoSize bounds the version-keyed insight snapshot cache.
	MemoSize int `koanf:"memo_size"`

	// RoleLimit caps the top-roles and salary-by-role tables.
	RoleLimit int `koanf:"role_limit"`

	// SkillLimit caps the skills-demand table.
	SkillLimit int `koanf:"skill_limit"`

	// CountryLimit caps the jobs-by-country table.
	CountryLimit int `koanf:"country_limit"`
}

// New creates a Config with service defaults. Table limits default to the
// sizes the dashboard renders: 10 roles, 12 skills, 8 countries.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		Addr:         ":9080",
		DatasetPath:  "",
		QueueSize:    100_000,
		WorkerCount:  runtime.NumCPU() * 2,
		MemoSize:     4,
		RoleLimit:    10,
		SkillLimit:   12,
		CountryLimit: 8,
	}
}
