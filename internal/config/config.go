package config

import "time"

// Config is the top-level configuration container for weave-sync. It is
// populated by merging values from environment variables, command-line flags,
// an optional JSON file, and built-in defaults, in that order of precedence.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type Config struct {
	// Storage holds the local persistent store settings.
	Storage Storage `envPrefix:"STORAGE_" json:"storage"`

	// Uploader holds the remote media hosting settings.
	Uploader Uploader `envPrefix:"UPLOADER_" json:"uploader"`

	// Remote holds the remote document store settings.
	Remote Remote `envPrefix:"REMOTE_" json:"remote"`

	// Sync holds sync engine and background worker settings.
	Sync Sync `envPrefix:"SYNC_" json:"sync"`

	// Server holds the local status HTTP API settings.
	Server Server `envPrefix:"SERVER_" json:"server"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG" json:"-"`
}

// Storage contains local database settings.
type Storage struct {
	// DSN is the SQLite database path for the offline queue.
	// Env: STORAGE_DSN
	DSN string `env:"DSN" json:"dsn"`
}

// Uploader contains settings for the media hosting service.
type Uploader struct {
	// BaseURL is the upload API root. The per-media-type endpoint is
	// {BaseURL}/{cloud_name}/{media}/upload.
	// Env: UPLOADER_BASE_URL
	BaseURL string `env:"BASE_URL" json:"base_url"`

	// CloudName identifies the hosting account.
	// Env: UPLOADER_CLOUD_NAME
	CloudName string `env:"CLOUD_NAME" json:"cloud_name"`

	// UploadPreset is the unsigned upload profile sent with every upload.
	// Env: UPLOADER_UPLOAD_PRESET
	UploadPreset string `env:"UPLOAD_PRESET" json:"upload_preset"`

	// Timeout bounds a single upload request.
	// Env: UPLOADER_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT" json:"timeout"`
}

// Remote contains settings for the authoritative document store.
type Remote struct {
	// BaseURL is the document API root.
	// Env: REMOTE_BASE_URL
	BaseURL string `env:"BASE_URL" json:"base_url"`

	// APIKey, when set, is sent as a bearer token on every upsert.
	// Env: REMOTE_API_KEY
	APIKey string `env:"API_KEY" json:"api_key"`

	// Timeout bounds a single upsert request.
	// Env: REMOTE_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT" json:"timeout"`
}

// Sync contains sync engine and background worker settings.
type Sync struct {
	// MaxInFlight caps concurrent background syncs kicked off by Add.
	// Env: SYNC_MAX_IN_FLIGHT
	MaxInFlight int `env:"MAX_IN_FLIGHT" json:"max_in_flight"`

	// DrainInterval is the period of the background drain job.
	// Zero disables the periodic job; the connectivity monitor still
	// drains on every reconnect.
	// Env: SYNC_DRAIN_INTERVAL
	DrainInterval time.Duration `env:"DRAIN_INTERVAL" json:"drain_interval"`

	// ProbeInterval is how often the connectivity probe checks the remote.
	// Env: SYNC_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL" json:"probe_interval"`
}

// Server contains settings for the local status HTTP API.
type Server struct {
	// HTTPAddress is the listen address in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS" json:"address"`
}

// defaults returns the built-in fallback configuration, merged in last.
func defaults() *Config {
	return &Config{
		Storage: Storage{DSN: "weave-sync.db"},
		Uploader: Uploader{
			BaseURL: "https://api.cloudinary.com/v1_1",
			Timeout: 60 * time.Second,
		},
		Remote: Remote{Timeout: 15 * time.Second},
		Sync: Sync{
			MaxInFlight:   8,
			ProbeInterval: 30 * time.Second,
		},
		Server: Server{HTTPAddress: "localhost:8099"},
	}
}
