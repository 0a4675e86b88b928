package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a status API address in format [host]:[port]
//	-d local SQLite database path
//	-cloud-name media hosting account name
//	-upload-preset unsigned upload profile
//	-uploader-url media upload API root
//	-remote-url document store API root
//	-api-key document store bearer token
//	-max-in-flight cap on concurrent background syncs
//	-drain-interval periodic drain period (e.g. "5m", 0 to disable)
//	-probe-interval connectivity probe period (e.g. "30s")
//	-c/-config json file path with configs
func ParseFlags() *Config {
	var httpAddress string
	var dsn string
	var cloudName string
	var uploadPreset string
	var uploaderURL string
	var remoteURL string
	var apiKey string
	var maxInFlight int
	var drainInterval time.Duration
	var probeInterval time.Duration
	var jsonConfigPath string

	flag.StringVar(&httpAddress, "a", "", "Status API address host:port")
	flag.StringVar(&dsn, "d", "", "Local SQLite database path")
	flag.StringVar(&cloudName, "cloud-name", "", "Media hosting account name")
	flag.StringVar(&uploadPreset, "upload-preset", "", "Unsigned upload profile")
	flag.StringVar(&uploaderURL, "uploader-url", "", "Media upload API root")
	flag.StringVar(&remoteURL, "remote-url", "", "Document store API root")
	flag.StringVar(&apiKey, "api-key", "", "Document store bearer token")
	flag.IntVar(&maxInFlight, "max-in-flight", 0, "Max concurrent background syncs")
	flag.DurationVar(&drainInterval, "drain-interval", 0, "Periodic drain period (e.g. 5m)")
	flag.DurationVar(&probeInterval, "probe-interval", 0, "Connectivity probe period (e.g. 30s)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &Config{
		Storage: Storage{DSN: dsn},
		Uploader: Uploader{
			BaseURL:      uploaderURL,
			CloudName:    cloudName,
			UploadPreset: uploadPreset,
		},
		Remote: Remote{
			BaseURL: remoteURL,
			APIKey:  apiKey,
		},
		Sync: Sync{
			MaxInFlight:   maxInFlight,
			DrainInterval: drainInterval,
			ProbeInterval: probeInterval,
		},
		Server:       Server{HTTPAddress: httpAddress},
		JSONFilePath: jsonConfigPath,
	}
}
