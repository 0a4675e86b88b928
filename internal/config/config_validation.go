package config

import "errors"

var (
	errNoStorageDSN    = errors.New("local storage path is not set")
	errNoCloudName     = errors.New("uploader cloud name is not set")
	errNoUploadPreset  = errors.New("uploader upload preset is not set")
	errNoRemoteBaseURL = errors.New("remote document store base url is not set")
	errBadMaxInFlight  = errors.New("max in-flight syncs must be positive")
)

// validate checks that the merged configuration is complete enough to start
// the daemon. It reports every problem at once via errors.Join.
func (c *Config) validate() error {
	var errs []error

	if c.Storage.DSN == "" {
		errs = append(errs, errNoStorageDSN)
	}
	if c.Uploader.CloudName == "" {
		errs = append(errs, errNoCloudName)
	}
	if c.Uploader.UploadPreset == "" {
		errs = append(errs, errNoUploadPreset)
	}
	if c.Remote.BaseURL == "" {
		errs = append(errs, errNoRemoteBaseURL)
	}
	if c.Sync.MaxInFlight <= 0 {
		errs = append(errs, errBadMaxInFlight)
	}

	return errors.Join(errs...)
}
