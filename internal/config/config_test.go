package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── env parsing ──────────────────────────────────────────────────────────────

func TestParseEnv_PopulatesNestedSections(t *testing.T) {
	t.Setenv("STORAGE_DSN", "/tmp/weave.db")
	t.Setenv("UPLOADER_CLOUD_NAME", "weave")
	t.Setenv("UPLOADER_UPLOAD_PRESET", "weave_unsigned")
	t.Setenv("REMOTE_BASE_URL", "https://docs.example")
	t.Setenv("SYNC_DRAIN_INTERVAL", "2m")

	cfg := new(Config)
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "/tmp/weave.db", cfg.Storage.DSN)
	assert.Equal(t, "weave", cfg.Uploader.CloudName)
	assert.Equal(t, "weave_unsigned", cfg.Uploader.UploadPreset)
	assert.Equal(t, "https://docs.example", cfg.Remote.BaseURL)
	assert.Equal(t, 2*time.Minute, cfg.Sync.DrainInterval)
}

// ── builder merging ──────────────────────────────────────────────────────────

func TestConfigBuilder_EarlierSourcesWin(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&Config{
			Storage:  Storage{DSN: "from-env.db"},
			Uploader: Uploader{CloudName: "weave", UploadPreset: "weave_unsigned"},
			Remote:   Remote{BaseURL: "https://docs.example"},
			Sync:     Sync{MaxInFlight: 2},
		},
		&Config{Storage: Storage{DSN: "from-json.db"}},
	)
	b.configs = append(b.configs, defaults())

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, "from-env.db", cfg.Storage.DSN)
	assert.Equal(t, 2, cfg.Sync.MaxInFlight)
	// Gaps are filled from defaults.
	assert.Equal(t, "https://api.cloudinary.com/v1_1", cfg.Uploader.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Sync.ProbeInterval)
}

func TestConfigBuilder_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"uploader": {"cloud_name": "weave", "upload_preset": "weave_unsigned"},
		"remote": {"base_url": "https://docs.example"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	b := newConfigBuilder()
	b.configs = append(b.configs, &Config{JSONFilePath: path})
	b.withJSON().withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "weave", cfg.Uploader.CloudName)
	assert.Equal(t, "https://docs.example", cfg.Remote.BaseURL)
}

// ── validation ───────────────────────────────────────────────────────────────

func TestValidate_ReportsEveryMissingField(t *testing.T) {
	cfg := new(Config)
	err := cfg.validate()
	require.Error(t, err)

	assert.ErrorIs(t, err, errNoStorageDSN)
	assert.ErrorIs(t, err, errNoCloudName)
	assert.ErrorIs(t, err, errNoUploadPreset)
	assert.ErrorIs(t, err, errNoRemoteBaseURL)
	assert.ErrorIs(t, err, errBadMaxInFlight)
}

func TestValidate_DefaultsAreComplete(t *testing.T) {
	cfg := defaults()
	cfg.Uploader.CloudName = "weave"
	cfg.Uploader.UploadPreset = "weave_unsigned"
	cfg.Remote.BaseURL = "https://docs.example"

	assert.NoError(t, cfg.validate())
}
