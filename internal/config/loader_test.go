package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinaywadhwa9/anjuli/internal/config"
)

// writeFile is a test helper that creates a temporary file with the given
// content.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// ---------------------------------------------------------------------------
// LoadFile tests
// ---------------------------------------------------------------------------

func TestLoadFileBasicKeyValue(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config", "IMAGE_MODEL=gemini-test\nMAX_RETRIES=3\n")

	m, err := config.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "gemini-test", m["IMAGE_MODEL"])
	assert.Equal(t, "3", m["MAX_RETRIES"])
}

func TestLoadFileSkipsCommentsAndBlankLines(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config", "# delays\n\nINITIAL_RETRY_DELAY=4\n\n# end\n")

	m, err := config.LoadFile(path)
	require.NoError(t, err)

	assert.Len(t, m, 1)
	assert.Equal(t, "4", m["INITIAL_RETRY_DELAY"])
}

func TestLoadFileTrimsWhitespace(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config", "  IMAGE_MODEL  =  gemini-test  \n")

	m, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini-test", m["IMAGE_MODEL"])
}

func TestLoadFileSkipsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config", "IMAGE_MODEL=m\nGOOGLE_API_KEY=secret\nBOGUS=1\n")

	m, err := config.LoadFile(path)
	require.NoError(t, err)

	assert.Len(t, m, 1)
	assert.Empty(t, m["GOOGLE_API_KEY"], "credentials never come from config files")
}

func TestLoadFileValueWithEquals(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config", "NOTIFY_WEBHOOK=http://host:8080/path?key=val\n")

	m, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http://host:8080/path?key=val", m["NOTIFY_WEBHOOK"])
}

func TestLoadFileReturnsErrorForMissingFile(t *testing.T) {
	_, err := config.LoadFile("/nonexistent/path/config")
	assert.Error(t, err)
}

// ---------------------------------------------------------------------------
// Precedence tests
// ---------------------------------------------------------------------------

func TestLoadWithPrecedenceDefaultsOnly(t *testing.T) {
	cfg, err := config.LoadWithPrecedence("", "", nil)
	require.NoError(t, err)

	expected := config.NewDefaultConfig()
	assert.Equal(t, expected.Model, cfg.Model)
	assert.Equal(t, expected.MaxRetries, cfg.MaxRetries)
	assert.Equal(t, expected.MaxRetryDelay, cfg.MaxRetryDelay)
	assert.Equal(t, expected.ChecksumDir, cfg.ChecksumDir)
}

func TestLoadWithPrecedenceMissingProjectConfigIgnored(t *testing.T) {
	cfg, err := config.LoadWithPrecedence(filepath.Join(t.TempDir(), "absent.conf"), "", nil)
	require.NoError(t, err)
	assert.Equal(t, config.NewDefaultConfig().Model, cfg.Model)
}

func TestLoadWithPrecedenceMissingExplicitConfigFails(t *testing.T) {
	_, err := config.LoadWithPrecedence("", filepath.Join(t.TempDir(), "absent.conf"), nil)
	assert.Error(t, err)
}

func TestLoadWithPrecedenceExplicitBeatsProject(t *testing.T) {
	dir := t.TempDir()
	project := writeFile(t, dir, "project.conf", "IMAGE_MODEL=project-model\nMAX_RETRIES=2\n")
	explicit := writeFile(t, dir, "explicit.conf", "IMAGE_MODEL=explicit-model\n")

	cfg, err := config.LoadWithPrecedence(project, explicit, nil)
	require.NoError(t, err)

	assert.Equal(t, "explicit-model", cfg.Model)
	assert.Equal(t, 2, cfg.MaxRetries, "project value survives where explicit is silent")
}

func TestLoadWithPrecedenceEnvBeatsFiles(t *testing.T) {
	dir := t.TempDir()
	project := writeFile(t, dir, "project.conf", "IMAGE_MODEL=file-model\n")
	t.Setenv("IMAGE_MODEL", "env-model")

	cfg, err := config.LoadWithPrecedence(project, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "env-model", cfg.Model)
}

func TestLoadWithPrecedenceCLIBeatsEverything(t *testing.T) {
	dir := t.TempDir()
	project := writeFile(t, dir, "project.conf", "IMAGE_MODEL=file-model\n")
	t.Setenv("IMAGE_MODEL", "env-model")

	cfg, err := config.LoadWithPrecedence(project, "", map[string]string{
		"IMAGE_MODEL": "cli-model",
	})
	require.NoError(t, err)
	assert.Equal(t, "cli-model", cfg.Model)
}

// ---------------------------------------------------------------------------
// ApplyMapToConfig tests
// ---------------------------------------------------------------------------

func TestApplyMapToConfigSetsFields(t *testing.T) {
	cfg := config.NewDefaultConfig()

	config.ApplyMapToConfig(cfg, map[string]string{
		"IMAGE_MODEL":              "m",
		"MAX_RETRIES":              "7",
		"INITIAL_RETRY_DELAY":      "3",
		"MAX_RETRY_DELAY":          "90",
		"BASE_DELAY_BETWEEN_CALLS": "2",
		"POEMS_ROOT":               "/data",
		"CHECKSUM_DIR":             ".sums",
		"SKIP_SMOKE_TEST":          "yes",
		"VERBOSE":                  "true",
		"NOTIFY_WEBHOOK":           "http://localhost/hook",
		"NOTIFY_CHANNEL":           "slack",
		"NOTIFY_CHAT_ID":           "42",
	})

	assert.Equal(t, "m", cfg.Model)
	assert.Equal(t, 7, cfg.MaxRetries)
	assert.Equal(t, 3, cfg.InitialRetryDelay)
	assert.Equal(t, 90, cfg.MaxRetryDelay)
	assert.Equal(t, 2, cfg.BaseDelay)
	assert.Equal(t, "/data", cfg.PoemsRoot)
	assert.Equal(t, ".sums", cfg.ChecksumDir)
	assert.True(t, cfg.SkipSmokeTest)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "http://localhost/hook", cfg.NotifyWebhook)
	assert.Equal(t, "slack", cfg.NotifyChannel)
	assert.Equal(t, "42", cfg.NotifyChatID)
}

func TestApplyMapToConfigKeepsValueOnBadInt(t *testing.T) {
	cfg := config.NewDefaultConfig()

	config.ApplyMapToConfig(cfg, map[string]string{"MAX_RETRIES": "not-a-number"})

	assert.Equal(t, 5, cfg.MaxRetries)
}

func TestApplyMapToConfigBoolFalseValues(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Verbose = true

	config.ApplyMapToConfig(cfg, map[string]string{"VERBOSE": "no"})

	assert.False(t, cfg.Verbose)
}
