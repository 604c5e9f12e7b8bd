// Package config defines the poem-images configuration model and default
// values.
//
// Configuration is assembled from multiple sources with a strict precedence
// chain: built-in defaults < project config file < explicit config file <
// environment variables < CLI flag overrides. The GOOGLE_API_KEY credential
// is deliberately excluded: it is read from the environment only, never from
// config files.
package config

// WhitelistedVars lists every configuration variable name that may appear in
// config files or the environment. Variables not in this list are silently
// ignored during loading.
var WhitelistedVars = [12]string{
	"IMAGE_MODEL",
	"MAX_RETRIES",
	"INITIAL_RETRY_DELAY",
	"MAX_RETRY_DELAY",
	"BASE_DELAY_BETWEEN_CALLS",
	"POEMS_ROOT",
	"CHECKSUM_DIR",
	"SKIP_SMOKE_TEST",
	"VERBOSE",
	"NOTIFY_WEBHOOK",
	"NOTIFY_CHANNEL",
	"NOTIFY_CHAT_ID",
}

// Config holds every configuration field for the poem-images CLI.
type Config struct {
	// Remote model selection.
	Model string

	// Retry and throttle settings, in seconds.
	MaxRetries        int
	InitialRetryDelay int
	MaxRetryDelay     int
	BaseDelay         int

	// File locations.
	PoemsRoot   string
	ChecksumDir string

	// Runtime flags.
	SkipSmokeTest bool
	Verbose       bool

	// Notification settings.
	NotifyWebhook string
	NotifyChannel string
	NotifyChatID  string

	// CLI-only flags (not loaded from config files).
	ConfigFile string
}

// NewDefaultConfig returns a Config populated with all built-in default
// values.
func NewDefaultConfig() *Config {
	return &Config{
		Model:             "gemini-2.0-flash-exp-image-generation",
		MaxRetries:        5,
		InitialRetryDelay: 2,
		MaxRetryDelay:     60,
		BaseDelay:         1,
		ChecksumDir:       ".image_checksums",
		NotifyChannel:     "telegram",
	}
}
