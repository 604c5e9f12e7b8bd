package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/vinaywadhwa9/anjuli/internal/backoff"
	"github.com/vinaywadhwa9/anjuli/internal/banner"
	"github.com/vinaywadhwa9/anjuli/internal/batch"
	"github.com/vinaywadhwa9/anjuli/internal/checksum"
	"github.com/vinaywadhwa9/anjuli/internal/config"
	"github.com/vinaywadhwa9/anjuli/internal/exitcode"
	"github.com/vinaywadhwa9/anjuli/internal/imagegen"
	"github.com/vinaywadhwa9/anjuli/internal/logging"
	"github.com/vinaywadhwa9/anjuli/internal/notification"
	"github.com/vinaywadhwa9/anjuli/internal/poem"
)

// projectConfigFile is loaded from the working directory when present.
const projectConfigFile = ".poem-images.conf"

// smokeTestOutput receives the pre-batch test image.
const smokeTestOutput = "test_image.png"

// version vars injected via ldflags at build time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cfg := config.NewDefaultConfig()

	rootCmd := &cobra.Command{
		Use:     "poem-images",
		Short:   "Batch poem illustration generator",
		Long:    "poem-images walks poem folders for *.metadata.json prompt files and generates a .png illustration for each one via the Gemini API.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, cfg)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	bindFlags(rootCmd, cfg)

	if err := rootCmd.Execute(); err != nil {
		logging.Error("%v", err)
		os.Exit(exitcode.Error)
	}
}

// bindFlags registers all CLI flags against the config struct.
func bindFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	flags.StringVarP(&cfg.ConfigFile, "config", "c", "", "Path to an explicit config file")
	flags.StringVarP(&cfg.Model, "model", "m", cfg.Model, "Image-generation model identifier")
	flags.StringVar(&cfg.PoemsRoot, "poems-root", cfg.PoemsRoot, "Directory searched for poem folders (default: working directory)")
	flags.StringVar(&cfg.ChecksumDir, "checksum-dir", cfg.ChecksumDir, "Directory for prompt checksum records")
	flags.IntVar(&cfg.MaxRetries, "max-retries", cfg.MaxRetries, "Max generation attempts per prompt")
	flags.BoolVar(&cfg.SkipSmokeTest, "skip-smoke-test", cfg.SkipSmokeTest, "Skip the pre-batch test image")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Enable debug output")
	flags.StringVar(&cfg.NotifyWebhook, "notify-webhook", cfg.NotifyWebhook, "Webhook URL for run notifications")
	flags.StringVar(&cfg.NotifyChannel, "notify-channel", cfg.NotifyChannel, "Notification channel")
	flags.StringVar(&cfg.NotifyChatID, "notify-chat-id", cfg.NotifyChatID, "Notification chat ID (empty disables notifications)")
}

// buildCLIOverrides collects flags explicitly set on the command line, so
// config file values are not clobbered by flag defaults.
func buildCLIOverrides(cmd *cobra.Command, cfg *config.Config) map[string]string {
	overrides := make(map[string]string)

	stringFlags := map[string]struct {
		key string
		val string
	}{
		"model":          {"IMAGE_MODEL", cfg.Model},
		"poems-root":     {"POEMS_ROOT", cfg.PoemsRoot},
		"checksum-dir":   {"CHECKSUM_DIR", cfg.ChecksumDir},
		"notify-webhook": {"NOTIFY_WEBHOOK", cfg.NotifyWebhook},
		"notify-channel": {"NOTIFY_CHANNEL", cfg.NotifyChannel},
		"notify-chat-id": {"NOTIFY_CHAT_ID", cfg.NotifyChatID},
	}
	for flag, mapping := range stringFlags {
		if cmd.Flags().Changed(flag) {
			overrides[mapping.key] = mapping.val
		}
	}

	if cmd.Flags().Changed("max-retries") {
		overrides["MAX_RETRIES"] = fmt.Sprintf("%d", cfg.MaxRetries)
	}

	boolFlags := map[string]struct {
		key string
		val bool
	}{
		"skip-smoke-test": {"SKIP_SMOKE_TEST", cfg.SkipSmokeTest},
		"verbose":         {"VERBOSE", cfg.Verbose},
	}
	for flag, mapping := range boolFlags {
		if cmd.Flags().Changed(flag) {
			if mapping.val {
				overrides[mapping.key] = "true"
			} else {
				overrides[mapping.key] = "false"
			}
		}
	}

	return overrides
}

func runBatch(cmd *cobra.Command, cfg *config.Config) error {
	cliOverrides := buildCLIOverrides(cmd, cfg)

	finalCfg, err := config.LoadWithPrecedence(projectConfigFile, cfg.ConfigFile, cliOverrides)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	finalCfg.ConfigFile = cfg.ConfigFile
	cfg = finalCfg

	logging.SetVerbose(cfg.Verbose)

	// The credential comes from the environment only (a .env file in the
	// working directory is honored), never from config files.
	apiKey := os.Getenv("GOOGLE_API_KEY")
	if apiKey == "" {
		return errors.New("GOOGLE_API_KEY environment variable not set")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logging.Warn("Interrupt received, finishing current file...")
		cancel()
	}()

	client, err := imagegen.NewGeminiClient(ctx, apiKey)
	if err != nil {
		return fmt.Errorf("init image client: %w", err)
	}

	gen := imagegen.NewGenerator(client, imagegen.Settings{
		Model:      cfg.Model,
		MaxRetries: cfg.MaxRetries,
		BaseDelay:  time.Duration(cfg.BaseDelay) * time.Second,
		Backoff: backoff.New(
			time.Duration(cfg.InitialRetryDelay)*time.Second,
			time.Duration(cfg.MaxRetryDelay)*time.Second,
		),
	})

	banner.PrintStartupBanner(cfg.Model, poem.DiscoverDirs(cfg.PoemsRoot))

	if cfg.SkipSmokeTest {
		logging.Info("Skipping smoke test")
	} else {
		logging.Phase("Smoke test")
		if err := imagegen.SmokeTest(ctx, gen, smokeTestOutput); err != nil {
			if ctx.Err() != nil {
				os.Exit(exitcode.Interrupted)
			}
			notification.SendNotification(cfg.NotifyWebhook, cfg.NotifyChannel, cfg.NotifyChatID,
				notification.FormatEvent(notification.EventSmokeTestFailed, "poem-images", 0, 0, 0))
			return fmt.Errorf("smoke test failed: %w", err)
		}
	}

	store, err := checksum.NewStore(cfg.ChecksumDir)
	if err != nil {
		return fmt.Errorf("init checksum store: %w", err)
	}

	driver := &batch.Driver{
		Gen:   gen,
		Store: store,
		Root:  cfg.PoemsRoot,
	}

	logging.Phase("Batch generation")
	start := time.Now()
	totals, err := driver.Run(ctx)
	if err != nil {
		banner.PrintInterruptedBanner(totals.Processed, totals.Skipped, totals.Failed)
		notification.SendNotification(cfg.NotifyWebhook, cfg.NotifyChannel, cfg.NotifyChatID,
			notification.FormatEvent(notification.EventInterrupted, "poem-images", totals.Processed, totals.Skipped, totals.Failed))
		os.Exit(exitcode.Interrupted)
	}

	banner.PrintSummaryBanner(totals.Processed, totals.Skipped, totals.Failed, int(time.Since(start).Seconds()))
	notification.SendNotification(cfg.NotifyWebhook, cfg.NotifyChannel, cfg.NotifyChatID,
		notification.FormatEvent(notification.EventCompleted, "poem-images", totals.Processed, totals.Skipped, totals.Failed))
	return nil
}
