package cmd

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"esp_panel/internal/config"
	"esp_panel/internal/logger"
	"esp_panel/internal/panel"

	"github.com/spf13/cobra"
)

var (
	configDir string
	baseURL   string
	timeout   time.Duration
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:          "panel",
	Short:        "ESP32 control panel client",
	Long:         "Watch the three temperature probes and switch the LED of an ESP32 board over HTTP.",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&configDir, "config", "configs", "directory holding config.yml")
	f.StringVar(&baseURL, "base-url", "", "device URL (overrides panel.base_url)")
	f.DurationVar(&timeout, "timeout", 0, "per-request timeout (overrides panel.request_timeout)")
	f.StringVar(&logLevel, "log-level", "", "debug | info | warn | error (overrides log.level)")

	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(toggleCmd)
}

// session is what every subcommand needs: a logger and a panel bound to the device page.
type session struct {
	log   *logger.Logger
	panel *panel.Panel
}

func openSession(ctx context.Context, opts ...panel.Option) (*session, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, err
	}
	if baseURL != "" {
		cfg.Panel.BaseURL = baseURL
	}
	if timeout > 0 {
		cfg.Panel.RequestTimeout = timeout
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	log := logger.Get(cfg.Log.Level).Named("panel")

	client, err := panel.NewClient(cfg.Panel.BaseURL, cfg.Panel.RequestTimeout)
	if err != nil {
		return nil, err
	}
	page, err := client.Page(ctx)
	if err != nil {
		return nil, fmt.Errorf("load page: %w", err)
	}
	doc, err := panel.ParseDocument(bytes.NewReader(page))
	if err != nil {
		return nil, err
	}
	p, err := panel.New(doc, client, log, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Panel.BaseURL, err)
	}
	log.Debugw("page_loaded", "base_url", cfg.Panel.BaseURL, "led_on", doc.Checked(panel.IDSwitch))
	return &session{log: log, panel: p}, nil
}
