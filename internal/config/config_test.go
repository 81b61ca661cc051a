package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("port = %q", cfg.Port)
	}
	if cfg.Sensors.Retries != 3 || cfg.Sensors.RetryDelay != 500*time.Millisecond {
		t.Errorf("unexpected retry defaults: %+v", cfg.Sensors)
	}
	if len(cfg.Sensors.SlaveIDs) != 3 || cfg.Sensors.SlaveIDs[2] != 3 {
		t.Errorf("slave ids = %v", cfg.Sensors.SlaveIDs)
	}
	if !cfg.Led.Auto || cfg.Led.Pin != 2 {
		t.Errorf("led defaults = %+v", cfg.Led)
	}
	if cfg.Panel.RequestTimeout != 5*time.Second {
		t.Errorf("panel timeout = %v", cfg.Panel.RequestTimeout)
	}
}

func TestLoad_FileOverrides(t *testing.T) {
	dir := t.TempDir()
	body := []byte(`
port: "9090"
sensors:
  transport: tcp
  device: "10.0.0.7:502"
  retry_delay: 250ms
led:
  auto: false
panel:
  base_url: "http://esp.local"
`)
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), body, 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" || cfg.Sensors.Transport != "tcp" || cfg.Sensors.Device != "10.0.0.7:502" {
		t.Errorf("unexpected: %+v", cfg)
	}
	if cfg.Sensors.RetryDelay != 250*time.Millisecond {
		t.Errorf("retry_delay = %v", cfg.Sensors.RetryDelay)
	}
	if cfg.Led.Auto {
		t.Errorf("led.auto should be false")
	}
	if cfg.Panel.BaseURL != "http://esp.local" {
		t.Errorf("base_url = %q", cfg.Panel.BaseURL)
	}
}

func TestLoad_RejectsUnknownTransport(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte("sensors:\n  transport: can\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for unknown transport")
	}
}
