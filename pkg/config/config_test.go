package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleConfig = `
environment: test
server:
  port: 9090
  read_timeout: 5s
calendar:
  pages_dir: /data/pages
  timezone: America/New_York
  workers: 2
price:
  dir: /data/prices
  pairs: [EURUSD, GBPUSD]
kafka:
  brokers: [localhost:9092]
  rows_topic: rows
  aligned_topic: aligned
clickhouse:
  host: localhost
  port: 9000
  database: econpull
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Environment != "test" {
		t.Fatalf("unexpected environment %q", cfg.Environment)
	}
	if cfg.Server.Port != 9090 || cfg.Server.ReadTimeout != 5*time.Second {
		t.Fatalf("unexpected server config %+v", cfg.Server)
	}
	if len(cfg.Price.Pairs) != 2 {
		t.Fatalf("unexpected pairs %v", cfg.Price.Pairs)
	}
	// Omitted period defaults.
	if cfg.Price.Period != "H1" {
		t.Fatalf("unexpected period %q", cfg.Price.Period)
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("PAGES_DIR", "/override/pages")
	t.Setenv("PAIRS", "USDJPY,AUDUSD")
	t.Setenv("CLICKHOUSE_HOST", "ch.internal")

	cfg, err := LoadWithEnv(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Calendar.PagesDir != "/override/pages" {
		t.Fatalf("pages_dir not overridden: %q", cfg.Calendar.PagesDir)
	}
	if len(cfg.Price.Pairs) != 2 || cfg.Price.Pairs[0] != "USDJPY" {
		t.Fatalf("pairs not overridden: %v", cfg.Price.Pairs)
	}
	if cfg.ClickHouse.Host != "ch.internal" {
		t.Fatalf("clickhouse host not overridden: %q", cfg.ClickHouse.Host)
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing environment", "calendar: {pages_dir: /p}\nprice: {dir: /d, pairs: [EURUSD]}"},
		{"missing pages dir", "environment: test\nprice: {dir: /d, pairs: [EURUSD]}"},
		{"missing pairs", "environment: test\ncalendar: {pages_dir: /p}\nprice: {dir: /d}"},
		{"bad period", "environment: test\ncalendar: {pages_dir: /p}\nprice: {dir: /d, pairs: [EURUSD], period: H2}"},
		{"bad impact", "environment: test\ncalendar: {pages_dir: /p, allowed_impacts: [Severe]}\nprice: {dir: /d, pairs: [EURUSD]}"},
	}
	for _, tc := range cases {
		if _, err := Load(writeConfig(t, tc.body)); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}
