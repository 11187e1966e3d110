package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: "127.0.0.1"
  port: 9000
service:
  version: "2.1.0"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Service.Version != "2.1.0" || cfg.Service.Name != "fsapt-visualization-api" {
		t.Errorf("unexpected service config: %+v", cfg.Service)
	}
	if cfg.Debug {
		t.Error("debug should default to false when unset")
	}
	if cfg.Dataset.Path != "" {
		t.Errorf("dataset path should stay empty when unset, got %q", cfg.Dataset.Path)
	}
}

func TestLoad_debugTrue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("debug: true\n"), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug {
		t.Error("debug should be true when set in config")
	}
}

func TestLoad_expandPathDotSlashRelativeToConfigDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
dataset:
  path: "./data/pairs.yaml"
  watch: true
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "data", "pairs.yaml")
	if cfg.Dataset.Path != want {
		t.Errorf("dataset path = %s, want %s", cfg.Dataset.Path, want)
	}
	if !cfg.Dataset.Watch {
		t.Error("dataset watch should be true")
	}
}

func TestLoad_zeroThresholdIsKept(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("analysis:\n  default_threshold: 0\n"), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := cfg.Analysis.ThresholdOrDefault(); got != 0 {
		t.Errorf("threshold: got %v, want 0", got)
	}
}

func TestLoad_missingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_invalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("default host: got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 5000 {
		t.Errorf("default port: got %d", cfg.Server.Port)
	}
	if cfg.Server.RequestTimeoutSeconds != 60 {
		t.Errorf("default timeout: got %d", cfg.Server.RequestTimeoutSeconds)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "*" {
		t.Errorf("default origins: got %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Analysis.ThresholdOrDefault() != 0.5 {
		t.Errorf("default threshold: got %v", cfg.Analysis.ThresholdOrDefault())
	}
	if !cfg.Metrics.EnabledOrDefault() {
		t.Error("metrics should be enabled by default")
	}
	if cfg.Metrics.Namespace != "fsaptvis" {
		t.Errorf("default namespace: got %s", cfg.Metrics.Namespace)
	}
}

func TestAnalysisConfig_ThresholdOrDefault(t *testing.T) {
	a := &AnalysisConfig{}
	if got := a.ThresholdOrDefault(); got != 0.5 {
		t.Errorf("unset: got %v, want 0.5", got)
	}
	v := 1.25
	a.DefaultThreshold = &v
	if got := a.ThresholdOrDefault(); got != 1.25 {
		t.Errorf("set: got %v, want 1.25", got)
	}
}

func TestMetricsConfig_EnabledOrDefault(t *testing.T) {
	t.Run("nil_returns_true", func(t *testing.T) {
		m := &MetricsConfig{}
		if !m.EnabledOrDefault() {
			t.Error("EnabledOrDefault() = false, want true")
		}
	})
	t.Run("false_returns_false", func(t *testing.T) {
		f := false
		m := &MetricsConfig{Enabled: &f}
		if m.EnabledOrDefault() {
			t.Error("EnabledOrDefault() = true, want false")
		}
	})
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "saved.yaml")
	cfg := Default()
	cfg.Server.Port = 9090
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Server.Port != 9090 {
		t.Errorf("loaded port: got %d", loaded.Server.Port)
	}
	if loaded.Analysis.ThresholdOrDefault() != 0.5 {
		t.Errorf("loaded threshold: got %v", loaded.Analysis.ThresholdOrDefault())
	}
}
