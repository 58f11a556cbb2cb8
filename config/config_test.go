package config

import (
	"os"
	"path/filepath"
	"testing"
)

//nolint:gocyclo
func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `server:
  address: ":9000"
  token: "secret"
calendar:
  source:
    type: "http"
    conf:
      url: "https://registrar.example.edu/terms"
  watch: true
rules:
  attendance_path: "data/attendance-method.md"
storage:
  backend: "sqlite"
  path: "sections.db"
cache:
  backend: "redis"
metrics:
  sinks:
    - type: "prometheus"
  prometheus_port: ":9100"
mqtt:
  enabled: true
  broker: "tcp://localhost:1883"
  qos: 1
schedule:
  time_format: "24h"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"server.address", cfg.Server.Address, ":9000"},
		{"server.token", cfg.Server.Token, "secret"},
		{"server.burst", cfg.Server.Burst, 10},
		{"calendar.source.type", cfg.Calendar.Source.Type, "http"},
		{"calendar.source.url", cfg.Calendar.Source.Conf["url"], "https://registrar.example.edu/terms"},
		{"calendar.watch", cfg.Calendar.Watch, true},
		{"rules.attendance_path", cfg.Rules.AttendancePath, "data/attendance-method.md"},
		{"storage.backend", cfg.Storage.Backend, "sqlite"},
		{"cache.address", cfg.Cache.Address, "localhost:6379"},
		{"cache.ttl_seconds", cfg.Cache.TTLSeconds, 3600},
		{"metrics_sink", len(cfg.Metrics.Sinks) == 1 && cfg.Metrics.Sinks[0].Type == "prometheus", true},
		{"metrics.prometheus_port", cfg.Metrics.PrometheusPort, ":9100"},
		{"mqtt.enabled", cfg.MQTT.Enabled, true},
		{"mqtt.broker", cfg.MQTT.Broker, "tcp://localhost:1883"},
		{"mqtt.qos", cfg.MQTT.QoS, byte(1)},
		{"mqtt.topic", cfg.MQTT.Topic, "sectionplanner/sections"},
		{"schedule.default_start_time", cfg.Schedule.DefaultStartTime, "08:00"},
		{"schedule.time_format", string(cfg.Schedule.Format()), "24h"},
		{"logging.level", cfg.Logging.Level, "info"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"server":{"address":":8081"}}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("K_SERVER__TOKEN", "from-env")
	t.Setenv("K_STORAGE__BACKEND", "sqlite")
	t.Setenv("K_CACHE__TTL_SECONDS", "60")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Server.Token != "from-env" || cfg.Storage.Backend != "sqlite" {
		t.Fatalf("env overrides not applied: %+v %+v", cfg.Server, cfg.Storage)
	}
	if cfg.Cache.TTLSeconds != 60 {
		t.Fatalf("nested env override not applied: %+v", cfg.Cache)
	}
	if cfg.Calendar.Source.Type != "file" || cfg.Calendar.Source.Conf["path"] != "academic-calendar.yaml" {
		t.Fatalf("unexpected calendar default %+v", cfg.Calendar.Source)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"storage":  "storage:\n  backend: postgres\n",
		"cache":    "cache:\n  backend: memcached\n",
		"mqtt":     "mqtt:\n  enabled: true\n",
		"schedule": "schedule:\n  default_start_time: \"8am\"\n",
		"logging":  "logging:\n  level: loud\n",
	}
	for name, data := range cases {
		path := filepath.Join(dir, name+".yaml")
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
	if _, err := Load(filepath.Join(dir, "config.toml")); err == nil {
		t.Error("expected unsupported format error")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Storage.Backend != "memory" || cfg.Cache.Backend != "memory" || cfg.Server.Address != ":8080" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}
