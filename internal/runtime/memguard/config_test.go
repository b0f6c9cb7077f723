package memguard

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "guard.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
verbose = true
strategy = "minimal"
history_size = 64
debug_http_addr = "127.0.0.1:6070"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !cfg.Verbose || cfg.Strategy != "minimal" || cfg.HistorySize != 64 ||
		cfg.DebugHTTPAddr != "127.0.0.1:6070" {
		t.Errorf("config mismatch: %+v", cfg)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := DefaultConfig()
	if cfg != want {
		t.Errorf("empty file = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoadConfigRejectsBadStrategy(t *testing.T) {
	path := writeConfig(t, `strategy = "telepathy"`)
	if _, err := LoadConfig(path); err == nil {
		t.Error("unknown strategy accepted")
	}
}

func TestLoadConfigRejectsNegativeHistory(t *testing.T) {
	path := writeConfig(t, `history_size = -1`)
	if _, err := LoadConfig(path); err == nil {
		t.Error("negative history_size accepted")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("missing file accepted")
	}
}

func TestParseStrategy(t *testing.T) {
	cases := map[string]Strategy{
		"":           StrategyAuto,
		"auto":       StrategyAuto,
		"sigcontext": StrategySigcontext,
		"siginfo":    StrategySiginfo,
		"minimal":    StrategyMinimal,
	}
	for in, want := range cases {
		got, err := ParseStrategy(in)
		if err != nil || got != want {
			t.Errorf("ParseStrategy(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseStrategy("bogus"); err == nil {
		t.Error("bogus strategy accepted")
	}
}
