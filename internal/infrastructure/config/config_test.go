package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mr-tron/base58"
	"github.com/spf13/viper"

	"strongbox.dev/internal/domain/entity"
)

func testAddress(b byte) string {
	return base58.Encode(bytes.Repeat([]byte{b}, entity.AddressLength))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Setenv("CONFIG_ENV", "local")
	dir := t.TempDir()
	writeFile(t, dir, "local.yaml", `
auth:
  admin: "`+testAddress(1)+`"
`)

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
	if cfg.Auth.TimestampTolerance != 5*time.Minute {
		t.Errorf("TimestampTolerance = %v, want 5m", cfg.Auth.TimestampTolerance)
	}
	if cfg.Custody.Mode != CustodyModeMemory {
		t.Errorf("Custody.Mode = %q, want memory", cfg.Custody.Mode)
	}
	if cfg.Custody.RequestTimeout != 10*time.Second {
		t.Errorf("Custody.RequestTimeout = %v, want 10s", cfg.Custody.RequestTimeout)
	}
}

func TestLoadConfig_MergesEnvironmentFile(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	writeFile(t, dir, "app-config.yaml", `
server:
  port: "8080"
assets:
  - BTC
  - ETH
auth:
  admin: "`+testAddress(1)+`"
`)
	writeFile(t, dir, "staging.yaml", `
server:
  port: "9090"
auth:
  timestampTolerance: 2m
  keys:
    - account: "`+testAddress(2)+`"
      secret: staging-secret
`)
	t.Setenv("CONFIG_ENV", "staging")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %q, want 9090 from staging overlay", cfg.Server.Port)
	}
	if len(cfg.Assets) != 2 || cfg.Assets[0] != "BTC" {
		t.Errorf("Assets = %v, want base config assets", cfg.Assets)
	}
	if cfg.Auth.TimestampTolerance != 2*time.Minute {
		t.Errorf("TimestampTolerance = %v, want 2m", cfg.Auth.TimestampTolerance)
	}
	if len(cfg.Auth.Keys) != 1 || cfg.Auth.Keys[0].Account != testAddress(2) {
		t.Fatalf("Keys = %+v, want one staging key", cfg.Auth.Keys)
	}
	if cfg.Auth.Keys[0].Secret != "staging-secret" {
		t.Errorf("Secret = %q", cfg.Auth.Keys[0].Secret)
	}
}

func TestLoadConfig_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "missing admin",
			yaml: `
server:
  port: "8080"
`,
		},
		{
			name: "malformed admin address",
			yaml: `
auth:
  admin: "not-base58!!"
`,
		},
		{
			name: "unknown custody mode",
			yaml: `
auth:
  admin: "` + testAddress(1) + `"
custody:
  mode: teleport
`,
		},
		{
			name: "remote custody without endpoint",
			yaml: `
auth:
  admin: "` + testAddress(1) + `"
custody:
  mode: remote
`,
		},
		{
			name: "signing key with empty secret",
			yaml: `
auth:
  admin: "` + testAddress(1) + `"
  keys:
    - account: "` + testAddress(2) + `"
      secret: ""
`,
		},
		{
			name: "invalid whitelist asset",
			yaml: `
auth:
  admin: "` + testAddress(1) + `"
assets:
  - "b t c"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			t.Setenv("CONFIG_ENV", "local")
			dir := t.TempDir()
			writeFile(t, dir, "local.yaml", tt.yaml)

			if _, err := LoadConfig(dir); err == nil {
				t.Error("LoadConfig() error = nil, want validation error")
			}
		})
	}
}
