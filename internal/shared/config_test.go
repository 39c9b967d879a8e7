package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Database.Path == "" {
		t.Error("default database path should be set")
	}
	if config.Auth.DefaultAdmin == "" || config.Auth.DefaultUser == "" {
		t.Errorf("default accounts should be set: %+v", config.Auth)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("ValidFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[database]
path = "store.db"

[auth]
default_admin = "boss"
default_admin_password = "secret"
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}
		if config.Database.Path != "store.db" || config.Auth.DefaultAdmin != "boss" {
			t.Errorf("unexpected config: %+v", config)
		}
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		if !errors.Is(err, ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})

	t.Run("MalformedFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("[database\npath ="), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestCreateConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	if err := CreateConfigFile(path); err != nil {
		t.Fatalf("failed to create config: %v", err)
	}

	// The written file must parse back into usable defaults.
	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load created config: %v", err)
	}
	if config.Database.Path == "" {
		t.Error("created config should carry a database path")
	}

	if err := CreateConfigFile(path); err == nil {
		t.Error("expected error when the file already exists")
	}
}
