package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid config",
			config: Config{
				DBPath:   "./test.db",
				LogLevel: "info",
			},
			wantErr: false,
		},
		{
			name: "valid config with debug level",
			config: Config{
				DBPath:   "./test.db",
				LogLevel: "debug",
			},
			wantErr: false,
		},
		{
			name: "empty database path",
			config: Config{
				DBPath:   "",
				LogLevel: "info",
			},
			wantErr:     true,
			errorString: "database path cannot be empty",
		},
		{
			name: "invalid log level",
			config: Config{
				DBPath:   "./test.db",
				LogLevel: "verbose",
			},
			wantErr:     true,
			errorString: "invalid log level 'verbose'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errorString)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_ValidateCreatesDirectory(t *testing.T) {
	cfg := Config{
		DBPath:   filepath.Join(t.TempDir(), "nested", "dir", "tally.db"),
		LogLevel: "info",
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate should create missing directories: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TALLY_DB_PATH", "")
	t.Setenv("TALLY_LOG_LEVEL", "")

	cfg := Load()
	if cfg.DBPath != "./tally.db" {
		t.Errorf("DBPath = %q, want ./tally.db", cfg.DBPath)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TALLY_DB_PATH", "/tmp/custom.db")
	t.Setenv("TALLY_LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.DBPath != "/tmp/custom.db" {
		t.Errorf("DBPath = %q, want /tmp/custom.db", cfg.DBPath)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}
