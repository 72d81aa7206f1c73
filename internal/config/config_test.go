package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *Config {
	return &Config{
		Lookup: LookupConfig{
			BaseURL: "https://api.dictionaryapi.dev/api/v2/entries/en",
			Timeout: 10 * time.Second,
		},
		Display: DisplayConfig{
			Theme: ThemeSystem,
			Font:  "sans",
		},
		Server: ServerConfig{
			Address:       ":8080",
			AllowedOrigin: "http://localhost:3000",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range []string{
		"LEXICON_BASE_URL", "LEXICON_TIMEOUT", "LEXICON_THEME",
		"LEXICON_FONT", "LEXICON_SERVER_ADDRESS", "LEXICON_LOG_LEVEL",
	} {
		t.Setenv(env, "")
		require.NoError(t, os.Unsetenv(env))
	}
}

func TestConfigLoader_Load(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		useExplicitPath   bool
		env               map[string]string
		wantErr           bool
		want              func() *Config
		wantErrorContains []string
	}{
		{
			name:          "no config file uses defaults",
			configContent: "",
			want:          defaultConfig,
		},
		{
			name: "valid config file with custom values",
			configContent: `lookup:
  base_url: http://localhost:9000/api/v2/entries/en
  timeout: 3s
display:
  theme: dark
  font: mono
server:
  address: 127.0.0.1:9090
  allowed_origin: http://localhost:5173
log:
  level: debug
`,
			want: func() *Config {
				return &Config{
					Lookup: LookupConfig{
						BaseURL: "http://localhost:9000/api/v2/entries/en",
						Timeout: 3 * time.Second,
					},
					Display: DisplayConfig{Theme: "dark", Font: "mono"},
					Server: ServerConfig{
						Address:       "127.0.0.1:9090",
						AllowedOrigin: "http://localhost:5173",
					},
					Log: LogConfig{Level: "debug"},
				}
			},
		},
		{
			name: "partial config with missing fields uses defaults",
			configContent: `display:
  font: serif
`,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Display.Font = "serif"
				return cfg
			},
		},
		{
			name: "explicit config file path",
			configContent: `lookup:
  timeout: 500ms
`,
			useExplicitPath: true,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Lookup.Timeout = 500 * time.Millisecond
				return cfg
			},
		},
		{
			name: "environment variables override the file",
			configContent: `display:
  theme: light
`,
			env: map[string]string{
				"LEXICON_THEME":   "dark",
				"LEXICON_TIMEOUT": "2s",
			},
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Display.Theme = "dark"
				cfg.Lookup.Timeout = 2 * time.Second
				return cfg
			},
		},
		{
			name: "invalid YAML format",
			configContent: `display:
  theme: dark
  invalid yaml format here [[[
`,
			wantErr: true,
			wantErrorContains: []string{
				"configuration file found but could not be read",
				"Please check the file format and permissions",
			},
		},
		{
			name: "invalid values",
			configContent: `lookup:
  base_url: not a url
display:
  theme: sepia
  font: cursive
log:
  level: trace
`,
			wantErr: true,
			wantErrorContains: []string{
				"invalid configuration",
				"base_url must be a valid URL",
				"theme must be one of [light dark system]",
				"font must be one of [serif sans mono]",
				"level must be one of [debug info warn error]",
			},
		},
		{
			name: "zero timeout",
			configContent: `lookup:
  timeout: 0s
`,
			wantErr: true,
			wantErrorContains: []string{
				"invalid configuration",
				"timeout",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			tempDir := t.TempDir()
			t.Setenv("HOME", tempDir)

			var configPath string
			if tt.useExplicitPath {
				configPath = filepath.Join(tempDir, "lexicon.yml")
				err := os.WriteFile(configPath, []byte(tt.configContent), 0644)
				require.NoError(t, err)
			} else {
				if tt.configContent != "" {
					err := os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(tt.configContent), 0644)
					require.NoError(t, err)
				}
				wd, err := os.Getwd()
				require.NoError(t, err)
				require.NoError(t, os.Chdir(tempDir))
				t.Cleanup(func() { _ = os.Chdir(wd) })
			}

			loader, err := NewConfigLoader(configPath)
			require.NoError(t, err)
			got, err := loader.Load()

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				for _, wantMsg := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), wantMsg)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want(), got)
		})
	}
}

func TestConfigLoader_Load_MissingExplicitFile(t *testing.T) {
	clearEnv(t)

	loader, err := NewConfigLoader(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	got, err := loader.Load()
	assert.Error(t, err)
	assert.Nil(t, got)
}
