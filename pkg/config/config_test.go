package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/statcardhq/statcard/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "statcard.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvToken, "")
	t.Setenv(EnvLegacyToken, "")
	t.Setenv(EnvLogin, "")
}

func TestLoad(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvToken, "tok123")

	path := writeConfig(t, `
login = "octocat"
birthday = "2003-12-16"
templates = ["cards/dark.svg"]
commit_window_days = 30
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Login != "octocat" {
		t.Errorf("Login = %q", cfg.Login)
	}
	if cfg.Token != "tok123" {
		t.Errorf("Token = %q", cfg.Token)
	}
	if want := time.Date(2003, time.December, 16, 0, 0, 0, 0, time.UTC); !cfg.Birthday.Equal(want) {
		t.Errorf("Birthday = %v, want %v", cfg.Birthday, want)
	}
	if len(cfg.Templates) != 1 || cfg.Templates[0] != "cards/dark.svg" {
		t.Errorf("Templates = %v", cfg.Templates)
	}
	if cfg.CommitWindow != 30*24*time.Hour {
		t.Errorf("CommitWindow = %v, want 720h", cfg.CommitWindow)
	}
	if cfg.Layout.Line1Fixed() != 24 {
		t.Errorf("default layout Line1Fixed = %d, want 24", cfg.Layout.Line1Fixed())
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvToken, "tok")

	path := writeConfig(t, `
login = "octocat"
birthday = "2000-01-01"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Templates) != 2 {
		t.Errorf("Templates = %v, want the two stock templates", cfg.Templates)
	}
	if cfg.CommitWindow != 365*24*time.Hour {
		t.Errorf("CommitWindow = %v, want one year", cfg.CommitWindow)
	}
}

func TestLoadEnvFallbacks(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvLegacyToken, "legacy-tok")
	t.Setenv(EnvLogin, "envuser")

	path := writeConfig(t, `birthday = "2000-01-01"`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Token != "legacy-tok" {
		t.Errorf("Token = %q, want legacy env fallback", cfg.Token)
	}
	if cfg.Login != "envuser" {
		t.Errorf("Login = %q, want env fallback", cfg.Login)
	}
}

func TestLoadTokenPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvToken, "primary")
	t.Setenv(EnvLegacyToken, "legacy")

	path := writeConfig(t, `
login = "octocat"
birthday = "2000-01-01"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Token != "primary" {
		t.Errorf("Token = %q, want GITHUB_TOKEN to win", cfg.Token)
	}
}

func TestLoadLayoutOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvToken, "tok")

	path := writeConfig(t, `
login = "octocat"
birthday = "2000-01-01"

[layout]
line2_label = "# Commits:"
line2_trailer = "Watchers:"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Layout.Line2Label != "# Commits:" {
		t.Errorf("Line2Label = %q", cfg.Layout.Line2Label)
	}
	if cfg.Layout.Line2Trailer != "Watchers:" {
		t.Errorf("Line2Trailer = %q", cfg.Layout.Line2Trailer)
	}
	// untouched fields keep their defaults
	if cfg.Layout.Line1Label != ". Repos:" {
		t.Errorf("Line1Label = %q, want default", cfg.Layout.Line1Label)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		env      map[string]string
		wantCode errors.Code
	}{
		{
			"missing token",
			`login = "octocat"` + "\n" + `birthday = "2000-01-01"`,
			nil,
			errors.ErrCodeMissingToken,
		},
		{
			"missing login",
			`birthday = "2000-01-01"`,
			map[string]string{EnvToken: "tok"},
			errors.ErrCodeInvalidConfig,
		},
		{
			"missing birthday",
			`login = "octocat"`,
			map[string]string{EnvToken: "tok"},
			errors.ErrCodeInvalidConfig,
		},
		{
			"malformed birthday",
			`login = "octocat"` + "\n" + `birthday = "16-12-2003"`,
			map[string]string{EnvToken: "tok"},
			errors.ErrCodeInvalidConfig,
		},
		{
			"empty template path",
			`login = "octocat"` + "\n" + `birthday = "2000-01-01"` + "\n" + `templates = [""]`,
			map[string]string{EnvToken: "tok"},
			errors.ErrCodeInvalidConfig,
		},
		{
			"empty layout label",
			`login = "octocat"` + "\n" + `birthday = "2000-01-01"` + "\n\n[layout]\n" + `line1_trailer = " "` + "\n" + `line2_trailer = " "`,
			map[string]string{EnvToken: "tok"},
			"", // trailer of blanks is still non-empty text; expect success
		},
		{
			"malformed toml",
			`login = `,
			map[string]string{EnvToken: "tok"},
			errors.ErrCodeInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := writeConfig(t, tt.content)

			_, err := Load(path)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Load() error = %v, want success", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Load() succeeded, want error")
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("error code = %v, want %v (err: %v)", errors.GetCode(err), tt.wantCode, err)
			}
		})
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvToken, "tok")

	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Fatal("Load() on an explicit missing path succeeded, want error")
	}
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error code = %v, want INVALID_CONFIG", errors.GetCode(err))
	}
}
