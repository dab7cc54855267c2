// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/devnode/anvil/internal/issue"
	"github.com/devnode/anvil/internal/testutil"
)

// isolate clears the variables Load consults so tests see only their fixtures.
func isolate(t *testing.T) {
	t.Helper()
	testutil.UnsetEnv(t, EnvConfigPath)
	testutil.UnsetEnv(t, EnvProfile)
}

func TestLoad_NoFiles(t *testing.T) {
	isolate(t)

	cfg, err := Load(context.Background(), LoadOptions{WorkDir: t.TempDir(), HomeDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Files) != 0 {
		t.Errorf("Load().Files = %v, want none", cfg.Files)
	}
	if len(cfg.RPCEndpoints) != 0 {
		t.Errorf("Load().RPCEndpoints = %v, want empty", cfg.RPCEndpoints)
	}
	if cfg.Profile != DefaultProfile {
		t.Errorf("Load().Profile = %q, want %q", cfg.Profile, DefaultProfile)
	}
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	isolate(t)

	home := t.TempDir()
	project := t.TempDir()
	testutil.WriteFile(t, filepath.Join(home, ".foundry", ConfigFileName), `
[rpc_endpoints]
mainnet = "https://global.example/mainnet"
sepolia = "https://global.example/sepolia"
`)
	testutil.WriteFile(t, filepath.Join(project, ConfigFileName), `
[profile.default]
src = "src"

[rpc_endpoints]
mainnet = "https://project.example/mainnet"
`)
	sub := filepath.Join(project, "script", "deploy")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(context.Background(), LoadOptions{WorkDir: sub, HomeDir: home})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Files) != 2 {
		t.Fatalf("Load().Files = %v, want global and project", cfg.Files)
	}

	tests := []struct {
		alias string
		want  string
	}{
		{"mainnet", "https://project.example/mainnet"},
		{"sepolia", "https://global.example/sepolia"},
	}
	for _, tt := range tests {
		got, ok := cfg.RPCEndpoints.Resolve(tt.alias)
		if !ok || got != tt.want {
			t.Errorf("Resolve(%q) = %q, %v, want %q, true", tt.alias, got, ok, tt.want)
		}
	}
}

func TestLoad_ProfileOverlay(t *testing.T) {
	isolate(t)

	project := t.TempDir()
	testutil.WriteFile(t, filepath.Join(project, ConfigFileName), `
[rpc_endpoints]
mainnet = "https://base.example"

[profile.ci.rpc_endpoints]
mainnet = { url = "https://ci.example" }
`)

	tests := []struct {
		name    string
		profile string
		env     string
		want    string
	}{
		{name: "default profile", want: "https://base.example"},
		{name: "explicit profile", profile: "ci", want: "https://ci.example"},
		{name: "profile from env", env: "CI", want: "https://ci.example"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.env != "" {
				testutil.SetEnv(t, EnvProfile, tt.env)
			}
			cfg, err := Load(context.Background(), LoadOptions{WorkDir: project, HomeDir: t.TempDir(), Profile: tt.profile})
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			got, ok := cfg.RPCEndpoints.Resolve("mainnet")
			if !ok || got != tt.want {
				t.Errorf("Resolve(mainnet) = %q, %v, want %q, true", got, ok, tt.want)
			}
		})
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	isolate(t)

	path := testutil.WriteFile(t, filepath.Join(t.TempDir(), "custom.toml"), `
[rpc_endpoints]
local = "http://127.0.0.1:8545"
`)
	testutil.SetEnv(t, EnvConfigPath, path)

	cfg, err := Load(context.Background(), LoadOptions{WorkDir: t.TempDir(), HomeDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got, ok := cfg.RPCEndpoints.Resolve("local"); !ok || got != "http://127.0.0.1:8545" {
		t.Errorf("Resolve(local) = %q, %v, want http://127.0.0.1:8545, true", got, ok)
	}
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	isolate(t)

	missing := filepath.Join(t.TempDir(), "nope.toml")
	_, err := Load(context.Background(), LoadOptions{ConfigFilePath: missing, HomeDir: t.TempDir()})
	if err == nil {
		t.Fatal("Load() error = nil, want error")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("errors.Is(err, os.ErrNotExist) = false for %v", err)
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("error type = %T, want *issue.ActionableError", err)
	}
	if ae.Resource != missing {
		t.Errorf("ActionableError.Resource = %q, want %q", ae.Resource, missing)
	}
}

func TestLoad_InvalidFiles(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		contains string
	}{
		{
			name:     "toml syntax",
			content:  "[rpc_endpoints\nmainnet = ",
			contains: "invalid TOML",
		},
		{
			name:     "alias with dot",
			content:  "[rpc_endpoints]\n\"main.net\" = \"https://x.example\"\n",
			contains: "schema violation",
		},
		{
			name:     "empty endpoint",
			content:  "[rpc_endpoints]\nmainnet = \"\"\n",
			contains: "schema violation",
		},
		{
			name:     "endpoint naming another alias",
			content:  "[rpc_endpoints]\nfoo = \"bar\"\nbar = \"https://eth.example\"\n",
			contains: "schema violation",
		},
		{
			name:     "table url naming another alias",
			content:  "[rpc_endpoints.foo]\nurl = \"bar\"\n",
			contains: "schema violation",
		},
		{
			name:     "table without url",
			content:  "[rpc_endpoints.mainnet]\nkey = \"abc\"\n",
			contains: "schema violation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			project := t.TempDir()
			testutil.WriteFile(t, filepath.Join(project, ConfigFileName), tt.content)

			_, err := Load(context.Background(), LoadOptions{WorkDir: project, HomeDir: t.TempDir()})
			if err == nil {
				t.Fatal("Load() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("Load() error = %q, want it to contain %q", err, tt.contains)
			}
			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Errorf("error type = %T, want *issue.ActionableError", err)
			}
		})
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Load(ctx, LoadOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestProvider_Load(t *testing.T) {
	isolate(t)

	project := t.TempDir()
	testutil.WriteFile(t, filepath.Join(project, ConfigFileName), "[rpc_endpoints]\nanvil = \"http://localhost:8545\"\n")

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{WorkDir: project, HomeDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Provider.Load() error = %v", err)
	}
	if aliases := cfg.RPCEndpoints.Aliases(); len(aliases) != 1 || aliases[0] != "anvil" {
		t.Errorf("Aliases() = %v, want [anvil]", aliases)
	}
}
