// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/devnode/anvil/internal/issue"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the project configuration file name.
	ConfigFileName = "foundry.toml"
	// EnvConfigPath points at an explicit configuration file.
	EnvConfigPath = "FOUNDRY_CONFIG"
	// EnvProfile selects the active profile.
	EnvProfile = "FOUNDRY_PROFILE"
	// DefaultProfile is used when no profile is selected.
	DefaultProfile = "default"

	globalConfigDir = ".foundry"
	maxFileSize     = 1 << 20
)

//go:embed foundry_schema.cue
var foundrySchema string

// ErrConfigTooLarge is returned for configuration files above the size cap.
var ErrConfigTooLarge = errors.New("config file too large")

type (
	// LoadOptions defines explicit configuration loading inputs. Zero fields
	// fall back to the environment and the process working directory.
	LoadOptions struct {
		// ConfigFilePath forces the project file. Defaults to $FOUNDRY_CONFIG.
		ConfigFilePath string
		// WorkDir is where the upward search for foundry.toml starts.
		WorkDir string
		// HomeDir holds the global .foundry/foundry.toml.
		HomeDir string
		// Profile selects the profile. Defaults to $FOUNDRY_PROFILE, then "default".
		Profile string
	}

	// Config is the subset of foundry configuration anvil consumes.
	Config struct {
		// Profile is the profile the endpoints were read for.
		Profile string
		// Files lists the files that were merged, lowest precedence first.
		Files []string
		// RPCEndpoints is the alias table used to resolve --fork-url.
		RPCEndpoints Endpoints
	}
)

// Load discovers and merges the global and project foundry.toml files.
// Missing files are not an error; an empty Config is returned instead.
func Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	files, err := discover(opts)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	for _, path := range files {
		settings, err := readFoundryFile(path)
		if err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("load foundry config").
				WithResource(path).
				WithSuggestion("Check that the file is valid TOML").
				WithSuggestion("Endpoint aliases may only contain letters, digits, '_' and '-'").
				Wrap(err).
				BuildError()
		}
		if err := v.MergeConfigMap(settings); err != nil {
			return nil, fmt.Errorf("failed to merge %s: %w", path, err)
		}
	}

	profile := opts.Profile
	if profile == "" {
		profile = os.Getenv(EnvProfile)
	}
	if profile == "" {
		profile = DefaultProfile
	}

	endpoints := Endpoints{}
	endpoints.merge(v.GetStringMap("rpc_endpoints"))
	endpoints.merge(v.GetStringMap("profile." + strings.ToLower(profile) + ".rpc_endpoints"))

	return &Config{
		Profile:      profile,
		Files:        files,
		RPCEndpoints: endpoints,
	}, nil
}

// discover returns the config files to merge, global first.
func discover(opts LoadOptions) ([]string, error) {
	var files []string

	home := opts.HomeDir
	if home == "" {
		if dir, err := homedir.Dir(); err == nil {
			home = dir
		}
	}
	if home != "" {
		global := filepath.Join(home, globalConfigDir, ConfigFileName)
		if fileExists(global) {
			files = append(files, global)
		}
	}

	explicit := opts.ConfigFilePath
	if explicit == "" {
		explicit = os.Getenv(EnvConfigPath)
	}
	if explicit != "" {
		path, err := homedir.Expand(explicit)
		if err != nil {
			return nil, fmt.Errorf("failed to expand %s: %w", explicit, err)
		}
		if !fileExists(path) {
			return nil, issue.NewErrorContext().
				WithOperation("load foundry config").
				WithResource(path).
				WithSuggestion("Verify the " + EnvConfigPath + " path is correct").
				WithSuggestion("Unset " + EnvConfigPath + " to search for " + ConfigFileName + " from the working directory").
				Wrap(fmt.Errorf("config file not found: %w", os.ErrNotExist)).
				BuildError()
		}
		return appendUnique(files, path), nil
	}

	workDir := opts.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		workDir = wd
	}
	if project, ok := findUpward(workDir, ConfigFileName); ok {
		files = appendUnique(files, project)
	}

	return files, nil
}

// readFoundryFile decodes a TOML file and validates it against #Foundry.
func readFoundryFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if len(data) > maxFileSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrConfigTooLarge, len(data), maxFileSize)
	}

	var settings map[string]any
	if err := toml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}

	ctx := cuecontext.New()
	schemaValue := ctx.CompileString(foundrySchema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.Encode(settings)
	if userValue.Err() != nil {
		return nil, fmt.Errorf("failed to encode config: %w", userValue.Err())
	}

	unified := schemaValue.LookupPath(cue.ParsePath("#Foundry")).Unify(userValue)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("schema violation: %s", strings.TrimSpace(cueerrors.Details(err, nil)))
	}

	return settings, nil
}

// findUpward looks for name in dir and each of its parents.
func findUpward(dir, name string) (string, bool) {
	dir = filepath.Clean(dir)
	for {
		candidate := filepath.Join(dir, name)
		if fileExists(candidate) {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func appendUnique(files []string, path string) []string {
	for _, f := range files {
		if filepath.Clean(f) == filepath.Clean(path) {
			return files
		}
	}
	return append(files, path)
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
