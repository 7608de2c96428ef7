package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
)

const (
	// DefaultDir is the bin directory of the MSYS2 MinGW-w64 toolchain.
	DefaultDir = `C:\msys64\mingw64\bin`
	// DefaultPathVar is the search path variable the toolchain is prepended to.
	DefaultPathVar = "PATH"
	// DefaultTool is the build tool arguments are forwarded to.
	DefaultTool = "cargo"

	// FileName is the name of the config file looked up by default.
	FileName = "devenv.toml"
	// EnvPrefix prefixes the environment variables read as settings.
	EnvPrefix = "PACLIKE_"

	appName = "paclike"
)

// DefaultHints are the follow-on commands suggested after bootstrapping.
var DefaultHints = []string{"cargo build", "cargo run --release"}

// Toolchain locates the native toolchain.
type Toolchain struct {
	// Dir is prepended to the search path.
	Dir string `koanf:"dir"`
	// PathVar is the name of the search path variable.
	PathVar string `koanf:"path_var"`
}

// Config holds the settings of the paclike tools.
type Config struct {
	Toolchain Toolchain `koanf:"toolchain"`
	// Tool receives the forwarded arguments.
	Tool string `koanf:"tool"`
	// Hints are printed as the usage hint line.
	Hints []string `koanf:"hints"`
	// Verbosity of the console log.
	Verbosity int `koanf:"verbosity"`
}

// LoadOptions customizes Load.
type LoadOptions struct {
	// File is an explicit config file. It must exist when set.
	File string
	// Overrides are applied last, keyed by dotted paths ("toolchain.dir").
	// Typically built from the command line flags that were set.
	Overrides map[string]interface{}
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"toolchain.dir":      DefaultDir,
		"toolchain.path_var": DefaultPathVar,
		"tool":               DefaultTool,
		"hints":              append([]string(nil), DefaultHints...),
		"verbosity":          0,
	}
}

// Load reads the layered configuration. The returned koanf instance holds
// the merged raw values, see Marshal.
func Load(opts LoadOptions) (*Config, *koanf.Koanf, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, nil, fmt.Errorf("config: failed to load defaults: %w", err)
	}

	path, err := findFile(opts.File)
	if err != nil {
		return nil, nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, nil, fmt.Errorf("config: failed to load %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, nil, fmt.Errorf("config: failed to load environment: %w", err)
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, nil, fmt.Errorf("config: failed to load overrides: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, nil, fmt.Errorf("config: failed to decode: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	return &cfg, k, nil
}

// envKey maps PACLIKE_TOOLCHAIN__PATH_VAR to toolchain.path_var.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

func findFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config: %w", err)
		}
		return explicit, nil
	}

	candidates := []string{FileName}
	if xdg.ConfigHome != "" {
		candidates = append(candidates, filepath.Join(xdg.ConfigHome, appName, FileName))
	}

	for _, candidate := range candidates {
		_, err := os.Stat(candidate)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("config: %w", err)
		}
	}

	return "", nil
}

// Validate reports settings the tools cannot work with.
func (c *Config) Validate() error {
	if c.Toolchain.Dir == "" {
		return errors.New("config: toolchain.dir is empty")
	}
	if c.Toolchain.PathVar == "" {
		return errors.New("config: toolchain.path_var is empty")
	}
	if strings.ContainsRune(c.Toolchain.PathVar, '=') {
		return fmt.Errorf("config: invalid toolchain.path_var %q", c.Toolchain.PathVar)
	}
	if c.Tool == "" {
		return errors.New("config: tool is empty")
	}

	return nil
}

// Marshal renders the merged configuration held by k as TOML.
func Marshal(k *koanf.Koanf) ([]byte, error) {
	out, err := gotoml.Marshal(k.Raw())
	if err != nil {
		return nil, fmt.Errorf("config: failed to encode: %w", err)
	}

	return out, nil
}
