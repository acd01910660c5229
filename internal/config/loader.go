package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix     = "FFL_"
	envConfigFile = "FFL_CONFIG"
	envDotenvFile = "FFL_DOTENV"
	dotenvName    = ".env"
)

// credentialVars are read without the FFL_ prefix so existing .env files keep working.
var credentialVars = map[string]string{
	"LEAGUE_ID": "league_id",
	"YEAR":      "year",
	"ESPN_S2":   "espn_s2",
	"SWID":      "swid",
}

// Load builds a Config by layering defaults, optional files and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. YAML file if FFL_CONFIG is set
//  3. LEAGUE_ID, YEAR, ESPN_S2, SWID from the environment
//  4. FFL_* environment variables
//  5. .env file (FFL_DOTENV, else the nearest .env above the working directory)
//
// The returned Config has been validated.
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(envConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	credentials := env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		name, ok := credentialVars[key]
		if !ok {
			return "", nil
		}
		return name, value
	})
	if err := k.Load(credentials, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// FFL_MIN_OWNED -> min_owned, FFL_POSITIONS=QB,RB -> positions: [QB RB]
	prefixed := env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, interface{}) {
		name := envKey(key)
		if name == "" {
			return "", nil
		}
		return name, envValue(name, value)
	})
	if err := k.Load(prefixed, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// .env is read last and overrides the process environment.
	dotenv, err := readDotenv()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	if len(dotenv) > 0 {
		if err := k.Load(confmap.Provider(dotenv, "."), nil); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps an environment variable name to a koanf key, or "" to skip it.
func envKey(name string) string {
	upper := strings.ToUpper(name)
	if upper == envConfigFile || upper == envDotenvFile {
		return ""
	}
	if strings.HasPrefix(upper, envPrefix) {
		return strings.ToLower(strings.TrimPrefix(upper, envPrefix))
	}
	if key, ok := credentialVars[upper]; ok {
		return key
	}
	return ""
}

func envValue(key, value string) interface{} {
	if key == "positions" {
		return ParsePositions(value)
	}
	return value
}

// readDotenv returns the .env entries mapped to koanf keys. A missing implicit
// .env is not an error; a missing explicit FFL_DOTENV is.
func readDotenv() (map[string]interface{}, error) {
	path := os.Getenv(envDotenvFile)
	if path == "" {
		path = findDotenv()
		if path == "" {
			return nil, nil
		}
	}

	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	out := make(map[string]interface{}, len(values))
	for name, value := range values {
		key := envKey(name)
		if key == "" {
			continue
		}
		out[key] = envValue(key, value)
	}
	return out, nil
}

// findDotenv walks up from the working directory looking for a .env file.
func findDotenv() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, dotenvName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return ""
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
