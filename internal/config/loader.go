package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// ConfigFileName is the name of the config file.
const ConfigFileName = "wxdb.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "wxdb.yml"

// envPrefix prefixes the environment variables that overlay the file. A
// double underscore nests, a single one stays literal, so
// WXDB_PROFILES__ARCHIVE__PASSWORD overrides profiles.archive.password and
// WXDB_PROFILES__LOCAL__EXPLICIT_TRANSACTIONS reaches explicit_transactions.
const envPrefix = "WXDB_"

// Load reads wxdb.yaml, overlaying WXDB_* environment variables. When path
// is empty the file is searched for in dir; a missing file is not an error
// (environment variables and flags still apply).
func Load(path, dir string) (*File, error) {
	if path == "" {
		path = findConfigFile(dir)
	}

	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	var f File
	if err := k.Unmarshal("", &f); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if f.Profiles == nil {
		f.Profiles = make(map[string]*Profile)
	}
	return &f, nil
}

// ResolveWithFlags resolves a profile and overlays any command-line flags
// that were explicitly set (--driver, --host, --port, --user, --password,
// --database, --path). A profile built purely from flags is accepted when
// the config file defines none.
func (f *File) ResolveWithFlags(name string, flags *pflag.FlagSet) (*Profile, error) {
	k := koanf.New(".")

	base, resolveErr := f.Resolve(name)
	if resolveErr == nil {
		if err := k.Load(confmap.Provider(profileMap(base), "."), nil); err != nil {
			return nil, err
		}
	} else if flags == nil || !flags.Changed("driver") {
		// Flags alone can stand in for a profile only when they name a driver.
		return nil, resolveErr
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, fmt.Errorf("applying flags: %w", err)
		}
	}

	var p Profile
	if err := k.Unmarshal("", &p); err != nil {
		return nil, fmt.Errorf("parsing profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func profileMap(p *Profile) map[string]any {
	m := map[string]any{
		"driver":                p.Driver,
		"host":                  p.Host,
		"port":                  p.Port,
		"user":                  p.User,
		"password":              p.Password,
		"database":              p.Database,
		"path":                  p.Path,
		"explicit_transactions": p.ExplicitTransactions,
	}
	if p.Options != nil {
		m["options"] = p.Options
	}
	return m
}

// findConfigFile finds the config file in the given directory.
// Returns empty string if not found.
func findConfigFile(dir string) string {
	if dir == "" {
		dir = "."
	}
	yamlPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(yamlPath); err == nil {
		return yamlPath
	}
	ymlPath := filepath.Join(dir, ConfigFileNameAlt)
	if _, err := os.Stat(ymlPath); err == nil {
		return ymlPath
	}
	return ""
}
