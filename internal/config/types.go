// Package config loads wxdb connection profiles. A profile names a storage
// driver plus the connection parameters the host application passes through
// to it; the package validates presence of required fields but performs no
// other transformation.
package config

import (
	"fmt"
	"strings"

	"github.com/skyarchive/wxdb/pkg/storage"
)

// Profile holds the connection settings for one named database.
type Profile struct {
	Driver string `koanf:"driver"` // postgres, sqlite

	// Network databases
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Database string `koanf:"database"`

	// File-based databases
	Path string `koanf:"path"`

	ExplicitTransactions bool `koanf:"explicit_transactions"`

	// Driver-specific options (sslmode, maintenance_db, ...)
	Options map[string]string `koanf:"options"`
}

// Validate checks that the profile names a registered driver.
func (p *Profile) Validate() error {
	if p.Driver == "" {
		return fmt.Errorf("profile driver is required")
	}
	if !storage.IsRegistered(strings.ToLower(p.Driver)) {
		return &storage.UnknownDriverError{
			Name:      p.Driver,
			Available: storage.List(),
		}
	}
	return nil
}

// StorageConfig converts the profile into the generic connection config.
func (p *Profile) StorageConfig() storage.Config {
	return storage.Config{
		Host:                 p.Host,
		Port:                 p.Port,
		User:                 p.User,
		Password:             p.Password,
		Database:             p.Database,
		Path:                 p.Path,
		ExplicitTransactions: p.ExplicitTransactions,
		Options:              p.Options,
	}
}

// File is the parsed wxdb.yaml: named profiles plus the default selection.
type File struct {
	Default  string              `koanf:"default"`
	Profiles map[string]*Profile `koanf:"profiles"`
}

// Resolve returns the named profile, or the default one when name is empty.
func (f *File) Resolve(name string) (*Profile, error) {
	if name == "" {
		name = f.Default
	}
	if name == "" {
		return nil, fmt.Errorf("no profile selected and no default profile configured")
	}
	p, ok := f.Profiles[name]
	if !ok {
		names := make([]string, 0, len(f.Profiles))
		for n := range f.Profiles {
			names = append(names, n)
		}
		return nil, fmt.Errorf("unknown profile %q (configured profiles: %v)", name, names)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("profile %q: %w", name, err)
	}
	return p, nil
}
