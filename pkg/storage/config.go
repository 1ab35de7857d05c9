package storage

// Config holds the connection parameters for one database session. The
// adapter validates presence of the fields its driver requires but performs
// no other transformation; loading and merging configuration belongs to the
// host application.
type Config struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	// Database names the target database/catalog for server-based engines.
	Database string `koanf:"database"`
	// Path names the database file for file-based engines.
	Path string `koanf:"path"`
	// ExplicitTransactions disables autocommit: the first statement outside
	// an explicit transaction implicitly begins one, and nothing is durable
	// until Commit. The zero value (autocommit) matches the behavior the
	// host application expects from every driver.
	ExplicitTransactions bool `koanf:"explicit_transactions"`
	// Options carries engine-specific settings such as sslmode or
	// maintenance_db, passed through untouched.
	Options map[string]string `koanf:"options"`
}

// Option returns an engine-specific option, or the fallback when unset.
func (c Config) Option(key, fallback string) string {
	if v, ok := c.Options[key]; ok && v != "" {
		return v
	}
	return fallback
}
