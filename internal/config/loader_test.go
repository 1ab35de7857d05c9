package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyarchive/wxdb/pkg/storage"

	_ "github.com/skyarchive/wxdb/pkg/drivers/postgres"
	_ "github.com/skyarchive/wxdb/pkg/drivers/sqlite"
)

const sampleYAML = `
default: archive

profiles:
  archive:
    driver: postgres
    host: db.example.com
    port: 5433
    user: weewx
    password: s3cret
    database: weewx
    options:
      sslmode: require

  local:
    driver: sqlite
    path: /var/lib/weewx/weewx.sdb
    explicit_transactions: true
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return dir
}

// connectionFlags mirrors the CLI's persistent override flags.
func connectionFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("driver", "", "")
	fs.String("host", "", "")
	fs.Int("port", 0, "")
	fs.String("user", "", "")
	fs.String("password", "", "")
	fs.String("database", "", "")
	fs.String("path", "", "")
	return fs
}

func TestLoad(t *testing.T) {
	dir := writeConfig(t, sampleYAML)

	f, err := Load("", dir)
	require.NoError(t, err)

	assert.Equal(t, "archive", f.Default)
	require.Len(t, f.Profiles, 2)

	archive := f.Profiles["archive"]
	require.NotNil(t, archive)
	assert.Equal(t, "postgres", archive.Driver)
	assert.Equal(t, "db.example.com", archive.Host)
	assert.Equal(t, 5433, archive.Port)
	assert.Equal(t, "require", archive.Options["sslmode"])

	local := f.Profiles["local"]
	require.NotNil(t, local)
	assert.Equal(t, "sqlite", local.Driver)
	assert.Equal(t, "/var/lib/weewx/weewx.sdb", local.Path)
	assert.True(t, local.ExplicitTransactions)
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	f, err := Load("", t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, f.Profiles)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	dir := writeConfig(t, sampleYAML)
	t.Setenv("WXDB_PROFILES__ARCHIVE__PASSWORD", "from-env")
	t.Setenv("WXDB_PROFILES__ARCHIVE__HOST", "env.example.com")

	f, err := Load("", dir)
	require.NoError(t, err)

	archive := f.Profiles["archive"]
	require.NotNil(t, archive)
	assert.Equal(t, "from-env", archive.Password)
	assert.Equal(t, "env.example.com", archive.Host)
	// Untouched fields keep their file values.
	assert.Equal(t, 5433, archive.Port)
}

func TestLoadEnvironmentUnderscoreKeys(t *testing.T) {
	// Single underscores stay literal, so keys like explicit_transactions
	// and options.maintenance_db remain reachable.
	dir := writeConfig(t, sampleYAML)
	t.Setenv("WXDB_PROFILES__LOCAL__EXPLICIT_TRANSACTIONS", "false")
	t.Setenv("WXDB_PROFILES__ARCHIVE__OPTIONS__MAINTENANCE_DB", "template1")

	f, err := Load("", dir)
	require.NoError(t, err)

	local := f.Profiles["local"]
	require.NotNil(t, local)
	assert.False(t, local.ExplicitTransactions)

	archive := f.Profiles["archive"]
	require.NotNil(t, archive)
	assert.Equal(t, "template1", archive.Options["maintenance_db"])
	assert.Equal(t, "require", archive.Options["sslmode"])
}

func TestResolve(t *testing.T) {
	dir := writeConfig(t, sampleYAML)
	f, err := Load("", dir)
	require.NoError(t, err)

	// Empty name resolves the default profile.
	p, err := f.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "postgres", p.Driver)

	p, err = f.Resolve("local")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", p.Driver)

	_, err = f.Resolve("staging")
	assert.ErrorContains(t, err, `unknown profile "staging"`)
}

func TestResolveNoDefault(t *testing.T) {
	f := &File{Profiles: map[string]*Profile{}}
	_, err := f.Resolve("")
	assert.ErrorContains(t, err, "no profile selected")
}

func TestValidateUnknownDriver(t *testing.T) {
	p := &Profile{Driver: "duckdb"}
	err := p.Validate()
	require.Error(t, err)

	var unknown *storage.UnknownDriverError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "duckdb", unknown.Name)
}

func TestValidateMissingDriver(t *testing.T) {
	p := &Profile{}
	assert.ErrorContains(t, p.Validate(), "driver is required")
}

func TestResolveWithFlags(t *testing.T) {
	dir := writeConfig(t, sampleYAML)
	f, err := Load("", dir)
	require.NoError(t, err)

	t.Run("flags override the profile", func(t *testing.T) {
		fs := connectionFlags()
		require.NoError(t, fs.Set("host", "flag.example.com"))
		require.NoError(t, fs.Set("port", "15432"))

		p, err := f.ResolveWithFlags("archive", fs)
		require.NoError(t, err)
		assert.Equal(t, "flag.example.com", p.Host)
		assert.Equal(t, 15432, p.Port)
		// Everything not overridden comes from the profile.
		assert.Equal(t, "postgres", p.Driver)
		assert.Equal(t, "weewx", p.Database)
	})

	t.Run("no flags keeps the profile", func(t *testing.T) {
		p, err := f.ResolveWithFlags("archive", connectionFlags())
		require.NoError(t, err)
		assert.Equal(t, "db.example.com", p.Host)
	})

	t.Run("flag-only profile needs a driver", func(t *testing.T) {
		fs := connectionFlags()
		require.NoError(t, fs.Set("driver", "sqlite"))
		require.NoError(t, fs.Set("path", "/tmp/wx.sdb"))

		empty := &File{Profiles: map[string]*Profile{}}
		p, err := empty.ResolveWithFlags("", fs)
		require.NoError(t, err)
		assert.Equal(t, "sqlite", p.Driver)
		assert.Equal(t, "/tmp/wx.sdb", p.Path)
	})

	t.Run("flags without driver cannot stand alone", func(t *testing.T) {
		fs := connectionFlags()
		require.NoError(t, fs.Set("host", "flag.example.com"))

		empty := &File{Profiles: map[string]*Profile{}}
		_, err := empty.ResolveWithFlags("", fs)
		assert.Error(t, err)
	})
}

func TestProfileStorageConfig(t *testing.T) {
	p := &Profile{
		Driver:               "postgres",
		Host:                 "db.example.com",
		Port:                 5433,
		User:                 "weewx",
		Password:             "s3cret",
		Database:             "weewx",
		ExplicitTransactions: true,
		Options:              map[string]string{"sslmode": "require"},
	}

	cfg := p.StorageConfig()
	assert.Equal(t, "db.example.com", cfg.Host)
	assert.Equal(t, 5433, cfg.Port)
	assert.Equal(t, "weewx", cfg.Database)
	assert.True(t, cfg.ExplicitTransactions)
	assert.Equal(t, "require", cfg.Option("sslmode", "disable"))
	assert.Equal(t, "postgres", cfg.Option("maintenance_db", "postgres"))
}
