package storage

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDriver is a registry test double; every operation fails.
type stubDriver struct {
	logger *slog.Logger
}

func (d *stubDriver) Open(context.Context, Config) (Conn, error) {
	return nil, Errorf(ErrNotSupported, "connect", "stub")
}
func (d *stubDriver) CreateDatabase(context.Context, Config) error {
	return Errorf(ErrNotSupported, "create database", "stub")
}
func (d *stubDriver) DropDatabase(context.Context, Config) error {
	return Errorf(ErrNotSupported, "drop database", "stub")
}
func (d *stubDriver) DatabaseExists(context.Context, Config) (bool, error) {
	return false, Errorf(ErrNotSupported, "database exists", "stub")
}

func TestRegistry(t *testing.T) {
	Register("stub", func(logger *slog.Logger) Driver {
		return &stubDriver{logger: logger}
	})

	assert.True(t, IsRegistered("stub"))
	assert.False(t, IsRegistered("no-such-driver"))
	assert.Contains(t, List(), "stub")

	factory, ok := Get("stub")
	require.True(t, ok)
	assert.NotNil(t, factory(nil))
}

func TestNewDriver(t *testing.T) {
	Register("stub", func(logger *slog.Logger) Driver {
		return &stubDriver{logger: logger}
	})

	drv, err := NewDriver("stub", nil)
	require.NoError(t, err)
	assert.IsType(t, &stubDriver{}, drv)
}

func TestNewDriverUnknown(t *testing.T) {
	_, err := NewDriver("duckdb", nil)
	require.Error(t, err)

	var unknown *UnknownDriverError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "duckdb", unknown.Name)

	// Unknown driver names are a caller mistake, not a server failure.
	assert.ErrorIs(t, err, ErrProgramming)
}

func TestNewDriverEmptyName(t *testing.T) {
	_, err := NewDriver("", nil)
	assert.ErrorIs(t, err, ErrProgramming)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "no-such-driver", Config{}, nil)
	assert.ErrorIs(t, err, ErrProgramming)
}
