package storage

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]func(*slog.Logger) Driver)
)

// Register adds a driver factory to the registry.
// Called by driver implementations in their init() functions.
func Register(name string, factory func(*slog.Logger) Driver) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// Get retrieves a driver factory by name.
func Get(name string) (func(*slog.Logger) Driver, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[name]
	return f, ok
}

// List returns all registered driver names (sorted).
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a driver name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[name]
	return ok
}

// NewDriver creates a driver instance for the named engine. The logger is
// passed to the driver constructor (nil uses a discard logger).
func NewDriver(name string, logger *slog.Logger) (Driver, error) {
	if name == "" {
		return nil, Errorf(ErrProgramming, "new driver", "driver name not specified")
	}
	factory, ok := Get(name)
	if !ok {
		return nil, &UnknownDriverError{Name: name, Available: List()}
	}
	return factory(logger), nil
}

// Open resolves a driver by name and opens a connection with it.
func Open(ctx context.Context, driverName string, cfg Config, logger *slog.Logger) (Conn, error) {
	drv, err := NewDriver(driverName, logger)
	if err != nil {
		return nil, err
	}
	return drv.Open(ctx, cfg)
}

// UnknownDriverError is returned when an unknown driver name is requested.
type UnknownDriverError struct {
	Name      string
	Available []string
}

func (e *UnknownDriverError) Error() string {
	return fmt.Sprintf("unknown storage driver %q\nAvailable drivers: %v\nHint: check the driver field of your wxdb.yaml profile", e.Name, e.Available)
}

// Is reports the error as a programming error so callers can match it
// against the generic taxonomy.
func (e *UnknownDriverError) Is(target error) bool {
	return target == ErrProgramming
}
