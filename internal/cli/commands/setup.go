package commands

import (
	"context"
	"log/slog"
	"strings"

	"github.com/skyarchive/wxdb/internal/config"
	"github.com/skyarchive/wxdb/pkg/storage"
	"github.com/spf13/cobra"
)

// profileKey is used to store the resolved profile in context.
type profileKey struct{}

// loggerKey is used to store the logger in context.
type loggerKey struct{}

// WithProfile stores the resolved connection profile in the context.
func WithProfile(ctx context.Context, p *config.Profile) context.Context {
	return context.WithValue(ctx, profileKey{}, p)
}

// ProfileFrom retrieves the profile from the command context.
func ProfileFrom(ctx context.Context) *config.Profile {
	if p, ok := ctx.Value(profileKey{}).(*config.Profile); ok {
		return p
	}
	return &config.Profile{}
}

// WithLogger stores the logger in the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// LoggerFrom retrieves the logger from the command context.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Profile *config.Profile
	Logger  *slog.Logger
	Conn    storage.Conn
}

// NewCommandContext opens a connection for the resolved profile.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	profile := ProfileFrom(cmd.Context())
	logger := LoggerFrom(cmd.Context())

	conn, err := storage.Open(cmd.Context(), driverName(profile), profile.StorageConfig(), logger)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		_ = conn.Close()
	}

	return &CommandContext{
		Profile: profile,
		Logger:  logger,
		Conn:    conn,
	}, cleanup, nil
}

// NewDriverContext resolves the profile's driver without opening a
// connection. Used by the database-level commands, which must not require
// the target database to exist.
func NewDriverContext(cmd *cobra.Command) (*config.Profile, storage.Driver, error) {
	profile := ProfileFrom(cmd.Context())
	logger := LoggerFrom(cmd.Context())

	drv, err := storage.NewDriver(driverName(profile), logger)
	if err != nil {
		return nil, nil, err
	}
	return profile, drv, nil
}

func driverName(p *config.Profile) string {
	return strings.ToLower(p.Driver)
}
