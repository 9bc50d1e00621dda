package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const envPrefix = "CASTSHELL"

// Configuration keys, used both as flag names and (upper-cased, prefixed) env names
const (
	KeyToolbarHideDelay     = "toolbar-hide-delay"
	KeyPositionPollInterval = "position-poll-interval"
	KeyMediaDuration        = "media-duration"
	KeyLogLevel             = "log-level"
	KeySnapshotDir          = "snapshot-dir"
	KeyRenderer             = "renderer"
)

const (
	defaultToolbarHideDelay     = 3 * time.Second
	defaultPositionPollInterval = 500 * time.Millisecond
	defaultMediaDuration        = 2 * time.Minute
	defaultLogLevel             = "info"
	defaultSnapshotDir          = "/tmp/castshell"
)

// Args holds the command line arguments, program name excluded
type Args []string

// NewViper parses args and layers them over CASTSHELL_* environment variables and defaults
func NewViper(args Args) (*viper.Viper, error) {
	fs := pflag.NewFlagSet("castshell", pflag.ContinueOnError)
	fs.Duration(KeyToolbarHideDelay, defaultToolbarHideDelay, "Delay before the player chrome hides itself")
	fs.Duration(KeyPositionPollInterval, defaultPositionPollInterval, "How often the active engine is asked for its position")
	fs.Duration(KeyMediaDuration, defaultMediaDuration, "Length of the media played by the local engine")
	fs.String(KeyLogLevel, defaultLogLevel, "Logging level")
	fs.String(KeySnapshotDir, defaultSnapshotDir, "Directory overlay snapshots are written to")
	fs.String(KeyRenderer, "", "MPRIS bus name selected by the cast action (e.g. org.mpris.MediaPlayer2.vlc)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyToolbarHideDelay, defaultToolbarHideDelay)
	v.SetDefault(KeyPositionPollInterval, defaultPositionPollInterval)
	v.SetDefault(KeyMediaDuration, defaultMediaDuration)
	v.SetDefault(KeyLogLevel, defaultLogLevel)
	v.SetDefault(KeySnapshotDir, defaultSnapshotDir)
	v.SetDefault(KeyRenderer, "")

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	return v, nil
}

// LogLevel returns the configured logging level, info when unparsable
func LogLevel(v *viper.Viper) zapcore.Level {
	level, err := zapcore.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// AppConfig holds application configuration
type AppConfig struct {
	logger               *zap.Logger
	toolbarHideDelay     time.Duration
	positionPollInterval time.Duration
	mediaDuration        time.Duration
	snapshotDir          string
	renderer             string
}

// NewAppConfig creates a new application configuration instance
func NewAppConfig(logger *zap.Logger, v *viper.Viper) *AppConfig {
	c := &AppConfig{
		logger:               logger,
		toolbarHideDelay:     positiveDuration(logger, v, KeyToolbarHideDelay, defaultToolbarHideDelay),
		positionPollInterval: positiveDuration(logger, v, KeyPositionPollInterval, defaultPositionPollInterval),
		mediaDuration:        positiveDuration(logger, v, KeyMediaDuration, defaultMediaDuration),
		snapshotDir:          expandPath(v.GetString(KeySnapshotDir)),
		renderer:             strings.TrimSpace(v.GetString(KeyRenderer)),
	}
	if c.snapshotDir == "" {
		c.snapshotDir = defaultSnapshotDir
	}

	logger.Info("Configuration loaded",
		zap.Duration("toolbarHideDelay", c.toolbarHideDelay),
		zap.Duration("positionPollInterval", c.positionPollInterval),
		zap.Duration("mediaDuration", c.mediaDuration),
		zap.String("snapshotDir", c.snapshotDir),
		zap.String("renderer", c.renderer))

	return c
}

// GetToolbarHideDelay returns the auto-hide delay for the chrome
func (c *AppConfig) GetToolbarHideDelay() time.Duration {
	return c.toolbarHideDelay
}

// GetPositionPollInterval returns how often the active engine is polled
func (c *AppConfig) GetPositionPollInterval() time.Duration {
	return c.positionPollInterval
}

// GetMediaDuration returns the length of the local media
func (c *AppConfig) GetMediaDuration() time.Duration {
	return c.mediaDuration
}

// GetSnapshotDir returns the directory for overlay snapshots
func (c *AppConfig) GetSnapshotDir() string {
	return c.snapshotDir
}

// GetRenderer returns the configured renderer bus name, empty when unset
func (c *AppConfig) GetRenderer() string {
	return c.renderer
}

func positiveDuration(logger *zap.Logger, v *viper.Viper, key string, fallback time.Duration) time.Duration {
	d := v.GetDuration(key)
	if d <= 0 {
		logger.Warn("Invalid duration, using default",
			zap.String("key", key),
			zap.String("value", v.GetString(key)),
			zap.Duration("default", fallback))
		return fallback
	}
	return d
}

// expandPath expands environment variables and a leading ~
func expandPath(p string) string {
	p = os.ExpandEnv(p)
	if len(p) > 0 && p[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			p = filepath.Join(home, p[1:])
		}
	}
	return p
}
