// Package config_manager loads and maintains the wifi monitor configuration file.
package config_manager

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-version"
)

// CurrentConfigVersion is the latest version of the wifi_monitor.json format.
const CurrentConfigVersion = "v0.0.1"

const (
	// DefaultConfigPath is used unless ConfigPathEnv is set.
	DefaultConfigPath = "/etc/tollgate/wifi_monitor.json"
	// ConfigPathEnv overrides the configuration file location.
	ConfigPathEnv = "TOLLGATE_WIFI_MONITOR_CONFIG"
)

// ErrMalformedConfig is returned by LoadConfig when the file is not valid JSON
// for Config.
var ErrMalformedConfig = errors.New("malformed config file")

// ResolveConfigPath returns the configuration path from the environment or the default.
func ResolveConfigPath() string {
	if path := os.Getenv(ConfigPathEnv); path != "" {
		return path
	}
	return DefaultConfigPath
}

// ConfigManager manages the configuration file
type ConfigManager struct {
	FilePath  string
	BackupDir string
}

// NewConfigManager creates a new ConfigManager instance. Backups of replaced
// configuration files go to a config_backups directory next to filePath.
func NewConfigManager(filePath string) *ConfigManager {
	return &ConfigManager{
		FilePath:  filePath,
		BackupDir: filepath.Join(filepath.Dir(filePath), "config_backups"),
	}
}

// LoadConfig reads the configuration from the managed file. A missing or
// empty file yields a nil config and no error.
func (cm *ConfigManager) LoadConfig() (*Config, error) {
	data, err := os.ReadFile(cm.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrMalformedConfig, cm.FilePath, err)
	}
	return &config, nil
}

// SaveConfig writes the configuration to the managed file with pretty formatting
func (cm *ConfigManager) SaveConfig(config *Config) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(cm.FilePath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(cm.FilePath, data, 0644)
}

// EnsureDefaultConfig ensures a usable configuration exists. A missing file
// is created with defaults. A malformed file or one written by an older
// format version is backed up and replaced with defaults. Read errors are
// returned and leave the file untouched.
func (cm *ConfigManager) EnsureDefaultConfig() (*Config, error) {
	defaultConfig := NewDefaultConfig()

	config, err := cm.LoadConfig()
	if err != nil && !errors.Is(err, ErrMalformedConfig) {
		return nil, err
	}
	if err == nil && config == nil {
		logger.WithField("path", cm.FilePath).Info("Creating default configuration")
		return defaultConfig, cm.SaveConfig(defaultConfig)
	}

	if err != nil || isOutdated(config.ConfigVersion) {
		fields := map[string]interface{}{"path": cm.FilePath, "expected_version": CurrentConfigVersion}
		if config != nil {
			fields["found_version"] = config.ConfigVersion
		}
		logger.WithFields(fields).WithError(err).Warn("Replacing unusable configuration with defaults")

		if backupErr := cm.backupAndRemove("config"); backupErr != nil {
			return nil, backupErr
		}
		return defaultConfig, cm.SaveConfig(defaultConfig)
	}

	return config, nil
}

// isOutdated reports whether configVersion is missing, unparsable or older
// than CurrentConfigVersion. Newer versions are kept as they are.
func isOutdated(configVersion string) bool {
	found, err := version.NewVersion(configVersion)
	if err != nil {
		return true
	}
	current := version.Must(version.NewVersion(CurrentConfigVersion))
	return found.LessThan(current)
}

// backupAndRemove moves the managed file into BackupDir with a timestamped name.
func (cm *ConfigManager) backupAndRemove(kind string) error {
	if err := os.MkdirAll(cm.BackupDir, 0755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	backupPath := filepath.Join(cm.BackupDir, fmt.Sprintf("%s_%s.json", kind, time.Now().Format("20060102-150405.000000000")))
	if err := os.Rename(cm.FilePath, backupPath); err != nil {
		return fmt.Errorf("failed to back up %s: %w", cm.FilePath, err)
	}

	logger.WithFields(map[string]interface{}{
		"path":   cm.FilePath,
		"backup": backupPath,
	}).Info("Backed up configuration")
	return nil
}
