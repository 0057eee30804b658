package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

var envKeyReplacer = strings.NewReplacer(".", "_")

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyAPIURL        = "api.url"
	cfgKeyAPIKey        = "api.key"
	cfgKeyWorkspacePath = "workspace.path"
	cfgKeyDemo          = "demo"
	cfgKeyLogFile       = "log.file"
	cfgKeyLogLevel      = "log.level"
)

// defaultConfigYAML is written to config.yaml on first run so users have
// something to uncomment instead of docs to hunt for.
const defaultConfigYAML = `# Adventure Ledger configuration.
# Every key can also be set via LEDGER_* environment variables,
# e.g. LEDGER_API_URL, LEDGER_WORKSPACE_PATH.

# Hosted backend. Leave unset to keep the board in a local workspace file.
# api:
#   url: https://your-project.example.com
#   key: your-anon-key

# Local workspace file (default: ledger.db next to this config).
# workspace:
#   path: /home/you/boards/ledger.db

# Seeded read-only board, nothing persisted.
demo: false

# log:
#   level: info
`

// ConfigDir resolves the ledger config directory, honoring LEDGER_CONFIG_DIR
// for fixtures and tests.
func ConfigDir() (string, error) {
	if dir := os.Getenv("LEDGER_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, "ledger"), nil
}

// loadConfig reads config.yaml from configDir, creating the directory and a
// commented default file on first run. A missing file is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyDemo, false)
	v.SetDefault(cfgKeyWorkspacePath, filepath.Join(configDir, "ledger.db"))
	v.SetDefault(cfgKeyLogFile, filepath.Join(configDir, "ledger.log"))
	v.SetDefault(cfgKeyLogLevel, "info")
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix("LEDGER")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
