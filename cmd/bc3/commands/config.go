package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/awncorp/api-basecamp/internal/constants"
)

// configKeys whitelists the keys the config command manages.
var configKeys = []string{
	"account",
	"username",
	"password",
	"base_url",
	"api_version",
	"retries",
	"timeout",
	"fatal",
	"debug",
	"output",
}

// configMutex serializes writes to the config file.
var configMutex sync.Mutex

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Get, set, and list configuration values persisted in ~/.bc3/config.yml",
	}

	cmd.AddCommand(newConfigListCommand())
	cmd.AddCommand(newConfigGetCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configuration values",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := loadFileConfig()

			keys := make([]string, 0, len(settings))
			for key := range settings {
				keys = append(keys, key)
			}

			sort.Strings(keys)

			for _, key := range keys {
				fmt.Printf("%s: %v\n", key, displayValue(key, settings[key]))
			}

			return nil
		},
	}
}

func newConfigGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if !knownConfigKey(key) {
				return fmt.Errorf("%w: %q", ErrUnknownConfigKey, key)
			}

			fmt.Printf("%v\n", displayValue(key, viper.Get(key)))

			return nil
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if !knownConfigKey(key) {
				return fmt.Errorf("%w: %q", ErrUnknownConfigKey, key)
			}

			settings := loadFileConfig()
			settings[key] = args[1]

			return saveFileConfig(settings)
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Remove a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if !knownConfigKey(key) {
				return fmt.Errorf("%w: %q", ErrUnknownConfigKey, key)
			}

			settings := loadFileConfig()
			delete(settings, key)

			return saveFileConfig(settings)
		},
	}
}

// saveCredentials persists the verified login credentials.
func saveCredentials(account, username, password string) error {
	settings := loadFileConfig()
	settings["account"] = account
	settings["username"] = username
	settings["password"] = password

	return saveFileConfig(settings)
}

func knownConfigKey(key string) bool {
	for _, known := range configKeys {
		if key == known {
			return true
		}
	}

	return false
}

// displayValue masks credential values in output.
func displayValue(key string, value interface{}) interface{} {
	if key == "password" && value != nil && value != "" {
		return Masked
	}

	return value
}

func configFilePath() (string, error) {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		return cfgFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}

	return filepath.Join(home, ".bc3", "config.yml"), nil
}

func loadFileConfig() map[string]interface{} {
	settings := map[string]interface{}{}

	path, err := configFilePath()
	if err != nil {
		return settings
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return settings
	}

	_ = yaml.Unmarshal(raw, &settings)

	return settings
}

func saveFileConfig(settings map[string]interface{}) error {
	configMutex.Lock()
	defer configMutex.Unlock()

	path, err := configFilePath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	encoded, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, encoded, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}
