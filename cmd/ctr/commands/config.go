package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/fivetwenty-io/threatresponse/internal/constants"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage the threat response CLI configuration file",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration. Secrets are masked.",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := effectiveSettings()

			return writeOutput(cmd.OutOrStdout(), settings, func(table *tablewriter.Table) error {
				table.Header("Key", "Value")

				keys := make([]string, 0, len(settings))
				for key := range settings {
					keys = append(keys, key)
				}

				sort.Strings(keys)

				for _, key := range keys {
					_ = table.Append(key, settings[key])
				}

				return nil
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long: fmt.Sprintf("Set a configuration value in the config file.\n\nValid keys: %s",
			strings.Join(settableKeys, ", ")),
		Args: cobra.ExactArgs(2), //nolint:mnd // key and value
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			if !slices.Contains(settableKeys, key) {
				return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
			}

			err := updateConfigFile(func(values map[string]interface{}) {
				values[key] = value
			})
			if err != nil {
				return err
			}

			viper.Set(key, value)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", key)

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Remove a configuration value",
		Long:  "Remove a configuration value from the config file. Unsetting client_id also drops the cached token.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			if !slices.Contains(settableKeys, key) {
				return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
			}

			err := updateConfigFile(func(values map[string]interface{}) {
				delete(values, key)

				if key == keyClientID || key == keyClientSecret || key == keyRegion {
					delete(values, keyCachedToken)
					delete(values, keyCachedTokenExpiresAt)
				}
			})
			if err != nil {
				return err
			}

			viper.Set(key, "")
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Unset %s\n", key)

			return nil
		},
	}
}

// effectiveSettings returns every known key with its current value.
func effectiveSettings() map[string]string {
	keys := append(slices.Clone(settableKeys), keyCachedTokenExpiresAt, keyCachedToken)
	settings := make(map[string]string, len(keys))

	for _, key := range keys {
		value := viper.GetString(key)

		switch {
		case value == "":
			value = NotAvailable
		case secretKeys[key]:
			value = Masked
		}

		settings[key] = value
	}

	return settings
}

// configFilePath returns the file in use, or ~/.ctr/config.yml.
func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".ctr")

	err = os.MkdirAll(configDir, constants.ConfigDirPerm)
	if err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.yml"), nil
}

// updateConfigFile applies update to the values stored in the config file
// and writes it back. Values coming from flags or the environment are never
// written.
func updateConfigFile(update func(values map[string]interface{})) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	values := make(map[string]interface{})

	// #nosec G304 -- the config file path comes from the user's own flags
	data, err := os.ReadFile(configFile)

	switch {
	case err == nil:
		err = yaml.Unmarshal(data, &values)
		if err != nil {
			return fmt.Errorf("failed to parse config file: %w", err)
		}

		if values == nil {
			values = make(map[string]interface{})
		}
	case !os.IsNotExist(err):
		return fmt.Errorf("failed to read config file: %w", err)
	}

	update(values)

	data, err = yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
