package cli

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	repos "github.com/temirov/giberg/cmd/cli/repos"
	"github.com/temirov/giberg/internal/ui"
	"github.com/temirov/giberg/internal/utils"
)

const (
	commonConfigurationKeyConstant         = "common"
	commonLogLevelConfigKeyConstant        = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant       = commonConfigurationKeyConstant + ".log_format"
	commonColorConfigKeyConstant           = commonConfigurationKeyConstant + ".color"
	environmentPrefixConstant              = "GIBERG"
	configurationNameConstant              = "config"
	configurationTypeConstant              = "yaml"
	configurationSearchPathEnvironmentName = "GIBERG_CONFIG_SEARCH_PATH"
	defaultConfigurationSearchPathConstant = "."
	userConfigurationDirectoryNameConstant = "giberg"
	environmentFileNameConstant            = ".env"
)

//go:embed default_config.yaml
var embeddedDefaultConfigurationContent []byte

// ApplicationConfiguration describes the persisted configuration for every giberg entrypoint.
type ApplicationConfiguration struct {
	Common              ApplicationCommonConfiguration `mapstructure:"common"`
	repos.Configuration `mapstructure:",squash"`
}

// ApplicationCommonConfiguration stores logging and console settings shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	Color     string `mapstructure:"color"`
}

// EmbeddedDefaultConfiguration returns the embedded default configuration data and type identifier.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	duplicatedContent := make([]byte, len(embeddedDefaultConfigurationContent))
	copy(duplicatedContent, embeddedDefaultConfigurationContent)
	return duplicatedContent, configurationTypeConstant
}

// DefaultConfigurationValues returns the Viper defaults applied beneath the embedded configuration.
func DefaultConfigurationValues() map[string]any {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelWarn),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatConsole),
		commonColorConfigKeyConstant:     string(ui.ColorModeAuto),
	}
	for configurationKey, configurationValue := range repos.DefaultConfigurationValues() {
		defaultValues[configurationKey] = configurationValue
	}
	return defaultValues
}

// configurationSearchPaths lists the directories searched for config.yaml: an explicit override,
// the working directory, then the user configuration directory.
func configurationSearchPaths() []string {
	searchPaths := make([]string, 0, 3)
	if overridePath := strings.TrimSpace(os.Getenv(configurationSearchPathEnvironmentName)); len(overridePath) > 0 {
		searchPaths = append(searchPaths, overridePath)
	}
	searchPaths = append(searchPaths, defaultConfigurationSearchPathConstant)
	if userConfigurationDirectory, directoryError := os.UserConfigDir(); directoryError == nil {
		searchPaths = append(searchPaths, filepath.Join(userConfigurationDirectory, userConfigurationDirectoryNameConstant))
	}
	return searchPaths
}
