package repos

import (
	"strings"

	"github.com/temirov/giberg/internal/credentials"
	"github.com/temirov/giberg/internal/hosting"
	"github.com/temirov/giberg/internal/repos/shared"
)

const (
	mirrorConfigurationKeyConstant        = "mirror"
	providersConfigurationKeyConstant     = "providers"
	credentialsConfigurationKeyConstant   = "credentials"
	configurationRootKeyConstant          = "root"
	configurationRemoteNameKeyConstant    = "remote_name"
	configurationPrivateMarkerKeyConstant = "private_marker"
	configurationKeepGoingKeyConstant     = "keep_going"
	configurationSourceKeyConstant        = "source"
	configurationTargetKeyConstant        = "target"
	configurationBaseURLKeyConstant       = "base_url"
	configurationPathKeyConstant          = "path"
	configurationKeySeparatorConstant     = "."
)

// Configuration captures the configuration sections read by the mirror commands.
type Configuration struct {
	Mirror      MirrorConfiguration              `mapstructure:"mirror"`
	Providers   map[string]ProviderConfiguration `mapstructure:"providers"`
	Credentials CredentialsConfiguration         `mapstructure:"credentials"`
}

// MirrorConfiguration describes the local layout and the default source and target providers.
type MirrorConfiguration struct {
	Root          string `mapstructure:"root"`
	RemoteName    string `mapstructure:"remote_name"`
	PrivateMarker string `mapstructure:"private_marker"`
	KeepGoing     bool   `mapstructure:"keep_going"`
	Source        string `mapstructure:"source"`
	Target        string `mapstructure:"target"`
}

// ProviderConfiguration overrides provider endpoints, for example a self-hosted Gitea.
type ProviderConfiguration struct {
	BaseURL string `mapstructure:"base_url"`
}

// CredentialsConfiguration locates the JSON credentials file.
type CredentialsConfiguration struct {
	Path string `mapstructure:"path"`
}

// DefaultConfiguration returns baseline values for the mirror commands.
func DefaultConfiguration() Configuration {
	return Configuration{
		Mirror: MirrorConfiguration{
			Root:          shared.DefaultRootDirectoryConstant,
			RemoteName:    shared.DefaultMirrorRemoteNameConstant,
			PrivateMarker: shared.DefaultPrivateMarkerConstant,
			KeepGoing:     false,
			Source:        string(hosting.ProviderGitHub),
			Target:        string(hosting.ProviderCodeberg),
		},
		Providers: map[string]ProviderConfiguration{},
		Credentials: CredentialsConfiguration{
			Path: credentials.DefaultFilePathConstant,
		},
	}
}

// DefaultConfigurationValues produces Viper defaults for the mirror commands.
func DefaultConfigurationValues() map[string]any {
	defaults := DefaultConfiguration()
	return map[string]any{
		configurationKey(mirrorConfigurationKeyConstant, configurationRootKeyConstant):          defaults.Mirror.Root,
		configurationKey(mirrorConfigurationKeyConstant, configurationRemoteNameKeyConstant):    defaults.Mirror.RemoteName,
		configurationKey(mirrorConfigurationKeyConstant, configurationPrivateMarkerKeyConstant): defaults.Mirror.PrivateMarker,
		configurationKey(mirrorConfigurationKeyConstant, configurationKeepGoingKeyConstant):     defaults.Mirror.KeepGoing,
		configurationKey(mirrorConfigurationKeyConstant, configurationSourceKeyConstant):        defaults.Mirror.Source,
		configurationKey(mirrorConfigurationKeyConstant, configurationTargetKeyConstant):        defaults.Mirror.Target,
		configurationKey(credentialsConfigurationKeyConstant, configurationPathKeyConstant):     defaults.Credentials.Path,
	}
}

// ProviderBaseURLKey returns the configuration key of a provider endpoint override.
func ProviderBaseURLKey(provider hosting.ProviderName) string {
	return configurationKey(providersConfigurationKeyConstant, string(provider), configurationBaseURLKeyConstant)
}

// BaseURL returns the configured endpoint of provider or an empty string.
func (configuration Configuration) BaseURL(provider hosting.ProviderName) string {
	providerConfiguration, exists := configuration.Providers[strings.ToLower(strings.TrimSpace(string(provider)))]
	if !exists {
		return ""
	}
	return strings.TrimSpace(providerConfiguration.BaseURL)
}

func (configuration Configuration) sanitize() Configuration {
	defaults := DefaultConfiguration()
	sanitized := configuration

	sanitized.Mirror.Root = fallbackValue(configuration.Mirror.Root, defaults.Mirror.Root)
	sanitized.Mirror.RemoteName = fallbackValue(configuration.Mirror.RemoteName, defaults.Mirror.RemoteName)
	sanitized.Mirror.PrivateMarker = fallbackValue(configuration.Mirror.PrivateMarker, defaults.Mirror.PrivateMarker)
	sanitized.Mirror.Source = strings.ToLower(fallbackValue(configuration.Mirror.Source, defaults.Mirror.Source))
	sanitized.Mirror.Target = strings.ToLower(fallbackValue(configuration.Mirror.Target, defaults.Mirror.Target))
	sanitized.Credentials.Path = strings.TrimSpace(configuration.Credentials.Path)
	if sanitized.Providers == nil {
		sanitized.Providers = map[string]ProviderConfiguration{}
	}
	return sanitized
}

func fallbackValue(value string, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallback
	}
	return trimmed
}

func configurationKey(segments ...string) string {
	return strings.Join(segments, configurationKeySeparatorConstant)
}
