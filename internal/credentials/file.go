package credentials

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	// DefaultFilePathConstant names the credentials file looked up in the working directory.
	DefaultFilePathConstant = "config.json"

	credentialsConfigurationTypeConstant = "json"
	githubSectionConstant                = "github"
	codebergSectionConstant              = "codeberg"
	gitlabSectionConstant                = "gitlab"
	tokenFieldConstant                   = "token"
	emptyTokenMessageConstant            = "token must not be empty"
	missingSectionMessageConstant        = "section missing"
)

var requiredSections = []string{githubSectionConstant, codebergSectionConstant}

var optionalSections = []string{gitlabSectionConstant}

// ProviderCredentials holds the secrets for one hosting provider.
type ProviderCredentials struct {
	Token string `mapstructure:"token" json:"token"`
}

// File is the decoded credentials document. github and codeberg are required; gitlab is optional.
type File struct {
	sections map[string]ProviderCredentials
}

// Token returns the configured token for the provider section.
func (file File) Token(provider string) (string, bool) {
	credentials, exists := file.sections[strings.ToLower(strings.TrimSpace(provider))]
	if !exists {
		return "", false
	}
	return credentials.Token, len(credentials.Token) > 0
}

// Loader reads credentials documents from a filesystem.
type Loader struct {
	fileSystem afero.Fs
}

// NewLoader constructs a Loader. A nil filesystem selects the operating system filesystem.
func NewLoader(fileSystem afero.Fs) *Loader {
	if fileSystem == nil {
		fileSystem = afero.NewOsFs()
	}
	return &Loader{fileSystem: fileSystem}
}

// Load decodes the credentials document at filePath. Each failure maps to one ConfigError kind.
func (loader *Loader) Load(filePath string) (File, error) {
	content, readError := afero.ReadFile(loader.fileSystem, filePath)
	if readError != nil {
		return File{}, ConfigError{Kind: ConfigErrorKindMissingFile, Path: filePath, Cause: readError}
	}

	if !json.Valid(content) {
		return File{}, ConfigError{Kind: ConfigErrorKindMalformed, Path: filePath}
	}

	viperInstance := viper.New()
	viperInstance.SetConfigType(credentialsConfigurationTypeConstant)
	if parseError := viperInstance.ReadConfig(bytes.NewReader(content)); parseError != nil {
		return File{}, schemaError(filePath, parseError)
	}

	settings := viperInstance.AllSettings()
	sections := make(map[string]ProviderCredentials, len(requiredSections)+len(optionalSections))
	for _, sectionName := range requiredSections {
		rawSection, exists := settings[sectionName]
		if !exists {
			return File{}, schemaError(filePath, errors.New(sectionName+": "+missingSectionMessageConstant))
		}
		credentials, decodeError := decodeSection(sectionName, rawSection)
		if decodeError != nil {
			return File{}, schemaError(filePath, decodeError)
		}
		sections[sectionName] = credentials
	}
	for _, sectionName := range optionalSections {
		rawSection, exists := settings[sectionName]
		if !exists {
			continue
		}
		credentials, decodeError := decodeSection(sectionName, rawSection)
		if decodeError != nil {
			return File{}, schemaError(filePath, decodeError)
		}
		sections[sectionName] = credentials
	}

	return File{sections: sections}, nil
}

func decodeSection(sectionName string, rawSection any) (ProviderCredentials, error) {
	credentials := ProviderCredentials{}
	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		ErrorUnset:       true,
		WeaklyTypedInput: false,
		Result:           &credentials,
	})
	if decoderError != nil {
		return ProviderCredentials{}, decoderError
	}
	if decodeError := decoder.Decode(rawSection); decodeError != nil {
		return ProviderCredentials{}, decodeError
	}
	if len(strings.TrimSpace(credentials.Token)) == 0 {
		return ProviderCredentials{}, errors.New(sectionName + "." + tokenFieldConstant + ": " + emptyTokenMessageConstant)
	}
	credentials.Token = strings.TrimSpace(credentials.Token)
	return credentials, nil
}

func schemaError(filePath string, cause error) error {
	return ConfigError{Kind: ConfigErrorKindSchema, Path: filePath, Cause: cause}
}
