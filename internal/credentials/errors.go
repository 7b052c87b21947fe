package credentials

import "fmt"

const (
	missingFileMessageTemplateConstant  = "not found file '%s'"
	malformedMessageConstant            = "invalid json format"
	schemaMessageConstant               = "invalid json structure"
	missingTokenMessageTemplateConstant = "no token configured for %s"
)

// ConfigErrorKind classifies configuration failures.
type ConfigErrorKind string

// Configuration failure kinds.
const (
	ConfigErrorKindMissingFile  ConfigErrorKind = ConfigErrorKind("missing_file")
	ConfigErrorKindMalformed    ConfigErrorKind = ConfigErrorKind("malformed")
	ConfigErrorKindSchema       ConfigErrorKind = ConfigErrorKind("schema")
	ConfigErrorKindMissingToken ConfigErrorKind = ConfigErrorKind("missing_token")
)

// ConfigError reports a credentials file that cannot be used or a token that cannot be resolved.
type ConfigError struct {
	Kind     ConfigErrorKind
	Path     string
	Provider string
	Cause    error
}

// Error renders the user-facing message for the failure kind.
func (configError ConfigError) Error() string {
	switch configError.Kind {
	case ConfigErrorKindMissingFile:
		return fmt.Sprintf(missingFileMessageTemplateConstant, configError.Path)
	case ConfigErrorKindMalformed:
		return malformedMessageConstant
	case ConfigErrorKindMissingToken:
		return fmt.Sprintf(missingTokenMessageTemplateConstant, configError.Provider)
	default:
		return schemaMessageConstant
	}
}

// Unwrap exposes the underlying decoding or filesystem failure.
func (configError ConfigError) Unwrap() error {
	return configError.Cause
}
