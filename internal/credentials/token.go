package credentials

import (
	"errors"
	"os"
	"strings"
)

// Environment variable names consulted for provider tokens, in preference order.
const (
	EnvGitHubCLIToken = "GH_TOKEN"
	EnvGitHubToken    = "GITHUB_TOKEN"
	EnvGitHubAPIToken = "GITHUB_API_TOKEN"
	EnvCodebergToken  = "CODEBERG_TOKEN"
	EnvGiteaToken     = "GITEA_TOKEN"
	EnvGitLabToken    = "GITLAB_TOKEN"
)

var providerEnvironmentVariables = map[string][]string{
	githubSectionConstant:   {EnvGitHubCLIToken, EnvGitHubToken, EnvGitHubAPIToken},
	codebergSectionConstant: {EnvCodebergToken, EnvGiteaToken},
	gitlabSectionConstant:   {EnvGitLabToken},
}

// TokenSource records where a resolved token came from.
type TokenSource string

// Token sources in resolution order.
const (
	TokenSourceFlag        TokenSource = TokenSource("flag")
	TokenSourceEnvironment TokenSource = TokenSource("environment")
	TokenSourceFile        TokenSource = TokenSource("file")
)

// ResolvedToken is a token together with its origin.
type ResolvedToken struct {
	Value  string
	Source TokenSource
}

// EnvironmentLookup mirrors os.LookupEnv.
type EnvironmentLookup func(key string) (string, bool)

// Resolver finds provider tokens from an explicit value, the environment, or the credentials file.
type Resolver struct {
	loader            *Loader
	filePath          string
	environmentLookup EnvironmentLookup
	loadedFile        *File
}

// NewResolver constructs a Resolver. An empty filePath disables the file fallback.
func NewResolver(loader *Loader, filePath string, environmentLookup EnvironmentLookup) *Resolver {
	if loader == nil {
		loader = NewLoader(nil)
	}
	if environmentLookup == nil {
		environmentLookup = os.LookupEnv
	}
	return &Resolver{loader: loader, filePath: strings.TrimSpace(filePath), environmentLookup: environmentLookup}
}

// ResolveToken returns the first non-empty token for provider. The credentials file is read at most once.
func (resolver *Resolver) ResolveToken(provider string, explicitToken string) (ResolvedToken, error) {
	if trimmedToken := strings.TrimSpace(explicitToken); len(trimmedToken) > 0 {
		return ResolvedToken{Value: trimmedToken, Source: TokenSourceFlag}, nil
	}

	normalizedProvider := strings.ToLower(strings.TrimSpace(provider))
	for _, environmentKey := range providerEnvironmentVariables[normalizedProvider] {
		if value, exists := resolver.environmentLookup(environmentKey); exists {
			if trimmedValue := strings.TrimSpace(value); len(trimmedValue) > 0 {
				return ResolvedToken{Value: trimmedValue, Source: TokenSourceEnvironment}, nil
			}
		}
	}

	if len(resolver.filePath) == 0 {
		return ResolvedToken{}, ConfigError{Kind: ConfigErrorKindMissingToken, Provider: normalizedProvider}
	}

	file, loadError := resolver.File()
	if loadError != nil {
		var configError ConfigError
		if errors.As(loadError, &configError) && configError.Kind == ConfigErrorKindMissingFile {
			return ResolvedToken{}, ConfigError{Kind: ConfigErrorKindMissingToken, Provider: normalizedProvider, Path: resolver.filePath, Cause: loadError}
		}
		return ResolvedToken{}, loadError
	}

	token, exists := file.Token(normalizedProvider)
	if !exists {
		return ResolvedToken{}, ConfigError{Kind: ConfigErrorKindMissingToken, Provider: normalizedProvider, Path: resolver.filePath}
	}
	return ResolvedToken{Value: token, Source: TokenSourceFile}, nil
}

// File loads the credentials document, caching the successful result.
func (resolver *Resolver) File() (File, error) {
	if resolver.loadedFile != nil {
		return *resolver.loadedFile, nil
	}
	file, loadError := resolver.loader.Load(resolver.filePath)
	if loadError != nil {
		return File{}, loadError
	}
	resolver.loadedFile = &file
	return file, nil
}
