package hosting

import (
	"context"
	"net/http"
	"strings"
)

// DefaultPageSize is the number of repositories requested per listing page.
const DefaultPageSize = 100

// ProviderName identifies a hosting provider implementation.
type ProviderName string

// Known provider names.
const (
	ProviderGitHub   ProviderName = ProviderName("github")
	ProviderCodeberg ProviderName = ProviderName("codeberg")
	ProviderGitLab   ProviderName = ProviderName("gitlab")
)

// RemoteRepository is a snapshot of a repository owned by the authenticated user.
type RemoteRepository struct {
	Name     string `json:"name" yaml:"name"`
	Owner    string `json:"owner" yaml:"owner"`
	CloneURL string `json:"clone_url" yaml:"clone_url"`
	Private  bool   `json:"private" yaml:"private"`
}

// StatusExpectations lists the HTTP status each provider operation must return to count as success.
type StatusExpectations struct {
	List   int
	User   int
	Create int
	Update int
	Delete int
}

// RESTStatusExpectations matches GitHub and Gitea style APIs.
var RESTStatusExpectations = StatusExpectations{
	List:   http.StatusOK,
	User:   http.StatusOK,
	Create: http.StatusCreated,
	Update: http.StatusOK,
	Delete: http.StatusNoContent,
}

// Settings configure a provider instance.
type Settings struct {
	Token      string
	BaseURL    string
	HTTPClient *http.Client
}

// Provider is the capability set reconcilers rely on.
type Provider interface {
	Name() ProviderName
	ListRepositories(executionContext context.Context) ([]RemoteRepository, error)
	CurrentUsername(executionContext context.Context) (string, error)
	CreateRepository(executionContext context.Context, name string, private bool) (RemoteRepository, error)
	UpdateRepositoryVisibility(executionContext context.Context, owner string, name string, private bool) error
	DeleteRepository(executionContext context.Context, owner string, name string) error
	// AuthenticatedURL returns a transport URL for the repository carrying the provider token.
	AuthenticatedURL(repository RemoteRepository, username string) (string, error)
}

// FindRepository returns the repository with the exact given name.
func FindRepository(repositories []RemoteRepository, name string) (RemoteRepository, bool) {
	for _, repository := range repositories {
		if repository.Name == name {
			return repository, true
		}
	}
	return RemoteRepository{}, false
}

// PageFetcher retrieves one listing page; page numbers start at 1.
type PageFetcher func(executionContext context.Context, page int) ([]RemoteRepository, error)

// CollectPages requests pages until one comes back empty and returns the accumulated repositories.
func CollectPages(executionContext context.Context, fetchPage PageFetcher) ([]RemoteRepository, error) {
	repositories := []RemoteRepository{}
	for page := 1; ; page++ {
		pageRepositories, fetchError := fetchPage(executionContext, page)
		if fetchError != nil {
			return nil, fetchError
		}
		if len(pageRepositories) == 0 {
			return repositories, nil
		}
		repositories = append(repositories, pageRepositories...)
	}
}

// ResolveHTTPClient returns the configured client or http.DefaultClient.
func (settings Settings) ResolveHTTPClient() *http.Client {
	if settings.HTTPClient != nil {
		return settings.HTTPClient
	}
	return http.DefaultClient
}

// ResolveBaseURL returns the configured base URL or the fallback, always with a trailing slash.
func (settings Settings) ResolveBaseURL(fallback string) string {
	baseURL := strings.TrimSpace(settings.BaseURL)
	if len(baseURL) == 0 {
		baseURL = fallback
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return baseURL
}
