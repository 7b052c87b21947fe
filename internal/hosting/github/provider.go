// Package github implements the hosting provider for GitHub.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v66/github"

	"github.com/temirov/giberg/internal/gitrepo"
	"github.com/temirov/giberg/internal/hosting"
)

const (
	// DefaultBaseURL is the public GitHub REST endpoint.
	DefaultBaseURL                    = "https://api.github.com/"
	ownerAffiliationConstant          = "owner"
	authenticatedUserConstant         = ""
	baseURLParseErrorTemplateConstant = "invalid github base url %q: %w"
)

// Provider talks to the GitHub REST API.
type Provider struct {
	client             *gh.Client
	token              string
	statusExpectations hosting.StatusExpectations
}

// NewProvider constructs a GitHub provider. Requests authenticate with an "Authorization: token" header.
func NewProvider(settings hosting.Settings) (*Provider, error) {
	if len(strings.TrimSpace(settings.Token)) == 0 {
		return nil, hosting.ErrTokenRequired
	}
	client := gh.NewClient(settings.AuthorizedHTTPClient())
	baseURL := settings.ResolveBaseURL(DefaultBaseURL)
	parsedBaseURL, parseError := url.Parse(baseURL)
	if parseError != nil {
		return nil, fmt.Errorf(baseURLParseErrorTemplateConstant, baseURL, parseError)
	}
	client.BaseURL = parsedBaseURL
	return &Provider{client: client, token: settings.Token, statusExpectations: hosting.RESTStatusExpectations}, nil
}

// Factory adapts NewProvider to hosting.Factory.
func Factory(settings hosting.Settings) (hosting.Provider, error) {
	return NewProvider(settings)
}

// Name identifies the provider.
func (provider *Provider) Name() hosting.ProviderName {
	return hosting.ProviderGitHub
}

// ListRepositories returns every repository owned by the authenticated user.
func (provider *Provider) ListRepositories(executionContext context.Context) ([]hosting.RemoteRepository, error) {
	return hosting.CollectPages(executionContext, provider.listPage)
}

func (provider *Provider) listPage(executionContext context.Context, page int) ([]hosting.RemoteRepository, error) {
	options := &gh.RepositoryListByAuthenticatedUserOptions{
		Affiliation: ownerAffiliationConstant,
		ListOptions: gh.ListOptions{Page: page, PerPage: hosting.DefaultPageSize},
	}
	repositories, response, listError := provider.client.Repositories.ListByAuthenticatedUser(executionContext, options)
	if checkError := provider.check(hosting.OperationListRepositories, provider.statusExpectations.List, response, listError); checkError != nil {
		return nil, checkError
	}

	remoteRepositories := make([]hosting.RemoteRepository, 0, len(repositories))
	for _, repository := range repositories {
		remoteRepositories = append(remoteRepositories, convertRepository(repository))
	}
	return remoteRepositories, nil
}

// CurrentUsername returns the login of the authenticated user.
func (provider *Provider) CurrentUsername(executionContext context.Context) (string, error) {
	user, response, userError := provider.client.Users.Get(executionContext, authenticatedUserConstant)
	if checkError := provider.check(hosting.OperationCurrentUser, provider.statusExpectations.User, response, userError); checkError != nil {
		return "", checkError
	}
	return user.GetLogin(), nil
}

// CreateRepository creates an empty repository under the authenticated user.
func (provider *Provider) CreateRepository(executionContext context.Context, name string, private bool) (hosting.RemoteRepository, error) {
	request := &gh.Repository{
		Name:     gh.String(name),
		Private:  gh.Bool(private),
		AutoInit: gh.Bool(false),
	}
	repository, response, createError := provider.client.Repositories.Create(executionContext, authenticatedUserConstant, request)
	if checkError := provider.check(hosting.OperationCreateRepository, provider.statusExpectations.Create, response, createError); checkError != nil {
		return hosting.RemoteRepository{}, checkError
	}
	return convertRepository(repository), nil
}

// UpdateRepositoryVisibility sets the private flag of owner/name.
func (provider *Provider) UpdateRepositoryVisibility(executionContext context.Context, owner string, name string, private bool) error {
	_, response, editError := provider.client.Repositories.Edit(executionContext, owner, name, &gh.Repository{Private: gh.Bool(private)})
	return provider.check(hosting.OperationUpdateVisibility, provider.statusExpectations.Update, response, editError)
}

// DeleteRepository removes owner/name.
func (provider *Provider) DeleteRepository(executionContext context.Context, owner string, name string) error {
	response, deleteError := provider.client.Repositories.Delete(executionContext, owner, name)
	return provider.check(hosting.OperationDeleteRepository, provider.statusExpectations.Delete, response, deleteError)
}

// AuthenticatedURL embeds the token as the userinfo of the clone URL.
func (provider *Provider) AuthenticatedURL(repository hosting.RemoteRepository, _ string) (string, error) {
	return gitrepo.EmbedCredentials(repository.CloneURL, gitrepo.Credentials{Username: provider.token})
}

func (provider *Provider) check(operation string, expectedStatus int, response *gh.Response, requestError error) error {
	if response == nil || response.Response == nil {
		if requestError == nil {
			return nil
		}
		return hosting.RequestError{Provider: hosting.ProviderGitHub, Operation: operation, Cause: requestError}
	}

	body := ""
	var errorResponse *gh.ErrorResponse
	if errors.As(requestError, &errorResponse) {
		body = errorResponseBody(response, errorResponse)
	} else if requestError != nil {
		body = requestError.Error()
	}
	if requestError != nil && response.StatusCode == expectedStatus {
		return hosting.RequestError{Provider: hosting.ProviderGitHub, Operation: operation, Cause: requestError}
	}
	return hosting.UnexpectedStatus(hosting.ProviderGitHub, operation, response.StatusCode, expectedStatus, body)
}

// errorResponseBody returns the response body text. The client re-populates the body after decoding it; when
// it is unavailable the decoded error, including its field errors and documentation URL, is encoded instead.
func errorResponseBody(response *gh.Response, errorResponse *gh.ErrorResponse) string {
	if response.Body != nil {
		content, readError := io.ReadAll(response.Body)
		if readError == nil && len(bytes.TrimSpace(content)) > 0 {
			return string(content)
		}
	}
	encoded, encodeError := json.Marshal(errorResponse)
	if encodeError != nil {
		return errorResponse.Message
	}
	return string(encoded)
}

func convertRepository(repository *gh.Repository) hosting.RemoteRepository {
	return hosting.RemoteRepository{
		Name:     repository.GetName(),
		Owner:    repository.GetOwner().GetLogin(),
		CloneURL: repository.GetCloneURL(),
		Private:  repository.GetPrivate(),
	}
}
